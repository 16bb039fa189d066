package catalog

// Pokemon mirrors the subset of the PokeAPI pokemon document this
// service consumes. Weight and height are in the API's native units
// (hectograms and decimetres).
type Pokemon struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Sprites Sprites `json:"sprites"`
	Types   []Slot  `json:"types"`
	Weight  float64 `json:"weight"`
	Height  float64 `json:"height"`
}

type Sprites struct {
	FrontDefault string `json:"front_default"`
}

type Slot struct {
	Type TypeRef `json:"type"`
}

type TypeRef struct {
	Name string `json:"name"`
}

// TypeNames flattens the nested type slots into a plain list of tags.
func (p Pokemon) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, slot := range p.Types {
		names = append(names, slot.Type.Name)
	}
	return names
}

// PokemonList is a page of the PokeAPI pokemon listing.
type PokemonList struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []NamedRef `json:"results"`
}

type NamedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
