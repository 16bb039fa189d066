package team

// UniversalCompatibleType is compatible with every team, and a team of
// this type accepts every Pokémon.
const UniversalCompatibleType = "normal"

// PokemonTypes is the closed set of valid team types.
var PokemonTypes = []string{
	"normal", "fire", "water", "grass", "electric", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// IsCompatible reports whether a Pokémon with the given type tags may
// join a team of the given type. A Pokémon qualifies when its tags
// include the team type or the universal type, or when the team itself
// is of the universal type.
func IsCompatible(teamType string, pokemonTypes []string) bool {
	if teamType == UniversalCompatibleType {
		return true
	}

	for _, t := range pokemonTypes {
		if t == teamType || t == UniversalCompatibleType {
			return true
		}
	}
	return false
}
