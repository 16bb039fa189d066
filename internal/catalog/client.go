package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/dmartinezh/poketeams/pkg/apperr"
)

const (
	detailCacheSize = 512
	detailCacheTTL  = time.Hour
)

// Client fetches Pokémon data from the PokeAPI. Detail lookups are
// memoized in an expirable LRU keyed by normalized name.
type Client struct {
	baseURL string
	http    *http.Client
	details *expirable.LRU[string, *Pokemon]
}

// NewClient creates a catalog client. The timeout bounds every request;
// a timed-out call surfaces as a catalog-unavailable error.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		details: expirable.NewLRU[string, *Pokemon](detailCacheSize, nil, detailCacheTTL),
	}
}

// NormalizeName canonicalizes user-supplied Pokémon names for lookups
// and duplicate checks.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ListPokemon fetches one page of the Pokémon name listing.
func (c *Client) ListPokemon(ctx context.Context, limit int) (*PokemonList, error) {
	var list PokemonList
	if err := c.getJSON(ctx, fmt.Sprintf("pokemon?limit=%d", limit), &list); err != nil {
		return nil, err
	}
	log.Printf("PokeAPI - Retrieved %d available pokemons", len(list.Results))
	return &list, nil
}

// GetPokemon fetches the detail document for a single Pokémon.
func (c *Client) GetPokemon(ctx context.Context, name string) (*Pokemon, error) {
	normalized := NormalizeName(name)

	if cached, ok := c.details.Get(normalized); ok {
		return cached, nil
	}

	var p Pokemon
	if err := c.getJSON(ctx, "pokemon/"+normalized, &p); err != nil {
		return nil, err
	}
	log.Printf("PokeAPI - Data for 'pokemon/%s' obtained successfully.", normalized)

	c.details.Add(normalized, &p)
	return &p, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	url := c.baseURL + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "POKEAPI_ERROR", "Failed to fetch data from PokeAPI", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("PokeAPI - Error fetching '%s': %v", path, err)
		return apperr.Wrap(apperr.Unavailable, "POKEAPI_ERROR", "Failed to fetch data from PokeAPI", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("PokeAPI - Unexpected status %d for '%s'", resp.StatusCode, path)
		return apperr.New(apperr.Unavailable, "POKEAPI_ERROR",
			fmt.Sprintf("Failed to fetch data from PokeAPI (status %d)", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.Unavailable, "POKEAPI_ERROR", "Failed to decode PokeAPI response", err)
	}
	return nil
}
