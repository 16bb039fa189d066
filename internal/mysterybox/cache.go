package mysterybox

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dmartinezh/poketeams/internal/catalog"
)

const (
	// SnapshotTTL is how long a classified catalog snapshot is served
	// before the next call triggers a refresh.
	SnapshotTTL = 24 * time.Hour

	maxConcurrentFetches = 8
)

// CatalogAPI is the slice of the catalog client the cache depends on.
type CatalogAPI interface {
	ListPokemon(ctx context.Context, limit int) (*catalog.PokemonList, error)
	GetPokemon(ctx context.Context, name string) (*catalog.Pokemon, error)
}

// Snapshot is an immutable, wholesale-replaceable view of the catalog
// partitioned by rarity. Buckets partition Pokemons exactly: every item
// lands in the single bucket its weight classifies into.
type Snapshot struct {
	Pokemons  []catalog.Pokemon
	Buckets   map[Rarity][]catalog.Pokemon
	FetchedAt time.Time
}

// Cache holds the current snapshot and refreshes it on expiry. The
// clock and catalog client are injected so tests can drive both.
type Cache struct {
	api CatalogAPI
	ttl time.Duration
	now func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	snapshot *Snapshot
}

// NewCache creates a snapshot cache over the given catalog client.
func NewCache(api CatalogAPI) *Cache {
	return &Cache{
		api: api,
		ttl: SnapshotTTL,
		now: time.Now,
	}
}

func (c *Cache) current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Cache) valid(s *Snapshot) bool {
	return s != nil && c.now().Sub(s.FetchedAt) < c.ttl
}

// Snapshot returns the cached snapshot if it is still fresh, otherwise
// refreshes it. Concurrent refreshes collapse into a single fetch; all
// callers share its result. A failed refresh returns the error and
// leaves any previous snapshot in place.
func (c *Cache) Snapshot(ctx context.Context, limit int) (*Snapshot, error) {
	if s := c.current(); c.valid(s) {
		log.Printf("PokeAPI - Cache hit, returning %d cached pokemons (age: %d minutes)",
			len(s.Pokemons), int(c.now().Sub(s.FetchedAt).Minutes()))
		return s, nil
	}

	v, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		// Re-check under the flight: a refresh that completed while we
		// were queued already produced a fresh snapshot.
		if s := c.current(); c.valid(s) {
			return s, nil
		}
		return c.refresh(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// refresh builds a complete new snapshot off to the side and publishes
// it in one assignment, so readers never observe half-built buckets.
func (c *Cache) refresh(ctx context.Context, limit int) (*Snapshot, error) {
	log.Printf("PokeAPI - Cache miss, fetching %d pokemons from API", limit)

	list, err := c.api.ListPokemon(ctx, limit)
	if err != nil {
		return nil, err
	}

	pokemons := make([]catalog.Pokemon, len(list.Results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, ref := range list.Results {
		g.Go(func() error {
			p, err := c.api.GetPokemon(gctx, ref.Name)
			if err != nil {
				return err
			}
			pokemons[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Pokemons:  pokemons,
		Buckets:   bucketByRarity(pokemons),
		FetchedAt: c.now(),
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	log.Println("PokeAPI - Cache updated successfully with categorized rarity buckets")
	return snapshot, nil
}

func bucketByRarity(pokemons []catalog.Pokemon) map[Rarity][]catalog.Pokemon {
	buckets := make(map[Rarity][]catalog.Pokemon, len(rarityTable))
	for _, band := range rarityTable {
		buckets[band.Level] = []catalog.Pokemon{}
	}

	for _, p := range pokemons {
		rarity := ClassifyWeight(p.Weight)
		buckets[rarity] = append(buckets[rarity], p)
	}

	sizes := make([]string, 0, len(buckets))
	for _, band := range rarityTable {
		sizes = append(sizes, fmt.Sprintf("%s=%d", band.Level, len(buckets[band.Level])))
	}
	log.Printf("PokeAPI - Categorized pokemons: %s", strings.Join(sizes, ", "))

	return buckets
}
