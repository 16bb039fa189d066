package mysterybox

import (
	"context"
	"log"
	"math/rand"

	"github.com/dmartinezh/poketeams/internal/catalog"
	"github.com/dmartinezh/poketeams/pkg/apperr"
)

// Allocator draws a random Pokémon across rarity tiers using the fixed
// probability table, falling back to the common bucket whenever the
// selected tier is empty.
type Allocator struct {
	cache *Cache

	// injected for deterministic tests
	randFloat func() float64
	randIntn  func(n int) int
}

// NewAllocator creates an allocator over the given snapshot cache.
func NewAllocator(cache *Cache) *Allocator {
	return &Allocator{
		cache:     cache,
		randFloat: rand.Float64,
		randIntn:  rand.Intn,
	}
}

// Draw selects one Pokémon and its rarity tier from the current catalog
// snapshot, refreshing the snapshot first if it has expired.
func (a *Allocator) Draw(ctx context.Context, limit int) (catalog.Pokemon, Rarity, error) {
	snapshot, err := a.cache.Snapshot(ctx, limit)
	if err != nil {
		return catalog.Pokemon{}, "", err
	}
	return a.pick(snapshot)
}

// pick walks the tiers in fixed order accumulating their probabilities
// and selects the first tier whose cumulative probability covers the
// drawn value. An empty tier falls back to common; a drawn value past
// the cumulative sum (floating-point drift) takes the same fallback.
func (a *Allocator) pick(snapshot *Snapshot) (catalog.Pokemon, Rarity, error) {
	r := a.randFloat()
	cumulative := 0.0

	for _, band := range rarityTable {
		cumulative += band.Probability
		if r > cumulative {
			continue
		}

		bucket := snapshot.Buckets[band.Level]
		if len(bucket) == 0 {
			log.Printf("Mystery Box - No pokemons available for rarity %s, selecting from common", band.Level)
			return a.pickCommon(snapshot)
		}

		selected := bucket[a.randIntn(len(bucket))]
		log.Printf("Mystery Box - Selected %s with %s rarity (weight: %v)", selected.Name, band.Level, selected.Weight)
		return selected, band.Level, nil
	}

	return a.pickCommon(snapshot)
}

func (a *Allocator) pickCommon(snapshot *Snapshot) (catalog.Pokemon, Rarity, error) {
	bucket := snapshot.Buckets[RarityCommon]
	if len(bucket) == 0 {
		return catalog.Pokemon{}, "", apperr.New(apperr.Internal, "NO_POKEMON_AVAILABLE",
			"No pokemons available in any rarity tier")
	}

	selected := bucket[a.randIntn(len(bucket))]
	log.Printf("Mystery Box - Selected %s with common rarity (weight: %v) [fallback]", selected.Name, selected.Weight)
	return selected, RarityCommon, nil
}
