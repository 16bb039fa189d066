package mysterybox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmartinezh/poketeams/internal/catalog"
	"github.com/dmartinezh/poketeams/pkg/apperr"
)

func mon(name string, weight float64) catalog.Pokemon {
	return catalog.Pokemon{Name: name, Weight: weight}
}

func snapshotWith(buckets map[Rarity][]catalog.Pokemon) *Snapshot {
	full := make(map[Rarity][]catalog.Pokemon)
	for _, r := range Rarities() {
		full[r] = nil
	}
	for r, b := range buckets {
		full[r] = b
	}
	return &Snapshot{Buckets: full}
}

func fixedAllocator(r float64, idx int) *Allocator {
	return &Allocator{
		randFloat: func() float64 { return r },
		randIntn:  func(n int) int { return idx % n },
	}
}

func TestPickSelectsTierByCumulativeProbability(t *testing.T) {
	snap := snapshotWith(map[Rarity][]catalog.Pokemon{
		RarityCommon:    {mon("rattata", 35)},
		RarityUncommon:  {mon("pikachu", 60)},
		RarityRare:      {mon("onix", 2100)},
		RarityEpic:      {mon("snorlax", 4600)},
		RarityLegendary: {mon("mewtwo", 1220)},
	})

	tests := []struct {
		name string
		r    float64
		want Rarity
	}{
		{"r inside common band", 0.10, RarityCommon},
		{"r at common boundary", 0.50, RarityCommon},
		{"r inside uncommon band", 0.60, RarityUncommon},
		{"r inside rare band", 0.80, RarityRare},
		{"r inside epic band", 0.95, RarityEpic},
		{"r inside legendary band", 0.999, RarityLegendary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rarity, err := fixedAllocator(tt.r, 0).pick(snap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rarity)
		})
	}
}

func TestPickFallsBackToCommonWhenTierEmpty(t *testing.T) {
	snap := snapshotWith(map[Rarity][]catalog.Pokemon{
		RarityCommon: {mon("rattata", 35), mon("pidgey", 18)},
		// legendary bucket intentionally empty
	})

	p, rarity, err := fixedAllocator(0.999, 0).pick(snap)
	require.NoError(t, err)
	assert.Equal(t, RarityCommon, rarity)
	assert.Equal(t, "rattata", p.Name)
}

func TestPickFailsWhenCommonFallbackEmpty(t *testing.T) {
	snap := snapshotWith(nil)

	_, _, err := fixedAllocator(0.999, 0).pick(snap)
	require.Error(t, err)

	e, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, "NO_POKEMON_AVAILABLE", e.Code)
	assert.Equal(t, apperr.Internal, e.Kind)
}

func TestPickFloatingPointDriftFallsBackToCommon(t *testing.T) {
	snap := snapshotWith(map[Rarity][]catalog.Pokemon{
		RarityCommon: {mon("rattata", 35)},
	})

	// A drawn value above the cumulative sum of every tier must take
	// the common fallback path rather than fail.
	_, rarity, err := fixedAllocator(1.0, 0).pick(snap)
	require.NoError(t, err)
	assert.Equal(t, RarityCommon, rarity)
}

func TestPickSelectsByIndexWithinBucket(t *testing.T) {
	snap := snapshotWith(map[Rarity][]catalog.Pokemon{
		RarityCommon: {mon("rattata", 35), mon("pidgey", 18), mon("caterpie", 29)},
	})

	p, _, err := fixedAllocator(0.10, 2).pick(snap)
	require.NoError(t, err)
	assert.Equal(t, "caterpie", p.Name)
}

func TestNeverSelectsFromEmptyTier(t *testing.T) {
	snap := snapshotWith(map[Rarity][]catalog.Pokemon{
		RarityCommon: {mon("rattata", 35)},
		RarityRare:   {},
	})

	// r lands in the rare band on every draw; the result must always
	// come from common since rare is empty.
	for i := 0; i < 10; i++ {
		p, rarity, err := fixedAllocator(0.80, i).pick(snap)
		require.NoError(t, err)
		assert.Equal(t, RarityCommon, rarity)
		assert.Equal(t, "rattata", p.Name)
	}
}
