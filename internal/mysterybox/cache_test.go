package mysterybox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmartinezh/poketeams/internal/catalog"
)

// fakeCatalog serves a fixed set of Pokémon and counts calls.
type fakeCatalog struct {
	pokemons  []catalog.Pokemon
	listErr   error
	detailErr error

	listCalls   atomic.Int32
	detailCalls atomic.Int32

	gate chan struct{} // when non-nil, ListPokemon blocks until closed
}

func (f *fakeCatalog) ListPokemon(ctx context.Context, limit int) (*catalog.PokemonList, error) {
	f.listCalls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	n := limit
	if n > len(f.pokemons) {
		n = len(f.pokemons)
	}
	refs := make([]catalog.NamedRef, n)
	for i := 0; i < n; i++ {
		refs[i] = catalog.NamedRef{Name: f.pokemons[i].Name}
	}
	return &catalog.PokemonList{Count: n, Results: refs}, nil
}

func (f *fakeCatalog) GetPokemon(ctx context.Context, name string) (*catalog.Pokemon, error) {
	f.detailCalls.Add(1)
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	for i := range f.pokemons {
		if f.pokemons[i].Name == name {
			p := f.pokemons[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("pokemon %s not found", name)
}

func testCache(api CatalogAPI, now *time.Time) *Cache {
	c := NewCache(api)
	c.now = func() time.Time { return *now }
	return c
}

func TestCacheFetchesAndBucketsOnMiss(t *testing.T) {
	fake := &fakeCatalog{pokemons: []catalog.Pokemon{
		{Name: "pidgey", Weight: 18},
		{Name: "pikachu", Weight: 60},
		{Name: "arcanine", Weight: 1550},
	}}
	now := time.Now()
	cache := testCache(fake, &now)

	snap, err := cache.Snapshot(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, snap.Pokemons, 3)

	assert.Len(t, snap.Buckets[RarityCommon], 2)
	assert.Len(t, snap.Buckets[RarityLegendary], 1)
	assert.Empty(t, snap.Buckets[RarityUncommon])
	assert.Empty(t, snap.Buckets[RarityRare])
	assert.Empty(t, snap.Buckets[RarityEpic])

	// Buckets partition the snapshot exactly.
	total := 0
	for _, bucket := range snap.Buckets {
		total += len(bucket)
	}
	assert.Equal(t, len(snap.Pokemons), total)

	assert.Equal(t, int32(1), fake.listCalls.Load())
	assert.Equal(t, int32(3), fake.detailCalls.Load())
}

func TestCacheServesSnapshotWithinTTL(t *testing.T) {
	fake := &fakeCatalog{pokemons: []catalog.Pokemon{{Name: "pidgey", Weight: 18}}}
	now := time.Now()
	cache := testCache(fake, &now)

	first, err := cache.Snapshot(context.Background(), 1)
	require.NoError(t, err)

	now = now.Add(SnapshotTTL - time.Minute)
	second, err := cache.Snapshot(context.Background(), 1)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), fake.listCalls.Load())
}

func TestCacheRefreshesAfterTTL(t *testing.T) {
	fake := &fakeCatalog{pokemons: []catalog.Pokemon{{Name: "pidgey", Weight: 18}}}
	now := time.Now()
	cache := testCache(fake, &now)

	first, err := cache.Snapshot(context.Background(), 1)
	require.NoError(t, err)

	now = now.Add(SnapshotTTL)
	second, err := cache.Snapshot(context.Background(), 1)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int32(2), fake.listCalls.Load())
}

func TestCacheFailedRefreshKeepsOldSnapshotAndReturnsError(t *testing.T) {
	fake := &fakeCatalog{pokemons: []catalog.Pokemon{{Name: "pidgey", Weight: 18}}}
	now := time.Now()
	cache := testCache(fake, &now)

	first, err := cache.Snapshot(context.Background(), 1)
	require.NoError(t, err)

	now = now.Add(SnapshotTTL + time.Minute)
	fake.listErr = errors.New("connection refused")

	_, err = cache.Snapshot(context.Background(), 1)
	require.Error(t, err)

	// The stale snapshot is still held; the next successful refresh
	// replaces it wholesale.
	assert.Same(t, first, cache.current())

	fake.listErr = nil
	second, err := cache.Snapshot(context.Background(), 1)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestCacheFailedDetailFetchFailsWholeRefresh(t *testing.T) {
	fake := &fakeCatalog{
		pokemons:  []catalog.Pokemon{{Name: "pidgey", Weight: 18}},
		detailErr: errors.New("timeout"),
	}
	now := time.Now()
	cache := testCache(fake, &now)

	_, err := cache.Snapshot(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, cache.current())
}

func TestCacheSingleFlightCollapsesConcurrentRefreshes(t *testing.T) {
	fake := &fakeCatalog{
		pokemons: []catalog.Pokemon{{Name: "pidgey", Weight: 18}},
		gate:     make(chan struct{}),
	}
	now := time.Now()
	cache := testCache(fake, &now)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*Snapshot, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Snapshot(context.Background(), 1)
		}(i)
	}

	// Give the callers time to pile onto the in-flight refresh, then
	// release it.
	time.Sleep(50 * time.Millisecond)
	close(fake.gate)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, int32(1), fake.listCalls.Load())
}
