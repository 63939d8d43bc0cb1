package services

import (
	"testing"
	"time"

	"arkalia-engine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedLoadIsReadThrough(t *testing.T) {
	backing := newCountingStore()
	cached := NewCachedPlayerStore(backing, 300*time.Second)
	clock := newFakeClock(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	cached.cache.now = clock.Now

	require.True(t, cached.Save(models.NewPlayerRecord("p1")))

	// Save refreshed the cache, so loads never hit the backing store.
	for i := 0; i < 3; i++ {
		rec, err := cached.Load("p1")
		require.NoError(t, err)
		require.NotNil(t, rec)
	}
	assert.Equal(t, 0, backing.Loads())

	// After the TTL the entry expires and the next load goes through.
	clock.Advance(301 * time.Second)
	rec, err := cached.Load("p1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 1, backing.Loads())

	// The read-through load repopulated the cache.
	_, _ = cached.Load("p1")
	assert.Equal(t, 1, backing.Loads())
}

func TestCachedLoadOfUnseenPlayerReturnsNil(t *testing.T) {
	backing := newCountingStore()
	cached := NewCachedPlayerStore(backing, time.Minute)

	rec, err := cached.Load("ghost")
	require.NoError(t, err)
	assert.Nil(t, rec)

	// Misses are not cached: the store is asked again.
	_, _ = cached.Load("ghost")
	assert.Equal(t, 2, backing.Loads())
}

func TestSaveFailsClosed(t *testing.T) {
	backing := newCountingStore()
	cached := NewCachedPlayerStore(backing, time.Minute)

	assert.False(t, cached.Save(nil))
	assert.False(t, cached.Save(&models.PlayerRecord{}))

	rec := models.NewPlayerRecord("p1")
	require.True(t, cached.Save(rec))

	backing.FailSaves = true
	assert.False(t, cached.Save(rec))

	// The failed write invalidated the cache entry, so the next load asks
	// the backing store instead of serving a possibly stale copy.
	before := backing.Loads()
	_, _ = cached.Load("p1")
	assert.Equal(t, before+1, backing.Loads())
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryPlayerStore()

	rec, err := store.Load("p1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	saved := models.NewPlayerRecord("p1")
	saved.Score = 42
	require.True(t, store.Save(saved))
	assert.NotEmpty(t, saved.ID)

	rec, err = store.Load("p1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 42, rec.Score)

	all, err := store.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
