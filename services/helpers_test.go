package services

import (
	"sync"
	"time"

	"arkalia-engine/models"

	"github.com/rs/zerolog"
)

// fakeClock lets tests control time for cache TTLs, daily resets and the
// time-of-day emotion rule.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// countingStore counts backing loads so cache tests can assert hit/miss
// behavior.
type countingStore struct {
	*MemoryPlayerStore
	mu    sync.Mutex
	loads int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryPlayerStore: NewMemoryPlayerStore()}
}

func (s *countingStore) Load(playerID string) (*models.PlayerRecord, error) {
	s.mu.Lock()
	s.loads++
	s.mu.Unlock()
	return s.MemoryPlayerStore.Load(playerID)
}

func (s *countingStore) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func newTestTracker() (*ProgressionTracker, *MemoryPlayerStore) {
	store := NewMemoryPlayerStore()
	return NewProgressionTracker(store, zerolog.Nop()), store
}

// newTestScheduler wires a tracker and scheduler on a fixed clock with a
// hand-picked catalog, bypassing the daily regeneration.
func newTestScheduler(catalog []models.ChallengeDefinition, clock *fakeClock) (*DailyChallengeScheduler, *ProgressionTracker, *MemoryPlayerStore) {
	tracker, store := newTestTracker()
	tracker.now = clock.Now
	s := NewDailyChallengeScheduler(store, tracker, zerolog.Nop())
	s.now = clock.Now
	s.catalog = catalog
	s.catalogDate = clock.Now().UTC().Format(dateLayout)
	return s, tracker, store
}

// restartScheduler builds a fresh tracker and scheduler over an existing
// store, as a new process would after a restart, pinned to the same catalog.
func restartScheduler(store *MemoryPlayerStore, catalog []models.ChallengeDefinition, clock *fakeClock) (*DailyChallengeScheduler, *ProgressionTracker) {
	tracker := NewProgressionTracker(store, zerolog.Nop())
	tracker.now = clock.Now
	s := NewDailyChallengeScheduler(store, tracker, zerolog.Nop())
	s.now = clock.Now
	s.catalog = catalog
	s.catalogDate = clock.Now().UTC().Format(dateLayout)
	return s, tracker
}
