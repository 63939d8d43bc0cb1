package services

import (
	"errors"
	"sort"
	"sync"
	"time"

	"arkalia-engine/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const playerEntityType = "player"

// PlayerStore is the durable persistence contract for player records.
// Load returns (nil, nil) for an id that has never been saved; callers
// decide whether to materialize a default record. Save fails closed: it
// returns false instead of panicking or raising when the backing store is
// unreachable or the record is missing required fields.
type PlayerStore interface {
	Load(playerID string) (*models.PlayerRecord, error)
	Save(rec *models.PlayerRecord) bool
	All() ([]*models.PlayerRecord, error)
}

// GormPlayerStore persists player records in Postgres, one row per player.
type GormPlayerStore struct {
	DB  *gorm.DB
	log zerolog.Logger
}

func NewGormPlayerStore(db *gorm.DB, log zerolog.Logger) *GormPlayerStore {
	return &GormPlayerStore{DB: db, log: log.With().Str("component", "player_store").Logger()}
}

func (s *GormPlayerStore) Load(playerID string) (*models.PlayerRecord, error) {
	var rec models.PlayerRecord
	err := s.DB.Where("player_id = ?", playerID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *GormPlayerStore) Save(rec *models.PlayerRecord) bool {
	if rec == nil || rec.PlayerID == "" {
		s.log.Error().Msg("refusing to save player record without player id")
		return false
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := s.DB.Save(rec).Error; err != nil {
		s.log.Error().Err(err).Str("player_id", rec.PlayerID).Msg("failed to save player record")
		return false
	}
	return true
}

func (s *GormPlayerStore) All() ([]*models.PlayerRecord, error) {
	var recs []*models.PlayerRecord
	if err := s.DB.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// MemoryPlayerStore is an in-process PlayerStore used in tests and when no
// database is configured. FailSaves simulates an unreachable backing store.
type MemoryPlayerStore struct {
	mu        sync.RWMutex
	records   map[string]*models.PlayerRecord
	FailSaves bool
}

func NewMemoryPlayerStore() *MemoryPlayerStore {
	return &MemoryPlayerStore{records: make(map[string]*models.PlayerRecord)}
}

func (s *MemoryPlayerStore) Load(playerID string) (*models.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[playerID]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (s *MemoryPlayerStore) Save(rec *models.PlayerRecord) bool {
	if rec == nil || rec.PlayerID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves {
		return false
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	s.records[rec.PlayerID] = rec
	return true
}

func (s *MemoryPlayerStore) All() ([]*models.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]*models.PlayerRecord, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].PlayerID < recs[j].PlayerID })
	return recs, nil
}

// CachedPlayerStore is a read-through TTL cache in front of another
// PlayerStore. Writes refresh the cache entry synchronously; a failed write
// invalidates it so stale data is never served as fresh.
type CachedPlayerStore struct {
	backing PlayerStore
	cache   *recordCache
}

func NewCachedPlayerStore(backing PlayerStore, ttl time.Duration) *CachedPlayerStore {
	return &CachedPlayerStore{backing: backing, cache: newRecordCache(ttl)}
}

func (s *CachedPlayerStore) Load(playerID string) (*models.PlayerRecord, error) {
	if rec, ok := s.cache.Get(playerEntityType, playerID); ok {
		return rec, nil
	}
	rec, err := s.backing.Load(playerID)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		s.cache.Set(playerEntityType, playerID, rec)
	}
	return rec, nil
}

func (s *CachedPlayerStore) Save(rec *models.PlayerRecord) bool {
	if rec == nil || rec.PlayerID == "" {
		return false
	}
	if !s.backing.Save(rec) {
		s.cache.Delete(playerEntityType, rec.PlayerID)
		return false
	}
	s.cache.Set(playerEntityType, rec.PlayerID, rec)
	return true
}

func (s *CachedPlayerStore) All() ([]*models.PlayerRecord, error) {
	return s.backing.All()
}
