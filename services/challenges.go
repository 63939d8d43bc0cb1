package services

import (
	"hash/fnv"
	"math/rand"
	"strings"
	"sync"
	"time"

	"arkalia-engine/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// dailyChallengeCount is how many pool entries are active on a given day.
const dailyChallengeCount = 4

const dateLayout = "2006-01-02"

// DailyChallengeScheduler owns the daily challenge catalog. The catalog is
// derived deterministically from the UTC calendar date, so it needs no
// coordination between processes; each player's record carries the date its
// progress belongs to and is reset lazily the first time it is touched on a
// new day. A process restart therefore never re-runs a reset that already
// happened for that date.
type DailyChallengeScheduler struct {
	mu          sync.Mutex
	store       PlayerStore
	tracker     *ProgressionTracker
	catalog     []models.ChallengeDefinition
	catalogDate string
	log         zerolog.Logger
	now         func() time.Time
}

func NewDailyChallengeScheduler(store PlayerStore, tracker *ProgressionTracker, log zerolog.Logger) *DailyChallengeScheduler {
	s := &DailyChallengeScheduler{
		store:   store,
		tracker: tracker,
		log:     log.With().Str("component", "daily_challenges").Logger(),
		now:     time.Now,
	}
	tracker.SetScheduler(s)
	return s
}

// catalogForDate picks dailyChallengeCount pool entries with a PRNG seeded
// from the date string, so every process derives the same catalog for the
// same day without coordination.
func catalogForDate(date string) []models.ChallengeDefinition {
	pool := models.ChallengePool()
	h := fnv.New64a()
	h.Write([]byte(date))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := dailyChallengeCount
	if n > len(pool) {
		n = len(pool)
	}
	catalog := pool[:n]
	for i := range catalog {
		catalog[i].Active = true
	}
	return catalog
}

// todaysCatalogLocked returns today's UTC date and catalog, regenerating the
// memo when the date has rolled over. Caller holds s.mu.
func (s *DailyChallengeScheduler) todaysCatalogLocked() (string, []models.ChallengeDefinition) {
	today := s.now().UTC().Format(dateLayout)
	if today != s.catalogDate {
		s.catalog = catalogForDate(today)
		s.catalogDate = today
		s.log.Info().Str("date", today).Int("challenges", len(s.catalog)).Msg("daily challenge catalog regenerated")
	}
	return today, s.catalog
}

// syncDailyStateLocked aligns the record's challenge progress with today's
// catalog. A record stamped with an older date gets zeroed entries exactly
// once; the new stamp persists with the record, so it survives restarts. A
// record already on today's date only has missing entries added and stale
// ids pruned. Caller holds s.mu.
func (s *DailyChallengeScheduler) syncDailyStateLocked(rec *models.PlayerRecord) {
	today, catalog := s.todaysCatalogLocked()
	if rec.ChallengeDate != today {
		rec.ChallengeDate = today
		fresh := make(map[string]*models.ChallengeProgress, len(catalog))
		for _, def := range catalog {
			fresh[def.ID] = &models.ChallengeProgress{}
		}
		rec.DailyChallenges = fresh
		return
	}

	if rec.DailyChallenges == nil {
		rec.DailyChallenges = map[string]*models.ChallengeProgress{}
	}
	inCatalog := make(map[string]bool, len(catalog))
	for _, def := range catalog {
		inCatalog[def.ID] = true
		if _, ok := rec.DailyChallenges[def.ID]; !ok {
			rec.DailyChallenges[def.ID] = &models.ChallengeProgress{}
		}
	}
	for id := range rec.DailyChallenges {
		if !inCatalog[id] {
			delete(rec.DailyChallenges, id)
		}
	}
}

// noteProgress increments the record's counters for every active challenge
// matching the event and returns the definitions that just completed, as
// data, for the tracker to grant in a separate pass.
func (s *DailyChallengeScheduler) noteProgress(rec *models.PlayerRecord, eventType string, meta models.EventMeta) []models.ChallengeDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncDailyStateLocked(rec)

	var completed []models.ChallengeDefinition
	for _, def := range s.catalog {
		if !def.Active || def.EventType != eventType {
			continue
		}
		if def.CommandKeyword != "" && !strings.Contains(strings.ToLower(meta.Command), def.CommandKeyword) {
			continue
		}
		entry := rec.DailyChallenges[def.ID]
		if entry.Progress < def.Target {
			entry.Progress++
		}
		if entry.Progress >= def.Target && !entry.Completed {
			entry.Completed = true
			completed = append(completed, def)
		}
	}
	return completed
}

// RecordProgress applies a challenge-relevant event outside the tracker's
// normal event path, granting any completed rewards and persisting.
func (s *DailyChallengeScheduler) RecordProgress(playerID, eventType string, meta models.EventMeta) *ApplyResult {
	unlock := s.tracker.lockPlayer(playerID)
	defer unlock()

	rec := s.tracker.ensureRecord(playerID)
	res := &ApplyResult{Record: rec}

	grants := s.noteProgress(rec, eventType, meta)
	s.tracker.grantChallengeRewards(rec, grants, res)
	s.tracker.evaluateAchievements(rec, res)

	res.Persisted = s.store.Save(rec)
	return res
}

// ClaimReward marks every completed-but-unclaimed challenge claimed and
// returns how many were claimed. Calling it again immediately yields 0.
func (s *DailyChallengeScheduler) ClaimReward(playerID string) int {
	unlock := s.tracker.lockPlayer(playerID)
	defer unlock()

	rec := s.tracker.ensureRecord(playerID)
	s.mu.Lock()
	s.syncDailyStateLocked(rec)
	s.mu.Unlock()

	count := 0
	for _, entry := range rec.DailyChallenges {
		if entry.Completed && !entry.RewardClaimed {
			entry.RewardClaimed = true
			count++
		}
	}
	if count > 0 {
		if !s.store.Save(rec) {
			s.log.Warn().Str("player_id", playerID).Msg("reward claim not persisted")
		}
		s.log.Info().Str("player_id", playerID).Int("claimed", count).Msg("challenge rewards claimed")
	}
	return count
}

// ChallengeView pairs a catalog entry with a player's progress for display.
type ChallengeView struct {
	models.ChallengeDefinition
	Progress models.ChallengeProgress `json:"player_progress"`
}

// Challenges returns today's catalog with the player's progress.
func (s *DailyChallengeScheduler) Challenges(playerID string) []ChallengeView {
	unlock := s.tracker.lockPlayer(playerID)
	defer unlock()

	rec := s.tracker.ensureRecord(playerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncDailyStateLocked(rec)

	views := make([]ChallengeView, 0, len(s.catalog))
	for _, def := range s.catalog {
		view := ChallengeView{ChallengeDefinition: def}
		if entry, ok := rec.DailyChallenges[def.ID]; ok && entry != nil {
			view.Progress = *entry
		}
		views = append(views, view)
	}
	return views
}

// refreshCatalog rolls the catalog memo to the current date. Per-player
// progress is reset lazily when each record is next touched.
func (s *DailyChallengeScheduler) refreshCatalog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todaysCatalogLocked()
}

// StartDailyResetJob keeps the catalog memo fresh across UTC midnights. The
// hourly cadence is safe, the date guard makes extra runs no-ops. The caller
// owns the returned scheduler and shuts it down on exit; nil is returned
// when gocron could not be created.
func (s *DailyChallengeScheduler) StartDailyResetJob() gocron.Scheduler {
	sched, err := gocron.NewScheduler()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create challenge cron scheduler")
		return nil
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(s.refreshCatalog),
	); err != nil {
		s.log.Error().Err(err).Msg("failed to schedule catalog refresh job")
	}
	sched.Start()
	return sched
}
