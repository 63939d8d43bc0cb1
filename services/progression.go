package services

import (
	"math"
	"strings"
	"sync"
	"time"

	"arkalia-engine/models"

	"github.com/rs/zerolog"
)

// Level curve: level = floor(sqrt(xp/BaseXPPerLevel)) + 1, clamped to
// MaxLevel. This is the single source of truth for level derivation; every
// place that displays or compares levels goes through LevelForXP.
const (
	BaseXPPerLevel = 100
	MaxLevel       = 50
)

// LevelForXP derives a level from accumulated XP.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := int(math.Sqrt(float64(xp)/float64(BaseXPPerLevel))) + 1
	if level > MaxLevel {
		level = MaxLevel
	}
	return level
}

// ZoneUnlock gates a zone behind a level threshold.
type ZoneUnlock struct {
	Level int
	Zone  string
}

// ZoneUnlocks lists level-gated zones in ascending threshold order.
var ZoneUnlocks = []ZoneUnlock{
	{Level: 2, Zone: "arkalia_forest"},
	{Level: 3, Zone: "arkalia_caves"},
	{Level: 5, Zone: "arkalia_labs"},
	{Level: 8, Zone: "arkalia_core"},
}

// LunaKeyword marks companion-AI commands inside command_used events.
const LunaKeyword = "luna"

// AchievementBonusPoints is the fixed score bonus granted once per unlocked
// achievement, on top of its badge.
const AchievementBonusPoints = 50

// ApplyResult is returned by ApplyEvent. Persisted is false when the store
// rejected the write; the in-memory record still reflects the mutation
// (at-least-once semantics, the caller decides whether to retry).
type ApplyResult struct {
	Record               *models.PlayerRecord `json:"record"`
	LevelUp              bool                 `json:"level_up"`
	Persisted            bool                 `json:"persisted"`
	PointsAwarded        int                  `json:"points_awarded"`
	NewZones             []string             `json:"new_zones,omitempty"`
	NewBadges            []string             `json:"new_badges,omitempty"`
	AchievementsUnlocked []string             `json:"achievements_unlocked,omitempty"`
	ChallengesCompleted  []string             `json:"challenges_completed,omitempty"`
}

// ProgressionTracker applies game events to player records, derives levels,
// unlocks zones and achievements, and persists through the PlayerStore.
// Every load-mutate-save cycle for a player runs under that player's lock,
// so concurrent events on the same player serialize and none is lost.
type ProgressionTracker struct {
	store     PlayerStore
	scheduler *DailyChallengeScheduler
	log       zerolog.Logger
	now       func() time.Time

	locksMu     sync.Mutex
	playerLocks map[string]*sync.Mutex
}

func NewProgressionTracker(store PlayerStore, log zerolog.Logger) *ProgressionTracker {
	return &ProgressionTracker{
		store:       store,
		log:         log.With().Str("component", "progression").Logger(),
		now:         time.Now,
		playerLocks: map[string]*sync.Mutex{},
	}
}

// lockPlayer acquires the per-player mutex and returns its release func.
// Records handed out by the cached store are shared pointers, so everything
// that mutates or reads a record for consistency goes through this.
func (t *ProgressionTracker) lockPlayer(playerID string) func() {
	t.locksMu.Lock()
	l, ok := t.playerLocks[playerID]
	if !ok {
		l = &sync.Mutex{}
		t.playerLocks[playerID] = l
	}
	t.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

// SetScheduler wires the daily challenge scheduler. Done after construction
// because scheduler and tracker reference each other.
func (t *ProgressionTracker) SetScheduler(s *DailyChallengeScheduler) {
	t.scheduler = s
}

// ensureRecord loads the player's record, materializing a default one for a
// first-seen id. An unknown player is never an error.
func (t *ProgressionTracker) ensureRecord(playerID string) *models.PlayerRecord {
	rec, err := t.store.Load(playerID)
	if err != nil {
		t.log.Error().Err(err).Str("player_id", playerID).Msg("load failed, starting from default record")
	}
	if rec == nil {
		rec = models.NewPlayerRecord(playerID)
	}
	// Maps in JSONB columns can come back nil from older rows.
	if rec.Skills == nil {
		rec.Skills = map[string]map[string]int{}
	}
	if rec.MiniGames == nil {
		rec.MiniGames = map[string]time.Time{}
	}
	if rec.DailyChallenges == nil {
		rec.DailyChallenges = map[string]*models.ChallengeProgress{}
	}
	return rec
}

// ApplyEvent applies one game event to the player's record, records daily
// challenge progress, re-evaluates achievements and persists the result.
func (t *ProgressionTracker) ApplyEvent(playerID, eventType string, meta models.EventMeta) *ApplyResult {
	unlock := t.lockPlayer(playerID)
	defer unlock()
	return t.applyEventLocked(playerID, eventType, meta)
}

// applyEventLocked is ApplyEvent's body. Caller holds the player's lock.
func (t *ProgressionTracker) applyEventLocked(playerID, eventType string, meta models.EventMeta) *ApplyResult {
	rec := t.ensureRecord(playerID)
	res := &ApplyResult{Record: rec}

	t.applyCore(rec, eventType, meta, res)

	// Challenge progress is driven by genuine player events only; the
	// reward grants below bypass it so a completion can never re-trigger
	// progress recording for the same event.
	if t.scheduler != nil {
		grants := t.scheduler.noteProgress(rec, eventType, meta)
		t.grantChallengeRewards(rec, grants, res)
	}

	t.evaluateAchievements(rec, res)

	rec.LastActivity = t.now()
	res.Persisted = t.store.Save(rec)
	if !res.Persisted {
		t.log.Warn().Str("player_id", playerID).Str("event", eventType).Msg("event applied but not persisted")
	}

	t.log.Debug().
		Str("player_id", playerID).
		Str("event", eventType).
		Int("score", rec.Score).
		Int("level", rec.Level).
		Bool("level_up", res.LevelUp).
		Msg("event applied")
	return res
}

// applyCore mutates the record for a single event. Invariants (non-negative
// xp/score/coins, set uniqueness) are enforced here by clamping, never by
// raising.
func (t *ProgressionTracker) applyCore(rec *models.PlayerRecord, eventType string, meta models.EventMeta, res *ApplyResult) {
	switch eventType {
	case models.EventCommandUsed:
		rec.TotalCommands++
		if strings.Contains(strings.ToLower(meta.Command), LunaKeyword) {
			rec.TotalLunaCommands++
		}

	case models.EventZoneExplored:
		if rec.ZonesExplored.Add(meta.Zone) {
			rec.TotalZonesExplored++
		}

	case models.EventMiniGameCompleted:
		if meta.Game != "" {
			rec.MiniGames[meta.Game] = t.now()
		}
		rec.TotalMiniGames++

	case models.EventScoreEarned:
		t.addPoints(rec, meta.Points, res)

	case models.EventCoinsEarned:
		rec.Coins += meta.Coins
		if rec.Coins < 0 {
			rec.Coins = 0
		}

	case models.EventBadgeEarned:
		if rec.Badges.Add(meta.Badge) {
			res.NewBadges = append(res.NewBadges, meta.Badge)
		}

	case models.EventSkillUpgrade:
		rec.XP -= meta.XPCost
		if rec.XP < 0 {
			rec.XP = 0
		}
		if meta.Category != "" && meta.Skill != "" {
			if rec.Skills[meta.Category] == nil {
				rec.Skills[meta.Category] = map[string]int{}
			}
			rec.Skills[meta.Category][meta.Skill] = meta.NewLevel
		}
		rec.Level = LevelForXP(rec.XP)

	default:
		t.log.Warn().Str("event", eventType).Msg("ignoring unknown event type")
	}
}

// addPoints adds to score and xp, re-derives the level and unlocks any
// zones gated by newly reached levels.
func (t *ProgressionTracker) addPoints(rec *models.PlayerRecord, points int, res *ApplyResult) {
	rec.Score += points
	if rec.Score < 0 {
		rec.Score = 0
	}
	rec.XP += points
	if rec.XP < 0 {
		rec.XP = 0
	}
	res.PointsAwarded += points

	oldLevel := rec.Level
	rec.Level = LevelForXP(rec.XP)
	if rec.Level <= oldLevel {
		return
	}
	res.LevelUp = true
	for _, unlock := range ZoneUnlocks {
		if rec.Level >= unlock.Level && rec.ZonesExplored.Add(unlock.Zone) {
			res.NewZones = append(res.NewZones, unlock.Zone)
		}
	}
	t.log.Info().
		Str("player_id", rec.PlayerID).
		Int("level", rec.Level).
		Strs("new_zones", res.NewZones).
		Msg("level up")
}

// grantChallengeRewards applies completed-challenge rewards as plain reward
// events. It never re-enters challenge progress recording.
func (t *ProgressionTracker) grantChallengeRewards(rec *models.PlayerRecord, grants []models.ChallengeDefinition, res *ApplyResult) {
	for _, def := range grants {
		if def.RewardXP > 0 {
			t.applyCore(rec, models.EventScoreEarned, models.EventMeta{Points: def.RewardXP}, res)
		}
		if def.RewardCoins > 0 {
			t.applyCore(rec, models.EventCoinsEarned, models.EventMeta{Coins: def.RewardCoins}, res)
		}
		if def.RewardBadge != "" {
			t.applyCore(rec, models.EventBadgeEarned, models.EventMeta{Badge: def.RewardBadge}, res)
		}
		res.ChallengesCompleted = append(res.ChallengesCompleted, def.ID)
		t.log.Info().Str("player_id", rec.PlayerID).Str("challenge", def.ID).Msg("daily challenge completed")
	}
}

// Status returns the player's current record, the default view for an
// unseen id.
func (t *ProgressionTracker) Status(playerID string) *models.PlayerRecord {
	unlock := t.lockPlayer(playerID)
	defer unlock()
	return t.ensureRecord(playerID)
}
