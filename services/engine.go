package services

import (
	"arkalia-engine/models"

	"github.com/rs/zerolog"
)

// ActionResult is the engine's contract with the command layer: everything
// it needs to render a response, plus the companion mood payload. Changed
// tells the caller whether the record moved; Persisted whether the write
// stuck (false means possibly-not-durable, retry or degrade).
type ActionResult struct {
	Success       bool               `json:"success"`
	Message       string             `json:"message"`
	PointsAwarded int                `json:"points_awarded"`
	BadgeGranted  string             `json:"badge_granted,omitempty"`
	LevelUp       bool               `json:"level_up"`
	Changed       bool               `json:"changed"`
	Persisted     bool               `json:"persisted"`
	Mood          models.MoodPayload `json:"mood"`
}

// GameEngine is the single entry point command handlers call: it applies
// the event through the progression tracker, then derives Luna's mood for
// the same action and record.
type GameEngine struct {
	tracker  *ProgressionTracker
	emotions *EmotionalFeedbackEngine
	store    PlayerStore
	log      zerolog.Logger
}

func NewGameEngine(tracker *ProgressionTracker, emotions *EmotionalFeedbackEngine, store PlayerStore, log zerolog.Logger) *GameEngine {
	return &GameEngine{
		tracker:  tracker,
		emotions: emotions,
		store:    store,
		log:      log.With().Str("component", "engine").Logger(),
	}
}

// HandleAction processes one player action end to end: progression event,
// achievements, daily challenges, then mood. The mood analysis mutates the
// record (relationship, history), so it is persisted once more afterwards.
// The whole cycle runs under the player's lock so concurrent actions on the
// same player cannot interleave between apply and save.
func (g *GameEngine) HandleAction(playerID, action, eventType string, meta models.EventMeta) *ActionResult {
	unlock := g.tracker.lockPlayer(playerID)
	defer unlock()

	applied := g.tracker.applyEventLocked(playerID, eventType, meta)

	badge := ""
	if len(applied.NewBadges) > 0 {
		badge = applied.NewBadges[0]
	}

	outcome := models.ActionOutcome{
		Success:  true,
		Points:   applied.PointsAwarded,
		Badge:    badge,
		Category: models.ActionCategory(meta.Category),
	}
	mood := g.emotions.Analyze(action, outcome, applied.Record)

	persisted := g.store.Save(applied.Record) && applied.Persisted

	return &ActionResult{
		Success:       true,
		Message:       mood.Message,
		PointsAwarded: applied.PointsAwarded,
		BadgeGranted:  badge,
		LevelUp:       applied.LevelUp,
		Changed:       true,
		Persisted:     persisted,
		Mood:          mood,
	}
}

// Status returns the player's record for display, creating the default view
// for unseen players.
func (g *GameEngine) Status(playerID string) *models.PlayerRecord {
	return g.tracker.Status(playerID)
}
