package services

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"arkalia-engine/models"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Keyword lists for classifying untagged action names. Order matters: the
// first matching category wins, so "hack_system" lands in success even
// though it also contains "hack".
var categoryKeywords = []struct {
	category models.ActionCategory
	keywords []string
}{
	{models.CategorySuccess, []string{"hack_system", "kill_virus", "save_pnj", "flash_success", "victoire"}},
	{models.CategoryFailure, []string{"error", "erreur", "fail", "echec", "timeout"}},
	{models.CategoryExploration, []string{"aide", "profil", "monde", "explore", "carte"}},
	{models.CategoryHacking, []string{"hack", "decode", "crack", "virus", "inject"}},
}

var categoryEmotions = map[models.ActionCategory][]models.Emotion{
	models.CategorySuccess:     {models.EmotionExcited, models.EmotionProud, models.EmotionSurprised},
	models.CategoryFailure:     {models.EmotionWorried, models.EmotionDetermined},
	models.CategoryExploration: {models.EmotionCurious, models.EmotionPlayful},
	models.CategoryHacking:     {models.EmotionFocused, models.EmotionDetermined, models.EmotionExcited},
}

var relationshipDeltas = map[models.ActionCategory]float64{
	models.CategorySuccess:     0.10,
	models.CategoryHacking:     0.15,
	models.CategoryExploration: 0.05,
	models.CategoryFailure:     -0.05,
	models.CategoryGeneral:     0,
}

var emotionPhrases = map[models.Emotion][]string{
	models.EmotionExcited:    {"Incroyable ! You nailed it!", "Yes! That was brilliant!", "Whoa, I can barely keep up with you!"},
	models.EmotionProud:      {"I knew you could do it.", "Look at you go. I'm proud of you.", "That's my hacker!"},
	models.EmotionSurprised:  {"Wait... you actually did it?!", "I did not see that coming!", "You keep surprising me."},
	models.EmotionCurious:    {"Ooh, what's over there?", "Interesting... tell me more.", "I wonder what we'll find next."},
	models.EmotionPlayful:    {"Race you to the next zone!", "Hehe, this is fun.", "Again, again!"},
	models.EmotionFocused:    {"Shh... I'm tracing the signal.", "Stay sharp. We're in.", "Almost through the firewall..."},
	models.EmotionDetermined: {"We're not giving up now.", "One more try. I believe in us.", "Let's crack this thing."},
	models.EmotionWorried:    {"Hmm, that didn't work...", "Careful, something feels off.", "Don't worry, we'll fix it."},
	models.EmotionMysterious: {"The night hides many secrets...", "Not everything is as it seems.", "Listen... do you hear that?"},
	models.EmotionEnergetic:  {"Good morning! Ready to hack the day?", "Let's gooo!", "I'm fully charged!"},
	models.EmotionCalm:       {"All systems quiet. Nice and steady.", "Take your time, I'm right here.", "A calm mind hacks best."},
}

// EmotionalFeedbackEngine derives Luna's mood for a player action. All
// per-player state (relationship, history) lives on the record passed in;
// the engine itself holds only its RNG and clock.
type EmotionalFeedbackEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
	log zerolog.Logger
}

func NewEmotionalFeedbackEngine(log zerolog.Logger) *EmotionalFeedbackEngine {
	return &EmotionalFeedbackEngine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
		log: log.With().Str("component", "emotion").Logger(),
	}
}

// Analyze classifies the action, picks an emotion, computes intensity and
// relationship delta, builds the message and appends to the record's
// bounded history. The record is mutated; the caller persists it.
func (e *EmotionalFeedbackEngine) Analyze(action string, outcome models.ActionOutcome, rec *models.PlayerRecord) models.MoodPayload {
	category := outcome.Category
	if category == "" {
		category = classifyAction(action)
	}

	emotion := e.pickEmotion(category)
	intensity := e.intensityFor(category, outcome)
	delta := relationshipDeltas[category]

	rec.Relationship = clamp01(rec.Relationship + delta)
	rec.CurrentEmotion = string(emotion)

	message := e.buildMessage(emotion, outcome)

	rec.EmotionHistory = append(rec.EmotionHistory, models.EmotionEvent{
		Emotion:   emotion,
		Intensity: intensity,
		Timestamp: e.now(),
		Context:   action,
	})
	if excess := len(rec.EmotionHistory) - models.MaxEmotionHistory; excess > 0 {
		rec.EmotionHistory = rec.EmotionHistory[excess:]
	}

	e.log.Debug().
		Str("player_id", rec.PlayerID).
		Str("action", action).
		Str("category", string(category)).
		Str("emotion", string(emotion)).
		Float64("intensity", intensity).
		Msg("mood derived")

	return models.MoodPayload{
		Emotion:           emotion,
		Intensity:         intensity,
		Relationship:      rec.Relationship,
		RelationshipDelta: delta,
		Cue:               models.CueFor(emotion),
		Message:           message,
	}
}

func classifyAction(action string) models.ActionCategory {
	lower := strings.ToLower(action)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return models.CategoryGeneral
}

// pickEmotion chooses uniformly among the category's candidates; general
// falls back to a time-of-day rule.
func (e *EmotionalFeedbackEngine) pickEmotion(category models.ActionCategory) models.Emotion {
	candidates, ok := categoryEmotions[category]
	if !ok || len(candidates) == 0 {
		return e.timeOfDayEmotion()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return candidates[e.rng.Intn(len(candidates))]
}

func (e *EmotionalFeedbackEngine) timeOfDayEmotion() models.Emotion {
	hour := e.now().Hour()
	switch {
	case hour < 6 || hour >= 22:
		return models.EmotionMysterious
	case hour < 12:
		return models.EmotionEnergetic
	default:
		return models.EmotionCalm
	}
}

// intensityFor starts from a 0.5 base and adds bounded contributions,
// clamped to [0,1].
func (e *EmotionalFeedbackEngine) intensityFor(category models.ActionCategory, outcome models.ActionOutcome) float64 {
	intensity := 0.5
	if outcome.Points > 50 {
		intensity += 0.3
	}
	if outcome.Badge != "" {
		intensity += 0.2
	}
	if category == models.CategoryHacking {
		intensity += 0.2
	}
	if category == models.CategorySuccess {
		intensity += 0.1
	}
	return clamp01(intensity)
}

func (e *EmotionalFeedbackEngine) buildMessage(emotion models.Emotion, outcome models.ActionOutcome) string {
	phrases := emotionPhrases[emotion]
	if len(phrases) == 0 {
		phrases = emotionPhrases[models.EmotionCalm]
	}
	e.mu.Lock()
	message := phrases[e.rng.Intn(len(phrases))]
	e.mu.Unlock()

	if outcome.Points > 100 {
		message += fmt.Sprintf(" +%d points!", outcome.Points)
	}
	if outcome.Badge != "" {
		message += fmt.Sprintf(" New badge: %s!", badgeDisplayName(outcome.Badge))
	}
	return message
}

// badgeDisplayName turns a badge slug into a display name. The caser is
// created per call because cases.Caser carries state and is not safe for
// concurrent reuse.
func badgeDisplayName(badge string) string {
	return cases.Title(language.French).String(strings.ReplaceAll(badge, "-", " "))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
