package services

import (
	"math/rand"
	"testing"
	"time"

	"arkalia-engine/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(at time.Time) *EmotionalFeedbackEngine {
	e := NewEmotionalFeedbackEngine(zerolog.Nop())
	e.rng = rand.New(rand.NewSource(1))
	clock := newFakeClock(at)
	e.now = clock.Now
	return e
}

func noonEngine() *EmotionalFeedbackEngine {
	return newTestEngine(time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC))
}

func TestClassifyAction(t *testing.T) {
	cases := []struct {
		action   string
		category models.ActionCategory
	}{
		{"hack_system", models.CategorySuccess}, // success list wins over "hack"
		{"kill_virus", models.CategorySuccess},
		{"erreur_fatale", models.CategoryFailure},
		{"cmd_aide", models.CategoryExploration},
		{"profil", models.CategoryExploration},
		{"decode_portail", models.CategoryHacking},
		{"meteo", models.CategoryGeneral},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.category, classifyAction(tc.action), tc.action)
	}
}

func TestExplicitCategoryWinsOverKeywords(t *testing.T) {
	e := noonEngine()
	rec := models.NewPlayerRecord("p1")
	rec.Relationship = 0.5

	payload := e.Analyze("hack_system", models.ActionOutcome{Category: models.CategoryFailure}, rec)

	assert.InDelta(t, -0.05, payload.RelationshipDelta, 1e-9)
	assert.InDelta(t, 0.45, rec.Relationship, 1e-9)
	assert.Contains(t, categoryEmotions[models.CategoryFailure], payload.Emotion)
}

func TestIntensityContributionsAndClamp(t *testing.T) {
	e := noonEngine()

	payload := e.Analyze("decode_portail", models.ActionOutcome{Points: 60, Badge: "fortune"}, models.NewPlayerRecord("p1"))
	// 0.5 base + 0.3 points + 0.2 badge + 0.2 hacking, clamped.
	assert.InDelta(t, 1.0, payload.Intensity, 1e-9)

	payload = e.Analyze("hack_system", models.ActionOutcome{Points: 10}, models.NewPlayerRecord("p2"))
	// 0.5 base + 0.1 success.
	assert.InDelta(t, 0.6, payload.Intensity, 1e-9)
}

func TestRelationshipStaysClamped(t *testing.T) {
	e := noonEngine()
	rec := models.NewPlayerRecord("p1")

	for i := 0; i < 30; i++ {
		payload := e.Analyze("decode_portail", models.ActionOutcome{}, rec)
		assert.GreaterOrEqual(t, payload.Intensity, 0.0)
		assert.LessOrEqual(t, payload.Intensity, 1.0)
		assert.GreaterOrEqual(t, rec.Relationship, 0.0)
		assert.LessOrEqual(t, rec.Relationship, 1.0)
	}
	assert.InDelta(t, 1.0, rec.Relationship, 1e-9)

	for i := 0; i < 40; i++ {
		e.Analyze("erreur_fatale", models.ActionOutcome{Category: models.CategoryFailure}, rec)
	}
	assert.InDelta(t, 0.0, rec.Relationship, 1e-9)
}

func TestHistoryIsBounded(t *testing.T) {
	e := noonEngine()
	rec := models.NewPlayerRecord("p1")

	for i := 0; i < models.MaxEmotionHistory+10; i++ {
		e.Analyze("cmd_aide", models.ActionOutcome{}, rec)
	}
	require.Len(t, rec.EmotionHistory, models.MaxEmotionHistory)
	assert.Equal(t, "cmd_aide", rec.EmotionHistory[0].Context)
}

func TestGeneralFallsBackToTimeOfDay(t *testing.T) {
	cases := []struct {
		hour    int
		emotion models.Emotion
	}{
		{23, models.EmotionMysterious},
		{3, models.EmotionMysterious},
		{8, models.EmotionEnergetic},
		{14, models.EmotionCalm},
		{21, models.EmotionCalm},
	}
	for _, tc := range cases {
		e := newTestEngine(time.Date(2026, 8, 29, tc.hour, 0, 0, 0, time.UTC))
		payload := e.Analyze("meteo", models.ActionOutcome{}, models.NewPlayerRecord("p1"))
		assert.Equal(t, tc.emotion, payload.Emotion, "hour %d", tc.hour)
	}
}

func TestSuccessEmotionComesFromCandidateSet(t *testing.T) {
	e := noonEngine()
	for i := 0; i < 20; i++ {
		payload := e.Analyze("kill_virus", models.ActionOutcome{}, models.NewPlayerRecord("p1"))
		assert.Contains(t, categoryEmotions[models.CategorySuccess], payload.Emotion)
	}
}

func TestMessageSuffixes(t *testing.T) {
	e := noonEngine()
	payload := e.Analyze("hack_system", models.ActionOutcome{Points: 150, Badge: "premiers-pas"}, models.NewPlayerRecord("p1"))

	assert.Contains(t, payload.Message, "+150 points!")
	assert.Contains(t, payload.Message, "New badge: Premiers Pas!")
	assert.NotEmpty(t, payload.Cue.Color)
	assert.NotEmpty(t, payload.Cue.Sound)
}
