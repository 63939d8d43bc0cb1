package models

import "time"

// Emotion is a mood tag for the Luna companion.
type Emotion string

const (
	EmotionExcited    Emotion = "excited"
	EmotionProud      Emotion = "proud"
	EmotionSurprised  Emotion = "surprised"
	EmotionCurious    Emotion = "curious"
	EmotionPlayful    Emotion = "playful"
	EmotionFocused    Emotion = "focused"
	EmotionDetermined Emotion = "determined"
	EmotionWorried    Emotion = "worried"
	EmotionMysterious Emotion = "mysterious"
	EmotionEnergetic  Emotion = "energetic"
	EmotionCalm       Emotion = "calm"
)

// ActionCategory classifies a player action for the feedback engine.
type ActionCategory string

const (
	CategorySuccess     ActionCategory = "success"
	CategoryFailure     ActionCategory = "failure"
	CategoryExploration ActionCategory = "exploration"
	CategoryHacking     ActionCategory = "hacking"
	CategoryGeneral     ActionCategory = "general"
)

// ActionOutcome is what the command layer reports about an executed action.
// Category, when set at the command's definition site, takes precedence over
// keyword classification of the action name.
type ActionOutcome struct {
	Success  bool           `json:"success"`
	Points   int            `json:"points"`
	Badge    string         `json:"badge,omitempty"`
	Category ActionCategory `json:"category,omitempty"`
}

// EmotionCue holds the presentation identifiers attached to an emotion.
type EmotionCue struct {
	Color  string `json:"color"`
	Sound  string `json:"sound"`
	Effect string `json:"effect"`
}

var emotionCues = map[Emotion]EmotionCue{
	EmotionExcited:    {Color: "#ff4ff8", Sound: "sfx_sparkle", Effect: "pulse"},
	EmotionProud:      {Color: "#ffd700", Sound: "sfx_fanfare", Effect: "glow"},
	EmotionSurprised:  {Color: "#00e5ff", Sound: "sfx_pop", Effect: "blink"},
	EmotionCurious:    {Color: "#7fffd4", Sound: "sfx_chime", Effect: "tilt"},
	EmotionPlayful:    {Color: "#ff9f43", Sound: "sfx_boing", Effect: "bounce"},
	EmotionFocused:    {Color: "#00ff41", Sound: "sfx_keys", Effect: "scanline"},
	EmotionDetermined: {Color: "#ff6b35", Sound: "sfx_drum", Effect: "steady"},
	EmotionWorried:    {Color: "#b39ddb", Sound: "sfx_low", Effect: "flicker"},
	EmotionMysterious: {Color: "#6a0dad", Sound: "sfx_whisper", Effect: "fade"},
	EmotionEnergetic:  {Color: "#ffe600", Sound: "sfx_zap", Effect: "shake"},
	EmotionCalm:       {Color: "#4fc3f7", Sound: "sfx_wave", Effect: "float"},
}

// CueFor returns the presentation cue for an emotion, falling back to the
// calm cue for unknown tags.
func CueFor(e Emotion) EmotionCue {
	if cue, ok := emotionCues[e]; ok {
		return cue
	}
	return emotionCues[EmotionCalm]
}

// EmotionEvent is one bounded-history entry of the companion state.
type EmotionEvent struct {
	Emotion   Emotion   `json:"emotion"`
	Intensity float64   `json:"intensity"`
	Timestamp time.Time `json:"timestamp"`
	Context   string    `json:"context"`
}

// MaxEmotionHistory caps the per-player emotion history length.
const MaxEmotionHistory = 50

// MoodPayload is the companion feedback attached to an action response.
type MoodPayload struct {
	Emotion           Emotion    `json:"emotion"`
	Intensity         float64    `json:"intensity"`
	Relationship      float64    `json:"relationship"`
	RelationshipDelta float64    `json:"relationship_delta"`
	Cue               EmotionCue `json:"cue"`
	Message           string     `json:"message"`
}
