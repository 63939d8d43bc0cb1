package models

import (
	"time"

	"gorm.io/gorm"
)

// StartZone is unlocked for every new player.
const StartZone = "arkalia_base"

// StringSet is a JSONB-backed set of unique strings (badges, zones,
// achievement ids). Order of insertion is preserved.
type StringSet []string

// Has reports whether v is in the set.
func (s StringSet) Has(v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// Add inserts v and reports whether it was newly added.
func (s *StringSet) Add(v string) bool {
	if v == "" || s.Has(v) {
		return false
	}
	*s = append(*s, v)
	return true
}

// PlayerRecord tracks gamified progression for each player (denormalized for
// performance, one row per player). Sets and maps live in JSONB columns.
type PlayerRecord struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PlayerID string `gorm:"uniqueIndex;not null" json:"player_id"`

	// Core progression
	Score int `json:"score" gorm:"default:0"`
	XP    int `json:"xp" gorm:"default:0"`
	Level int `json:"level" gorm:"default:1"`
	Coins int `json:"coins" gorm:"default:0"`

	Badges               StringSet                     `json:"badges" gorm:"type:jsonb;serializer:json"`
	AchievementsUnlocked StringSet                     `json:"achievements_unlocked" gorm:"type:jsonb;serializer:json"`
	ZonesExplored        StringSet                     `json:"zones_explored" gorm:"type:jsonb;serializer:json"`
	Skills               map[string]map[string]int     `json:"skills" gorm:"type:jsonb;serializer:json"`
	MiniGames            map[string]time.Time          `json:"mini_games" gorm:"type:jsonb;serializer:json"`
	DailyChallenges      map[string]*ChallengeProgress `json:"daily_challenges" gorm:"type:jsonb;serializer:json"`

	// ChallengeDate is the UTC day (2006-01-02) DailyChallenges belongs to.
	// Progress is reset lazily when it differs from today, and the stamp is
	// persisted with the record, so a restart never repeats a reset.
	ChallengeDate string `json:"challenge_date"`

	// Activity counters
	TotalCommands      int64 `json:"total_commands" gorm:"default:0"`
	TotalLunaCommands  int64 `json:"total_luna_commands" gorm:"default:0"`
	TotalZonesExplored int64 `json:"total_zones_explored" gorm:"default:0"`
	TotalMiniGames     int64 `json:"total_mini_games" gorm:"default:0"`

	// Companion state, one per player
	Relationship   float64        `json:"relationship" gorm:"default:0"`
	CurrentEmotion string         `json:"current_emotion"`
	EmotionHistory []EmotionEvent `json:"emotion_history" gorm:"type:jsonb;serializer:json"`

	LastActivity time.Time `json:"last_activity"`

	Timestamps
}

// Timestamps adds GORM auto-times.
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// NewPlayerRecord returns a default record for a first-seen player: all
// counters at zero, level 1, the start zone unlocked.
func NewPlayerRecord(playerID string) *PlayerRecord {
	return &PlayerRecord{
		PlayerID:             playerID,
		Level:                1,
		Badges:               StringSet{},
		AchievementsUnlocked: StringSet{},
		ZonesExplored:        StringSet{StartZone},
		Skills:               map[string]map[string]int{},
		MiniGames:            map[string]time.Time{},
		DailyChallenges:      map[string]*ChallengeProgress{},
		EmotionHistory:       []EmotionEvent{},
	}
}
