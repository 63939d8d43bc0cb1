package models

// Game event types consumed by the progression tracker. Keep these stable
// because persisted challenge definitions reference them.
const (
	EventCommandUsed       = "command_used"
	EventZoneExplored      = "zone_explored"
	EventMiniGameCompleted = "mini_game_completed"
	EventScoreEarned       = "score_earned"
	EventCoinsEarned       = "coins_earned"
	EventBadgeEarned       = "badge_earned"
	EventSkillUpgrade      = "skill_upgrade"
)

// EventMeta carries the optional payload of a game event. Zero values are
// valid: a missing field means "nothing to apply" rather than an error.
type EventMeta struct {
	Command  string `json:"command,omitempty"`
	Zone     string `json:"zone,omitempty"`
	Game     string `json:"game,omitempty"`
	Badge    string `json:"badge,omitempty"`
	Points   int    `json:"points,omitempty"`
	Coins    int    `json:"coins,omitempty"`
	XPCost   int    `json:"xp_cost,omitempty"`
	Category string `json:"category,omitempty"`
	Skill    string `json:"skill,omitempty"`
	NewLevel int    `json:"new_level,omitempty"`
}
