package models

import "github.com/gosimple/slug"

// ChallengeDefinition is one entry of the daily challenge catalog. The
// catalog is regenerated each UTC day from ChallengePool.
type ChallengeDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EventType   string `json:"event_type"`
	Target      int    `json:"target"`
	RewardXP    int    `json:"reward_xp"`
	RewardCoins int    `json:"reward_coins"`
	RewardBadge string `json:"reward_badge,omitempty"`
	Active      bool   `json:"active"`

	// CommandKeyword restricts command_used matching to commands whose name
	// contains the keyword. Empty matches any command.
	CommandKeyword string `json:"command_keyword,omitempty"`
}

// ChallengeProgress is a player's per-day state for one challenge.
type ChallengeProgress struct {
	Progress      int  `json:"progress"`
	Completed     bool `json:"completed"`
	RewardClaimed bool `json:"reward_claimed"`
	Notified      bool `json:"notified"`
}

// ChallengePool is the fixed pool the daily catalog draws from. Keep names
// stable because challenge ids are derived from them and clients may store
// the ids.
func ChallengePool() []ChallengeDefinition {
	defs := []ChallengeDefinition{
		{
			Name:        "Explorateur du jour",
			Description: "Explore 2 new zones of Arkalia",
			EventType:   EventZoneExplored,
			Target:      2,
			RewardXP:    60,
			RewardCoins: 25,
		},
		{
			Name:        "Marathon de commandes",
			Description: "Run 10 terminal commands",
			EventType:   EventCommandUsed,
			Target:      10,
			RewardXP:    40,
			RewardCoins: 15,
		},
		{
			Name:        "Maitre des mini-jeux",
			Description: "Finish 2 mini-games",
			EventType:   EventMiniGameCompleted,
			Target:      2,
			RewardXP:    70,
			RewardCoins: 30,
		},
		{
			Name:        "Moisson de points",
			Description: "Score points 3 times",
			EventType:   EventScoreEarned,
			Target:      3,
			RewardXP:    50,
			RewardCoins: 20,
		},
		{
			Name:           "Complice de Luna",
			Description:    "Talk with Luna 5 times",
			EventType:      EventCommandUsed,
			Target:         5,
			RewardXP:       45,
			RewardCoins:    20,
			RewardBadge:    slug.Make("Complice de Luna"),
			CommandKeyword: "luna",
		},
		{
			Name:        "Collectionneur",
			Description: "Earn a new badge",
			EventType:   EventBadgeEarned,
			Target:      1,
			RewardXP:    80,
			RewardCoins: 35,
		},
		{
			Name:        "Chercheur d'or",
			Description: "Collect coins twice",
			EventType:   EventCoinsEarned,
			Target:      2,
			RewardXP:    35,
			RewardCoins: 40,
		},
		{
			Name:        "Artisan de competences",
			Description: "Upgrade one skill",
			EventType:   EventSkillUpgrade,
			Target:      1,
			RewardXP:    55,
			RewardCoins: 25,
		},
	}
	for i := range defs {
		defs[i].ID = slug.Make(defs[i].Name)
	}
	return defs
}
