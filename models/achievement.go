package models

// Achievement is a named milestone with a pure unlock predicate and a
// one-time reward (badge plus a fixed score bonus granted by the tracker).
type Achievement struct {
	ID          string
	Name        string
	Description string
	Badge       string
	Check       func(*PlayerRecord) bool
}

// AchievementCatalog is the static list of achievements evaluated after
// every event. Predicates are side-effect free; the tracker applies rewards.
var AchievementCatalog = []Achievement{
	{
		ID:          "premiers-pas",
		Name:        "Premiers pas",
		Description: "Run your first command",
		Badge:       "premiers-pas",
		Check:       func(r *PlayerRecord) bool { return r.TotalCommands >= 1 },
	},
	{
		ID:          "centurion",
		Name:        "Centurion",
		Description: "Run 100 commands",
		Badge:       "centurion",
		Check:       func(r *PlayerRecord) bool { return r.TotalCommands >= 100 },
	},
	{
		ID:          "ami-de-luna",
		Name:        "Ami de Luna",
		Description: "Talk with Luna 10 times",
		Badge:       "ami-de-luna",
		Check:       func(r *PlayerRecord) bool { return r.TotalLunaCommands >= 10 },
	},
	{
		ID:          "cartographe",
		Name:        "Cartographe",
		Description: "Explore 3 zones",
		Badge:       "cartographe",
		Check:       func(r *PlayerRecord) bool { return len(r.ZonesExplored) >= 3 },
	},
	{
		ID:          "joueur-assidu",
		Name:        "Joueur assidu",
		Description: "Finish 5 mini-games",
		Badge:       "joueur-assidu",
		Check:       func(r *PlayerRecord) bool { return r.TotalMiniGames >= 5 },
	},
	{
		ID:          "niveau-5",
		Name:        "Hacker confirme",
		Description: "Reach level 5",
		Badge:       "hacker-confirme",
		Check:       func(r *PlayerRecord) bool { return r.Level >= 5 },
	},
	{
		ID:          "fortune",
		Name:        "Fortune",
		Description: "Hold 500 coins",
		Badge:       "fortune",
		Check:       func(r *PlayerRecord) bool { return r.Coins >= 500 },
	},
	{
		ID:          "collectionneur-de-badges",
		Name:        "Collectionneur de badges",
		Description: "Earn 5 badges",
		Badge:       "collectionneur-de-badges",
		Check:       func(r *PlayerRecord) bool { return len(r.Badges) >= 5 },
	},
}
