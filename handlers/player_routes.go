// handlers/player_routes.go
package handlers

import (
	"strconv"

	"arkalia-engine/models"
	"arkalia-engine/services"

	"github.com/gofiber/fiber/v2"
)

// SetupPlayerRoutes exposes the engine as thin JSON routes. No game logic
// lives here; the command layer only renders engine results.
func SetupPlayerRoutes(app *fiber.App, engine *services.GameEngine, leaderboard *services.LeaderboardService, challenges *services.DailyChallengeScheduler) {
	app.Post("/player/:id/action", func(c *fiber.Ctx) error {
		playerID := c.Params("id")

		var req struct {
			Action   string           `json:"action"`
			Event    string           `json:"event"`
			Metadata models.EventMeta `json:"metadata"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.Event == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "event is required"})
		}

		result := engine.HandleAction(playerID, req.Action, req.Event, req.Metadata)
		return c.JSON(result)
	})

	app.Get("/player/:id/status", func(c *fiber.Ctx) error {
		rec := engine.Status(c.Params("id"))
		return c.JSON(fiber.Map{
			"player_id":      rec.PlayerID,
			"score":          rec.Score,
			"xp":             rec.XP,
			"level":          rec.Level,
			"coins":          rec.Coins,
			"badges":         rec.Badges,
			"achievements":   rec.AchievementsUnlocked,
			"zones_explored": rec.ZonesExplored,
			"skills":         rec.Skills,
			"relationship":   rec.Relationship,
			"stats": fiber.Map{
				"total_commands":       rec.TotalCommands,
				"total_luna_commands":  rec.TotalLunaCommands,
				"total_zones_explored": rec.TotalZonesExplored,
				"total_mini_games":     rec.TotalMiniGames,
			},
			"last_activity": rec.LastActivity,
		})
	})

	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		entries, err := leaderboard.Top(limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to build leaderboard", "cause": err.Error()})
		}
		return c.JSON(entries)
	})

	app.Get("/player/:id/challenges", func(c *fiber.Ctx) error {
		return c.JSON(challenges.Challenges(c.Params("id")))
	})

	app.Post("/player/:id/challenges/claim", func(c *fiber.Ctx) error {
		count := challenges.ClaimReward(c.Params("id"))
		return c.JSON(fiber.Map{"claimed": count})
	})
}
