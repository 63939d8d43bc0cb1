package services

import (
	"arkalia-engine/models"
)

// evaluateAchievements walks the catalog and unlocks every achievement whose
// predicate the record now satisfies. Rewards (badge + fixed score bonus)
// are collected first and applied in a second pass, so unlocking is a flat
// loop rather than a recursive event chain. Reward points can satisfy
// further achievements, hence the bounded fixpoint iteration.
func (t *ProgressionTracker) evaluateAchievements(rec *models.PlayerRecord, res *ApplyResult) {
	for pass := 0; pass < len(models.AchievementCatalog); pass++ {
		var pending []models.Achievement
		for _, a := range models.AchievementCatalog {
			if rec.AchievementsUnlocked.Has(a.ID) {
				continue
			}
			if a.Check(rec) {
				rec.AchievementsUnlocked.Add(a.ID)
				pending = append(pending, a)
			}
		}
		if len(pending) == 0 {
			return
		}
		for _, a := range pending {
			t.applyCore(rec, models.EventBadgeEarned, models.EventMeta{Badge: a.Badge}, res)
			t.applyCore(rec, models.EventScoreEarned, models.EventMeta{Points: AchievementBonusPoints}, res)
			res.AchievementsUnlocked = append(res.AchievementsUnlocked, a.ID)
			t.log.Info().Str("player_id", rec.PlayerID).Str("achievement", a.ID).Msg("achievement unlocked")
		}
	}
}
