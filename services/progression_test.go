package services

import (
	"sync"
	"testing"

	"arkalia-engine/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{150, 2},
		{399, 2},
		{400, 3},
		{900, 4},
		{2500, 6},
		{-50, 1},
		{100_000_000, MaxLevel},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForXP(tc.xp), "xp=%d", tc.xp)
	}
}

func TestScoreEarnedDerivesLevelAndUnlocksZones(t *testing.T) {
	tracker, _ := newTestTracker()

	res := tracker.ApplyEvent("p1", models.EventScoreEarned, models.EventMeta{Points: 150})

	require.True(t, res.Persisted)
	assert.Equal(t, 150, res.Record.XP)
	assert.Equal(t, 150, res.Record.Score)
	assert.Equal(t, 2, res.Record.Level)
	assert.True(t, res.LevelUp)
	assert.True(t, res.Record.ZonesExplored.Has(models.StartZone))
	assert.True(t, res.Record.ZonesExplored.Has("arkalia_forest"))
	assert.Contains(t, res.NewZones, "arkalia_forest")
	assert.False(t, res.Record.ZonesExplored.Has("arkalia_caves"))
}

func TestLevelIsNonDecreasingUnderScoreEvents(t *testing.T) {
	tracker, _ := newTestTracker()

	last := 1
	for _, points := range []int{10, 0, 250, 5, 1000, 0, 3, 700} {
		res := tracker.ApplyEvent("p1", models.EventScoreEarned, models.EventMeta{Points: points})
		assert.GreaterOrEqual(t, res.Record.Level, last)
		assert.Equal(t, LevelForXP(res.Record.XP), res.Record.Level)
		last = res.Record.Level
	}
}

func TestUnknownPlayerGetsDefaultRecord(t *testing.T) {
	tracker, store := newTestTracker()

	res := tracker.ApplyEvent("fresh", models.EventCommandUsed, models.EventMeta{Command: "aide"})

	assert.Equal(t, 1, res.Record.Level)
	assert.EqualValues(t, 1, res.Record.TotalCommands)
	assert.True(t, res.Record.ZonesExplored.Has(models.StartZone))

	saved, err := store.Load("fresh")
	require.NoError(t, err)
	require.NotNil(t, saved)
}

func TestCommandUsedCountsLunaCommands(t *testing.T) {
	tracker, _ := newTestTracker()

	tracker.ApplyEvent("p1", models.EventCommandUsed, models.EventMeta{Command: "luna_contact"})
	tracker.ApplyEvent("p1", models.EventCommandUsed, models.EventMeta{Command: "scanner"})
	res := tracker.ApplyEvent("p1", models.EventCommandUsed, models.EventMeta{Command: "LUNA_dance"})

	assert.EqualValues(t, 3, res.Record.TotalCommands)
	assert.EqualValues(t, 2, res.Record.TotalLunaCommands)
}

func TestZoneExploredIsIdempotentOnSet(t *testing.T) {
	tracker, _ := newTestTracker()

	tracker.ApplyEvent("p1", models.EventZoneExplored, models.EventMeta{Zone: "arkalia_forest"})
	res := tracker.ApplyEvent("p1", models.EventZoneExplored, models.EventMeta{Zone: "arkalia_forest"})

	count := 0
	for _, z := range res.Record.ZonesExplored {
		if z == "arkalia_forest" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.EqualValues(t, 1, res.Record.TotalZonesExplored)
}

func TestMissingMetadataDefaultsToZero(t *testing.T) {
	tracker, _ := newTestTracker()

	res := tracker.ApplyEvent("p1", models.EventScoreEarned, models.EventMeta{})
	assert.Equal(t, 0, res.Record.Score)

	res = tracker.ApplyEvent("p1", models.EventCoinsEarned, models.EventMeta{})
	assert.Equal(t, 0, res.Record.Coins)

	res = tracker.ApplyEvent("p1", models.EventBadgeEarned, models.EventMeta{})
	assert.Empty(t, res.Record.Badges)
}

func TestSkillUpgradeFloorsXPAndRederivesLevel(t *testing.T) {
	tracker, _ := newTestTracker()

	first := tracker.ApplyEvent("p1", models.EventScoreEarned, models.EventMeta{Points: 500})
	// 500 xp reaches level 3, unlocking forest and caves; three explored
	// zones satisfy the cartographe achievement and its 50 point bonus.
	require.Contains(t, first.AchievementsUnlocked, "cartographe")
	require.Equal(t, 550, first.Record.Score)

	res := tracker.ApplyEvent("p1", models.EventSkillUpgrade, models.EventMeta{
		XPCost:   900,
		Category: "hacking",
		Skill:    "decode",
		NewLevel: 2,
	})

	assert.Equal(t, 0, res.Record.XP)
	assert.Equal(t, 1, res.Record.Level)
	assert.Equal(t, 550, res.Record.Score) // score is untouched by upgrades
	assert.Equal(t, 2, res.Record.Skills["hacking"]["decode"])
}

func TestAchievementUnlockIsIdempotent(t *testing.T) {
	tracker, _ := newTestTracker()

	first := tracker.ApplyEvent("p1", models.EventCommandUsed, models.EventMeta{Command: "scan"})
	require.Contains(t, first.AchievementsUnlocked, "premiers-pas")
	assert.True(t, first.Record.Badges.Has("premiers-pas"))
	assert.Equal(t, AchievementBonusPoints, first.Record.Score)

	second := tracker.ApplyEvent("p1", models.EventCommandUsed, models.EventMeta{Command: "scan"})
	assert.Empty(t, second.AchievementsUnlocked)
	assert.Equal(t, AchievementBonusPoints, second.Record.Score)

	count := 0
	for _, b := range second.Record.Badges {
		if b == "premiers-pas" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestPersistenceFailureKeepsInMemoryMutation(t *testing.T) {
	tracker, store := newTestTracker()
	store.FailSaves = true

	res := tracker.ApplyEvent("p1", models.EventScoreEarned, models.EventMeta{Points: 120})

	assert.False(t, res.Persisted)
	assert.Equal(t, 120, res.Record.XP)
}

func TestCoinsNeverGoNegative(t *testing.T) {
	tracker, _ := newTestTracker()

	tracker.ApplyEvent("p1", models.EventCoinsEarned, models.EventMeta{Coins: 30})
	res := tracker.ApplyEvent("p1", models.EventCoinsEarned, models.EventMeta{Coins: -100})

	assert.Equal(t, 0, res.Record.Coins)
}

func TestConcurrentEventsOnOnePlayerLoseNothing(t *testing.T) {
	tracker, _ := newTestTracker()

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.ApplyEvent("p1", models.EventCommandUsed, models.EventMeta{Command: "scanner"})
			tracker.ApplyEvent("p1", models.EventScoreEarned, models.EventMeta{Points: 10})
		}()
	}
	wg.Wait()

	rec := tracker.Status("p1")
	assert.EqualValues(t, workers, rec.TotalCommands)
	// Every earned point lands exactly once, plus the one-time premiers-pas
	// achievement bonus.
	assert.Equal(t, workers*10+AchievementBonusPoints, rec.Score)
}
