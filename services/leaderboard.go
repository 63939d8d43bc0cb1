package services

import (
	"sort"

	"github.com/rs/zerolog"
)

// LeaderboardEntry is one row of the ranked player view.
type LeaderboardEntry struct {
	PlayerID   string `json:"player_id"`
	Score      int    `json:"score"`
	Level      int    `json:"level"`
	BadgeCount int    `json:"badge_count"`
}

// LeaderboardService produces a ranked, read-only view over player record
// snapshots.
type LeaderboardService struct {
	store PlayerStore
	log   zerolog.Logger
}

func NewLeaderboardService(store PlayerStore, log zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{store: store, log: log.With().Str("component", "leaderboard").Logger()}
}

// Top returns the first n players ordered by score descending, ties broken
// deterministically by player id ascending. n <= 0 yields an empty list.
func (s *LeaderboardService) Top(n int) ([]LeaderboardEntry, error) {
	if n <= 0 {
		return []LeaderboardEntry{}, nil
	}

	recs, err := s.store.All()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to snapshot players")
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, LeaderboardEntry{
			PlayerID:   rec.PlayerID,
			Score:      rec.Score,
			Level:      LevelForXP(rec.XP),
			BadgeCount: len(rec.Badges),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
