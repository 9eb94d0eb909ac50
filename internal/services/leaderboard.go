package services

import (
	"sync"
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
)

type LeaderboardEntry struct {
	Position      int             `json:"position"`
	LearnerID     string          `json:"learnerId"`
	Username      string          `json:"username"`
	Name          string          `json:"name"`
	Avatar        string          `json:"avatar"`
	Rank          models.RankTier `json:"rank"`
	TotalSessions int             `json:"totalSessions"`
}

// In-memory cache guarded by a RWMutex. The leaderboard is recomputed at most
// once per TTL; writes invalidate it eagerly.
type cachedLeaderboard struct {
	Entries   []LeaderboardEntry
	ExpiresAt time.Time
}

var (
	leaderboardCache *cachedLeaderboard
	lbMutex          sync.RWMutex
	lbTTL            = 30 * time.Second
)

// InvalidateLeaderboardCache clears the cache (call after rank updates)
func InvalidateLeaderboardCache() {
	lbMutex.Lock()
	defer lbMutex.Unlock()
	leaderboardCache = nil
}

// GetLeaderboard returns the top learners ordered by lifetime qualifying
// sessions. Tier and progress follow totals directly, so totals are the only
// sort key; earlier updates win ties.
func GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	lbMutex.RLock()
	if cached := leaderboardCache; cached != nil && time.Now().Before(cached.ExpiresAt) && len(cached.Entries) >= limit {
		entries := cached.Entries[:limit]
		lbMutex.RUnlock()
		return entries, nil
	}
	lbMutex.RUnlock()

	var ranks []models.LearnerRank
	if err := database.DB.Preload("Learner").
		Order("total_sessions desc, updated_at asc").
		Limit(100).
		Find(&ranks).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(ranks))
	for i, r := range ranks {
		entries = append(entries, LeaderboardEntry{
			Position:      i + 1,
			LearnerID:     r.LearnerID,
			Username:      r.Learner.Username,
			Name:          r.Learner.Name,
			Avatar:        r.Learner.Image,
			Rank:          r.Rank,
			TotalSessions: r.TotalSessions,
		})
	}

	lbMutex.Lock()
	leaderboardCache = &cachedLeaderboard{
		Entries:   entries,
		ExpiresAt: time.Now().Add(lbTTL),
	}
	lbMutex.Unlock()

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
