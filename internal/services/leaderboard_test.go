package services

import (
	"testing"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestGetLeaderboard_OrdersByTotalSessions(t *testing.T) {
	SetupTestDB()
	database.DB.Exec("DELETE FROM learner_ranks")
	InvalidateLeaderboardCache()

	users := []struct {
		id       string
		sessions int
	}{
		{"lb_bronze", 3},
		{"lb_gold", 21},
		{"lb_silver", 9},
	}
	for _, u := range users {
		database.DB.Create(&models.User{
			ID:       u.id,
			Name:     u.id,
			Username: u.id,
			Email:    u.id + "@example.com",
		})
		_, err := AddSessions(u.id, u.sessions)
		assert.NoError(t, err)
	}

	entries, err := GetLeaderboard(10)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)

	assert.Equal(t, "lb_gold", entries[0].LearnerID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 21, entries[0].TotalSessions)
	assert.Equal(t, models.RankIntermediateIII, entries[0].Rank)

	assert.Equal(t, "lb_silver", entries[1].LearnerID)
	assert.Equal(t, "lb_bronze", entries[2].LearnerID)
	assert.Equal(t, "lb_bronze", entries[2].Username)
}

func TestGetLeaderboard_CacheInvalidatedByRankUpdates(t *testing.T) {
	SetupTestDB()
	database.DB.Exec("DELETE FROM learner_ranks")
	InvalidateLeaderboardCache()

	database.DB.Create(&models.User{ID: "lb_cache", Name: "c", Username: "lb_cache", Email: "lb_cache@example.com"})
	_, err := AddSessions("lb_cache", 1)
	assert.NoError(t, err)

	entries, err := GetLeaderboard(1)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].TotalSessions)

	// AddSessions invalidates the cache, so the new total shows immediately
	_, err = AddSessions("lb_cache", 1)
	assert.NoError(t, err)

	entries, err = GetLeaderboard(1)
	assert.NoError(t, err)
	assert.Equal(t, 2, entries[0].TotalSessions)
}
