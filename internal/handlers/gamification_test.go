package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/seeds"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetMyRank_NewLearnerGetsDefaults(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/ranks/me", nil)
	c.Set("userId", "rank_fresh")

	GetMyRank(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Rank               models.RankTier `json:"rank"`
		TotalSessions      int             `json:"totalSessions"`
		Progress           int             `json:"progress"`
		RequiredSessions   int             `json:"requiredSessions"`
		SessionsToNextRank int             `json:"sessionsToNextRank"`
		NextRank           models.RankTier `json:"nextRank"`
		IsTerminal         bool            `json:"isTerminal"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Equal(t, models.InitialRank, response.Rank)
	assert.Equal(t, 0, response.TotalSessions)
	assert.Equal(t, 5, response.RequiredSessions)
	assert.Equal(t, 5, response.SessionsToNextRank)
	assert.Equal(t, models.RankBeginnerII, response.NextRank)
	assert.False(t, response.IsTerminal)
}

func TestGetMyRank_AfterProgress(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "rank_prog", Username: "rank_prog", Email: "rank_prog@example.com"})
	_, err := services.AddSessions("rank_prog", 7)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/ranks/me", nil)
	c.Set("userId", "rank_prog")

	GetMyRank(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Rank               models.RankTier `json:"rank"`
		Progress           int             `json:"progress"`
		SessionsToNextRank int             `json:"sessionsToNextRank"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	// 7 sessions: promoted at 5, carrying 2 toward Beginner II's 7
	assert.Equal(t, models.RankBeginnerII, response.Rank)
	assert.Equal(t, 2, response.Progress)
	assert.Equal(t, 5, response.SessionsToNextRank)
}

func TestListBadgeCatalog_ReturnsSeededBadges(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seeds.SeedBadges()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/api/badges", nil)

	ListBadgeCatalog(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Badges []models.Badge `json:"badges"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Len(t, response.Badges, len(seeds.BadgeCatalog()))

	keys := map[string]bool{}
	for _, b := range response.Badges {
		keys[b.Key] = true
		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Category)
	}
	assert.True(t, keys["first_session"])
	assert.True(t, keys["verified_mentor"])
}
