package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/services"
	"github.com/gin-gonic/gin"
)

// rankResponse shapes a LearnerRank with the derived progress fields the
// frontend renders (threshold of the current tier, sessions remaining).
func rankResponse(rank *models.LearnerRank) gin.H {
	response := gin.H{
		"learnerId":     rank.LearnerID,
		"rank":          rank.Rank,
		"totalSessions": rank.TotalSessions,
		"progress":      rank.Progress,
		"isTerminal":    rank.Rank.IsTerminal(),
	}

	if required, ok := rank.RequiredSessions(); ok {
		response["requiredSessions"] = required
		response["sessionsToNextRank"] = rank.SessionsToNextRank()
		next, _ := rank.Rank.Next()
		response["nextRank"] = next
	}

	return response
}

// GetMyRank returns the caller's rank progression state
func GetMyRank(c *gin.Context) {
	userID := c.GetString("userId")

	rank, err := services.GetLearnerRank(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rank"})
		return
	}

	c.JSON(http.StatusOK, rankResponse(rank))
}

// GetLearnerRankByID returns any learner's rank (public profile view)
func GetLearnerRankByID(c *gin.Context) {
	learnerID := c.Param("id")

	var user models.User
	if err := database.DB.First(&user, "id = ?", learnerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Learner not found"})
		return
	}

	rank, err := services.GetLearnerRank(learnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rank"})
		return
	}

	c.JSON(http.StatusOK, rankResponse(rank))
}

// ListBadgeCatalog returns the full badge catalog with display metadata.
// The catalog only changes on deploy, so it caches aggressively.
func ListBadgeCatalog(c *gin.Context) {
	cacheKey := "badges:catalog"

	var cached []models.Badge
	if err := database.CacheGet(cacheKey, &cached); err == nil && len(cached) > 0 {
		c.JSON(http.StatusOK, gin.H{"badges": cached})
		return
	}

	var badges []models.Badge
	if err := database.DB.Order("category, key").Find(&badges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badge catalog"})
		return
	}

	database.CacheSet(cacheKey, badges, time.Hour)

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// GetMentorBadgeList returns the badges a mentor holds
func GetMentorBadgeList(c *gin.Context) {
	mentorID := c.Param("id")

	cacheKey := "badges:mentor:" + mentorID
	var cached []models.MentorBadge
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"badges": cached})
		return
	}

	var profile models.MentorProfile
	if err := database.DB.First(&profile, "id = ?", mentorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
		return
	}

	badges, err := services.GetMentorBadges(mentorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badges"})
		return
	}

	database.CacheSet(cacheKey, badges, 5*time.Minute)

	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// RecheckMyBadges forces a synchronous badge pass for the calling mentor
func RecheckMyBadges(c *gin.Context) {
	userID := c.GetString("userId")

	var profile models.MentorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor profile not found"})
		return
	}

	result, err := services.AwardMentorBadges(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Badge evaluation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"awarded":    result.Awarded,
		"alreadyHad": result.AlreadyHad,
	})
}

// GetLeaderboard returns the top learners by total qualifying sessions
func GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	entries, err := services.GetLeaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
