package handlers

import (
	"net/http"
	"strconv"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/gin-gonic/gin"
)

// ListRecentActivity returns the public activity feed
func ListRecentActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	var activities []models.UserActivity
	if err := database.DB.Preload("Actor").
		Order("created_at desc").
		Limit(limit).
		Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

// ListUserActivity returns one user's activity history
func ListUserActivity(c *gin.Context) {
	userID := c.Param("id")

	var activities []models.UserActivity
	if err := database.DB.Where("actor_id = ?", userID).
		Order("created_at desc").
		Limit(50).
		Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
