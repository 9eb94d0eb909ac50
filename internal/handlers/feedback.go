package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/services"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

// CreateFeedback rates a completed session. This is the trigger for both
// engines: a qualifying session advances the learner's rank, and the
// mentor's badges are re-evaluated in the same request so the response can
// surface anything newly earned.
func CreateFeedback(c *gin.Context) {
	learnerID := c.GetString("userId")

	// 10 feedback submissions per minute per user
	allowed, err := database.CheckRateLimit("feedback:"+learnerID, 10, time.Minute)
	if err != nil {
		logger.Warn().Err(err).Msg("Rate limit check failed, allowing request")
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many feedback submissions. Please slow down."})
		return
	}

	var input struct {
		ScheduleID string `json:"scheduleId" binding:"required"`
		Rating     int    `json:"rating" binding:"required"`
		Comment    string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Rating < 1 || input.Rating > models.MaxRating {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Rating must be between 1 and %d", models.MaxRating)})
		return
	}

	// 1. The session must exist, belong to this learner, and be completed
	var schedule models.Schedule
	if err := database.DB.First(&schedule, "id = ?", input.ScheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if schedule.LearnerID != learnerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only rate your own sessions"})
		return
	}
	if schedule.Status != models.ScheduleStatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "You can only rate completed sessions"})
		return
	}

	// 2. One feedback per (session, learner)
	var count int64
	database.DB.Model(&models.SessionFeedback{}).
		Where("schedule_id = ? AND learner_id = ?", input.ScheduleID, learnerID).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You already rated this session"})
		return
	}

	feedback := models.SessionFeedback{
		ScheduleID: schedule.ID,
		LearnerID:  learnerID,
		MentorID:   schedule.MentorID,
		Rating:     input.Rating,
		Comment:    utils.TruncateString(utils.SanitizeHTML(input.Comment), 2000),
	}
	if err := database.DB.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	services.LogActivity(learnerID, models.ActivityFeedbackGiven, schedule.ID, fmt.Sprintf("Rated a %s session %d/%d", schedule.Subject, input.Rating, models.MaxRating))

	response := gin.H{"feedback": feedback}

	// 3. Rank progression: the session counts when its subject is one the
	// learner declared an interest in
	var learnerProfile models.LearnerProfile
	if err := database.DB.First(&learnerProfile, "user_id = ?", learnerID).Error; err == nil && learnerProfile.InterestedIn(schedule.Subject) {
		rank, err := services.AddSessions(learnerID, 1)
		if err != nil {
			logger.Warn().Err(err).Str("learner", learnerID).Msg("Rank progression failed")
		} else {
			response["rank"] = rank
		}
	}

	// 4. Badge evaluation for the mentor, synchronous so the learner sees
	// what their rating just unlocked
	awarded, err := services.AwardMentorBadges(schedule.MentorID)
	if err != nil {
		logger.Warn().Err(err).Str("mentor", schedule.MentorID).Msg("Badge evaluation failed")
	} else {
		response["newBadges"] = awarded.Awarded
	}

	// Tell the mentor they got rated
	var mentor models.MentorProfile
	if err := database.DB.First(&mentor, "id = ?", schedule.MentorID).Error; err == nil {
		notification := models.Notification{
			UserID:   mentor.UserID,
			ActorID:  learnerID,
			Type:     models.NotificationTypeFeedback,
			TargetID: schedule.ID,
			Message:  fmt.Sprintf("You received a %d-star rating for a %s session", input.Rating, schedule.Subject),
		}
		database.DB.Create(&notification)
	}

	c.JSON(http.StatusCreated, response)
}

// ListMentorFeedback returns ratings left for a mentor, newest first
func ListMentorFeedback(c *gin.Context) {
	mentorID := c.Param("id")

	var feedback []models.SessionFeedback
	if err := database.DB.Where("mentor_id = ?", mentorID).
		Order("created_at desc").
		Limit(50).
		Find(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
		return
	}

	var summary struct {
		AvgRating float64 `json:"avgRating"`
		Total     int64   `json:"total"`
	}
	database.DB.Model(&models.SessionFeedback{}).
		Where("mentor_id = ?", mentorID).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS total").
		Scan(&summary)

	c.JSON(http.StatusOK, gin.H{
		"feedback":  feedback,
		"avgRating": summary.AvgRating,
		"total":     summary.Total,
	})
}
