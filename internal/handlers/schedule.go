package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/services"
	"github.com/gin-gonic/gin"
)

// CreateSchedule books a session with a mentor
func CreateSchedule(c *gin.Context) {
	learnerID := c.GetString("userId")

	var input struct {
		MentorID    string    `json:"mentorId" binding:"required"`
		Subject     string    `json:"subject" binding:"required"`
		Type        string    `json:"type"`
		ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
		DurationMin int       `json:"durationMin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var mentor models.MentorProfile
	if err := database.DB.Preload("User").First(&mentor, "id = ?", input.MentorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mentor not found"})
		return
	}

	if mentor.UserID == learnerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot book a session with yourself"})
		return
	}

	if input.ScheduledAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session must be scheduled in the future"})
		return
	}

	sessionType := models.SessionType(input.Type)
	if sessionType != models.SessionGroup {
		sessionType = models.SessionOneOnOne
	}

	durationMin := input.DurationMin
	if durationMin <= 0 || durationMin > 240 {
		durationMin = 60
	}

	schedule := models.Schedule{
		MentorID:    mentor.ID,
		LearnerID:   learnerID,
		Subject:     input.Subject,
		Type:        sessionType,
		Status:      models.ScheduleStatusPending,
		ScheduledAt: input.ScheduledAt,
		DurationMin: durationMin,
	}

	if err := database.DB.Create(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule"})
		return
	}

	notification := models.Notification{
		UserID:   mentor.UserID,
		ActorID:  learnerID,
		Type:     models.NotificationTypeSchedule,
		TargetID: schedule.ID,
		Message:  fmt.Sprintf("New %s session request for %s", schedule.Type, schedule.Subject),
	}
	database.DB.Create(&notification)

	services.LogActivity(learnerID, models.ActivitySessionBooked, schedule.ID, fmt.Sprintf("Booked a %s session", schedule.Subject))

	c.JSON(http.StatusCreated, gin.H{"schedule": schedule})
}

// ListMySchedules returns the caller's schedules, as learner or mentor
func ListMySchedules(c *gin.Context) {
	userID := c.GetString("userId")

	query := database.DB.Model(&models.Schedule{})

	var profile models.MentorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err == nil {
		query = query.Where("learner_id = ? OR mentor_id = ?", userID, profile.ID)
	} else {
		query = query.Where("learner_id = ?", userID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var schedules []models.Schedule
	if err := query.Order("scheduled_at desc").Limit(100).Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// ConfirmSchedule lets the mentor accept a pending booking
func ConfirmSchedule(c *gin.Context) {
	userID := c.GetString("userId")
	scheduleID := c.Param("id")

	var input struct {
		RoomURL string `json:"roomUrl"`
	}
	c.ShouldBindJSON(&input) // optional body

	var schedule models.Schedule
	if err := database.DB.Preload("Mentor").First(&schedule, "id = ?", scheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	if schedule.Mentor.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the mentor can confirm this session"})
		return
	}
	if schedule.Status != models.ScheduleStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending sessions can be confirmed"})
		return
	}

	schedule.Status = models.ScheduleStatusConfirmed
	schedule.RoomURL = input.RoomURL
	if err := database.DB.Save(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm schedule"})
		return
	}

	notification := models.Notification{
		UserID:   schedule.LearnerID,
		ActorID:  userID,
		Type:     models.NotificationTypeSchedule,
		TargetID: schedule.ID,
		Message:  fmt.Sprintf("Your %s session was confirmed", schedule.Subject),
	}
	database.DB.Create(&notification)

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// RescheduleSchedule moves a pending or confirmed session to a new time.
// A confirmed session drops back to pending until re-confirmed.
func RescheduleSchedule(c *gin.Context) {
	userID := c.GetString("userId")
	scheduleID := c.Param("id")

	var input struct {
		ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ScheduledAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session must be scheduled in the future"})
		return
	}

	var schedule models.Schedule
	if err := database.DB.Preload("Mentor").First(&schedule, "id = ?", scheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	if schedule.LearnerID != userID && schedule.Mentor.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your session"})
		return
	}
	if schedule.Status != models.ScheduleStatusPending && schedule.Status != models.ScheduleStatusConfirmed {
		c.JSON(http.StatusConflict, gin.H{"error": "This session can no longer be rescheduled"})
		return
	}

	schedule.ScheduledAt = input.ScheduledAt
	schedule.Status = models.ScheduleStatusPending
	if err := database.DB.Save(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reschedule"})
		return
	}

	otherParty := schedule.LearnerID
	if userID == schedule.LearnerID {
		otherParty = schedule.Mentor.UserID
	}
	notification := models.Notification{
		UserID:   otherParty,
		ActorID:  userID,
		Type:     models.NotificationTypeSchedule,
		TargetID: schedule.ID,
		Message:  fmt.Sprintf("Your %s session was rescheduled", schedule.Subject),
	}
	database.DB.Create(&notification)

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// CancelSchedule cancels a session; either party may cancel
func CancelSchedule(c *gin.Context) {
	userID := c.GetString("userId")
	scheduleID := c.Param("id")

	var schedule models.Schedule
	if err := database.DB.Preload("Mentor").First(&schedule, "id = ?", scheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	if schedule.LearnerID != userID && schedule.Mentor.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your session"})
		return
	}
	if schedule.Status == models.ScheduleStatusCompleted || schedule.Status == models.ScheduleStatusCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "This session can no longer be cancelled"})
		return
	}

	schedule.Status = models.ScheduleStatusCancelled
	if err := database.DB.Save(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel schedule"})
		return
	}

	otherParty := schedule.LearnerID
	if userID == schedule.LearnerID {
		otherParty = schedule.Mentor.UserID
	}
	notification := models.Notification{
		UserID:   otherParty,
		ActorID:  userID,
		Type:     models.NotificationTypeSchedule,
		TargetID: schedule.ID,
		Message:  fmt.Sprintf("Your %s session was cancelled", schedule.Subject),
	}
	database.DB.Create(&notification)

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// CompleteSchedule marks a confirmed session as held. Mentor only.
// Completion is what makes the session visible to the badge metrics,
// and unlocks feedback (which in turn drives rank progression).
func CompleteSchedule(c *gin.Context) {
	userID := c.GetString("userId")
	scheduleID := c.Param("id")

	var schedule models.Schedule
	if err := database.DB.Preload("Mentor").First(&schedule, "id = ?", scheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	if schedule.Mentor.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the mentor can complete this session"})
		return
	}
	if schedule.Status != models.ScheduleStatusConfirmed {
		c.JSON(http.StatusConflict, gin.H{"error": "Only confirmed sessions can be completed"})
		return
	}

	schedule.Status = models.ScheduleStatusCompleted
	if err := database.DB.Save(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete schedule"})
		return
	}

	notification := models.Notification{
		UserID:   schedule.LearnerID,
		ActorID:  userID,
		Type:     models.NotificationTypeSchedule,
		TargetID: schedule.ID,
		Message:  fmt.Sprintf("Your %s session is complete. Leave feedback to earn rank progress!", schedule.Subject),
	}
	database.DB.Create(&notification)

	services.LogActivity(userID, models.ActivitySessionCompleted, schedule.ID, fmt.Sprintf("Completed a %s session", schedule.Subject))

	// Session counts may have crossed an experience badge threshold
	services.CheckBadgesAsync(schedule.MentorID)

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}
