package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CordovaPaulo/mindmate-backend-go/internal/database"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/models"
	"github.com/CordovaPaulo/mindmate-backend-go/internal/seeds"
	"github.com/CordovaPaulo/mindmate-backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB() {
	logger.Init("development")
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.MentorProfile{},
		&models.LearnerProfile{},
		&models.Schedule{},
		&models.SessionFeedback{},
		&models.ForumPost{},
		&models.ForumComment{},
		&models.Badge{},
		&models.MentorBadge{},
		&models.LearnerRank{},
		&models.UserActivity{},
		&models.Notification{},
	)
}

// seedFeedbackFixture creates a mentor, a learner interested in Calculus,
// and one schedule between them.
func seedFeedbackFixture(suffix string, status models.ScheduleStatus) (models.MentorProfile, models.User, models.Schedule) {
	mentorUser := models.User{
		ID:       "fb_mentor_user_" + suffix,
		Name:     "Mentor",
		Username: "fb_mentor_" + suffix,
		Email:    "fb_mentor_" + suffix + "@example.com",
		Role:     models.RoleMentor,
	}
	database.DB.Create(&mentorUser)

	mentor := models.MentorProfile{
		ID:       "fb_mentor_" + suffix,
		UserID:   mentorUser.ID,
		Subjects: pq.StringArray{"Calculus"},
	}
	database.DB.Create(&mentor)

	learner := models.User{
		ID:       "fb_learner_" + suffix,
		Name:     "Learner",
		Username: "fb_learner_" + suffix,
		Email:    "fb_learner_" + suffix + "@example.com",
		Role:     models.RoleLearner,
	}
	database.DB.Create(&learner)
	database.DB.Create(&models.LearnerProfile{
		UserID:             learner.ID,
		SubjectsOfInterest: pq.StringArray{"Calculus"},
	})

	schedule := models.Schedule{
		ID:          "fb_schedule_" + suffix,
		MentorID:    mentor.ID,
		LearnerID:   learner.ID,
		Subject:     "Calculus",
		Type:        models.SessionOneOnOne,
		Status:      status,
		ScheduledAt: time.Now().Add(-time.Hour),
		DurationMin: 60,
	}
	database.DB.Create(&schedule)

	return mentor, learner, schedule
}

func postFeedback(userID string, body gin.H) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	payload, _ := json.Marshal(body)
	c.Request, _ = http.NewRequest("POST", "/api/feedback", bytes.NewBuffer(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userId", userID)

	CreateFeedback(c)
	return w
}

func TestCreateFeedback_HappyPathDrivesBothEngines(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seeds.SeedBadges()

	mentor, learner, schedule := seedFeedbackFixture("happy", models.ScheduleStatusCompleted)

	w := postFeedback(learner.ID, gin.H{
		"scheduleId": schedule.ID,
		"rating":     5,
		"comment":    "Great session!",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Feedback  models.SessionFeedback `json:"feedback"`
		Rank      *models.LearnerRank    `json:"rank"`
		NewBadges []models.MentorBadge   `json:"newBadges"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	assert.Equal(t, 5, response.Feedback.Rating)
	assert.Equal(t, mentor.ID, response.Feedback.MentorID)

	// Qualifying subject: rank progressed
	assert.NotNil(t, response.Rank)
	assert.Equal(t, 1, response.Rank.TotalSessions)
	assert.Equal(t, models.InitialRank, response.Rank.Rank)

	// Mentor's first completed+rated session earns first_session
	badgeKeys := []string{}
	for _, b := range response.NewBadges {
		badgeKeys = append(badgeKeys, b.BadgeKey)
	}
	assert.Contains(t, badgeKeys, "first_session")

	// Mentor was notified about the rating
	var notification models.Notification
	err := database.DB.First(&notification, "user_id = ? AND type = ?", mentor.UserID, models.NotificationTypeFeedback).Error
	assert.NoError(t, err)
}

func TestCreateFeedback_NonQualifyingSubjectSkipsRank(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seeds.SeedBadges()

	_, learner, schedule := seedFeedbackFixture("offtopic", models.ScheduleStatusCompleted)

	// The session subject is outside the learner's declared interests
	database.DB.Model(&models.Schedule{}).Where("id = ?", schedule.ID).Update("subject", "Pottery")

	w := postFeedback(learner.ID, gin.H{
		"scheduleId": schedule.ID,
		"rating":     4,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	database.DB.Model(&models.LearnerRank{}).Where("learner_id = ?", learner.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateFeedback_RejectsIncompleteSession(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	_, learner, schedule := seedFeedbackFixture("pending", models.ScheduleStatusConfirmed)

	w := postFeedback(learner.ID, gin.H{
		"scheduleId": schedule.ID,
		"rating":     5,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateFeedback_RejectsDuplicate(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	seeds.SeedBadges()

	_, learner, schedule := seedFeedbackFixture("dupe", models.ScheduleStatusCompleted)

	w := postFeedback(learner.ID, gin.H{"scheduleId": schedule.ID, "rating": 5})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postFeedback(learner.ID, gin.H{"scheduleId": schedule.ID, "rating": 3})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateFeedback_RejectsOutOfRangeRating(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	_, learner, schedule := seedFeedbackFixture("range", models.ScheduleStatusCompleted)

	w := postFeedback(learner.ID, gin.H{"scheduleId": schedule.ID, "rating": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postFeedback(learner.ID, gin.H{"scheduleId": schedule.ID, "rating": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFeedback_RejectsOtherLearnersSession(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	_, _, schedule := seedFeedbackFixture("stranger", models.ScheduleStatusCompleted)

	intruder := models.User{ID: "fb_intruder", Username: "fb_intruder", Email: "fb_intruder@example.com"}
	database.DB.Create(&intruder)

	w := postFeedback(intruder.ID, gin.H{"scheduleId": schedule.ID, "rating": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
