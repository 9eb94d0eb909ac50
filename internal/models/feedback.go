package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxRating is the top of the rating scale; ratings equal to it count as
// five-star reviews in the badge metrics.
const MaxRating = 5

// SessionFeedback is a learner's rating of a completed session.
// One row per (schedule, learner).
type SessionFeedback struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	ScheduleID string   `gorm:"uniqueIndex:idx_feedback_schedule_learner;type:text;not null" json:"scheduleId"`
	Schedule   Schedule `gorm:"foreignKey:ScheduleID" json:"-"`
	LearnerID  string   `gorm:"uniqueIndex:idx_feedback_schedule_learner;type:text;not null" json:"learnerId"`
	MentorID   string   `gorm:"index;type:text;not null" json:"mentorId"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..MaxRating
	Comment string `gorm:"type:text" json:"comment"`
}

func (sf *SessionFeedback) BeforeCreate(tx *gorm.DB) (err error) {
	if sf.ID == "" {
		sf.ID = uuid.New().String()
	}
	return
}

func (SessionFeedback) TableName() string {
	return "session_feedback"
}
