package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionType string

const (
	SessionOneOnOne SessionType = "ONE_ON_ONE"
	SessionGroup    SessionType = "GROUP"
)

type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "PENDING"
	ScheduleStatusConfirmed ScheduleStatus = "CONFIRMED"
	ScheduleStatusCompleted ScheduleStatus = "COMPLETED"
	ScheduleStatusCancelled ScheduleStatus = "CANCELLED"
)

// Schedule is a tutoring session between a mentor and a learner.
type Schedule struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	MentorID  string        `gorm:"index;type:text;not null" json:"mentorId"`
	Mentor    MentorProfile `gorm:"foreignKey:MentorID" json:"-"`
	LearnerID string        `gorm:"index;type:text;not null" json:"learnerId"`
	Learner   User          `gorm:"foreignKey:LearnerID" json:"-"`

	Subject     string         `gorm:"not null" json:"subject"`
	Type        SessionType    `gorm:"type:text;default:'ONE_ON_ONE'" json:"type"`
	Status      ScheduleStatus `gorm:"type:text;default:'PENDING';index" json:"status"`
	ScheduledAt time.Time      `json:"scheduledAt"`
	DurationMin int            `gorm:"default:60" json:"durationMin"`

	// External video room reference (integration owned by the caller)
	RoomURL string `json:"roomUrl"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
