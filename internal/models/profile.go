package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MentorProfile holds the mentor-side data for a user, including the trust
// signals (verification, credentials) consumed by the badge engine.
type MentorProfile struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"uniqueIndex;type:text;not null" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Subjects pq.StringArray `gorm:"type:text[]" json:"subjects"`
	Headline string         `json:"headline"`

	// Trust signals
	Verified            bool           `gorm:"default:false" json:"verified"`
	Credentials         pq.StringArray `gorm:"type:text[]" json:"credentials"` // stored file references
	CredentialsFolderID string         `json:"credentialsFolderId"`            // external folder reference
}

func (mp *MentorProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if mp.ID == "" {
		mp.ID = uuid.New().String()
	}
	return
}

// LearnerProfile holds the learner-side data for a user. SubjectsOfInterest
// decides whether a completed session qualifies for rank progression.
type LearnerProfile struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    string    `gorm:"uniqueIndex;type:text;not null" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	SubjectsOfInterest pq.StringArray `gorm:"type:text[]" json:"subjectsOfInterest"`
}

func (lp *LearnerProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if lp.ID == "" {
		lp.ID = uuid.New().String()
	}
	return
}

// InterestedIn reports whether the learner declared the given subject.
func (lp *LearnerProfile) InterestedIn(subject string) bool {
	for _, s := range lp.SubjectsOfInterest {
		if s == subject {
			return true
		}
	}
	return false
}
