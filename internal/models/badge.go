package models

import "time"

type BadgeCategory string

const (
	BadgeCategoryExperience BadgeCategory = "EXPERIENCE"
	BadgeCategoryQuality    BadgeCategory = "QUALITY"
	BadgeCategoryCommunity  BadgeCategory = "COMMUNITY"
	BadgeCategoryTrust      BadgeCategory = "TRUST"
)

// Badge is a static catalog entry. The award rules live in the badge service;
// this row only carries display metadata keyed by the stable badge key.
type Badge struct {
	Key         string        `gorm:"primaryKey;type:text" json:"key"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"` // Name of the Lucide icon
	Color       string        `json:"color"`
	Category    BadgeCategory `gorm:"type:text" json:"category"`
}

// MentorBadge records a badge awarded to a mentor. Append-only: a badge is
// awarded at most once per mentor and never revoked, enforced by the composite
// primary key.
type MentorBadge struct {
	MentorID  string    `gorm:"primaryKey;type:text" json:"mentorId"`
	BadgeKey  string    `gorm:"primaryKey;type:text" json:"badgeKey"`
	AwardedAt time.Time `json:"awardedAt"`

	// MetricsSnapshot is the JSON-encoded metrics at award time, kept for
	// audit only. The evaluator never reads it back.
	MetricsSnapshot string `gorm:"type:text" json:"metricsSnapshot,omitempty"`

	Badge  Badge         `gorm:"foreignKey:BadgeKey" json:"badge"`
	Mentor MentorProfile `gorm:"foreignKey:MentorID" json:"-"`
}
