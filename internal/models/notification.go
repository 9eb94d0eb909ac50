package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeSchedule NotificationType = "SCHEDULE"
	NotificationTypeFeedback NotificationType = "FEEDBACK"
	NotificationTypeBadge    NotificationType = "BADGE"
	NotificationTypeRank     NotificationType = "RANK"
	NotificationTypeSystem   NotificationType = "SYSTEM"
)

// Notification is a DB-backed notification row. Realtime delivery is owned by
// an external transport; this table is the durable source the frontend polls.
type Notification struct {
	ID        string           `gorm:"primaryKey;type:text" json:"id"`
	UserID    string           `gorm:"index;type:text;not null" json:"userId"` // Recipient
	ActorID   string           `gorm:"index;type:text" json:"actorId"`         // Who performed action
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	TargetID  string           `gorm:"index;type:text" json:"targetId,omitempty"` // Schedule ID, badge key, etc.
	Message   string           `gorm:"type:text" json:"message"`
	IsRead    bool             `gorm:"default:false" json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return
}
