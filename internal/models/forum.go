package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ForumPost struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AuthorID string `gorm:"index;type:text;not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	Title   string `gorm:"not null" json:"title"`
	Slug    string `gorm:"index" json:"slug"`
	Content string `gorm:"type:text;not null" json:"content"`
	Subject string `gorm:"index" json:"subject"`

	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`
}

func (fp *ForumPost) BeforeCreate(tx *gorm.DB) (err error) {
	if fp.ID == "" {
		fp.ID = uuid.New().String()
	}
	return
}

type ForumComment struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PostID   string    `gorm:"index;type:text;not null" json:"postId"`
	Post     ForumPost `gorm:"foreignKey:PostID" json:"-"`
	AuthorID string    `gorm:"index;type:text;not null" json:"authorId"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`

	Content string `gorm:"type:text;not null" json:"content"`

	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`
}

func (fc *ForumComment) BeforeCreate(tx *gorm.DB) (err error) {
	if fc.ID == "" {
		fc.ID = uuid.New().String()
	}
	return
}
