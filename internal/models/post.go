package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a blog entry. Author stores the writer's username as a materialized
// field; it is immutable after creation and is the value all ownership checks
// compare against. Likes live in their own table (see Like).
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"not null" json:"title"`
	Summary string `json:"summary"`
	Content string `gorm:"not null" json:"content"`
	Cover   string `json:"cover"`
	Author  string `gorm:"not null;index" json:"author"`
	// Likes is the list of user IDs that liked this post; computed at query time
	Likes []uint `gorm:"-" json:"likes"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likesCount"`
	// CommentCount is not persisted; computed at query time
	CommentCount int64          `gorm:"-" json:"commentCount"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
