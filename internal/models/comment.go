package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment belongs to a post. Author stores the writer's username and is
// immutable after creation.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"not null;index" json:"postId"`
	Author    string         `gorm:"not null" json:"author"`
	Content   string         `gorm:"not null" json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
