package models

import "time"

// Like records that a user liked a post. The (UserID, PostID) pair is unique,
// which keeps the like set free of duplicates even if the toggle races.
// Likes are hard-deleted so that unliking frees the unique slot for a re-like.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
