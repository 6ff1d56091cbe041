// Package seed populates the database with demo data. Development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data Seed creates.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	Password        string // plaintext assigned to every seeded user
}

// DefaultOptions returns a small but representative data set.
func DefaultOptions() Options {
	return Options{
		Users:           8,
		PostsPerUser:    3,
		CommentsPerPost: 4,
		Password:        "password123",
	}
}

// Seed creates users, posts, comments, and random likes.
func Seed(db *gorm.DB, hasher auth.PasswordHasher, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	digest, err := hasher.Hash(opts.Password)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			Password: digest,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post := &models.Post{
				Title:   gofakeit.Sentence(5),
				Summary: gofakeit.Sentence(10),
				Content: gofakeit.Paragraph(2, 4, 8, "\n\n"),
				Author:  user.Username,
			}
			// spread creation times so list ordering looks organic
			post.CreatedAt = time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour)
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			posts = append(posts, post)
		}
	}
	log.Printf("seeded %d posts", len(posts))

	var comments, likes int
	for _, post := range posts {
		for i := 0; i < opts.CommentsPerPost; i++ {
			commenter := users[r.Intn(len(users))]
			comment := &models.Comment{
				PostID:  post.ID,
				Author:  commenter.Username,
				Content: gofakeit.HipsterSentence(12),
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			comments++
		}

		for _, user := range users {
			if r.Intn(3) == 0 {
				like := &models.Like{UserID: user.ID, PostID: post.ID}
				if err := db.Create(like).Error; err != nil {
					return fmt.Errorf("create like: %w", err)
				}
				likes++
			}
		}
	}
	log.Printf("seeded %d comments, %d likes", comments, likes)

	return nil
}
