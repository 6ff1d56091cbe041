package repository

import (
	"fmt"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory SQLite database. The named shared-cache DSN
// keeps the database alive across the connections in gorm's pool.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "digest"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, author string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:   "title by " + author,
		Summary: "summary",
		Content: "content",
		Author:  author,
	}
	post.CreatedAt = createdAt
	require.NoError(t, db.Create(post).Error)
	return post
}
