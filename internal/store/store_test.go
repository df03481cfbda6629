package store

import (
	"testing"
	"time"

	"concallalpha/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB initializes an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	err = gdb.AutoMigrate(
		&models.Company{},
		&models.Comment{},
		&models.CommentLike{},
		&models.CommentReport{},
	)
	require.NoError(t, err, "failed to migrate test database")
	return gdb
}

// seedComment inserts a visible comment at the given time.
func seedComment(t *testing.T, gdb *gorm.DB, company, visitorID string, createdAt time.Time) *models.Comment {
	t.Helper()
	comments := NewCommentStore(gdb)
	comment, err := comments.Create(company, "seeded comment body", visitorID)
	require.NoError(t, err)
	if !createdAt.IsZero() {
		require.NoError(t, gdb.Model(&models.Comment{}).Where("id = ?", comment.ID).
			UpdateColumn("created_at", createdAt).Error)
		comment.CreatedAt = createdAt
	}
	return comment
}
