package store

import (
	"testing"
	"time"

	"concallalpha/internal/apperr"
	"concallalpha/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike(t *testing.T) {
	gdb := setupTestDB(t)
	likes := NewLikeStore(gdb)
	comment := seedComment(t, gdb, "TCS", "author", time.Time{})

	result, err := likes.Toggle(comment.Cid, "visitor-1")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikesCount)

	var rows int64
	gdb.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&rows)
	assert.EqualValues(t, 1, rows, "at most one like row per pair")
}

func TestToggleInvolution(t *testing.T) {
	gdb := setupTestDB(t)
	likes := NewLikeStore(gdb)
	comment := seedComment(t, gdb, "TCS", "author", time.Time{})

	first, err := likes.Toggle(comment.Cid, "visitor-1")
	require.NoError(t, err)
	second, err := likes.Toggle(comment.Cid, "visitor-1")
	require.NoError(t, err)

	assert.True(t, first.Liked)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.LikesCount, "two toggles return the count to its original value")

	var rows int64
	gdb.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&rows)
	assert.EqualValues(t, 0, rows)
}

func TestToggleCountsDistinctVisitors(t *testing.T) {
	gdb := setupTestDB(t)
	likes := NewLikeStore(gdb)
	comment := seedComment(t, gdb, "TCS", "author", time.Time{})

	for _, visitor := range []string{"a", "b", "c"} {
		result, err := likes.Toggle(comment.Cid, visitor)
		require.NoError(t, err)
		assert.True(t, result.Liked)
	}

	result, err := likes.Toggle(comment.Cid, "b")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 2, result.LikesCount)

	// Counter matches the ledger.
	var rows int64
	gdb.Model(&models.CommentLike{}).Where("comment_id = ?", comment.ID).Count(&rows)
	assert.EqualValues(t, result.LikesCount, rows)
}

func TestToggleNotFound(t *testing.T) {
	gdb := setupTestDB(t)
	likes := NewLikeStore(gdb)

	_, err := likes.Toggle(uuid.NewString(), "visitor-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestToggleHiddenCommentNotFound(t *testing.T) {
	gdb := setupTestDB(t)
	likes := NewLikeStore(gdb)
	comment := seedComment(t, gdb, "TCS", "author", time.Time{})
	require.NoError(t, gdb.Model(&models.Comment{}).Where("id = ?", comment.ID).
		UpdateColumn("status", models.CommentStatusHidden).Error)

	_, err := likes.Toggle(comment.Cid, "visitor-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound, "non-visible comments cannot be liked")
}

func TestToggleCounterNeverNegative(t *testing.T) {
	gdb := setupTestDB(t)
	likes := NewLikeStore(gdb)
	comment := seedComment(t, gdb, "TCS", "author", time.Time{})

	// Simulate drift: a like row exists but the counter was never bumped.
	require.NoError(t, gdb.Create(&models.CommentLike{CommentID: comment.ID, VisitorID: "visitor-1"}).Error)

	result, err := likes.Toggle(comment.Cid, "visitor-1")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.LikesCount, "decrement floors at zero")
}
