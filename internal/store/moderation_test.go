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

func TestListCommentsRange(t *testing.T) {
	gdb := setupTestDB(t)
	moderation := NewModerationStore(gdb)

	now := time.Now()
	recent := seedComment(t, gdb, "TCS", "a", now.Add(-24*time.Hour))
	old := seedComment(t, gdb, "TCS", "a", now.Add(-40*24*time.Hour))

	week, err := moderation.ListComments(RangeWeek)
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, recent.Cid, week[0].Cid)

	all, err := moderation.ListComments(RangeAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, recent.Cid, all[0].Cid, "newest first")
	assert.Equal(t, old.Cid, all[1].Cid)
}

func TestListCommentsIncludesHidden(t *testing.T) {
	gdb := setupTestDB(t)
	moderation := NewModerationStore(gdb)

	comment := seedComment(t, gdb, "TCS", "a", time.Time{})
	require.NoError(t, gdb.Model(&models.Comment{}).Where("id = ?", comment.ID).
		UpdateColumn("status", models.CommentStatusHidden).Error)

	all, err := moderation.ListComments(RangeAll)
	require.NoError(t, err)
	assert.Len(t, all, 1, "moderation sees every status")
}

func TestListReportedComments(t *testing.T) {
	gdb := setupTestDB(t)
	moderation := NewModerationStore(gdb)
	reports := NewReportStore(gdb)

	comment := seedComment(t, gdb, "TCS", "author", time.Time{})
	_, err := reports.Report(comment.Cid, "visitor-1", "pump and dump talk")
	require.NoError(t, err)

	rows, err := moderation.ListReportedComments(RangeAll)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, comment.Cid, rows[0].Comment.Cid)
	assert.Equal(t, "pump and dump talk", rows[0].Report.Reason)
}

func TestListReportedCommentsDropsOrphans(t *testing.T) {
	gdb := setupTestDB(t)
	moderation := NewModerationStore(gdb)
	reports := NewReportStore(gdb)

	comment := seedComment(t, gdb, "TCS", "author", time.Time{})
	_, err := reports.Report(comment.Cid, "visitor-1", "")
	require.NoError(t, err)

	// Hard-delete the parent; the report row survives.
	require.NoError(t, gdb.Unscoped().Delete(&models.Comment{}, comment.ID).Error)

	rows, err := moderation.ListReportedComments(RangeAll)
	require.NoError(t, err)
	assert.Empty(t, rows, "reports without a parent comment are filtered out")
}

func TestSetStatus(t *testing.T) {
	gdb := setupTestDB(t)
	moderation := NewModerationStore(gdb)
	comments := NewCommentStore(gdb)

	comment := seedComment(t, gdb, "TCS", "author", time.Time{})
	require.NoError(t, moderation.SetStatus(comment.Cid, models.CommentStatusHidden))

	page, err := comments.List("TCS", "reader", 0, "")
	require.NoError(t, err)
	assert.Empty(t, page.Comments, "hidden comments leave the public list")

	require.NoError(t, moderation.SetStatus(comment.Cid, models.CommentStatusVisible))
	page, err = comments.List("TCS", "reader", 0, "")
	require.NoError(t, err)
	assert.Len(t, page.Comments, 1)
}

func TestSetStatusValidation(t *testing.T) {
	gdb := setupTestDB(t)
	moderation := NewModerationStore(gdb)
	comment := seedComment(t, gdb, "TCS", "author", time.Time{})

	err := moderation.SetStatus(comment.Cid, "banished")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	err = moderation.SetStatus(uuid.NewString(), models.CommentStatusHidden)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
