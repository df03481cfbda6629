package store

import (
	"time"

	"concallalpha/internal/apperr"
	"concallalpha/internal/models"

	"gorm.io/gorm"
)

// Lookback windows accepted by the moderation views. Anything else is
// treated as RangeAll.
const (
	RangeWeek    = "7d"
	RangeMonth   = "30d"
	RangeQuarter = "90d"
	RangeAll     = "all"
)

// moderationPageSize caps the admin lists; these are internal views with
// no further pagination.
const moderationPageSize = 200

// ModerationStore is the admin-facing read model plus the one write the
// admin is allowed: flipping a comment's status.
type ModerationStore struct {
	db *gorm.DB
}

func NewModerationStore(gdb *gorm.DB) *ModerationStore {
	return &ModerationStore{db: gdb}
}

// ReportedComment joins a report to its parent comment.
type ReportedComment struct {
	Report  models.CommentReport `json:"report"`
	Comment models.Comment       `json:"comment"`
}

func rangeLowerBound(rng string) (time.Time, bool) {
	now := time.Now()
	switch rng {
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, 0, -30), true
	case RangeQuarter:
		return now.AddDate(0, 0, -90), true
	default:
		return time.Time{}, false
	}
}

// ListComments returns comments of every status in the window, newest
// first.
func (s *ModerationStore) ListComments(rng string) ([]models.Comment, error) {
	query := s.db.Model(&models.Comment{})
	if lower, ok := rangeLowerBound(rng); ok {
		query = query.Where("created_at >= ?", lower)
	}

	var comments []models.Comment
	err := query.Order("created_at DESC").Limit(moderationPageSize).Find(&comments).Error
	return comments, err
}

// ListReportedComments returns reports in the window joined to their
// parent comments. Reports whose parent is gone (hard-deleted rows) are
// dropped rather than surfaced as partial records.
func (s *ModerationStore) ListReportedComments(rng string) ([]ReportedComment, error) {
	query := s.db.Model(&models.CommentReport{})
	if lower, ok := rangeLowerBound(rng); ok {
		query = query.Where("created_at >= ?", lower)
	}

	var reports []models.CommentReport
	if err := query.Order("created_at DESC").Limit(moderationPageSize).Find(&reports).Error; err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return []ReportedComment{}, nil
	}

	ids := make([]uint, len(reports))
	for i, r := range reports {
		ids[i] = r.CommentID
	}
	var comments []models.Comment
	if err := s.db.Where("id IN ?", ids).Find(&comments).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	rows := make([]ReportedComment, 0, len(reports))
	for _, r := range reports {
		comment, ok := byID[r.CommentID]
		if !ok {
			continue
		}
		rows = append(rows, ReportedComment{Report: r, Comment: comment})
	}
	return rows, nil
}

// SetStatus is the moderation action that mutates a comment's status.
func (s *ModerationStore) SetStatus(cid, status string) error {
	switch status {
	case models.CommentStatusVisible, models.CommentStatusHidden, models.CommentStatusDeleted:
	default:
		return apperr.Validationf("status must be visible, hidden or deleted")
	}

	res := s.db.Model(&models.Comment{}).Where("cid = ?", cid).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
