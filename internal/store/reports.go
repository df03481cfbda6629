package store

import (
	"strings"
	"unicode/utf8"

	"concallalpha/internal/apperr"
	"concallalpha/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxReasonRunes = 500

// ReportStore records visitor reports. Reporting is idempotent and
// one-directional: there is no un-report.
type ReportStore struct {
	db *gorm.DB
}

func NewReportStore(gdb *gorm.DB) *ReportStore {
	return &ReportStore{db: gdb}
}

// Report inserts the (comment, visitor) report row at most once and
// bumps reports_count only when the row is new. A repeat call is a
// success no-op. Returns the comment's internal id so callers can
// schedule a counter reconcile.
func (s *ReportStore) Report(commentCid, visitorID, reason string) (uint, error) {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > maxReasonRunes {
		return 0, apperr.Validationf("reason must be at most %d characters", maxReasonRunes)
	}

	comment, err := findVisible(s.db, commentCid)
	if err != nil {
		return 0, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	ins := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CommentReport{CommentID: comment.ID, VisitorID: visitorID, Reason: reason})
	if ins.Error != nil {
		tx.Rollback()
		return 0, ins.Error
	}

	if ins.RowsAffected > 0 {
		err = tx.Model(&models.Comment{}).Where("id = ?", comment.ID).
			UpdateColumn("reports_count", gorm.Expr("reports_count + ?", 1)).Error
		if err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}
	return comment.ID, nil
}
