// Package store implements the persistence gateways for the anonymous
// engagement workflow: comments, the like/report ledgers and the admin
// moderation read model. All "at most one per visitor" invariants are
// enforced by composite unique indexes at the database, never by
// application-level locking.
package store

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"concallalpha/internal/apperr"
	"concallalpha/internal/models"
	"concallalpha/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50

	minCommentRunes = 3
	maxCommentRunes = 1500
)

var companyCodeRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,24}$`)

// CommentStore creates and lists company comments.
type CommentStore struct {
	db *gorm.DB
}

func NewCommentStore(gdb *gorm.DB) *CommentStore {
	return &CommentStore{db: gdb}
}

// CommentPage is one page of newest-first comments. NextCursor is the
// created_at of the last row in unix milliseconds, or nil on the final
// page.
type CommentPage struct {
	Comments   []models.Comment `json:"comments"`
	NextCursor *int64           `json:"nextCursor"`
}

// ValidCompanyCode reports whether code is a well-formed company code.
func ValidCompanyCode(code string) bool {
	return companyCodeRe.MatchString(code)
}

// Create persists a new visible comment after validating the company
// code and the (sanitized, trimmed) body length.
func (s *CommentStore) Create(companyCode, commentText, visitorID string) (*models.Comment, error) {
	if !ValidCompanyCode(companyCode) {
		return nil, apperr.Validationf("companyCode must match [A-Za-z0-9._-]{1,24}")
	}

	body := strings.TrimSpace(utils.SanitizeText(commentText))
	if n := utf8.RuneCountInString(body); n < minCommentRunes || n > maxCommentRunes {
		return nil, apperr.Validationf("commentText must be %d-%d characters", minCommentRunes, maxCommentRunes)
	}

	comment := models.Comment{
		Cid:         uuid.NewString(),
		CompanyCode: companyCode,
		VisitorID:   visitorID,
		Body:        body,
		Status:      models.CommentStatusVisible,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	// A brand-new comment cannot have been liked or reported by anyone,
	// the author included.
	comment.LikedByMe = false
	comment.ReportedByMe = false
	return &comment, nil
}

// List returns visible comments for a company, newest first, strictly
// before the cursor when one is supplied. An unparsable cursor is
// treated as no cursor rather than an error.
func (s *CommentStore) List(companyCode, visitorID string, limit int, cursor string) (*CommentPage, error) {
	if !ValidCompanyCode(companyCode) {
		return nil, apperr.Validationf("companyCode must match [A-Za-z0-9._-]{1,24}")
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	query := s.db.Where("company_code = ? AND status = ?", companyCode, models.CommentStatusVisible)
	if before, ok := parseCursor(cursor); ok {
		query = query.Where("created_at < ?", before)
	}

	// Fetch one extra row to learn whether another page exists without a
	// separate count query.
	var comments []models.Comment
	if err := query.Order("created_at DESC").Limit(limit + 1).Find(&comments).Error; err != nil {
		return nil, err
	}

	page := &CommentPage{Comments: comments}
	if len(comments) > limit {
		page.Comments = comments[:limit]
		last := page.Comments[limit-1].CreatedAt.UnixMilli()
		page.NextCursor = &last
	}

	if err := s.annotate(page.Comments, visitorID); err != nil {
		return nil, err
	}
	return page, nil
}

// parseCursor accepts a unix-millisecond timestamp. Anything else is
// silently ignored.
func parseCursor(cursor string) (time.Time, bool) {
	if cursor == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// annotate fills LikedByMe/ReportedByMe for the batch with one ledger
// query each instead of one per comment.
func (s *CommentStore) annotate(comments []models.Comment, visitorID string) error {
	if len(comments) == 0 || visitorID == "" {
		return nil
	}

	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	var likes []models.CommentLike
	if err := s.db.Where("visitor_id = ? AND comment_id IN ?", visitorID, ids).Find(&likes).Error; err != nil {
		return err
	}
	likedSet := make(map[uint]bool, len(likes))
	for _, l := range likes {
		likedSet[l.CommentID] = true
	}

	var reports []models.CommentReport
	if err := s.db.Where("visitor_id = ? AND comment_id IN ?", visitorID, ids).Find(&reports).Error; err != nil {
		return err
	}
	reportedSet := make(map[uint]bool, len(reports))
	for _, r := range reports {
		reportedSet[r.CommentID] = true
	}

	for i := range comments {
		comments[i].LikedByMe = likedSet[comments[i].ID]
		comments[i].ReportedByMe = reportedSet[comments[i].ID]
	}
	return nil
}

// findVisible resolves a comment cid to its visible row. Shared by the
// like and report ledgers.
func findVisible(gdb *gorm.DB, cid string) (*models.Comment, error) {
	var comment models.Comment
	err := gdb.Where("cid = ? AND status = ?", cid, models.CommentStatusVisible).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}
