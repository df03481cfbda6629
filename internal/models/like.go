package models

import (
	"time"
)

// CommentLike is the like ledger: at most one row per (comment, visitor)
// pair, enforced by the composite unique index. The pair index, not any
// application-level lock, is what makes concurrent toggles safe.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index;uniqueIndex:idx_comment_visitor_like" json:"comment_id"`
	VisitorID string    `gorm:"size:36;not null;uniqueIndex:idx_comment_visitor_like" json:"visitor_id"`
	CreatedAt time.Time `json:"created_at"`
}
