package models

import (
	"time"
)

// CommentReport is the report ledger. Reporting is one-way: rows are
// never updated or deleted, and a second report from the same visitor is
// a no-op (unique pair index).
type CommentReport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index;uniqueIndex:idx_comment_visitor_report" json:"comment_id"`
	VisitorID string    `gorm:"size:36;not null;uniqueIndex:idx_comment_visitor_report" json:"visitor_id"`
	Reason    string    `gorm:"size:500" json:"reason"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
