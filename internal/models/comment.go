package models

import (
	"time"
)

// Comment moderation states. Only visible comments are served to the
// public; hidden and deleted are reachable through the admin views.
const (
	CommentStatusVisible = "visible"
	CommentStatusHidden  = "hidden"
	CommentStatusDeleted = "deleted"
)

type Comment struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	Cid         string `gorm:"uniqueIndex;size:36;not null" json:"id"`
	CompanyCode string `gorm:"size:24;not null;index:idx_comments_company_created" json:"companyCode"`
	// VisitorID is the anonymous author token. Never serialized; other
	// visitors must not be able to correlate comments by author.
	VisitorID    string    `gorm:"size:36;not null;index" json:"-"`
	Body         string    `gorm:"type:text;not null" json:"commentText"`
	LikesCount   int       `gorm:"not null;default:0" json:"likesCount"`
	ReportsCount int       `gorm:"not null;default:0" json:"reportsCount"`
	Status       string    `gorm:"size:10;not null;default:'visible';index" json:"status"`
	CreatedAt    time.Time `gorm:"index:idx_comments_company_created" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Filled per request relative to the caller, never stored.
	LikedByMe    bool `gorm:"-" json:"likedByMe"`
	ReportedByMe bool `gorm:"-" json:"reportedByMe"`
}
