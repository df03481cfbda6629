package store

import (
	"concallalpha/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeStore toggles a visitor's like on a comment and keeps the
// denormalized likes_count in step with the ledger.
type LikeStore struct {
	db *gorm.DB
}

func NewLikeStore(gdb *gorm.DB) *LikeStore {
	return &LikeStore{db: gdb}
}

// ToggleResult reports the caller's like state after the toggle and the
// authoritative counter re-read from the comment row.
type ToggleResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`

	// CommentID lets callers schedule a counter reconcile.
	CommentID uint `json:"-"`
}

// Toggle flips the (comment, visitor) like. Two consecutive calls by the
// same visitor return the comment to its original state.
func (s *LikeStore) Toggle(commentCid, visitorID string) (*ToggleResult, error) {
	comment, err := findVisible(s.db, commentCid)
	if err != nil {
		return nil, err
	}

	liked := false
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	res := tx.Where("comment_id = ? AND visitor_id = ?", comment.ID, visitorID).Delete(&models.CommentLike{})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}

	if res.RowsAffected > 0 {
		// Had a like: toggled off. Counter floored at 0 so a stale
		// counter can never go negative.
		err = tx.Model(&models.Comment{}).Where("id = ?", comment.ID).
			UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		liked = true
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.CommentLike{CommentID: comment.ID, VisitorID: visitorID})
		if ins.Error != nil {
			tx.Rollback()
			return nil, ins.Error
		}
		if ins.RowsAffected > 0 {
			err = tx.Model(&models.Comment{}).Where("id = ?", comment.ID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
			if err != nil {
				tx.Rollback()
				return nil, err
			}
		}
		// RowsAffected == 0 means a concurrent request inserted the pair
		// first; the unique index is the safety net, leave the counter
		// alone and report the existing like.
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Always re-read the counter after mutation; concurrent toggles
	// converge on what the row actually says.
	var fresh models.Comment
	if err := s.db.Select("likes_count").Where("id = ?", comment.ID).First(&fresh).Error; err != nil {
		return nil, err
	}
	return &ToggleResult{Liked: liked, LikesCount: fresh.LikesCount, CommentID: comment.ID}, nil
}
