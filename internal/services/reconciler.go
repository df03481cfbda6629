package services

import (
	"sync"
	"time"

	"concallalpha/internal/db"
	"concallalpha/internal/logger"
	"concallalpha/internal/models"

	"gorm.io/gorm"
)

// ReconcilerService recomputes the denormalized likes_count and
// reports_count from the ledger tables in the background. The request
// path keeps counters in step with gorm.Expr increments, but a failure
// between the ledger write and the counter update can leave transient
// drift; this worker is the independent recomputation that converges it.
type ReconcilerService struct {
	queue   chan uint // comment IDs awaiting a recount
	pending map[uint]bool
	mu      sync.Mutex
}

var (
	reconciler     *ReconcilerService
	reconcilerOnce sync.Once
)

// GetReconciler returns the singleton reconciler and starts its worker
// on first use.
func GetReconciler() *ReconcilerService {
	reconcilerOnce.Do(func() {
		reconciler = &ReconcilerService{
			queue:   make(chan uint, 1000),
			pending: make(map[uint]bool),
		}
		go reconciler.worker()
	})
	return reconciler
}

// Schedule queues a comment for recount. Deduplicates so a burst of
// toggles on one comment costs a single recount.
func (s *ReconcilerService) Schedule(commentID uint) {
	s.mu.Lock()
	if s.pending[commentID] {
		s.mu.Unlock()
		return
	}
	s.pending[commentID] = true
	s.mu.Unlock()

	select {
	case s.queue <- commentID:
	default:
		// Queue full; drop the request. The nightly sweep will pick the
		// comment up.
		s.mu.Lock()
		delete(s.pending, commentID)
		s.mu.Unlock()
		logger.L().Warnw("reconcile queue full, skipping comment", "comment_id", commentID)
	}
}

func (s *ReconcilerService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case commentID := <-s.queue:
			batch = append(batch, commentID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *ReconcilerService) processBatch(commentIDs []uint) {
	for _, commentID := range commentIDs {
		if err := Recount(db.DB, commentID); err != nil {
			logger.L().Errorw("failed to reconcile comment counters", "comment_id", commentID, "error", err)
		}
		s.mu.Lock()
		delete(s.pending, commentID)
		s.mu.Unlock()
	}
}

// Recount overwrites a comment's denormalized counters with the actual
// ledger row counts.
func Recount(gdb *gorm.DB, commentID uint) error {
	var likes int64
	if err := gdb.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&likes).Error; err != nil {
		return err
	}
	var reports int64
	if err := gdb.Model(&models.CommentReport{}).Where("comment_id = ?", commentID).Count(&reports).Error; err != nil {
		return err
	}
	return gdb.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumns(map[string]interface{}{
			"likes_count":   likes,
			"reports_count": reports,
		}).Error
}

// StartNightlySweep recounts recently active comments once a day, at
// 03:00 server time, as a backstop for anything the queue dropped.
func (s *ReconcilerService) StartNightlySweep() {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
			if now.After(next) {
				next = next.Add(24 * time.Hour)
			}
			time.Sleep(time.Until(next))

			s.sweepRecent()
		}
	}()
}

func (s *ReconcilerService) sweepRecent() {
	cutoff := time.Now().AddDate(0, 0, -30)
	var comments []models.Comment
	if err := db.DB.Where("updated_at >= ?", cutoff).Select("id").Find(&comments).Error; err != nil {
		logger.L().Errorw("nightly counter sweep query failed", "error", err)
		return
	}
	for _, c := range comments {
		if err := Recount(db.DB, c.ID); err != nil {
			logger.L().Errorw("nightly recount failed", "comment_id", c.ID, "error", err)
		}
	}
	logger.L().Infow("nightly counter sweep completed", "comments", len(comments))
}
