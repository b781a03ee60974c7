package repository

import (
	"github.com/taskhive/marketplace-api/internal/models"
	"gorm.io/gorm"
)

// GormBidRepository is a GORM implementation of BidRepository
type GormBidRepository struct {
	db *gorm.DB
}

// NewBidRepository creates a new BidRepository
func NewBidRepository(db *gorm.DB) BidRepository {
	return &GormBidRepository{db: db}
}

// CreateWithCount inserts the bid and bumps the parent task's bid_count
// in one transaction. The count moves via a single UPDATE expression
// guarded on the task still being PENDING, so concurrent submissions
// cannot lose updates and a submission cannot land after bidding closed.
func (r *GormBidRepository) CreateWithCount(bid *models.Bid) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&models.Bid{}).
			Where("task_id = ? AND tasker_id = ? AND status = ?", bid.TaskID, bid.TaskerID, models.BidStatusPending).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateBid
		}

		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ?", bid.TaskID, models.TaskStatusPending).
			Update("bid_count", gorm.Expr("bid_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}

		return tx.Create(bid).Error
	})
}

// FindByID finds a bid by ID with optional preloading
func (r *GormBidRepository) FindByID(id uint64, preload ...string) (*models.Bid, error) {
	var bid models.Bid
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&bid, id).Error; err != nil {
		return nil, err
	}

	return &bid, nil
}

// ListForTask retrieves all bids on a task, newest first
func (r *GormBidRepository) ListForTask(taskID uint64) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Preload("Tasker").
		Find(&bids).Error
	return bids, err
}

// ListByTasker retrieves all bids a tasker has placed, newest first
func (r *GormBidRepository) ListByTasker(taskerID uint64) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.
		Where("tasker_id = ?", taskerID).
		Order("created_at DESC").
		Preload("Task").
		Find(&bids).Error
	return bids, err
}

// Edit updates amount and message while the bid is still PENDING. The
// status guard makes edit, withdraw and accept on the same bid mutually
// exclusive in effect.
func (r *GormBidRepository) Edit(bidID uint64, amount float64, message string) error {
	res := r.db.Model(&models.Bid{}).
		Where("id = ? AND status = ?", bidID, models.BidStatusPending).
		Updates(map[string]interface{}{
			"amount":  amount,
			"message": message,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

// WithdrawWithCount deletes the bid and decrements the parent task's
// bid_count in one transaction. Both the bid row and the task row are
// guarded on PENDING; if either guard fails the transaction rolls back.
func (r *GormBidRepository) WithdrawWithCount(bidID, taskID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ? AND bid_count > 0", taskID, models.TaskStatusPending).
			Update("bid_count", gorm.Expr("bid_count - ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}

		res = tx.Where("id = ? AND status = ?", bidID, models.BidStatusPending).
			Delete(&models.Bid{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}

		return nil
	})
}

// AcceptAndPromote runs the acceptance transaction. The conditional task
// update is the linearization point: only one transaction can flip the
// task PENDING -> STARTED, so two racing accepts on the same task cannot
// both succeed, and a late accept fails on the guard instead of
// overwriting the winner's assignment.
func (r *GormBidRepository) AcceptAndPromote(bidID, taskID, taskerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).
			Where("id = ? AND status = ?", taskID, models.TaskStatusPending).
			Updates(map[string]interface{}{
				"status":             models.TaskStatusStarted,
				"assigned_tasker_id": taskerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}

		res = tx.Model(&models.Bid{}).
			Where("id = ? AND status = ?", bidID, models.BidStatusPending).
			Update("status", models.BidStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStateConflict
		}

		return tx.Model(&models.Bid{}).
			Where("task_id = ? AND id <> ? AND status = ?", taskID, bidID, models.BidStatusPending).
			Update("status", models.BidStatusRejected).Error
	})
}
