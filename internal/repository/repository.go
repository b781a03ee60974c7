package repository

import (
	"errors"
	"time"

	"github.com/taskhive/marketplace-api/internal/models"
	"github.com/taskhive/marketplace-api/internal/utils"
)

var (
	// ErrStateConflict is returned when a guarded update found the row in
	// a status that no longer permits the operation. The caller decides
	// whether that means "invalid state" or "retry".
	ErrStateConflict = errors.New("repository: state conflict")

	// ErrDuplicateBid is returned when a tasker already holds a pending
	// bid on the task they are bidding on.
	ErrDuplicateBid = errors.New("repository: tasker already has a pending bid on this task")
)

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	// Create creates a new task along with its image rows.
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading.
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination.
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListByTaskerAndStatus retrieves tasks assigned to a tasker in any
	// of the given statuses.
	ListByTaskerAndStatus(taskerID uint64, statuses []models.TaskStatus) ([]models.Task, error)

	// Cancel moves a task to CANCELLED iff it is still PENDING or
	// STARTED, recording who cancelled and when and clearing completed_at.
	// Returns ErrStateConflict when the guard fails.
	Cancel(taskID, cancelledBy uint64, at time.Time) error

	// Complete moves a task to COMPLETED iff it is STARTED, recording
	// when and clearing the cancellation fields. Returns ErrStateConflict
	// when the guard fails.
	Complete(taskID uint64, at time.Time) error
}

// TaskFilter holds filtering options for listing tasks.
type TaskFilter struct {
	Category string
	Status   *models.TaskStatus
	ClientID *uint64
	Page     int
	PageSize int
}

// BidRepository defines the interface for bid data access. The
// multi-row operations run inside a single transaction so that bid
// rows, sibling bids and the parent task's status/bid_count can never
// be observed half-applied.
type BidRepository interface {
	// CreateWithCount inserts the bid and increments the parent task's
	// bid_count in one transaction. The increment is a single guarded
	// UPDATE that only lands while the task is PENDING, so it doubles as
	// the bidding-open check at commit time. Returns ErrDuplicateBid when
	// the tasker already has a pending bid on the task, ErrStateConflict
	// when the task is no longer PENDING.
	CreateWithCount(bid *models.Bid) error

	// FindByID finds a bid by ID with optional preloading.
	FindByID(id uint64, preload ...string) (*models.Bid, error)

	// ListForTask retrieves all bids on a task, newest first.
	ListForTask(taskID uint64) ([]models.Bid, error)

	// ListByTasker retrieves all bids a tasker has placed, newest first.
	ListByTasker(taskerID uint64) ([]models.Bid, error)

	// Edit updates amount and message iff the bid is still PENDING.
	// Returns ErrStateConflict when the guard fails.
	Edit(bidID uint64, amount float64, message string) error

	// WithdrawWithCount deletes the bid and decrements the parent task's
	// bid_count in one transaction, guarded on both the bid and the task
	// still being PENDING. Returns ErrStateConflict when either guard fails.
	WithdrawWithCount(bidID, taskID uint64) error

	// AcceptAndPromote performs the acceptance transaction: promote the
	// task PENDING -> STARTED assigning the tasker, accept this bid and
	// reject its pending siblings. The conditional task update is the
	// linearization point; at most one call per task can ever succeed.
	// Returns ErrStateConflict when the task or bid was no longer PENDING.
	AcceptAndPromote(bidID, taskID, taskerID uint64) error
}

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	// Create records a notification.
	Create(n *models.Notification) error

	// ListByUser retrieves a page of a user's notifications, newest first.
	ListByUser(userID uint64, params utils.PaginationParams) ([]models.Notification, int64, error)

	// MarkRead flags a notification as read, scoped to its owner.
	MarkRead(id, userID uint64) error
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user.
	Create(user *models.User) error

	// FindByID finds a user by ID.
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email.
	FindByEmail(email string) (*models.User, error)
}
