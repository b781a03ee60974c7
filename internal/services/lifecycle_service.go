package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/taskhive/marketplace-api/internal/constants"
	apierrors "github.com/taskhive/marketplace-api/internal/errors"
	"github.com/taskhive/marketplace-api/internal/models"
	"github.com/taskhive/marketplace-api/internal/repository"
	"gorm.io/gorm"
)

// Ownership failures are transport concerns (403), not part of the
// engine's structured error taxonomy, so they stay sentinel errors.
var (
	ErrNotTaskOwner       = errors.New("only the task's client can perform this action")
	ErrNotBidAuthor       = errors.New("only the bid's tasker can perform this action")
	ErrNotTaskParticipant = errors.New("only the task's client or assigned tasker can perform this action")
)

// LifecycleService is the sole authority allowed to mutate task and bid
// status. Every mutation funnels through here; handlers and queries
// never write status fields directly.
type LifecycleService struct {
	taskRepo repository.TaskRepository
	bidRepo  repository.BidRepository
	userRepo repository.UserRepository
	emitter  NotificationEmitter
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	taskRepo repository.TaskRepository,
	bidRepo repository.BidRepository,
	userRepo repository.UserRepository,
	emitter NotificationEmitter,
) *LifecycleService {
	return &LifecycleService{
		taskRepo: taskRepo,
		bidRepo:  bidRepo,
		userRepo: userRepo,
		emitter:  emitter,
	}
}

// CreateTaskInput represents input for posting a task
type CreateTaskInput struct {
	Title       string
	Description string
	Budget      float64
	Category    string
	Location    string
	Latitude    *float64
	Longitude   *float64
	ImageURLs   []string
	ClientID    uint64
}

// SubmitBidInput represents input for bidding on a task
type SubmitBidInput struct {
	TaskID   uint64
	TaskerID uint64
	Amount   float64
	Message  string
}

// EditBidInput represents input for revising a pending bid
type EditBidInput struct {
	BidID    uint64
	TaskerID uint64
	Amount   float64
	Message  string
}

// CreateTask validates the input and creates a PENDING task with no
// assigned tasker and a zero bid count. Creation emits no notification.
func (s *LifecycleService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, apierrors.Validation("title is required")
	}
	if input.Budget <= 0 {
		return nil, apierrors.Validation("budget must be a positive number")
	}
	if input.Category == "" {
		return nil, apierrors.Validation("category is required")
	}
	if input.Location == "" && (input.Latitude == nil || input.Longitude == nil) {
		return nil, apierrors.Validation("either a location or coordinates are required")
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		Category:    input.Category,
		Location:    input.Location,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ClientID:    input.ClientID,
		Status:      models.TaskStatusPending,
	}
	for i, url := range input.ImageURLs {
		task.Images = append(task.Images, models.TaskImage{Position: i, URL: url})
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, apierrors.Internal("failed to create task", err)
	}

	return s.loadTask(task.ID)
}

// SubmitBid places a pending bid on a pending task, bumping the task's
// bid count in the same transaction, and notifies the task's client.
// A tasker holding a pending bid on the task must edit it instead of
// submitting a second one.
func (s *LifecycleService) SubmitBid(input SubmitBidInput) (*models.Bid, error) {
	if input.Amount <= 0 {
		return nil, apierrors.Validation("amount must be a positive number")
	}
	if len(input.Message) > constants.MaxBidMessageLength {
		return nil, apierrors.Validation(fmt.Sprintf("message must be at most %d characters", constants.MaxBidMessageLength))
	}

	task, err := s.loadTask(input.TaskID)
	if err != nil {
		return nil, err
	}
	if !task.Open() {
		return nil, apierrors.InvalidState("bidding closed")
	}
	if task.ClientID == input.TaskerID {
		return nil, apierrors.Validation("cannot bid on your own task")
	}

	tasker, err := s.userRepo.FindByID(input.TaskerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("tasker not found")
		}
		return nil, apierrors.Internal("failed to find tasker", err)
	}
	if tasker.Role != models.RoleTasker {
		return nil, apierrors.Validation("only taskers can bid on tasks")
	}

	bid := &models.Bid{
		TaskID:   task.ID,
		TaskerID: input.TaskerID,
		Amount:   input.Amount,
		Message:  input.Message,
		Status:   models.BidStatusPending,
	}

	if err := s.bidRepo.CreateWithCount(bid); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateBid):
			return nil, apierrors.InvalidState("you already have a pending bid on this task")
		case errors.Is(err, repository.ErrStateConflict):
			return nil, apierrors.InvalidState("bidding closed")
		default:
			return nil, apierrors.Internal("failed to submit bid", err)
		}
	}

	s.notify(task.ClientID, models.NotificationCategoryBid,
		"New bid received",
		fmt.Sprintf("%s offered %.2f on %q", tasker.DisplayName, bid.Amount, task.Title),
		&task.ID)

	return s.bidRepo.FindByID(bid.ID, "Tasker")
}

// AcceptBid accepts one bid on behalf of the task's client: the bid
// becomes ACCEPTED, its pending siblings REJECTED, and the task moves
// to STARTED with the bid's tasker assigned, all in one transaction.
// A commit conflict re-drives the read-validate-write cycle once; the
// fresh read turns "another accept already won" into invalid state and
// anything still unresolved into a conflict the caller may retry.
func (s *LifecycleService) AcceptBid(bidID, clientID uint64) (*models.Bid, error) {
	for attempt := 0; ; attempt++ {
		bid, err := s.bidRepo.FindByID(bidID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierrors.NotFound("bid not found")
			}
			return nil, apierrors.Internal("failed to find bid", err)
		}
		if bid.Status != models.BidStatusPending {
			return nil, apierrors.InvalidState("bid is no longer pending")
		}

		task, err := s.loadTask(bid.TaskID)
		if err != nil {
			return nil, err
		}
		if task.ClientID != clientID {
			return nil, ErrNotTaskOwner
		}
		if !task.Open() {
			return nil, apierrors.InvalidState("bidding closed")
		}

		err = s.bidRepo.AcceptAndPromote(bid.ID, task.ID, bid.TaskerID)
		if err == nil {
			s.notify(bid.TaskerID, models.NotificationCategoryBid,
				"You have been hired",
				fmt.Sprintf("Your bid on %q was accepted", task.Title),
				&task.ID)
			return s.bidRepo.FindByID(bid.ID, "Tasker", "Task")
		}
		if !errors.Is(err, repository.ErrStateConflict) {
			return nil, apierrors.Internal("failed to accept bid", err)
		}
		if attempt >= constants.AcceptRetryAttempts {
			return nil, apierrors.Conflict("acceptance conflicted with a concurrent update")
		}
	}
}

// EditBid updates a pending bid's amount and message in place. Status
// and the task's bid count are untouched.
func (s *LifecycleService) EditBid(input EditBidInput) (*models.Bid, error) {
	if input.Amount <= 0 {
		return nil, apierrors.Validation("amount must be a positive number")
	}
	if len(input.Message) > constants.MaxBidMessageLength {
		return nil, apierrors.Validation(fmt.Sprintf("message must be at most %d characters", constants.MaxBidMessageLength))
	}

	bid, _, err := s.loadPendingBid(input.BidID, input.TaskerID)
	if err != nil {
		return nil, err
	}

	if err := s.bidRepo.Edit(bid.ID, input.Amount, input.Message); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apierrors.InvalidState("bid is no longer pending")
		}
		return nil, apierrors.Internal("failed to edit bid", err)
	}

	return s.bidRepo.FindByID(bid.ID, "Tasker")
}

// WithdrawBid deletes a pending bid and decrements the task's bid count
// in the same transaction. No notification is emitted.
func (s *LifecycleService) WithdrawBid(bidID, taskerID uint64) error {
	bid, task, err := s.loadPendingBid(bidID, taskerID)
	if err != nil {
		return err
	}

	if err := s.bidRepo.WithdrawWithCount(bid.ID, task.ID); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return apierrors.InvalidState("bid is no longer pending")
		}
		return apierrors.Internal("failed to withdraw bid", err)
	}

	return nil
}

// CancelTask moves a PENDING or STARTED task to CANCELLED and notifies
// whichever party did not initiate the cancellation. Existing bids are
// left untouched; the task's terminal status is what blocks further
// activity on them.
func (s *LifecycleService) CancelTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	actorIsClient := task.ClientID == actorID
	actorIsTasker := task.AssignedTaskerID != nil && *task.AssignedTaskerID == actorID
	if !actorIsClient && !actorIsTasker {
		return nil, ErrNotTaskParticipant
	}

	if task.Status != models.TaskStatusPending && task.Status != models.TaskStatusStarted {
		return nil, apierrors.InvalidState("task is already finished")
	}

	if err := s.taskRepo.Cancel(task.ID, actorID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apierrors.InvalidState("task is already finished")
		}
		return nil, apierrors.Internal("failed to cancel task", err)
	}

	if actorIsClient {
		if task.AssignedTaskerID != nil {
			s.notify(*task.AssignedTaskerID, models.NotificationCategoryTask,
				"Task cancelled",
				fmt.Sprintf("The client cancelled %q", task.Title),
				&task.ID)
		}
	} else {
		s.notify(task.ClientID, models.NotificationCategoryTask,
			"Task cancelled",
			fmt.Sprintf("The tasker withdrew from %q", task.Title),
			&task.ID)
	}

	return s.loadTask(task.ID)
}

// CompleteTask moves a STARTED task to COMPLETED and notifies the
// assigned tasker.
func (s *LifecycleService) CompleteTask(taskID, clientID uint64) (*models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.ClientID != clientID {
		return nil, ErrNotTaskOwner
	}
	if task.Status != models.TaskStatusStarted {
		return nil, apierrors.InvalidState("only a started task can be completed")
	}

	if err := s.taskRepo.Complete(task.ID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, apierrors.InvalidState("only a started task can be completed")
		}
		return nil, apierrors.Internal("failed to complete task", err)
	}

	if task.AssignedTaskerID != nil {
		s.notify(*task.AssignedTaskerID, models.NotificationCategoryTask,
			"Task completed",
			fmt.Sprintf("%q was marked as completed", task.Title),
			&task.ID)
	}

	return s.loadTask(task.ID)
}

// GetTask returns a task with its client, images and bids.
func (s *LifecycleService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Client", "AssignedTasker", "Images", "Bids", "Bids.Tasker")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("task not found")
		}
		return nil, apierrors.Internal("failed to find task", err)
	}
	return task, nil
}

// ListTasks returns tasks matching the filter, newest first.
func (s *LifecycleService) ListTasks(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, apierrors.Internal("failed to list tasks", err)
	}
	return tasks, total, nil
}

// ListBidsForTask returns all bids on a task, newest first.
func (s *LifecycleService) ListBidsForTask(taskID uint64) ([]models.Bid, error) {
	if _, err := s.loadTask(taskID); err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.ListForTask(taskID)
	if err != nil {
		return nil, apierrors.Internal("failed to list bids", err)
	}
	return bids, nil
}

// ListBidsByTasker returns all bids a tasker has placed, newest first.
func (s *LifecycleService) ListBidsByTasker(taskerID uint64) ([]models.Bid, error) {
	bids, err := s.bidRepo.ListByTasker(taskerID)
	if err != nil {
		return nil, apierrors.Internal("failed to list bids", err)
	}
	return bids, nil
}

// ListTasksByTaskerAndType returns a tasker's assigned tasks, either
// the ones still in flight ("active") or the finished ones ("past").
func (s *LifecycleService) ListTasksByTaskerAndType(taskerID uint64, listType string) ([]models.Task, error) {
	var statuses []models.TaskStatus
	switch listType {
	case "active":
		statuses = []models.TaskStatus{models.TaskStatusStarted}
	case "past":
		statuses = []models.TaskStatus{models.TaskStatusCompleted, models.TaskStatusCancelled}
	default:
		return nil, apierrors.Validation("type must be \"active\" or \"past\"")
	}

	tasks, err := s.taskRepo.ListByTaskerAndStatus(taskerID, statuses)
	if err != nil {
		return nil, apierrors.Internal("failed to list tasks", err)
	}
	return tasks, nil
}

// loadTask fetches a task, mapping a missing row to the not-found kind.
func (s *LifecycleService) loadTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Images")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("task not found")
		}
		return nil, apierrors.Internal("failed to find task", err)
	}
	return task, nil
}

// loadPendingBid fetches a bid for edit/withdraw: the actor must be its
// author, and both the bid and its task must still be PENDING.
func (s *LifecycleService) loadPendingBid(bidID, taskerID uint64) (*models.Bid, *models.Task, error) {
	bid, err := s.bidRepo.FindByID(bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apierrors.NotFound("bid not found")
		}
		return nil, nil, apierrors.Internal("failed to find bid", err)
	}
	if bid.TaskerID != taskerID {
		return nil, nil, ErrNotBidAuthor
	}
	if bid.Status != models.BidStatusPending {
		return nil, nil, apierrors.InvalidState("bid is no longer pending")
	}

	task, err := s.loadTask(bid.TaskID)
	if err != nil {
		return nil, nil, err
	}
	if !task.Open() {
		return nil, nil, apierrors.InvalidState("bidding closed")
	}

	return bid, task, nil
}

// notify emits a notification after a committed transition. Emitter
// failures are logged and never surfaced to the caller.
func (s *LifecycleService) notify(userID uint64, category models.NotificationCategory, title, body string, relatedTaskID *uint64) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.Emit(userID, category, title, body, relatedTaskID); err != nil {
		log.Printf("notification emit failed: %v", apierrors.Dependency("notification emitter failed", err))
	}
}
