package repository

import (
	"time"

	"github.com/taskhive/marketplace-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task; image rows on the struct are created with it
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Category != "" {
		query = query.Where("tasks.category = ?", filter.Category)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.ClientID != nil {
		query = query.Where("tasks.client_id = ?", *filter.ClientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Client").Preload("Images").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListByTaskerAndStatus retrieves tasks assigned to a tasker in any of the given statuses
func (r *GormTaskRepository) ListByTaskerAndStatus(taskerID uint64, statuses []models.TaskStatus) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("assigned_tasker_id = ? AND status IN ?", taskerID, statuses).
		Order("created_at DESC").
		Preload("Client").
		Preload("Images").
		Find(&tasks).Error
	return tasks, err
}

// Cancel moves a task to CANCELLED while it is still PENDING or STARTED.
// The status guard makes the transition out of the live statuses happen
// at most once, even when cancel races accept or complete.
func (r *GormTaskRepository) Cancel(taskID, cancelledBy uint64, at time.Time) error {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND status IN ?", taskID, []models.TaskStatus{models.TaskStatusPending, models.TaskStatusStarted}).
		Updates(map[string]interface{}{
			"status":       models.TaskStatusCancelled,
			"cancelled_by": cancelledBy,
			"cancelled_at": at,
			"completed_at": nil,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

// Complete moves a task to COMPLETED while it is STARTED.
func (r *GormTaskRepository) Complete(taskID uint64, at time.Time) error {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ?", taskID, models.TaskStatusStarted).
		Updates(map[string]interface{}{
			"status":       models.TaskStatusCompleted,
			"completed_at": at,
			"cancelled_at": nil,
			"cancelled_by": nil,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}
