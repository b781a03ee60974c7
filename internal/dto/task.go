package dto

import (
	"time"

	"github.com/taskhive/marketplace-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64          `json:"id"`
	DisplayName string          `json:"display_name"`
	Role        models.UserRole `json:"role"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Location         string            `json:"location"`
	Latitude         *float64          `json:"latitude,omitempty"`
	Longitude        *float64          `json:"longitude,omitempty"`
	Budget           float64           `json:"budget"`
	Category         string            `json:"category"`
	ClientID         uint64            `json:"client_id"`
	AssignedTaskerID *uint64           `json:"assigned_tasker_id"`
	BidCount         uint              `json:"bid_count"`
	Status           models.TaskStatus `json:"status"`
	CancelledBy      *uint64           `json:"cancelled_by,omitempty"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Images           []string          `json:"images"`
	Client           *UserDTO          `json:"client,omitempty"`
	AssignedTasker   *UserDTO          `json:"assigned_tasker,omitempty"`
	Bids             []BidDTO          `json:"bids,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:               task.ID,
		Title:            task.Title,
		Description:      task.Description,
		Location:         task.Location,
		Latitude:         task.Latitude,
		Longitude:        task.Longitude,
		Budget:           task.Budget,
		Category:         task.Category,
		ClientID:         task.ClientID,
		AssignedTaskerID: task.AssignedTaskerID,
		BidCount:         task.BidCount,
		Status:           task.Status,
		CancelledBy:      task.CancelledBy,
		CancelledAt:      task.CancelledAt,
		CompletedAt:      task.CompletedAt,
		CreatedAt:        task.CreatedAt,
		Images:           make([]string, 0, len(task.Images)),
	}

	for _, img := range task.Images {
		dto.Images = append(dto.Images, img.URL)
	}

	// Include relations if preloaded
	if task.Client.ID != 0 {
		client := ToUserDTO(task.Client)
		dto.Client = &client
	}
	if task.AssignedTasker != nil && task.AssignedTasker.ID != 0 {
		tasker := ToUserDTO(*task.AssignedTasker)
		dto.AssignedTasker = &tasker
	}
	if len(task.Bids) > 0 {
		dto.Bids = make([]BidDTO, len(task.Bids))
		for i, bid := range task.Bids {
			dto.Bids[i] = ToBidDTO(bid)
		}
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
