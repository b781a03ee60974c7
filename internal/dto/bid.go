package dto

import (
	"time"

	"github.com/taskhive/marketplace-api/internal/models"
)

// BidDTO represents a bid in API responses
type BidDTO struct {
	ID        uint64           `json:"id"`
	TaskID    uint64           `json:"task_id"`
	TaskerID  uint64           `json:"tasker_id"`
	Amount    float64          `json:"amount"`
	Message   string           `json:"message"`
	Status    models.BidStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	Tasker    *UserDTO         `json:"tasker,omitempty"`
	Task      *TaskDTO         `json:"task,omitempty"`
}

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID            uint64                      `json:"id"`
	Category      models.NotificationCategory `json:"category"`
	Title         string                      `json:"title"`
	Body          string                      `json:"body"`
	RelatedTaskID *uint64                     `json:"related_task_id,omitempty"`
	Read          bool                        `json:"read"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// ToBidDTO converts a Bid model to BidDTO
func ToBidDTO(bid models.Bid) BidDTO {
	dto := BidDTO{
		ID:        bid.ID,
		TaskID:    bid.TaskID,
		TaskerID:  bid.TaskerID,
		Amount:    bid.Amount,
		Message:   bid.Message,
		Status:    bid.Status,
		CreatedAt: bid.CreatedAt,
	}

	if bid.Tasker.ID != 0 {
		tasker := ToUserDTO(bid.Tasker)
		dto.Tasker = &tasker
	}
	if bid.Task.ID != 0 {
		task := ToTaskDTO(bid.Task)
		dto.Task = &task
	}

	return dto
}

// ToBidDTOs converts a slice of bids
func ToBidDTOs(bids []models.Bid) []BidDTO {
	items := make([]BidDTO, len(bids))
	for i, bid := range bids {
		items[i] = ToBidDTO(bid)
	}
	return items
}

// ToNotificationDTO converts a Notification model to NotificationDTO
func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:            n.ID,
		Category:      n.Category,
		Title:         n.Title,
		Body:          n.Body,
		RelatedTaskID: n.RelatedTaskID,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}
