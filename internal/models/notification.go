package models

import "time"

type NotificationCategory string

const (
	NotificationCategoryBid          NotificationCategory = "bid"
	NotificationCategoryTask         NotificationCategory = "task"
	NotificationCategoryVerification NotificationCategory = "verification"
	NotificationCategoryReview       NotificationCategory = "review"
)

// Notification is the record left behind by the engine's best-effort
// side channel. The engine only ever creates rows; the read flag is
// toggled by the notification endpoints on behalf of the user.
type Notification struct {
	ID            uint64               `gorm:"primarykey" json:"id"`
	UserID        uint64               `gorm:"not null;index" json:"user_id"`
	Category      NotificationCategory `gorm:"type:varchar(20);not null" json:"category"`
	Title         string               `gorm:"type:varchar(255);not null" json:"title"`
	Body          string               `gorm:"type:text" json:"body"`
	RelatedTaskID *uint64              `json:"related_task_id"`
	Read          bool                 `gorm:"not null;default:false" json:"read"`
	CreatedAt     time.Time            `json:"created_at"`
}
