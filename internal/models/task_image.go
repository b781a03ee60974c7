package models

import "time"

// TaskImage is one entry of a task's ordered image list. URLs are
// pre-resolved by the upload collaborator before task creation.
type TaskImage struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	Position  int       `gorm:"not null" json:"position"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
