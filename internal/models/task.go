package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusStarted   TaskStatus = "STARTED"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusCancelled TaskStatus = "CANCELLED"
)

// Task is a unit of work posted by a client. Status moves
// PENDING -> STARTED -> COMPLETED, with PENDING/STARTED -> CANCELLED.
// COMPLETED and CANCELLED are terminal. Only the lifecycle service
// mutates Status, AssignedTaskerID and BidCount.
type Task struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	Title            string         `gorm:"not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	Location         string         `gorm:"type:varchar(255)" json:"location"`
	Latitude         *float64       `json:"latitude"`
	Longitude        *float64       `json:"longitude"`
	Budget           float64        `gorm:"not null" json:"budget"`
	Category         string         `gorm:"type:varchar(50);not null;index" json:"category"`
	ClientID         uint64         `gorm:"not null;index" json:"client_id"`
	AssignedTaskerID *uint64        `gorm:"index" json:"assigned_tasker_id"`
	BidCount         uint           `gorm:"not null;default:0" json:"bid_count"`
	Status           TaskStatus     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CancelledBy      *uint64        `json:"cancelled_by"`
	CancelledAt      *time.Time     `json:"cancelled_at"`
	CompletedAt      *time.Time     `json:"completed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Client         User        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AssignedTasker *User       `gorm:"foreignKey:AssignedTaskerID" json:"assigned_tasker,omitempty"`
	Bids           []Bid       `gorm:"foreignKey:TaskID" json:"bids,omitempty"`
	Images         []TaskImage `gorm:"foreignKey:TaskID" json:"images,omitempty"`
}

// Open returns whether the task still accepts lifecycle activity
// (bid submission, acceptance, edits, withdrawals).
func (t *Task) Open() bool {
	return t.Status == TaskStatusPending
}
