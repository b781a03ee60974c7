package models

import (
	"time"

	"gorm.io/gorm"
)

type BidStatus string

const (
	BidStatusPending  BidStatus = "PENDING"
	BidStatusAccepted BidStatus = "ACCEPTED"
	BidStatusRejected BidStatus = "REJECTED"
)

// Bid is a tasker's offer against a pending task. Exactly one bid per
// task can ever reach ACCEPTED; the rest of its pending siblings are
// rejected in the same transaction. Withdrawal deletes the row instead
// of keeping a terminal status, which is why there is no WITHDRAWN
// constant.
//
// Cancelling a STARTED task deliberately leaves its accepted bid
// ACCEPTED: the bid records the historical award, and the task's
// CANCELLED status is what blocks any further activity.
type Bid struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	TaskID    uint64         `gorm:"not null;index" json:"task_id"`
	TaskerID  uint64         `gorm:"not null;index" json:"tasker_id"`
	Amount    float64        `gorm:"not null" json:"amount"`
	Message   string         `gorm:"type:varchar(350)" json:"message"`
	Status    BidStatus      `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task   Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Tasker User `gorm:"foreignKey:TaskerID" json:"tasker,omitempty"`
}
