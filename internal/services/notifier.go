package services

import (
	"github.com/taskhive/marketplace-api/internal/models"
	"github.com/taskhive/marketplace-api/internal/repository"
)

// NotificationEmitter is the engine's fire-and-forget side channel. It
// is only ever invoked after a state transition has committed; a slow
// or failing emitter must never block or roll back a transition, so the
// engine logs emitter errors instead of propagating them.
type NotificationEmitter interface {
	Emit(userID uint64, category models.NotificationCategory, title, body string, relatedTaskID *uint64) error
}

// StoreEmitter records notifications as rows for the in-app inbox.
type StoreEmitter struct {
	repo repository.NotificationRepository
}

// NewStoreEmitter creates a StoreEmitter.
func NewStoreEmitter(repo repository.NotificationRepository) *StoreEmitter {
	return &StoreEmitter{repo: repo}
}

func (e *StoreEmitter) Emit(userID uint64, category models.NotificationCategory, title, body string, relatedTaskID *uint64) error {
	return e.repo.Create(&models.Notification{
		UserID:        userID,
		Category:      category,
		Title:         title,
		Body:          body,
		RelatedTaskID: relatedTaskID,
	})
}
