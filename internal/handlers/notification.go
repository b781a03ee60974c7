package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/marketplace-api/internal/dto"
	apierrors "github.com/taskhive/marketplace-api/internal/errors"
	"github.com/taskhive/marketplace-api/internal/middleware"
	"github.com/taskhive/marketplace-api/internal/repository"
	"github.com/taskhive/marketplace-api/internal/utils"
	"gorm.io/gorm"
)

// NotificationHandler serves the in-app notification inbox. The read
// flag lives here, outside the lifecycle engine, which only ever
// creates notification rows.
type NotificationHandler struct {
	repo repository.NotificationRepository
}

func NewNotificationHandler(repo repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{
		repo: repo,
	}
}

// ListNotifications returns the authenticated user's notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	notifications, total, err := h.repo.ListByUser(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	items := make([]dto.NotificationDTO, len(notifications))
	for i, n := range notifications {
		items[i] = dto.ToNotificationDTO(n)
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// MarkNotificationRead flags one of the user's notifications as read
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification id")
		return
	}

	if err := h.repo.MarkRead(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.Respond(c, apierrors.NotFound("notification not found"))
			return
		}
		apierrors.InternalError(c, "Failed to update notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification marked as read",
	})
}
