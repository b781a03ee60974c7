package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive/marketplace-api/internal/dto"
	apierrors "github.com/taskhive/marketplace-api/internal/errors"
	"github.com/taskhive/marketplace-api/internal/middleware"
	"github.com/taskhive/marketplace-api/internal/services"
)

type BidHandler struct {
	lifecycle *services.LifecycleService
}

func NewBidHandler(lifecycle *services.LifecycleService) *BidHandler {
	return &BidHandler{
		lifecycle: lifecycle,
	}
}

// SubmitBid places a bid on a pending task
func (h *BidHandler) SubmitBid(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	type SubmitBidRequest struct {
		Amount  float64 `json:"amount" binding:"required"`
		Message string  `json:"message"`
	}

	var req SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	bid, err := h.lifecycle.SubmitBid(services.SubmitBidInput{
		TaskID:   taskID,
		TaskerID: userID,
		Amount:   req.Amount,
		Message:  req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBidDTO(*bid))
}

// AcceptBid accepts a bid on behalf of the task's client
func (h *BidHandler) AcceptBid(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	bidID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid bid id")
		return
	}

	bid, err := h.lifecycle.AcceptBid(bidID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBidDTO(*bid))
}

// EditBid revises a pending bid's amount and message
func (h *BidHandler) EditBid(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	bidID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid bid id")
		return
	}

	type EditBidRequest struct {
		Amount  float64 `json:"amount" binding:"required"`
		Message string  `json:"message"`
	}

	var req EditBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	bid, err := h.lifecycle.EditBid(services.EditBidInput{
		BidID:    bidID,
		TaskerID: userID,
		Amount:   req.Amount,
		Message:  req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBidDTO(*bid))
}

// WithdrawBid deletes a pending bid
func (h *BidHandler) WithdrawBid(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	bidID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid bid id")
		return
	}

	if err := h.lifecycle.WithdrawBid(bidID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bid withdrawn successfully",
	})
}

// ListBidsForTask returns all bids on a task
func (h *BidHandler) ListBidsForTask(c *gin.Context) {
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return
	}

	bids, err := h.lifecycle.ListBidsForTask(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": dto.ToBidDTOs(bids)})
}

// ListMyBids returns all bids the authenticated tasker has placed
func (h *BidHandler) ListMyBids(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	bids, err := h.lifecycle.ListBidsByTasker(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": dto.ToBidDTOs(bids)})
}
