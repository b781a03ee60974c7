package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskhive/marketplace-api/internal/errors"
	"github.com/taskhive/marketplace-api/internal/services"
)

// respondServiceError translates lifecycle service failures into HTTP
// responses: ownership sentinels become 403, structured engine errors
// map by kind, anything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotTaskOwner),
		errors.Is(err, services.ErrNotBidAuthor),
		errors.Is(err, services.ErrNotTaskParticipant):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.Respond(c, err)
	}
}
