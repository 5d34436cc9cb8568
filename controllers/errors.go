package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

// QueryTimeout bounds every store call made on behalf of a request; main
// overrides it from configuration.
var QueryTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), QueryTimeout)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, services.ErrSlotTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrCapacityExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(c *gin.Context, err error) {
	utils.RespondError(c, statusFor(err), err)
}
