package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nusakarsa/refund-service/internal/domain"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Reasons []string `json:"reasons,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// respondError translates the domain error taxonomy to HTTP statuses.
// Untyped errors are reported as 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var de *domain.Error
	status := http.StatusInternalServerError
	message := "internal server error"
	var reasons []string

	switch domain.KindOf(err) {
	case domain.ErrKindNotFound:
		status, message = http.StatusNotFound, err.Error()
	case domain.ErrKindInvalidState:
		status, message = http.StatusConflict, err.Error()
	case domain.ErrKindUnauthorized:
		status, message = http.StatusForbidden, err.Error()
	case domain.ErrKindValidation:
		status, message = http.StatusUnprocessableEntity, err.Error()
	case domain.ErrKindRetryBlocked:
		status, message = http.StatusUnprocessableEntity, "refund cannot be retried"
		if errors.As(err, &de) {
			reasons = de.Reasons
		}
	case domain.ErrKindGateway:
		status, message = http.StatusBadGateway, "payment gateway error"
	}

	c.JSON(status, Response{Success: false, Message: message, Reasons: reasons})
}
