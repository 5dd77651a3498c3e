package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"inspection-report/internal/models"
	"inspection-report/internal/services"
)

const internalErrorMessage = "서버 오류가 발생했습니다"

// statusFor maps service sentinels to HTTP statuses. Anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidPIN),
		errors.Is(err, services.ErrTooManyPhotos):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrPINMismatch):
		return http.StatusForbidden
	case errors.Is(err, services.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateName):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is what a client may show. Internal failures are logged and
// replaced by a generic message.
func userMessage(logger *zap.Logger, op string, err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		logger.Error(op+" failed", zap.Error(err))
		return internalErrorMessage
	}
	return err.Error()
}

func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	status := statusFor(err)
	c.JSON(status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: userMessage(logger, op, err),
	})
}

// execError answers in the script-compatible shape, which is always a 200.
func execError(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: models.StatusError, Message: message})
}
