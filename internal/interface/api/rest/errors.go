package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"excel-analytics-api/internal/application/services"
	"excel-analytics-api/internal/domain/user"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidOperation),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrUnsupportedMediaType),
		errors.Is(err, user.ErrEmailAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg}. Known failures expose their message;
// anything unclassified is logged and answered with fallback.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	status := statusOf(err)
	msg := err.Error()

	if status == http.StatusInternalServerError {
		logger.Error(fallback, zap.Error(err), zap.String("route", c.FullPath()))
		if !errors.Is(err, services.ErrUploadFailed) && !errors.Is(err, services.ErrAnalysisFailed) {
			msg = fallback
		}
	}

	c.JSON(status, gin.H{"error": msg})
}
