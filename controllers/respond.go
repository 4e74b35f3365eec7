package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kitchen-api/utils/apperr"
)

// respondErr maps the service error taxonomy to HTTP statuses in one
// place. Internal errors are logged with their cause and surfaced
// generically.
func respondErr(c *gin.Context, log *zap.Logger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	body := gin.H{"error": appErr.Message}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}

	switch appErr.Kind {
	case apperr.Validation:
		c.JSON(http.StatusBadRequest, body)
	case apperr.NotFound:
		c.JSON(http.StatusNotFound, body)
	case apperr.Conflict:
		c.JSON(http.StatusConflict, body)
	default:
		log.Error("internal error", zap.Error(appErr))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
