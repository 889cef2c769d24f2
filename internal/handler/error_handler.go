package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"todo-tracker-api/internal/response"
)

// handleServiceError maps service layer errors to HTTP responses
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "Resource not found")
		return
	}

	var appErr *response.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == response.ErrCodeInternal {
			logger.Error("Service error",
				zap.String("path", c.Request.URL.Path),
				zap.String("code", appErr.Code),
				zap.String("message", appErr.Message),
				zap.String("details", appErr.Details),
			)
		}
		response.SendError(c, mapErrorCodeToHTTPStatus(appErr.Code), appErr.Code, appErr.Message)
		return
	}

	logger.Error("Unhandled service error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case response.ErrCodeNotFound, response.ErrCodeFileMissing:
		return http.StatusNotFound
	case response.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
