// Package response defines the API error taxonomy and response envelopes.
package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes surfaced to API clients
const (
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeFileMissing = "FILE_MISSING"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// AppError is a service-layer error carrying a client-facing code and message.
// Details is internal context for logs and is never sent to clients.
type AppError struct {
	Code    string
	Message string
	Details string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewNotFoundError creates an AppError with the NOT_FOUND code
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewValidationError creates an AppError with the VALIDATION_ERROR code
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// ErrorResponse is the envelope for error responses
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the client-facing error fields
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse is the envelope for success responses that carry a message
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SendError sends an error response
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// SendSuccess sends a success envelope with a message
func SendSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}
