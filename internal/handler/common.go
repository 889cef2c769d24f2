// Package handler provides HTTP request handlers for the API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todo-tracker-api/internal/response"
)

// parseUUIDParam parses a UUID path parameter, responding with 400 on failure.
// The boolean reports whether the caller should continue.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid id: "+c.Param(name))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body, responding with 400 on failure
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return false
	}
	return true
}
