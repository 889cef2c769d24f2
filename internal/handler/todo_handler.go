package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-tracker-api/internal/dto"
	"todo-tracker-api/internal/response"
	"todo-tracker-api/internal/service"
)

// TodoHandler handles todo-related requests
type TodoHandler struct {
	todoService service.TodoService
	logger      *zap.Logger
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoService service.TodoService, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	var req dto.CreateTodoRequest
	if !bindJSON(c, &req) {
		return
	}

	todo, err := h.todoService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, todo)
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(c *gin.Context) {
	todos, err := h.todoService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, todos)
}

// GetTodo handles GET /todos/:id
func (h *TodoHandler) GetTodo(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	todo, err := h.todoService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// UpdateTodo handles PATCH /todos/:id
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if !bindJSON(c, &req) {
		return
	}

	todo, err := h.todoService.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/:id
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.todoService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, "Todo deleted successfully", nil)
}

// ListChanges handles GET /todos/:id/changes
func (h *TodoHandler) ListChanges(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	changes, err := h.todoService.ListChanges(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, changes)
}

// ReorderTodos handles POST /todos/reorder. The request carries the complete
// ordered id sequence, not a diff.
func (h *TodoHandler) ReorderTodos(c *gin.Context) {
	var req dto.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	todos, err := h.todoService.Reorder(c.Request.Context(), req.TodoIDs)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, todos)
}
