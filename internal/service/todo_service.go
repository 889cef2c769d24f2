package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"todo-tracker-api/internal/domain"
	"todo-tracker-api/internal/dto"
	"todo-tracker-api/internal/metrics"
	"todo-tracker-api/internal/repository"
	"todo-tracker-api/internal/response"
)

// TodoService defines the interface for todo business logic. It is the sole
// caller of the change recorder for CRUD flows.
type TodoService interface {
	Create(ctx context.Context, req *dto.CreateTodoRequest) (*dto.TodoResponse, error)
	List(ctx context.Context) ([]*dto.TodoResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TodoResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTodoRequest) (*dto.TodoResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListChanges(ctx context.Context, id uuid.UUID) ([]*dto.ChangeResponse, error)
	Reorder(ctx context.Context, todoIDs []uuid.UUID) ([]*dto.TodoResponse, error)
}

// todoServiceImpl is the implementation of TodoService
type todoServiceImpl struct {
	todoRepo   repository.TodoRepository
	changeRepo repository.ChangeRepository
	recorder   ChangeRecorder
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewTodoService creates a new instance of TodoService
func NewTodoService(
	todoRepo repository.TodoRepository,
	changeRepo repository.ChangeRepository,
	recorder ChangeRecorder,
	m *metrics.Metrics,
	logger *zap.Logger,
) TodoService {
	return &todoServiceImpl{
		todoRepo:   todoRepo,
		changeRepo: changeRepo,
		recorder:   recorder,
		metrics:    m,
		logger:     logger,
	}
}

// Create creates a new todo and records the creation
func (s *todoServiceImpl) Create(ctx context.Context, req *dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	todo := &domain.Todo{
		Title:     req.Title,
		Completed: false,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create todo", err.Error())
	}

	if err := s.recorder.RecordCreated(ctx, todo.ID, todo.Title); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record todo creation", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementTodoCreated()
	}

	s.logger.Info("Todo created",
		zap.String("todo_id", todo.ID.String()),
		zap.String("title", todo.Title),
	)

	return dto.ToTodoResponse(todo), nil
}

// List returns all todos in presentation order
func (s *todoServiceImpl) List(ctx context.Context) ([]*dto.TodoResponse, error) {
	todos, err := s.todoRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch todos", err.Error())
	}
	return dto.ToTodoResponses(todos), nil
}

// Get returns a todo with its attachments relation populated
func (s *todoServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.TodoResponse, error) {
	todo, err := s.todoRepo.FindByIDWithAttachments(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Todo not found", id.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch todo", err.Error())
	}
	return dto.ToTodoResponse(todo), nil
}

// Update applies a partial update. A change record is written for title and
// completed only when the field is present in the patch and differs from the
// stored value: title first, then completed, both before the todo itself is
// persisted. Position and columnId are pass-through fields and are never
// audited.
func (s *todoServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Todo not found", id.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch todo", err.Error())
	}

	if req.Title != nil && *req.Title != todo.Title {
		if err := s.recorder.RecordTitleUpdated(ctx, todo.ID, todo.Title, *req.Title); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record title change", err.Error())
		}
	}
	if req.Completed != nil && *req.Completed != todo.Completed {
		if err := s.recorder.RecordStatusUpdated(ctx, todo.ID, todo.Completed, *req.Completed); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record status change", err.Error())
		}
	}

	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}
	if req.Position != nil {
		todo.Position = *req.Position
	}
	if req.ColumnID != nil {
		// Opaque label; column existence is a client concern
		todo.ColumnID = req.ColumnID
	}

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update todo", err.Error())
	}

	return dto.ToTodoResponse(todo), nil
}

// Delete records the deletion and removes the todo. The cascade takes the
// todo's change and attachment records with it.
func (s *todoServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Todo not found", id.String())
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch todo", err.Error())
	}

	if err := s.recorder.RecordDeleted(ctx, todo.ID, todo.Title); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to record todo deletion", err.Error())
	}

	if err := s.todoRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete todo", err.Error())
	}

	s.logger.Info("Todo deleted",
		zap.String("todo_id", id.String()),
		zap.String("title", todo.Title),
	)

	return nil
}

// ListChanges returns the audit log for a todo, newest first
func (s *todoServiceImpl) ListChanges(ctx context.Context, id uuid.UUID) ([]*dto.ChangeResponse, error) {
	if _, err := s.todoRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Todo not found", id.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify todo", err.Error())
	}

	changes, err := s.changeRepo.FindByTodoID(ctx, id)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch changes", err.Error())
	}
	return dto.ToChangeResponses(changes), nil
}

// Reorder assigns positions 0..n-1 following the order of the given ids.
// Unknown ids are silently skipped. Todos omitted from the request are
// appended after the reordered set, preserving their previous relative
// order. Returns the full list in its new order.
func (s *todoServiceImpl) Reorder(ctx context.Context, todoIDs []uuid.UUID) ([]*dto.TodoResponse, error) {
	todos, err := s.todoRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch todos", err.Error())
	}

	known := make(map[uuid.UUID]bool, len(todos))
	for _, todo := range todos {
		known[todo.ID] = true
	}

	positions := make([]repository.TodoPosition, 0, len(todos))
	assigned := make(map[uuid.UUID]bool, len(todoIDs))
	next := 0

	for _, id := range todoIDs {
		if !known[id] || assigned[id] {
			continue
		}
		positions = append(positions, repository.TodoPosition{ID: id, Position: next})
		assigned[id] = true
		next++
	}

	// Omitted todos keep their prior relative order after the reordered set
	for _, todo := range todos {
		if assigned[todo.ID] {
			continue
		}
		positions = append(positions, repository.TodoPosition{ID: todo.ID, Position: next})
		next++
	}

	if err := s.todoRepo.UpdatePositions(ctx, positions); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to persist new order", err.Error())
	}

	s.logger.Info("Todos reordered",
		zap.Int("requested", len(todoIDs)),
		zap.Int("applied", len(positions)),
	)

	return s.List(ctx)
}
