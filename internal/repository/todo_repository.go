package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-tracker-api/internal/domain"
)

// TodoPosition pairs a todo id with its new ordinal position
type TodoPosition struct {
	ID       uuid.UUID
	Position int
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error)
	FindByIDWithAttachments(ctx context.Context, id uuid.UUID) (*domain.Todo, error)
	FindAll(ctx context.Context) ([]*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	UpdatePositions(ctx context.Context, positions []TodoPosition) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// todoRepositoryImpl is the GORM implementation of TodoRepository
type todoRepositoryImpl struct {
	db *gorm.DB
}

// NewTodoRepository creates a new instance of TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepositoryImpl{db: db}
}

// Create creates a new todo
func (r *todoRepositoryImpl) Create(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

// FindByID finds a todo by its ID
func (r *todoRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	var todo domain.Todo
	if err := r.db.WithContext(ctx).First(&todo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// FindByIDWithAttachments finds a todo with its attachments relation populated
func (r *todoRepositoryImpl) FindByIDWithAttachments(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	var todo domain.Todo
	if err := r.db.WithContext(ctx).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&todo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &todo, nil
}

// FindAll returns all todos ordered by position, then newest-created first.
// Todos that were never reordered share position 0 and fall back to creation
// order, which matches the original newest-first listing.
func (r *todoRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	if err := r.db.WithContext(ctx).
		Order("position ASC").
		Order("created_at DESC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Update persists all fields of the todo
func (r *todoRepositoryImpl) Update(ctx context.Context, todo *domain.Todo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

// UpdatePositions applies a batch of position assignments in one transaction
func (r *todoRepositoryImpl) UpdatePositions(ctx context.Context, positions []TodoPosition) error {
	if len(positions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range positions {
			if err := tx.Model(&domain.Todo{}).
				Where("id = ?", p.ID).
				Update("position", p.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a todo and all owned changes and attachments. The cascade is
// explicit so it behaves identically on sqlite and postgres regardless of
// foreign key enforcement.
func (r *todoRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("todo_id = ?", id).Delete(&domain.TodoChange{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_id = ?", id).Delete(&domain.TodoAttachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Todo{}, "id = ?", id).Error
	})
}

// Count returns the total number of todos
func (r *todoRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Todo{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
