package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-tracker-api/internal/domain"
)

// ChangeRepository defines the interface for audit log data access.
// Records are append-only: there is deliberately no update or single-record
// delete; rows go away only with the cascade in TodoRepository.Delete.
type ChangeRepository interface {
	Create(ctx context.Context, change *domain.TodoChange) error
	FindByTodoID(ctx context.Context, todoID uuid.UUID) ([]*domain.TodoChange, error)
	CountByTodoID(ctx context.Context, todoID uuid.UUID) (int64, error)
}

// changeRepositoryImpl is the GORM implementation of ChangeRepository
type changeRepositoryImpl struct {
	db *gorm.DB
}

// NewChangeRepository creates a new instance of ChangeRepository
func NewChangeRepository(db *gorm.DB) ChangeRepository {
	return &changeRepositoryImpl{db: db}
}

// Create appends a new change record
func (r *changeRepositoryImpl) Create(ctx context.Context, change *domain.TodoChange) error {
	return r.db.WithContext(ctx).Create(change).Error
}

// FindByTodoID returns all change records for a todo, newest first
func (r *changeRepositoryImpl) FindByTodoID(ctx context.Context, todoID uuid.UUID) ([]*domain.TodoChange, error) {
	var changes []*domain.TodoChange
	if err := r.db.WithContext(ctx).
		Where("todo_id = ?", todoID).
		Order("created_at DESC").
		Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

// CountByTodoID returns the number of change records for a todo
func (r *changeRepositoryImpl) CountByTodoID(ctx context.Context, todoID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.TodoChange{}).
		Where("todo_id = ?", todoID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
