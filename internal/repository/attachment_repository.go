package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todo-tracker-api/internal/domain"
)

// AttachmentRepository defines the interface for attachment metadata access
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.TodoAttachment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TodoAttachment, error)
	FindByTodoID(ctx context.Context, todoID uuid.UUID) ([]*domain.TodoAttachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAllPaths(ctx context.Context) ([]string, error)
}

// attachmentRepositoryImpl is the GORM implementation of AttachmentRepository
type attachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new instance of AttachmentRepository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepositoryImpl{db: db}
}

// Create creates a new attachment record
func (r *attachmentRepositoryImpl) Create(ctx context.Context, attachment *domain.TodoAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// FindByID finds an attachment by its ID
func (r *attachmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.TodoAttachment, error) {
	var attachment domain.TodoAttachment
	if err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// FindByTodoID returns all attachments for a todo, newest first
func (r *attachmentRepositoryImpl) FindByTodoID(ctx context.Context, todoID uuid.UUID) ([]*domain.TodoAttachment, error) {
	var attachments []*domain.TodoAttachment
	if err := r.db.WithContext(ctx).
		Where("todo_id = ?", todoID).
		Order("created_at DESC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// Delete removes an attachment record by ID
func (r *attachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.TodoAttachment{}, "id = ?", id).Error
}

// FindAllPaths returns the storage paths of every attachment record.
// Used by the cleanup job to tell live blobs from orphans.
func (r *attachmentRepositoryImpl) FindAllPaths(ctx context.Context) ([]string, error) {
	var paths []string
	if err := r.db.WithContext(ctx).
		Model(&domain.TodoAttachment{}).
		Pluck("path", &paths).Error; err != nil {
		return nil, err
	}
	return paths, nil
}
