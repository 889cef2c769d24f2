package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-tracker-api/internal/domain"
	"todo-tracker-api/internal/repository"
)

// ChangeRecorder translates todo state transitions into audit log records.
// Each method appends exactly one TodoChange; callers are responsible for
// invoking it only on real transitions (new value provided and different).
type ChangeRecorder interface {
	RecordCreated(ctx context.Context, todoID uuid.UUID, title string) error
	RecordTitleUpdated(ctx context.Context, todoID uuid.UUID, oldTitle, newTitle string) error
	RecordStatusUpdated(ctx context.Context, todoID uuid.UUID, oldCompleted, newCompleted bool) error
	RecordDeleted(ctx context.Context, todoID uuid.UUID, title string) error
	RecordAttachmentAdded(ctx context.Context, todoID uuid.UUID, originalFilename string) error
	RecordAttachmentDeleted(ctx context.Context, todoID uuid.UUID, originalFilename string) error
}

// changeRecorderImpl is the implementation of ChangeRecorder
type changeRecorderImpl struct {
	changeRepo repository.ChangeRepository
	logger     *zap.Logger
}

// NewChangeRecorder creates a new instance of ChangeRecorder
func NewChangeRecorder(changeRepo repository.ChangeRepository, logger *zap.Logger) ChangeRecorder {
	return &changeRecorderImpl{
		changeRepo: changeRepo,
		logger:     logger,
	}
}

func (r *changeRecorderImpl) record(ctx context.Context, change *domain.TodoChange) error {
	if err := r.changeRepo.Create(ctx, change); err != nil {
		r.logger.Error("Failed to append change record",
			zap.String("todo_id", change.TodoID.String()),
			zap.String("change_type", string(change.ChangeType)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// RecordCreated records the creation of a todo
func (r *changeRecorderImpl) RecordCreated(ctx context.Context, todoID uuid.UUID, title string) error {
	return r.record(ctx, &domain.TodoChange{
		TodoID:     todoID,
		ChangeType: domain.ChangeTypeCreated,
		NewValue:   &title,
	})
}

// RecordTitleUpdated records a title transition
func (r *changeRecorderImpl) RecordTitleUpdated(ctx context.Context, todoID uuid.UUID, oldTitle, newTitle string) error {
	return r.record(ctx, &domain.TodoChange{
		TodoID:        todoID,
		ChangeType:    domain.ChangeTypeTitleUpdated,
		PreviousValue: &oldTitle,
		NewValue:      &newTitle,
	})
}

// RecordStatusUpdated records a completion status transition
func (r *changeRecorderImpl) RecordStatusUpdated(ctx context.Context, todoID uuid.UUID, oldCompleted, newCompleted bool) error {
	prev := statusLabel(oldCompleted)
	next := statusLabel(newCompleted)
	return r.record(ctx, &domain.TodoChange{
		TodoID:        todoID,
		ChangeType:    domain.ChangeTypeStatusUpdated,
		PreviousValue: &prev,
		NewValue:      &next,
	})
}

// RecordDeleted records the deletion of a todo with its last title
func (r *changeRecorderImpl) RecordDeleted(ctx context.Context, todoID uuid.UUID, title string) error {
	return r.record(ctx, &domain.TodoChange{
		TodoID:        todoID,
		ChangeType:    domain.ChangeTypeDeleted,
		PreviousValue: &title,
	})
}

// RecordAttachmentAdded records the addition of an attachment
func (r *changeRecorderImpl) RecordAttachmentAdded(ctx context.Context, todoID uuid.UUID, originalFilename string) error {
	return r.record(ctx, &domain.TodoChange{
		TodoID:     todoID,
		ChangeType: domain.ChangeTypeAttachmentAdded,
		NewValue:   &originalFilename,
	})
}

// RecordAttachmentDeleted records the removal of an attachment
func (r *changeRecorderImpl) RecordAttachmentDeleted(ctx context.Context, todoID uuid.UUID, originalFilename string) error {
	return r.record(ctx, &domain.TodoChange{
		TodoID:        todoID,
		ChangeType:    domain.ChangeTypeAttachmentDeleted,
		PreviousValue: &originalFilename,
	})
}

func statusLabel(completed bool) string {
	if completed {
		return domain.StatusCompleted
	}
	return domain.StatusNotCompleted
}
