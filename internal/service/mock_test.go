package service

import (
	"bytes"
	"context"
	"io"

	"github.com/google/uuid"

	"todo-tracker-api/internal/domain"
	"todo-tracker-api/internal/repository"
)

// MockTodoRepository is a mock implementation of TodoRepository
type MockTodoRepository struct {
	CreateFunc                  func(ctx context.Context, todo *domain.Todo) error
	FindByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Todo, error)
	FindByIDWithAttachmentsFunc func(ctx context.Context, id uuid.UUID) (*domain.Todo, error)
	FindAllFunc                 func(ctx context.Context) ([]*domain.Todo, error)
	UpdateFunc                  func(ctx context.Context, todo *domain.Todo) error
	UpdatePositionsFunc         func(ctx context.Context, positions []repository.TodoPosition) error
	DeleteFunc                  func(ctx context.Context, id uuid.UUID) error
	CountFunc                   func(ctx context.Context) (int64, error)
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, todo)
	}
	return nil
}

func (m *MockTodoRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTodoRepository) FindByIDWithAttachments(ctx context.Context, id uuid.UUID) (*domain.Todo, error) {
	if m.FindByIDWithAttachmentsFunc != nil {
		return m.FindByIDWithAttachmentsFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTodoRepository) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, todo)
	}
	return nil
}

func (m *MockTodoRepository) UpdatePositions(ctx context.Context, positions []repository.TodoPosition) error {
	if m.UpdatePositionsFunc != nil {
		return m.UpdatePositionsFunc(ctx, positions)
	}
	return nil
}

func (m *MockTodoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTodoRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockChangeRepository is a mock implementation of ChangeRepository
type MockChangeRepository struct {
	CreateFunc        func(ctx context.Context, change *domain.TodoChange) error
	FindByTodoIDFunc  func(ctx context.Context, todoID uuid.UUID) ([]*domain.TodoChange, error)
	CountByTodoIDFunc func(ctx context.Context, todoID uuid.UUID) (int64, error)

	// Created collects every change passed to Create when CreateFunc is nil
	Created []*domain.TodoChange
}

func (m *MockChangeRepository) Create(ctx context.Context, change *domain.TodoChange) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, change)
	}
	m.Created = append(m.Created, change)
	return nil
}

func (m *MockChangeRepository) FindByTodoID(ctx context.Context, todoID uuid.UUID) ([]*domain.TodoChange, error) {
	if m.FindByTodoIDFunc != nil {
		return m.FindByTodoIDFunc(ctx, todoID)
	}
	return nil, nil
}

func (m *MockChangeRepository) CountByTodoID(ctx context.Context, todoID uuid.UUID) (int64, error) {
	if m.CountByTodoIDFunc != nil {
		return m.CountByTodoIDFunc(ctx, todoID)
	}
	return 0, nil
}

// MockAttachmentRepository is a mock implementation of AttachmentRepository
type MockAttachmentRepository struct {
	CreateFunc       func(ctx context.Context, attachment *domain.TodoAttachment) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.TodoAttachment, error)
	FindByTodoIDFunc func(ctx context.Context, todoID uuid.UUID) ([]*domain.TodoAttachment, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	FindAllPathsFunc func(ctx context.Context) ([]string, error)
}

func (m *MockAttachmentRepository) Create(ctx context.Context, attachment *domain.TodoAttachment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, attachment)
	}
	return nil
}

func (m *MockAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TodoAttachment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) FindByTodoID(ctx context.Context, todoID uuid.UUID) ([]*domain.TodoAttachment, error) {
	if m.FindByTodoIDFunc != nil {
		return m.FindByTodoIDFunc(ctx, todoID)
	}
	return nil, nil
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAttachmentRepository) FindAllPaths(ctx context.Context) ([]string, error) {
	if m.FindAllPathsFunc != nil {
		return m.FindAllPathsFunc(ctx)
	}
	return nil, nil
}

// MockChangeRecorder is a mock implementation of ChangeRecorder
type MockChangeRecorder struct {
	RecordCreatedFunc           func(ctx context.Context, todoID uuid.UUID, title string) error
	RecordTitleUpdatedFunc      func(ctx context.Context, todoID uuid.UUID, oldTitle, newTitle string) error
	RecordStatusUpdatedFunc     func(ctx context.Context, todoID uuid.UUID, oldCompleted, newCompleted bool) error
	RecordDeletedFunc           func(ctx context.Context, todoID uuid.UUID, title string) error
	RecordAttachmentAddedFunc   func(ctx context.Context, todoID uuid.UUID, originalFilename string) error
	RecordAttachmentDeletedFunc func(ctx context.Context, todoID uuid.UUID, originalFilename string) error

	// Calls collects the change types recorded when the per-method funcs are nil
	Calls []domain.ChangeType
}

func (m *MockChangeRecorder) RecordCreated(ctx context.Context, todoID uuid.UUID, title string) error {
	if m.RecordCreatedFunc != nil {
		return m.RecordCreatedFunc(ctx, todoID, title)
	}
	m.Calls = append(m.Calls, domain.ChangeTypeCreated)
	return nil
}

func (m *MockChangeRecorder) RecordTitleUpdated(ctx context.Context, todoID uuid.UUID, oldTitle, newTitle string) error {
	if m.RecordTitleUpdatedFunc != nil {
		return m.RecordTitleUpdatedFunc(ctx, todoID, oldTitle, newTitle)
	}
	m.Calls = append(m.Calls, domain.ChangeTypeTitleUpdated)
	return nil
}

func (m *MockChangeRecorder) RecordStatusUpdated(ctx context.Context, todoID uuid.UUID, oldCompleted, newCompleted bool) error {
	if m.RecordStatusUpdatedFunc != nil {
		return m.RecordStatusUpdatedFunc(ctx, todoID, oldCompleted, newCompleted)
	}
	m.Calls = append(m.Calls, domain.ChangeTypeStatusUpdated)
	return nil
}

func (m *MockChangeRecorder) RecordDeleted(ctx context.Context, todoID uuid.UUID, title string) error {
	if m.RecordDeletedFunc != nil {
		return m.RecordDeletedFunc(ctx, todoID, title)
	}
	m.Calls = append(m.Calls, domain.ChangeTypeDeleted)
	return nil
}

func (m *MockChangeRecorder) RecordAttachmentAdded(ctx context.Context, todoID uuid.UUID, originalFilename string) error {
	if m.RecordAttachmentAddedFunc != nil {
		return m.RecordAttachmentAddedFunc(ctx, todoID, originalFilename)
	}
	m.Calls = append(m.Calls, domain.ChangeTypeAttachmentAdded)
	return nil
}

func (m *MockChangeRecorder) RecordAttachmentDeleted(ctx context.Context, todoID uuid.UUID, originalFilename string) error {
	if m.RecordAttachmentDeletedFunc != nil {
		return m.RecordAttachmentDeletedFunc(ctx, todoID, originalFilename)
	}
	m.Calls = append(m.Calls, domain.ChangeTypeAttachmentDeleted)
	return nil
}

// MockBlobStore is a mock implementation of BlobStore backed by a map
type MockBlobStore struct {
	SaveFunc   func(key string, r io.Reader) (int64, error)
	OpenFunc   func(key string) (io.ReadCloser, error)
	RemoveFunc func(key string) error
	ExistsFunc func(key string) bool
	RelFunc    func(abs string) (string, error)

	// Files backs the default behavior when the per-method funcs are nil
	Files map[string][]byte
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{Files: make(map[string][]byte)}
}

func (m *MockBlobStore) Save(key string, r io.Reader) (int64, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(key, r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.Files[key] = data
	return int64(len(data)), nil
}

func (m *MockBlobStore) Open(key string) (io.ReadCloser, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(key)
	}
	data, ok := m.Files[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockBlobStore) Remove(key string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(key)
	}
	delete(m.Files, key)
	return nil
}

func (m *MockBlobStore) Exists(key string) bool {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(key)
	}
	_, ok := m.Files[key]
	return ok
}

func (m *MockBlobStore) Rel(abs string) (string, error) {
	if m.RelFunc != nil {
		return m.RelFunc(abs)
	}
	return abs, nil
}
