package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"todo-tracker-api/internal/domain"
	"todo-tracker-api/internal/dto"
	"todo-tracker-api/internal/metrics"
	"todo-tracker-api/internal/repository"
	"todo-tracker-api/internal/response"
)

// BlobStore is the storage backend the attachment manager writes blobs to.
// Keys are paths relative to the storage root.
type BlobStore interface {
	Save(key string, r io.Reader) (int64, error)
	Open(key string) (io.ReadCloser, error)
	Remove(key string) error
	Exists(key string) bool
	Rel(abs string) (string, error)
}

// AttachmentContent is an open stream over attachment bytes plus the
// metadata needed to serve it.
type AttachmentContent struct {
	Reader           io.ReadCloser
	MimeType         string
	OriginalFilename string
	Size             int64
}

// AttachmentService defines the interface for attachment business logic
type AttachmentService interface {
	Add(ctx context.Context, todoID uuid.UUID, upload Upload) (*dto.AttachmentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AttachmentResponse, error)
	List(ctx context.Context, todoID uuid.UUID) ([]*dto.AttachmentResponse, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Open(ctx context.Context, id uuid.UUID) (*AttachmentContent, error)
}

// attachmentServiceImpl is the implementation of AttachmentService
type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepository
	todoRepo       repository.TodoRepository
	recorder       ChangeRecorder
	store          BlobStore
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewAttachmentService creates a new instance of AttachmentService
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	todoRepo repository.TodoRepository,
	recorder ChangeRecorder,
	store BlobStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		todoRepo:       todoRepo,
		recorder:       recorder,
		store:          store,
		metrics:        m,
		logger:         logger,
	}
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Add stores the uploaded bytes under the storage root and registers a
// TodoAttachment pointing at them.
func (s *attachmentServiceImpl) Add(ctx context.Context, todoID uuid.UUID, upload Upload) (*dto.AttachmentResponse, error) {
	if _, err := s.todoRepo.FindByID(ctx, todoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Todo not found", todoID.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify todo", err.Error())
	}

	key, err := s.placeUpload(todoID, upload)
	if err != nil {
		return nil, err
	}

	attachment := &domain.TodoAttachment{
		TodoID:           todoID,
		Filename:         path.Base(key),
		OriginalFilename: upload.OriginalFilename,
		MimeType:         upload.MimeType,
		Size:             upload.Size,
		Path:             key,
	}

	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save attachment", err.Error())
	}

	if err := s.recorder.RecordAttachmentAdded(ctx, todoID, upload.OriginalFilename); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record attachment addition", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementAttachmentUploaded()
	}

	s.logger.Info("Attachment added",
		zap.String("todo_id", todoID.String()),
		zap.String("attachment_id", attachment.ID.String()),
		zap.String("path", key),
		zap.Int64("size", upload.Size),
	)

	return dto.ToAttachmentResponse(attachment), nil
}

// placeUpload resolves the storage key for the payload, writing buffered
// content out to disk. Staged files are treated as already in final position.
func (s *attachmentServiceImpl) placeUpload(todoID uuid.UUID, upload Upload) (string, error) {
	if staged, ok := upload.Staged(); ok {
		key, err := s.store.Rel(staged)
		if err != nil {
			return "", response.NewValidationError("Staged file is outside the storage root", err.Error())
		}
		return key, nil
	}

	content, ok := upload.Buffer()
	if !ok {
		return "", response.NewValidationError("Invalid file data: neither staged path nor buffer is available", "")
	}
	if upload.OriginalFilename == "" {
		return "", response.NewValidationError("Invalid file data: original filename is missing", "")
	}

	// {todoId}/{timestamp}-{sanitized original filename}, collision-resistant
	// without locking because the timestamp is per-upload.
	sanitized := whitespacePattern.ReplaceAllString(upload.OriginalFilename, "-")
	key := fmt.Sprintf("%s/%d-%s", todoID, time.Now().UnixMilli(), sanitized)

	if _, err := s.store.Save(key, bytes.NewReader(content)); err != nil {
		return "", response.NewAppError(response.ErrCodeInternal, "Failed to store attachment file", err.Error())
	}
	return key, nil
}

// Get returns attachment metadata by id
func (s *attachmentServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.AttachmentResponse, error) {
	attachment, err := s.findAttachment(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToAttachmentResponse(attachment), nil
}

// List returns all attachments for a todo, newest first
func (s *attachmentServiceImpl) List(ctx context.Context, todoID uuid.UUID) ([]*dto.AttachmentResponse, error) {
	if _, err := s.todoRepo.FindByID(ctx, todoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Todo not found", todoID.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify todo", err.Error())
	}

	attachments, err := s.attachmentRepo.FindByTodoID(ctx, todoID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch attachments", err.Error())
	}
	return dto.ToAttachmentResponses(attachments), nil
}

// Remove deletes the backing file (tolerating files already gone), records
// the removal, then deletes the attachment record.
func (s *attachmentServiceImpl) Remove(ctx context.Context, id uuid.UUID) error {
	attachment, err := s.findAttachment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(attachment.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Already gone, the desired end state either way
			s.logger.Warn("Attachment file already missing on delete",
				zap.String("attachment_id", id.String()),
				zap.String("path", attachment.Path),
			)
		} else {
			return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment file", err.Error())
		}
	}

	if err := s.recorder.RecordAttachmentDeleted(ctx, attachment.TodoID, attachment.OriginalFilename); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to record attachment removal", err.Error())
	}

	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete attachment", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementAttachmentDeleted()
	}

	s.logger.Info("Attachment removed",
		zap.String("attachment_id", id.String()),
		zap.String("todo_id", attachment.TodoID.String()),
	)

	return nil
}

// Open resolves the attachment and returns a stream over its content
func (s *attachmentServiceImpl) Open(ctx context.Context, id uuid.UUID) (*AttachmentContent, error) {
	attachment, err := s.findAttachment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.store.Exists(attachment.Path) {
		return nil, response.NewAppError(response.ErrCodeFileMissing, "Attachment file not found", attachment.Path)
	}

	reader, err := s.store.Open(attachment.Path)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to open attachment file", err.Error())
	}

	return &AttachmentContent{
		Reader:           reader,
		MimeType:         attachment.MimeType,
		OriginalFilename: attachment.OriginalFilename,
		Size:             attachment.Size,
	}, nil
}

func (s *attachmentServiceImpl) findAttachment(ctx context.Context, id uuid.UUID) (*domain.TodoAttachment, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Attachment not found", id.String())
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch attachment", err.Error())
	}
	return attachment, nil
}
