package dto

import (
	"time"

	"github.com/google/uuid"

	"todo-tracker-api/internal/domain"
)

// AttachmentResponse represents attachment metadata returned to clients
type AttachmentResponse struct {
	ID               uuid.UUID `json:"id"`
	TodoID           uuid.UUID `json:"todoId"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"originalFilename"`
	MimeType         string    `json:"mimeType"`
	Size             int64     `json:"size"`
	Path             string    `json:"path"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToAttachmentResponse converts a TodoAttachment domain model to its response DTO
func ToAttachmentResponse(attachment *domain.TodoAttachment) *AttachmentResponse {
	return &AttachmentResponse{
		ID:               attachment.ID,
		TodoID:           attachment.TodoID,
		Filename:         attachment.Filename,
		OriginalFilename: attachment.OriginalFilename,
		MimeType:         attachment.MimeType,
		Size:             attachment.Size,
		Path:             attachment.Path,
		CreatedAt:        attachment.CreatedAt,
	}
}

// ToAttachmentResponses converts a slice of TodoAttachment domain models
func ToAttachmentResponses(attachments []*domain.TodoAttachment) []*AttachmentResponse {
	responses := make([]*AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		responses = append(responses, ToAttachmentResponse(attachment))
	}
	return responses
}
