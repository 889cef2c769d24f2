package domain

import "github.com/google/uuid"

// TodoAttachment binds an uploaded file's storage location to a Todo.
// Path is always relative to the configured storage root so the root can be
// relocated without rewriting records.
type TodoAttachment struct {
	BaseModel
	TodoID           uuid.UUID `gorm:"type:uuid;not null;index:idx_todo_attachments_todo_id" json:"todoId"`
	Filename         string    `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalFilename string    `gorm:"type:varchar(255);not null" json:"originalFilename"`
	MimeType         string    `gorm:"type:varchar(100);not null" json:"mimeType"`
	Size             int64     `gorm:"not null" json:"size"`
	Path             string    `gorm:"type:varchar(500);not null" json:"path"`
	Todo             Todo      `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"todo,omitempty"`
}

// TableName specifies the table name for TodoAttachment
func (TodoAttachment) TableName() string {
	return "todo_attachments"
}
