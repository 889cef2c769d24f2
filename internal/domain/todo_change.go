package domain

import "github.com/google/uuid"

// ChangeType identifies the kind of transition a TodoChange records
type ChangeType string

const (
	ChangeTypeCreated           ChangeType = "created"
	ChangeTypeTitleUpdated      ChangeType = "title_updated"
	ChangeTypeStatusUpdated     ChangeType = "status_updated"
	ChangeTypeDeleted           ChangeType = "deleted"
	ChangeTypeAttachmentAdded   ChangeType = "attachment_added"
	ChangeTypeAttachmentDeleted ChangeType = "attachment_deleted"
)

// Snapshot strings recorded for completion status transitions
const (
	StatusCompleted    = "completed"
	StatusNotCompleted = "not completed"
)

// TodoChange is one immutable audit-log entry describing a single field
// transition or lifecycle event on a Todo. Rows are append-only: they are
// never updated, and are deleted only by cascade with the owning Todo.
type TodoChange struct {
	BaseModel
	TodoID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_todo_changes_todo_id" json:"todoId"`
	ChangeType    ChangeType `gorm:"type:varchar(50);not null" json:"changeType"`
	PreviousValue *string    `gorm:"type:varchar(255)" json:"previousValue,omitempty"`
	NewValue      *string    `gorm:"type:varchar(255)" json:"newValue,omitempty"`
	Todo          Todo       `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"todo,omitempty"`
}

// TableName specifies the table name for TodoChange
func (TodoChange) TableName() string {
	return "todo_changes"
}
