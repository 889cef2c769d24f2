package domain

// Todo represents a single trackable task
type Todo struct {
	BaseModel
	Title     string  `gorm:"type:varchar(255);not null" json:"title"`
	Completed bool    `gorm:"not null;default:false" json:"completed"`
	Position  int     `gorm:"not null;default:0;index:idx_todos_position" json:"position"`
	ColumnID  *string `gorm:"type:varchar(100)" json:"columnId,omitempty"`

	Changes     []TodoChange     `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"changes,omitempty"`
	Attachments []TodoAttachment `gorm:"foreignKey:TodoID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
}

// TableName specifies the table name for Todo
func (Todo) TableName() string {
	return "todos"
}
