package models

import (
	"github.com/google/uuid"
)

// Bug is a defect report owned by a team, optionally linked to a task
type Bug struct {
	BaseModel
	Title        string      `json:"title" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Description  *string     `json:"description"`
	Severity     BugSeverity `json:"severity" gorm:"type:varchar(20);not null;default:'MEDIUM'"`
	Status       BugStatus   `json:"status" gorm:"type:varchar(20);not null;default:'OPEN';index"`
	TeamID       uuid.UUID   `json:"teamId" gorm:"type:uuid;not null;index"`
	LinkedTaskID *uuid.UUID  `json:"linkedTaskId" gorm:"type:uuid;index"`

	// Relationships
	LinkedTask *Task `json:"linkedTask,omitempty" gorm:"foreignKey:LinkedTaskID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Bug
func (Bug) TableName() string {
	return "bugs"
}
