package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work owned by a team.
//
// BlockedAt is non-nil if and only if Status is BLOCKED; it is stamped when the
// status transitions into BLOCKED and cleared the moment it transitions away.
// BlockReason follows the same lifecycle.
type Task struct {
	BaseModel
	Title        string       `json:"title" gorm:"not null;size:255" validate:"required,min=1,max=255"`
	Description  *string      `json:"description"`
	Status       TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'TODO';index"`
	Priority     TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'MEDIUM'"`
	TeamID       uuid.UUID    `json:"teamId" gorm:"type:uuid;not null;index"`
	AssignedToID *uuid.UUID   `json:"assignedToId" gorm:"type:uuid;index"`
	DueDate      *time.Time   `json:"dueDate"`
	BlockReason  *string      `json:"blockReason"`
	BlockedAt    *time.Time   `json:"blockedAt"`

	// Relationships
	AssignedTo *User `json:"assignedTo,omitempty" gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	LinkedBugs []Bug `json:"linkedBugs,omitempty" gorm:"foreignKey:LinkedTaskID"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "tasks"
}
