package models

import (
	"github.com/google/uuid"
)

// User is a member of exactly one team. Email uniqueness is global, not per-team.
type User struct {
	BaseModel
	Name         string    `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	PasswordHash string    `json:"-" gorm:"not null;size:100"`
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'MEMBER'"`
	TeamID       uuid.UUID `json:"teamId" gorm:"type:uuid;not null;index"`

	// Relationships
	AssignedTasks []Task `json:"assignedTasks,omitempty" gorm:"foreignKey:AssignedToID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
