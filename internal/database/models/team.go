package models

// Team is the tenant boundary: every user, task and bug belongs to exactly one
type Team struct {
	BaseModel
	Name string `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`

	// Relationships
	Users []User `json:"users,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Bugs  []Bug  `json:"bugs,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}
