package testutils

import (
	"fmt"
	"time"

	"sprintops-backend/internal/database/models"

	"github.com/google/uuid"
)

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team with default values
func (f *TeamFactory) Create() *models.Team {
	return &models.Team{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name: "Test Team",
	}
}

// WithName sets a custom name for the team
func (f *TeamFactory) WithName(name string) *models.Team {
	team := f.Create()
	team.Name = name
	return team
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. Emails are derived from the
// generated id so two factory users never collide on the unique index.
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "Jane Doe",
		Email:        fmt.Sprintf("jane.%s@test.com", id.String()[:8]),
		PasswordHash: "$2a$12$C6UzMDM.H6dfI/f/IKcEeO5sNhwrlDNCcBLVf5LbGOLzJbSSCSK2K",
		Role:         models.UserRoleMember,
		TeamID:       uuid.New(),
	}
}

// WithTeam sets the team ID for the user
func (f *UserFactory) WithTeam(teamID uuid.UUID) *models.User {
	user := f.Create()
	user.TeamID = teamID
	return user
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(role models.UserRole) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task with default values
func (f *TaskFactory) Create() *models.Task {
	return &models.Task{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Title:    "Test Task",
		Status:   models.TaskStatusTodo,
		Priority: models.TaskPriorityMedium,
		TeamID:   uuid.New(),
	}
}

// WithTeam sets the team ID for the task
func (f *TaskFactory) WithTeam(teamID uuid.UUID) *models.Task {
	task := f.Create()
	task.TeamID = teamID
	return task
}

// WithStatus sets a custom status for the task
func (f *TaskFactory) WithStatus(status models.TaskStatus) *models.Task {
	task := f.Create()
	task.Status = status
	if status == models.TaskStatusBlocked {
		now := time.Now()
		task.BlockedAt = &now
	}
	return task
}

// WithAssignee sets the assigned user for the task
func (f *TaskFactory) WithAssignee(userID uuid.UUID) *models.Task {
	task := f.Create()
	task.AssignedToID = &userID
	return task
}

// WithDueDate sets a due date for the task
func (f *TaskFactory) WithDueDate(due time.Time) *models.Task {
	task := f.Create()
	task.DueDate = &due
	return task
}

// BugFactory provides methods to create test Bug data
type BugFactory struct{}

// NewBugFactory creates a new BugFactory
func NewBugFactory() *BugFactory {
	return &BugFactory{}
}

// Create creates a test Bug with default values
func (f *BugFactory) Create() *models.Bug {
	return &models.Bug{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Title:    "Test Bug",
		Severity: models.BugSeverityMedium,
		Status:   models.BugStatusOpen,
		TeamID:   uuid.New(),
	}
}

// WithTeam sets the team ID for the bug
func (f *BugFactory) WithTeam(teamID uuid.UUID) *models.Bug {
	bug := f.Create()
	bug.TeamID = teamID
	return bug
}

// WithStatus sets a custom status for the bug
func (f *BugFactory) WithStatus(status models.BugStatus) *models.Bug {
	bug := f.Create()
	bug.Status = status
	return bug
}

// WithLinkedTask links the bug to a task
func (f *BugFactory) WithLinkedTask(taskID uuid.UUID) *models.Bug {
	bug := f.Create()
	bug.LinkedTaskID = &taskID
	return bug
}
