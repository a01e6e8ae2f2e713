package repository

import (
	"time"

	"sprintops-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	Create(team *models.Team) error
	GetByID(id uuid.UUID) (*models.Team, error)
	CreateWithAdmin(team *models.Team, admin *models.User) error
	Delete(id uuid.UUID) error
}

// UserRepositoryInterface defines the interface for user repository operations.
// Team-scoped lookups take the caller's team id so rows outside that team are
// indistinguishable from missing rows.
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByTeam(id, teamID uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListByTeam(teamID uuid.UUID) ([]models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(task *models.Task) error
	GetByTeam(id, teamID uuid.UUID) (*models.Task, error)
	GetByTeamWithRelations(id, teamID uuid.UUID) (*models.Task, error)
	ListByTeam(teamID uuid.UUID) ([]models.Task, error)
	Update(task *models.Task) error
	Delete(id uuid.UUID) error
	CountByStatus(teamID uuid.UUID) (map[models.TaskStatus]int64, error)
	ListBlocked(teamID uuid.UUID, limit int) ([]models.Task, error)
	ListDueBefore(teamID uuid.UUID, cutoff time.Time, limit int) ([]models.Task, error)
	ListCompletedSince(teamID uuid.UUID, since time.Time) ([]models.Task, error)
	CountActiveByAssignee(teamID uuid.UUID) (map[uuid.UUID]int64, error)
}

// BugRepositoryInterface defines the interface for bug repository operations
type BugRepositoryInterface interface {
	Create(bug *models.Bug) error
	GetByTeam(id, teamID uuid.UUID) (*models.Bug, error)
	ListByTeam(teamID uuid.UUID) ([]models.Bug, error)
	Update(bug *models.Bug) error
	Delete(id uuid.UUID) error
	CountByStatus(teamID uuid.UUID) (map[models.BugStatus]int64, error)
	ListActivitySince(teamID uuid.UUID, since time.Time) ([]models.Bug, error)
}
