package service

import (
	"errors"
	"fmt"
	"time"

	"sprintops-backend/internal/database/models"
	apperrors "sprintops-backend/internal/errors"
	"sprintops-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskService handles business logic for tasks
type TaskService struct {
	repo      repository.TaskRepositoryInterface
	validator *validator.Validate
}

// NewTaskService creates a new task service
func NewTaskService(repo repository.TaskRepositoryInterface, validator *validator.Validate) *TaskService {
	return &TaskService{
		repo:      repo,
		validator: validator,
	}
}

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Title        string              `json:"title" validate:"required,min=1,max=255"`
	Description  *string             `json:"description"`
	Status       models.TaskStatus   `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS BLOCKED DONE"`
	Priority     models.TaskPriority `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssignedToID *uuid.UUID          `json:"assignedToId"`
	DueDate      *time.Time          `json:"dueDate"`
	BlockReason  *string             `json:"blockReason"`
}

// List retrieves all tasks of a team with assignees, newest first
func (s *TaskService) List(teamID uuid.UUID) ([]models.Task, error) {
	tasks, err := s.repo.ListByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create creates a task for a team. Creating directly into BLOCKED stamps
// blockedAt and keeps the supplied reason; any other status leaves both nil.
func (s *TaskService) Create(teamID uuid.UUID, req *CreateTaskRequest) (*models.Task, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       status,
		Priority:     priority,
		TeamID:       teamID,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
	}
	if status == models.TaskStatusBlocked {
		now := time.Now()
		task.BlockedAt = &now
		task.BlockReason = req.BlockReason
	}

	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get retrieves a task with its assignee and linked bugs
func (s *TaskService) Get(id, teamID uuid.UUID) (*models.Task, error) {
	task, err := s.repo.GetByTeamWithRelations(id, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Update applies a partial update through the task state rules
func (s *TaskService) Update(id, teamID uuid.UUID, req *UpdateTaskRequest) (*models.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByTeam(id, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	updated := ApplyTaskUpdate(*current, req, time.Now())
	if err := s.repo.Update(&updated); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &updated, nil
}

// Delete hard-deletes a task within the caller's team
func (s *TaskService) Delete(id, teamID uuid.UUID) error {
	_, err := s.repo.GetByTeam(id, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// validationError maps the first violated field of a validator error to the
// 400 taxonomy; other errors pass through unchanged.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return apperrors.NewValidationError(first.Field(), fmt.Sprintf("failed on the '%s' rule", first.Tag()))
	}
	return err
}
