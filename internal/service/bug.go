package service

import (
	"errors"
	"fmt"

	"sprintops-backend/internal/database/models"
	apperrors "sprintops-backend/internal/errors"
	"sprintops-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BugService handles business logic for bugs. Bug status is a plain
// two-value toggle; unlike tasks there is no derived-field bookkeeping.
type BugService struct {
	repo      repository.BugRepositoryInterface
	validator *validator.Validate
}

// NewBugService creates a new bug service
func NewBugService(repo repository.BugRepositoryInterface, validator *validator.Validate) *BugService {
	return &BugService{
		repo:      repo,
		validator: validator,
	}
}

// CreateBugRequest represents the request to create a bug
type CreateBugRequest struct {
	Title        string             `json:"title" validate:"required,min=1,max=255"`
	Description  *string            `json:"description"`
	Severity     models.BugSeverity `json:"severity" validate:"omitempty,oneof=LOW MEDIUM CRITICAL"`
	Status       models.BugStatus   `json:"status" validate:"omitempty,oneof=OPEN FIXED"`
	LinkedTaskID *uuid.UUID         `json:"linkedTaskId"`
}

// UpdateBugRequest represents a partial bug update with tri-state fields
type UpdateBugRequest struct {
	Title        Optional[string]             `json:"title"`
	Description  Optional[string]             `json:"description"`
	Severity     Optional[models.BugSeverity] `json:"severity"`
	Status       Optional[models.BugStatus]   `json:"status"`
	LinkedTaskID Optional[uuid.UUID]          `json:"linkedTaskId"`
}

// Validate rejects the whole update before any field is applied
func (req *UpdateBugRequest) Validate() error {
	if req.Title.Set {
		if req.Title.Value == nil || *req.Title.Value == "" {
			return apperrors.NewValidationError("title", "title cannot be empty")
		}
	}
	if req.Severity.Set {
		if req.Severity.Value == nil || !req.Severity.Value.Valid() {
			return apperrors.NewValidationError("severity", "severity must be one of LOW, MEDIUM, CRITICAL")
		}
	}
	if req.Status.Set {
		if req.Status.Value == nil || !req.Status.Value.Valid() {
			return apperrors.NewValidationError("status", "status must be one of OPEN, FIXED")
		}
	}
	return nil
}

// List retrieves all bugs of a team with linked tasks, newest first
func (s *BugService) List(teamID uuid.UUID) ([]models.Bug, error) {
	bugs, err := s.repo.ListByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bugs: %w", err)
	}
	return bugs, nil
}

// Create creates a bug for a team
func (s *BugService) Create(teamID uuid.UUID, req *CreateBugRequest) (*models.Bug, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	severity := req.Severity
	if severity == "" {
		severity = models.BugSeverityMedium
	}
	status := req.Status
	if status == "" {
		status = models.BugStatusOpen
	}

	bug := &models.Bug{
		Title:        req.Title,
		Description:  req.Description,
		Severity:     severity,
		Status:       status,
		TeamID:       teamID,
		LinkedTaskID: req.LinkedTaskID,
	}

	if err := s.repo.Create(bug); err != nil {
		return nil, fmt.Errorf("failed to create bug: %w", err)
	}

	return bug, nil
}

// Get retrieves a bug with its linked task
func (s *BugService) Get(id, teamID uuid.UUID) (*models.Bug, error) {
	bug, err := s.repo.GetByTeam(id, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBugNotFound
		}
		return nil, fmt.Errorf("failed to get bug: %w", err)
	}
	return bug, nil
}

// Update applies a partial update field by field
func (s *BugService) Update(id, teamID uuid.UUID, req *UpdateBugRequest) (*models.Bug, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bug, err := s.repo.GetByTeam(id, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBugNotFound
		}
		return nil, fmt.Errorf("failed to get bug: %w", err)
	}

	if req.Title.Set {
		bug.Title = *req.Title.Value
	}
	if req.Description.Set {
		bug.Description = req.Description.Value
	}
	if req.Severity.Set {
		bug.Severity = *req.Severity.Value
	}
	if req.Status.Set {
		bug.Status = *req.Status.Value
	}
	if req.LinkedTaskID.Set {
		bug.LinkedTaskID = req.LinkedTaskID.Value
	}

	if err := s.repo.Update(bug); err != nil {
		return nil, fmt.Errorf("failed to update bug: %w", err)
	}

	return bug, nil
}

// Delete hard-deletes a bug within the caller's team
func (s *BugService) Delete(id, teamID uuid.UUID) error {
	_, err := s.repo.GetByTeam(id, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBugNotFound
		}
		return fmt.Errorf("failed to get bug: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete bug: %w", err)
	}

	return nil
}
