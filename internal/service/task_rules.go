package service

import (
	"time"

	"sprintops-backend/internal/database/models"
	apperrors "sprintops-backend/internal/errors"

	"github.com/google/uuid"
)

// UpdateTaskRequest represents a partial task update. Every field is
// tri-state: absent leaves the stored value unchanged, explicit null clears
// an optional field, a value replaces it.
type UpdateTaskRequest struct {
	Title        Optional[string]              `json:"title"`
	Description  Optional[string]              `json:"description"`
	Status       Optional[models.TaskStatus]   `json:"status"`
	Priority     Optional[models.TaskPriority] `json:"priority"`
	AssignedToID Optional[uuid.UUID]           `json:"assignedToId"`
	DueDate      Optional[time.Time]           `json:"dueDate"`
	BlockReason  Optional[string]              `json:"blockReason"`
}

// Validate rejects the whole update before any field is applied
func (req *UpdateTaskRequest) Validate() error {
	if req.Title.Set {
		if req.Title.Value == nil || *req.Title.Value == "" {
			return apperrors.NewValidationError("title", "title cannot be empty")
		}
	}
	if req.Status.Set {
		if req.Status.Value == nil || !req.Status.Value.Valid() {
			return apperrors.NewValidationError("status", "status must be one of TODO, IN_PROGRESS, BLOCKED, DONE")
		}
	}
	if req.Priority.Set {
		if req.Priority.Value == nil || !req.Priority.Value.Valid() {
			return apperrors.NewValidationError("priority", "priority must be one of LOW, MEDIUM, HIGH")
		}
	}
	return nil
}

// ApplyTaskUpdate produces the new task state from the current persisted
// state and a validated partial update. Pure: no store access, no clock
// access beyond the supplied now.
//
// Blocked-state bookkeeping, in precedence order:
//  1. entering BLOCKED stamps blockedAt and takes the supplied reason (or nil)
//  2. any other explicit status clears blockedAt and blockReason, even when
//     the update also carries a blockReason
//  3. a blockReason without a status transition overwrites the reason in
//     place and leaves blockedAt untouched
func ApplyTaskUpdate(current models.Task, req *UpdateTaskRequest, now time.Time) models.Task {
	updated := current

	switch {
	case req.Status.Set && *req.Status.Value == models.TaskStatusBlocked && current.Status != models.TaskStatusBlocked:
		updated.BlockedAt = &now
		updated.BlockReason = nil
		if req.BlockReason.Set {
			updated.BlockReason = req.BlockReason.Value
		}
	case req.Status.Set && *req.Status.Value != models.TaskStatusBlocked:
		updated.BlockedAt = nil
		updated.BlockReason = nil
	case req.BlockReason.Set:
		updated.BlockReason = req.BlockReason.Value
	}

	if req.Status.Set {
		updated.Status = *req.Status.Value
	}
	if req.Title.Set {
		updated.Title = *req.Title.Value
	}
	if req.Description.Set {
		updated.Description = req.Description.Value
	}
	if req.Priority.Set {
		updated.Priority = *req.Priority.Value
	}
	if req.AssignedToID.Set {
		updated.AssignedToID = req.AssignedToID.Value
	}
	if req.DueDate.Set {
		updated.DueDate = req.DueDate.Value
	}

	return updated
}
