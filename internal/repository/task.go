package repository

import (
	"time"

	"sprintops-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository handles database operations for tasks
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetByTeam retrieves a task by ID within a team
func (r *TaskRepository) GetByTeam(id, teamID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, "id = ? AND team_id = ?", id, teamID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByTeamWithRelations retrieves a task with its assignee and linked bugs
func (r *TaskRepository) GetByTeamWithRelations(id, teamID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Preload("AssignedTo").Preload("LinkedBugs").
		First(&task, "id = ? AND team_id = ?", id, teamID).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByTeam retrieves all tasks of a team with assignees, newest first
func (r *TaskRepository) ListByTeam(teamID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("AssignedTo").
		Where("team_id = ?", teamID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// Update updates a task
func (r *TaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task
func (r *TaskRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Task{}, "id = ?", id).Error
}

// CountByStatus returns the number of tasks per status for a team
func (r *TaskRepository) CountByStatus(teamID uuid.UUID) (map[models.TaskStatus]int64, error) {
	type row struct {
		Status models.TaskStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Task{}).
		Select("status, count(*) as count").
		Where("team_id = ?", teamID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// ListBlocked retrieves the most recently blocked tasks of a team
func (r *TaskRepository) ListBlocked(teamID uuid.UUID, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("AssignedTo").
		Where("team_id = ? AND status = ?", teamID, models.TaskStatusBlocked).
		Order("blocked_at desc").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// ListDueBefore retrieves non-done tasks due on or before the cutoff, soonest first
func (r *TaskRepository) ListDueBefore(teamID uuid.UUID, cutoff time.Time, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("team_id = ? AND status <> ? AND due_date IS NOT NULL AND due_date <= ?",
			teamID, models.TaskStatusDone, cutoff).
		Order("due_date asc").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// ListCompletedSince retrieves done tasks whose last update falls after since
func (r *TaskRepository) ListCompletedSince(teamID uuid.UUID, since time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("team_id = ? AND status = ? AND updated_at >= ?",
			teamID, models.TaskStatusDone, since).
		Find(&tasks).Error
	return tasks, err
}

// CountActiveByAssignee returns the number of not-done tasks per assigned user
func (r *TaskRepository) CountActiveByAssignee(teamID uuid.UUID) (map[uuid.UUID]int64, error) {
	type row struct {
		AssignedToID uuid.UUID
		Count        int64
	}
	var rows []row
	err := r.db.Model(&models.Task{}).
		Select("assigned_to_id, count(*) as count").
		Where("team_id = ? AND assigned_to_id IS NOT NULL AND status IN ?",
			teamID, []models.TaskStatus{models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusBlocked}).
		Group("assigned_to_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.AssignedToID] = r.Count
	}
	return counts, nil
}
