package repository

import (
	"time"

	"sprintops-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BugRepository handles database operations for bugs
type BugRepository struct {
	db *gorm.DB
}

// NewBugRepository creates a new bug repository
func NewBugRepository(db *gorm.DB) *BugRepository {
	return &BugRepository{db: db}
}

// Create creates a new bug
func (r *BugRepository) Create(bug *models.Bug) error {
	return r.db.Create(bug).Error
}

// GetByTeam retrieves a bug by ID within a team, with its linked task
func (r *BugRepository) GetByTeam(id, teamID uuid.UUID) (*models.Bug, error) {
	var bug models.Bug
	err := r.db.Preload("LinkedTask").
		First(&bug, "id = ? AND team_id = ?", id, teamID).Error
	if err != nil {
		return nil, err
	}
	return &bug, nil
}

// ListByTeam retrieves all bugs of a team with linked tasks, newest first
func (r *BugRepository) ListByTeam(teamID uuid.UUID) ([]models.Bug, error) {
	var bugs []models.Bug
	err := r.db.Preload("LinkedTask").
		Where("team_id = ?", teamID).
		Order("created_at desc").
		Find(&bugs).Error
	return bugs, err
}

// Update updates a bug
func (r *BugRepository) Update(bug *models.Bug) error {
	return r.db.Save(bug).Error
}

// Delete deletes a bug
func (r *BugRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Bug{}, "id = ?", id).Error
}

// CountByStatus returns the number of bugs per status for a team
func (r *BugRepository) CountByStatus(teamID uuid.UUID) (map[models.BugStatus]int64, error) {
	type row struct {
		Status models.BugStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Bug{}).
		Select("status, count(*) as count").
		Where("team_id = ?", teamID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.BugStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// ListActivitySince retrieves bugs created after since, plus bugs fixed after since.
// The analytics view buckets both series from this one candidate pool.
func (r *BugRepository) ListActivitySince(teamID uuid.UUID, since time.Time) ([]models.Bug, error) {
	var bugs []models.Bug
	err := r.db.
		Where("team_id = ?", teamID).
		Where("created_at >= ? OR (status = ? AND updated_at >= ?)",
			since, models.BugStatusFixed, since).
		Find(&bugs).Error
	return bugs, err
}
