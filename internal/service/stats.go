package service

import (
	"fmt"
	"math"
	"time"

	"sprintops-backend/internal/database/models"
	"sprintops-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	recentBlockerLimit = 3
	dueThisWeekLimit   = 5
	analyticsBuckets   = 7
)

// StatsService computes the dashboard snapshot and the trend series. Every
// call recomputes from the store; nothing is cached or precomputed.
type StatsService struct {
	taskRepo repository.TaskRepositoryInterface
	bugRepo  repository.BugRepositoryInterface
}

// NewStatsService creates a new stats service
func NewStatsService(taskRepo repository.TaskRepositoryInterface, bugRepo repository.BugRepositoryInterface) *StatsService {
	return &StatsService{
		taskRepo: taskRepo,
		bugRepo:  bugRepo,
	}
}

// BlockerSummary is a blocked task as shown on the dashboard
type BlockerSummary struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	BlockReason *string          `json:"blockReason"`
	BlockedAt   *time.Time       `json:"blockedAt"`
	AssignedTo  *AssigneeSummary `json:"assignedTo"`
}

// AssigneeSummary carries just the assignee's display name
type AssigneeSummary struct {
	Name string `json:"name"`
}

// DueTaskSummary is an upcoming task as shown on the dashboard
type DueTaskSummary struct {
	ID       uuid.UUID           `json:"id"`
	Title    string              `json:"title"`
	Priority models.TaskPriority `json:"priority"`
	DueDate  *time.Time          `json:"dueDate"`
}

// SnapshotResponse is the team dashboard snapshot
type SnapshotResponse struct {
	ActiveTasks      int64            `json:"activeTasks"`
	BlockedTasks     int64            `json:"blockedTasks"`
	OpenBugs         int64            `json:"openBugs"`
	SprintCompletion int              `json:"sprintCompletion"`
	TotalTasks       int64            `json:"totalTasks"`
	DoneTasks        int64            `json:"doneTasks"`
	RecentBlockers   []BlockerSummary `json:"recentBlockers"`
	TasksDueThisWeek []DueTaskSummary `json:"tasksDueThisWeek"`
}

// AnalyticsResponse is seven parallel daily series ending today
type AnalyticsResponse struct {
	Days                 []string `json:"days"`
	TasksCompletedPerDay []int    `json:"tasksCompletedPerDay"`
	BugsOpenedPerDay     []int    `json:"bugsOpenedPerDay"`
	BugsFixedPerDay      []int    `json:"bugsFixedPerDay"`
	SprintProgress       []int    `json:"sprintProgress"`
}

// Snapshot computes the current team dashboard. The now parameter anchors
// "this week": tasks due through Saturday 23:59:59 of the week containing now.
func (s *StatsService) Snapshot(teamID uuid.UUID, now time.Time) (*SnapshotResponse, error) {
	taskCounts, err := s.taskRepo.CountByStatus(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	activeTasks := taskCounts[models.TaskStatusTodo] + taskCounts[models.TaskStatusInProgress]
	blockedTasks := taskCounts[models.TaskStatusBlocked]
	doneTasks := taskCounts[models.TaskStatusDone]
	var totalTasks int64
	for _, n := range taskCounts {
		totalTasks += n
	}

	bugCounts, err := s.bugRepo.CountByStatus(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bugs: %w", err)
	}

	blocked, err := s.taskRepo.ListBlocked(teamID, recentBlockerLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked tasks: %w", err)
	}
	blockers := make([]BlockerSummary, len(blocked))
	for i, task := range blocked {
		blockers[i] = BlockerSummary{
			ID:          task.ID,
			Title:       task.Title,
			BlockReason: task.BlockReason,
			BlockedAt:   task.BlockedAt,
		}
		if task.AssignedTo != nil {
			blockers[i].AssignedTo = &AssigneeSummary{Name: task.AssignedTo.Name}
		}
	}

	due, err := s.taskRepo.ListDueBefore(teamID, endOfWeek(now), dueThisWeekLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}
	dueTasks := make([]DueTaskSummary, len(due))
	for i, task := range due {
		dueTasks[i] = DueTaskSummary{
			ID:       task.ID,
			Title:    task.Title,
			Priority: task.Priority,
			DueDate:  task.DueDate,
		}
	}

	return &SnapshotResponse{
		ActiveTasks:      activeTasks,
		BlockedTasks:     blockedTasks,
		OpenBugs:         bugCounts[models.BugStatusOpen],
		SprintCompletion: roundPercent(doneTasks, totalTasks),
		TotalTasks:       totalTasks,
		DoneTasks:        doneTasks,
		RecentBlockers:   blockers,
		TasksDueThisWeek: dueTasks,
	}, nil
}

// Analytics computes the seven daily buckets ending on the day of now.
// The period widens the candidate window (7 or 30 days back) but never the
// number of buckets, so period=month still answers with a week of points.
func (s *StatsService) Analytics(teamID uuid.UUID, period string, now time.Time) (*AnalyticsResponse, error) {
	windowDays := 7
	if period == "month" {
		windowDays = 30
	}
	windowStart := now.AddDate(0, 0, -windowDays)

	completed, err := s.taskRepo.ListCompletedSince(teamID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}

	bugs, err := s.bugRepo.ListActivitySince(teamID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list bug activity: %w", err)
	}

	// Sprint progress is cumulative over the team's whole history, not the
	// window, so it needs every done task and the all-time total.
	allDone, err := s.taskRepo.ListCompletedSince(teamID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to list done tasks: %w", err)
	}
	taskCounts, err := s.taskRepo.CountByStatus(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	var totalTasks int64
	for _, n := range taskCounts {
		totalTasks += n
	}

	resp := &AnalyticsResponse{
		Days:                 make([]string, 0, analyticsBuckets),
		TasksCompletedPerDay: make([]int, 0, analyticsBuckets),
		BugsOpenedPerDay:     make([]int, 0, analyticsBuckets),
		BugsFixedPerDay:      make([]int, 0, analyticsBuckets),
		SprintProgress:       make([]int, 0, analyticsBuckets),
	}

	for i := analyticsBuckets - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayStart := startOfDay(day)
		dayEnd := endOfDay(day)

		resp.Days = append(resp.Days, day.Weekday().String()[:3])

		completedOnDay := 0
		for _, task := range completed {
			if within(task.UpdatedAt, dayStart, dayEnd) {
				completedOnDay++
			}
		}
		resp.TasksCompletedPerDay = append(resp.TasksCompletedPerDay, completedOnDay)

		openedOnDay := 0
		fixedOnDay := 0
		for _, bug := range bugs {
			if within(bug.CreatedAt, dayStart, dayEnd) {
				openedOnDay++
			}
			if bug.Status == models.BugStatusFixed && within(bug.UpdatedAt, dayStart, dayEnd) {
				fixedOnDay++
			}
		}
		resp.BugsOpenedPerDay = append(resp.BugsOpenedPerDay, openedOnDay)
		resp.BugsFixedPerDay = append(resp.BugsFixedPerDay, fixedOnDay)

		var doneByDay int64
		for _, task := range allDone {
			if !task.UpdatedAt.After(dayEnd) {
				doneByDay++
			}
		}
		resp.SprintProgress = append(resp.SprintProgress, roundPercent(doneByDay, totalTasks))
	}

	return resp, nil
}

// roundPercent is round(100*part/total), 0 when total is 0
func roundPercent(part, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// endOfWeek returns Saturday 23:59:59.999 of the week containing t
func endOfWeek(t time.Time) time.Time {
	offset := 6 - int(t.Weekday())
	sat := t.AddDate(0, 0, offset)
	return time.Date(sat.Year(), sat.Month(), sat.Day(), 23, 59, 59, int(999*time.Millisecond), sat.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
