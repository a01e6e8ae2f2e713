//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"sprintops-backend/internal/database/models"
	"sprintops-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TaskRepositoryTestSuite tests the TaskRepository
type TaskRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TaskRepository
	teamRepo      *TeamRepository
	userRepo      *UserRepository
	teamFactory   *testutils.TeamFactory
	userFactory   *testutils.UserFactory
	taskFactory   *testutils.TaskFactory
	team          *models.Team
}

// SetupSuite runs before all tests in the suite
func (suite *TaskRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	suite.repo = NewTaskRepository(suite.baseTestSuite.DB)
	suite.teamRepo = NewTeamRepository(suite.baseTestSuite.DB)
	suite.userRepo = NewUserRepository(suite.baseTestSuite.DB)
	suite.teamFactory = testutils.NewTeamFactory()
	suite.userFactory = testutils.NewUserFactory()
	suite.taskFactory = testutils.NewTaskFactory()
}

// TearDownSuite runs after all tests in the suite
func (suite *TaskRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TaskRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.team = suite.teamFactory.Create()
	err := suite.teamRepo.Create(suite.team)
	suite.NoError(err)
}

// TearDownTest runs after each test
func (suite *TaskRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new task
func (suite *TaskRepositoryTestSuite) TestCreate() {
	task := suite.taskFactory.WithTeam(suite.team.ID)

	err := suite.repo.Create(task)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, task.ID)
	suite.NotZero(task.CreatedAt)
	suite.NotZero(task.UpdatedAt)
}

// TestGetByTeam tests retrieving a task scoped to its team
func (suite *TaskRepositoryTestSuite) TestGetByTeam() {
	task := suite.taskFactory.WithTeam(suite.team.ID)
	err := suite.repo.Create(task)
	suite.NoError(err)

	retrieved, err := suite.repo.GetByTeam(task.ID, suite.team.ID)

	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.Equal(task.ID, retrieved.ID)
	suite.Equal(task.Title, retrieved.Title)
	suite.Equal(task.Status, retrieved.Status)
}

// TestGetByTeamCrossTeam tests that a task is invisible from another team
func (suite *TaskRepositoryTestSuite) TestGetByTeamCrossTeam() {
	task := suite.taskFactory.WithTeam(suite.team.ID)
	err := suite.repo.Create(task)
	suite.NoError(err)

	otherTeam := suite.teamFactory.WithName("Other Team")
	err = suite.teamRepo.Create(otherTeam)
	suite.NoError(err)

	retrieved, err := suite.repo.GetByTeam(task.ID, otherTeam.ID)

	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
	suite.Nil(retrieved)
}

// TestGetByTeamWithRelations tests preloading the assignee
func (suite *TaskRepositoryTestSuite) TestGetByTeamWithRelations() {
	user := suite.userFactory.WithTeam(suite.team.ID)
	err := suite.userRepo.Create(user)
	suite.NoError(err)

	task := suite.taskFactory.WithTeam(suite.team.ID)
	task.AssignedToID = &user.ID
	err = suite.repo.Create(task)
	suite.NoError(err)

	retrieved, err := suite.repo.GetByTeamWithRelations(task.ID, suite.team.ID)

	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.NotNil(retrieved.AssignedTo)
	suite.Equal(user.ID, retrieved.AssignedTo.ID)
	suite.Equal(user.Name, retrieved.AssignedTo.Name)
}

// TestListByTeam tests listing tasks newest first
func (suite *TaskRepositoryTestSuite) TestListByTeam() {
	older := suite.taskFactory.WithTeam(suite.team.ID)
	older.Title = "Older task"
	older.CreatedAt = time.Now().Add(-2 * time.Hour)
	err := suite.repo.Create(older)
	suite.NoError(err)

	newer := suite.taskFactory.WithTeam(suite.team.ID)
	newer.Title = "Newer task"
	newer.CreatedAt = time.Now().Add(-1 * time.Hour)
	err = suite.repo.Create(newer)
	suite.NoError(err)

	otherTeam := suite.teamFactory.WithName("Other Team")
	err = suite.teamRepo.Create(otherTeam)
	suite.NoError(err)
	foreign := suite.taskFactory.WithTeam(otherTeam.ID)
	err = suite.repo.Create(foreign)
	suite.NoError(err)

	tasks, err := suite.repo.ListByTeam(suite.team.ID)

	suite.NoError(err)
	suite.Len(tasks, 2)
	suite.Equal("Newer task", tasks[0].Title)
	suite.Equal("Older task", tasks[1].Title)
}

// TestUpdate tests updating a task
func (suite *TaskRepositoryTestSuite) TestUpdate() {
	task := suite.taskFactory.WithTeam(suite.team.ID)
	err := suite.repo.Create(task)
	suite.NoError(err)

	task.Title = "Renamed task"
	task.Status = models.TaskStatusInProgress
	err = suite.repo.Update(task)
	suite.NoError(err)

	updated, err := suite.repo.GetByTeam(task.ID, suite.team.ID)
	suite.NoError(err)
	suite.Equal("Renamed task", updated.Title)
	suite.Equal(models.TaskStatusInProgress, updated.Status)
}

// TestDelete tests deleting a task
func (suite *TaskRepositoryTestSuite) TestDelete() {
	task := suite.taskFactory.WithTeam(suite.team.ID)
	err := suite.repo.Create(task)
	suite.NoError(err)

	err = suite.repo.Delete(task.ID)
	suite.NoError(err)

	_, err = suite.repo.GetByTeam(task.ID, suite.team.ID)
	suite.Error(err)
	suite.Equal(gorm.ErrRecordNotFound, err)
}

// TestCountByStatus tests the per-status aggregation
func (suite *TaskRepositoryTestSuite) TestCountByStatus() {
	for _, status := range []models.TaskStatus{
		models.TaskStatusTodo,
		models.TaskStatusTodo,
		models.TaskStatusInProgress,
		models.TaskStatusDone,
	} {
		task := suite.taskFactory.WithTeam(suite.team.ID)
		task.Status = status
		if status == models.TaskStatusBlocked {
			now := time.Now()
			task.BlockedAt = &now
		}
		err := suite.repo.Create(task)
		suite.NoError(err)
	}

	counts, err := suite.repo.CountByStatus(suite.team.ID)

	suite.NoError(err)
	suite.Equal(int64(2), counts[models.TaskStatusTodo])
	suite.Equal(int64(1), counts[models.TaskStatusInProgress])
	suite.Equal(int64(1), counts[models.TaskStatusDone])
	suite.Equal(int64(0), counts[models.TaskStatusBlocked])
}

// TestListBlocked tests that blocked tasks come back most recent first, capped
func (suite *TaskRepositoryTestSuite) TestListBlocked() {
	times := []time.Time{
		time.Now().Add(-3 * time.Hour),
		time.Now().Add(-1 * time.Hour),
		time.Now().Add(-2 * time.Hour),
	}
	titles := []string{"First blocked", "Latest blocked", "Middle blocked"}
	for i := range times {
		task := suite.taskFactory.WithTeam(suite.team.ID)
		task.Title = titles[i]
		task.Status = models.TaskStatusBlocked
		task.BlockedAt = &times[i]
		err := suite.repo.Create(task)
		suite.NoError(err)
	}

	// An unblocked task must never show up
	todo := suite.taskFactory.WithTeam(suite.team.ID)
	err := suite.repo.Create(todo)
	suite.NoError(err)

	blocked, err := suite.repo.ListBlocked(suite.team.ID, 2)

	suite.NoError(err)
	suite.Len(blocked, 2)
	suite.Equal("Latest blocked", blocked[0].Title)
	suite.Equal("Middle blocked", blocked[1].Title)
}

// TestListDueBefore tests the upcoming-deadline query
func (suite *TaskRepositoryTestSuite) TestListDueBefore() {
	cutoff := time.Now().Add(72 * time.Hour)

	dueSoon := suite.taskFactory.WithTeam(suite.team.ID)
	dueSoon.Title = "Due tomorrow"
	tomorrow := time.Now().Add(24 * time.Hour)
	dueSoon.DueDate = &tomorrow
	err := suite.repo.Create(dueSoon)
	suite.NoError(err)

	dueLater := suite.taskFactory.WithTeam(suite.team.ID)
	dueLater.Title = "Due in two days"
	inTwoDays := time.Now().Add(48 * time.Hour)
	dueLater.DueDate = &inTwoDays
	err = suite.repo.Create(dueLater)
	suite.NoError(err)

	// Past the cutoff
	dueFar := suite.taskFactory.WithTeam(suite.team.ID)
	nextWeek := time.Now().Add(7 * 24 * time.Hour)
	dueFar.DueDate = &nextWeek
	err = suite.repo.Create(dueFar)
	suite.NoError(err)

	// Done tasks have no deadline pressure
	doneTask := suite.taskFactory.WithTeam(suite.team.ID)
	doneTask.Status = models.TaskStatusDone
	doneTask.DueDate = &tomorrow
	err = suite.repo.Create(doneTask)
	suite.NoError(err)

	// No due date at all
	noDue := suite.taskFactory.WithTeam(suite.team.ID)
	err = suite.repo.Create(noDue)
	suite.NoError(err)

	tasks, err := suite.repo.ListDueBefore(suite.team.ID, cutoff, 5)

	suite.NoError(err)
	suite.Len(tasks, 2)
	suite.Equal("Due tomorrow", tasks[0].Title)
	suite.Equal("Due in two days", tasks[1].Title)
}

// TestListCompletedSince tests filtering done tasks by completion time
func (suite *TaskRepositoryTestSuite) TestListCompletedSince() {
	recent := suite.taskFactory.WithTeam(suite.team.ID)
	recent.Title = "Recently done"
	recent.Status = models.TaskStatusDone
	recent.UpdatedAt = time.Now().Add(-1 * time.Hour)
	err := suite.repo.Create(recent)
	suite.NoError(err)

	old := suite.taskFactory.WithTeam(suite.team.ID)
	old.Title = "Done long ago"
	old.Status = models.TaskStatusDone
	old.CreatedAt = time.Now().Add(-10 * 24 * time.Hour)
	old.UpdatedAt = time.Now().Add(-10 * 24 * time.Hour)
	err = suite.repo.Create(old)
	suite.NoError(err)

	inProgress := suite.taskFactory.WithTeam(suite.team.ID)
	inProgress.Status = models.TaskStatusInProgress
	err = suite.repo.Create(inProgress)
	suite.NoError(err)

	tasks, err := suite.repo.ListCompletedSince(suite.team.ID, time.Now().Add(-24*time.Hour))
	suite.NoError(err)
	suite.Len(tasks, 1)
	suite.Equal("Recently done", tasks[0].Title)

	// The zero time means "all completions ever"
	all, err := suite.repo.ListCompletedSince(suite.team.ID, time.Time{})
	suite.NoError(err)
	suite.Len(all, 2)
}

// TestCountActiveByAssignee tests the per-member workload aggregation
func (suite *TaskRepositoryTestSuite) TestCountActiveByAssignee() {
	alice := suite.userFactory.WithTeam(suite.team.ID)
	err := suite.userRepo.Create(alice)
	suite.NoError(err)

	bob := suite.userFactory.WithTeam(suite.team.ID)
	err = suite.userRepo.Create(bob)
	suite.NoError(err)

	for _, status := range []models.TaskStatus{models.TaskStatusTodo, models.TaskStatusInProgress} {
		task := suite.taskFactory.WithTeam(suite.team.ID)
		task.Status = status
		task.AssignedToID = &alice.ID
		err = suite.repo.Create(task)
		suite.NoError(err)
	}

	// Done work does not count toward the active load
	done := suite.taskFactory.WithTeam(suite.team.ID)
	done.Status = models.TaskStatusDone
	done.AssignedToID = &alice.ID
	err = suite.repo.Create(done)
	suite.NoError(err)

	// Neither do unassigned tasks
	unassigned := suite.taskFactory.WithTeam(suite.team.ID)
	err = suite.repo.Create(unassigned)
	suite.NoError(err)

	counts, err := suite.repo.CountActiveByAssignee(suite.team.ID)

	suite.NoError(err)
	suite.Equal(int64(2), counts[alice.ID])
	suite.Equal(int64(0), counts[bob.ID])
}

// Run the test suite
func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}
