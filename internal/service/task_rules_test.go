package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"sprintops-backend/internal/database/models"
	"sprintops-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TaskRulesTestSuite exercises the pure update rule engine without any store
type TaskRulesTestSuite struct {
	suite.Suite
	now time.Time
}

func (suite *TaskRulesTestSuite) SetupTest() {
	suite.now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func (suite *TaskRulesTestSuite) blockedTask(reason string) models.Task {
	blockedAt := suite.now.Add(-24 * time.Hour)
	return models.Task{
		Title:       "Migrate billing service",
		Status:      models.TaskStatusBlocked,
		Priority:    models.TaskPriorityMedium,
		BlockReason: &reason,
		BlockedAt:   &blockedAt,
	}
}

func (suite *TaskRulesTestSuite) todoTask() models.Task {
	return models.Task{
		Title:    "Implement login page",
		Status:   models.TaskStatusTodo,
		Priority: models.TaskPriorityMedium,
	}
}

func (suite *TaskRulesTestSuite) TestEnteringBlockedStampsBlockedAt() {
	req := &service.UpdateTaskRequest{
		Status:      service.NewOptional(models.TaskStatusBlocked),
		BlockReason: service.NewOptional("waiting on design"),
	}

	updated := service.ApplyTaskUpdate(suite.todoTask(), req, suite.now)

	assert.Equal(suite.T(), models.TaskStatusBlocked, updated.Status)
	require.NotNil(suite.T(), updated.BlockedAt)
	assert.Equal(suite.T(), suite.now, *updated.BlockedAt)
	require.NotNil(suite.T(), updated.BlockReason)
	assert.Equal(suite.T(), "waiting on design", *updated.BlockReason)
}

func (suite *TaskRulesTestSuite) TestEnteringBlockedWithoutReasonLeavesReasonNil() {
	req := &service.UpdateTaskRequest{
		Status: service.NewOptional(models.TaskStatusBlocked),
	}

	updated := service.ApplyTaskUpdate(suite.todoTask(), req, suite.now)

	assert.Equal(suite.T(), models.TaskStatusBlocked, updated.Status)
	require.NotNil(suite.T(), updated.BlockedAt)
	assert.Nil(suite.T(), updated.BlockReason)
}

func (suite *TaskRulesTestSuite) TestLeavingBlockedClearsBookkeeping() {
	req := &service.UpdateTaskRequest{
		Status: service.NewOptional(models.TaskStatusDone),
	}

	updated := service.ApplyTaskUpdate(suite.blockedTask("waiting on vendor"), req, suite.now)

	assert.Equal(suite.T(), models.TaskStatusDone, updated.Status)
	assert.Nil(suite.T(), updated.BlockedAt)
	assert.Nil(suite.T(), updated.BlockReason)
}

func (suite *TaskRulesTestSuite) TestLeavingBlockedClearsReasonEvenWhenSupplied() {
	req := &service.UpdateTaskRequest{
		Status:      service.NewOptional(models.TaskStatusInProgress),
		BlockReason: service.NewOptional("still stuck actually"),
	}

	updated := service.ApplyTaskUpdate(suite.blockedTask("waiting on vendor"), req, suite.now)

	assert.Equal(suite.T(), models.TaskStatusInProgress, updated.Status)
	assert.Nil(suite.T(), updated.BlockedAt)
	assert.Nil(suite.T(), updated.BlockReason)
}

func (suite *TaskRulesTestSuite) TestReasonOnlyUpdateKeepsBlockedAt() {
	current := suite.blockedTask("waiting on vendor")
	originalBlockedAt := *current.BlockedAt

	req := &service.UpdateTaskRequest{
		BlockReason: service.NewOptional("vendor escalated, ETA Friday"),
	}

	updated := service.ApplyTaskUpdate(current, req, suite.now)

	assert.Equal(suite.T(), models.TaskStatusBlocked, updated.Status)
	require.NotNil(suite.T(), updated.BlockedAt)
	assert.Equal(suite.T(), originalBlockedAt, *updated.BlockedAt)
	require.NotNil(suite.T(), updated.BlockReason)
	assert.Equal(suite.T(), "vendor escalated, ETA Friday", *updated.BlockReason)
}

func (suite *TaskRulesTestSuite) TestReasonNullClearsReasonInPlace() {
	current := suite.blockedTask("waiting on vendor")

	req := &service.UpdateTaskRequest{
		BlockReason: service.NullOptional[string](),
	}

	updated := service.ApplyTaskUpdate(current, req, suite.now)

	assert.Nil(suite.T(), updated.BlockReason)
	require.NotNil(suite.T(), updated.BlockedAt)
}

func (suite *TaskRulesTestSuite) TestReblockingKeepsTimestamp() {
	// BLOCKED -> BLOCKED is not a transition, so the stamp stays put
	current := suite.blockedTask("waiting on vendor")
	originalBlockedAt := *current.BlockedAt

	req := &service.UpdateTaskRequest{
		Status: service.NewOptional(models.TaskStatusBlocked),
	}

	updated := service.ApplyTaskUpdate(current, req, suite.now)

	require.NotNil(suite.T(), updated.BlockedAt)
	assert.Equal(suite.T(), originalBlockedAt, *updated.BlockedAt)
}

func (suite *TaskRulesTestSuite) TestAbsentFieldsStayUnchanged() {
	desc := "GitHub Actions workflow"
	current := suite.todoTask()
	current.Description = &desc

	req := &service.UpdateTaskRequest{
		Priority: service.NewOptional(models.TaskPriorityHigh),
	}

	updated := service.ApplyTaskUpdate(current, req, suite.now)

	assert.Equal(suite.T(), current.Title, updated.Title)
	assert.Equal(suite.T(), current.Status, updated.Status)
	require.NotNil(suite.T(), updated.Description)
	assert.Equal(suite.T(), desc, *updated.Description)
	assert.Equal(suite.T(), models.TaskPriorityHigh, updated.Priority)
}

func (suite *TaskRulesTestSuite) TestExplicitNullClearsOptionalFields() {
	due := suite.now.Add(72 * time.Hour)
	current := suite.todoTask()
	current.DueDate = &due

	req := &service.UpdateTaskRequest{
		DueDate:      service.NullOptional[time.Time](),
		AssignedToID: service.NullOptional[uuid.UUID](),
	}

	updated := service.ApplyTaskUpdate(current, req, suite.now)

	assert.Nil(suite.T(), updated.DueDate)
	assert.Nil(suite.T(), updated.AssignedToID)
}

func (suite *TaskRulesTestSuite) TestBlockedInvariantHoldsAfterEveryUpdate() {
	reqs := []*service.UpdateTaskRequest{
		{Status: service.NewOptional(models.TaskStatusBlocked)},
		{Status: service.NewOptional(models.TaskStatusDone)},
		{Status: service.NewOptional(models.TaskStatusTodo), BlockReason: service.NewOptional("orphan reason")},
		{BlockReason: service.NewOptional("reason without status")},
		{Title: service.NewOptional("renamed")},
	}

	for _, current := range []models.Task{suite.todoTask(), suite.blockedTask("stuck")} {
		for _, req := range reqs {
			updated := service.ApplyTaskUpdate(current, req, suite.now)
			if updated.Status == models.TaskStatusBlocked {
				assert.NotNil(suite.T(), updated.BlockedAt)
			} else {
				assert.Nil(suite.T(), updated.BlockedAt)
				// The reason is only guaranteed cleared on an explicit
				// transition away; reason-only patches keep it.
				if req.Status.Set {
					assert.Nil(suite.T(), updated.BlockReason)
				}
			}
		}
	}
}

func (suite *TaskRulesTestSuite) TestReasonOnlyUpdateOnUnblockedTaskKeepsReason() {
	req := &service.UpdateTaskRequest{
		BlockReason: service.NewOptional("reason without status"),
	}

	updated := service.ApplyTaskUpdate(suite.todoTask(), req, suite.now)

	assert.Equal(suite.T(), models.TaskStatusTodo, updated.Status)
	require.NotNil(suite.T(), updated.BlockReason)
	assert.Equal(suite.T(), "reason without status", *updated.BlockReason)
	assert.Nil(suite.T(), updated.BlockedAt)
}

func (suite *TaskRulesTestSuite) TestValidateRejectsEmptyTitle() {
	req := &service.UpdateTaskRequest{Title: service.NewOptional("")}
	assert.Error(suite.T(), req.Validate())

	req = &service.UpdateTaskRequest{Title: service.NullOptional[string]()}
	assert.Error(suite.T(), req.Validate())
}

func (suite *TaskRulesTestSuite) TestValidateRejectsBadEnums() {
	req := &service.UpdateTaskRequest{Status: service.NewOptional(models.TaskStatus("SHIPPED"))}
	assert.Error(suite.T(), req.Validate())

	req = &service.UpdateTaskRequest{Priority: service.NewOptional(models.TaskPriority("URGENT"))}
	assert.Error(suite.T(), req.Validate())

	req = &service.UpdateTaskRequest{Status: service.NullOptional[models.TaskStatus]()}
	assert.Error(suite.T(), req.Validate())
}

func (suite *TaskRulesTestSuite) TestUnmarshalDistinguishesAbsentNullValue() {
	var req service.UpdateTaskRequest
	err := json.Unmarshal([]byte(`{"description":null,"blockReason":"stuck"}`), &req)
	require.NoError(suite.T(), err)

	assert.False(suite.T(), req.Title.Set)
	assert.True(suite.T(), req.Description.Set)
	assert.Nil(suite.T(), req.Description.Value)
	assert.True(suite.T(), req.BlockReason.Set)
	require.NotNil(suite.T(), req.BlockReason.Value)
	assert.Equal(suite.T(), "stuck", *req.BlockReason.Value)
}

func TestTaskRulesTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRulesTestSuite))
}
