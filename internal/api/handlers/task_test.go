package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sprintops-backend/internal/api/handlers"
	"sprintops-backend/internal/auth"
	"sprintops-backend/internal/database/models"
	"sprintops-backend/internal/mocks"
	"sprintops-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *mocks.MockTaskRepositoryInterface
	handler  *handlers.TaskHandler
	router   *gin.Engine
	teamID   uuid.UUID
}

func (suite *TaskHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.handler = handlers.NewTaskHandler(service.NewTaskService(suite.mockRepo, validator.New()))
	suite.teamID = uuid.New()

	suite.router = gin.New()
	withSession := func(c *gin.Context) {
		c.Set("session", &auth.Session{
			UserID: uuid.New(),
			TeamID: suite.teamID,
			Role:   models.UserRoleMember,
			Email:  "alex@example.com",
		})
		c.Set("email", "alex@example.com")
		c.Next()
	}
	suite.router.GET("/tasks", withSession, suite.handler.ListTasks)
	suite.router.POST("/tasks", withSession, suite.handler.CreateTask)
	suite.router.GET("/tasks/:id", withSession, suite.handler.GetTask)
	suite.router.PATCH("/tasks/:id", withSession, suite.handler.UpdateTask)
	suite.router.DELETE("/tasks/:id", withSession, suite.handler.DeleteTask)

	// A route with no session middleware, to exercise the guard
	suite.router.GET("/bare/tasks", suite.handler.ListTasks)
}

func (suite *TaskHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	tasks := []models.Task{
		{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "Write onboarding docs", Status: models.TaskStatusTodo, Priority: models.TaskPriorityMedium, TeamID: suite.teamID},
	}
	suite.mockRepo.EXPECT().ListByTeam(suite.teamID).Return(tasks, nil)

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var got []models.Task
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 1)
	assert.Equal(suite.T(), "Write onboarding docs", got[0].Title)
}

func (suite *TaskHandlerTestSuite) TestListTasks_MissingSession_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/bare/tasks", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.JSONEq(suite.T(), `{"error":"Unauthorized"}`, w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	suite.mockRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(task *models.Task) error {
		assert.Equal(suite.T(), suite.teamID, task.TeamID)
		task.ID = uuid.New()
		return nil
	})

	body := bytes.NewBufferString(`{"title": "Write onboarding docs"}`)
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var got models.Task
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Write onboarding docs", got.Title)
	assert.Equal(suite.T(), models.TaskStatusTodo, got.Status)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle_BadRequest() {
	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPost, "/tasks", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask_InvalidID_BadRequest() {
	req := httptest.NewRequest(http.MethodGet, "/tasks/not-a-uuid", nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.JSONEq(suite.T(), `{"error":"Invalid task ID"}`, w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByTeamWithRelations(id, suite.teamID).Return(nil, gorm.ErrRecordNotFound)

	req := httptest.NewRequest(http.MethodGet, "/tasks/"+id.String(), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.JSONEq(suite.T(), `{"error":"task not found"}`, w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_StoreFailure_Internal() {
	hook := logrustest.NewGlobal()
	defer hook.Reset()

	id := uuid.New()
	suite.mockRepo.EXPECT().GetByTeam(id, suite.teamID).Return(nil, assert.AnError)

	body := bytes.NewBufferString(`{"title": "renamed"}`)
	req := httptest.NewRequest(http.MethodPatch, "/tasks/"+id.String(), body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.JSONEq(suite.T(), `{"error":"Internal server error"}`, w.Body.String())

	// The generic body hides the detail; it must land in the server log instead
	entry := hook.LastEntry()
	require.NotNil(suite.T(), entry)
	assert.Equal(suite.T(), logrus.ErrorLevel, entry.Level)
	assert.Contains(suite.T(), entry.Data["error"], assert.AnError.Error())
	assert.Equal(suite.T(), "alex@example.com", entry.Data["user"])
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	id := uuid.New()
	suite.mockRepo.EXPECT().GetByTeam(id, suite.teamID).Return(&models.Task{BaseModel: models.BaseModel{ID: id}}, nil)
	suite.mockRepo.EXPECT().Delete(id).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/tasks/"+id.String(), nil)
	w := httptest.NewRecorder()

	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"message":"Task deleted"}`, w.Body.String())
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
