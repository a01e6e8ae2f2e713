package service_test

import (
	"testing"

	"sprintops-backend/internal/database/models"
	apperrors "sprintops-backend/internal/errors"
	"sprintops-backend/internal/mocks"
	"sprintops-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// MemberServiceTestSuite defines the test suite for MemberService
type MemberServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockUserRepo  *mocks.MockUserRepositoryInterface
	mockTaskRepo  *mocks.MockTaskRepositoryInterface
	memberService *service.MemberService
	teamID        uuid.UUID
}

// SetupTest sets up the test suite
func (suite *MemberServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockTaskRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.memberService = service.NewMemberService(suite.mockUserRepo, suite.mockTaskRepo, validator.New())
	suite.teamID = uuid.New()
}

// TearDownTest cleans up after each test
func (suite *MemberServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *MemberServiceTestSuite) TestListCarriesActiveTaskCounts() {
	alice := models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Alice", Email: "alice@test.com", Role: models.UserRoleAdmin, TeamID: suite.teamID}
	bob := models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Bob", Email: "bob@test.com", Role: models.UserRoleMember, TeamID: suite.teamID}

	suite.mockUserRepo.EXPECT().ListByTeam(suite.teamID).Return([]models.User{alice, bob}, nil)
	suite.mockTaskRepo.EXPECT().CountActiveByAssignee(suite.teamID).Return(map[uuid.UUID]int64{
		alice.ID: 3,
	}, nil)

	members, err := suite.memberService.List(suite.teamID)
	require.NoError(suite.T(), err)

	require.Len(suite.T(), members, 2)
	assert.Equal(suite.T(), int64(3), members[0].ActiveTaskCount)
	assert.Equal(suite.T(), int64(0), members[1].ActiveTaskCount)
}

func (suite *MemberServiceTestSuite) TestAddRequiresAdmin() {
	req := &service.AddMemberRequest{Name: "Sam", Email: "sam@test.com"}
	_, err := suite.memberService.Add(suite.teamID, models.UserRoleMember, req)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAdminOnly)
}

func (suite *MemberServiceTestSuite) TestAddGeneratesTempPassword() {
	req := &service.AddMemberRequest{Name: "Sam", Email: "sam@test.com"}

	suite.mockUserRepo.EXPECT().GetByEmail("sam@test.com").Return(nil, gorm.ErrRecordNotFound)
	suite.mockUserRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(user *models.User) error {
		assert.Equal(suite.T(), suite.teamID, user.TeamID)
		assert.Equal(suite.T(), models.UserRoleMember, user.Role)
		assert.NotEmpty(suite.T(), user.PasswordHash)
		return nil
	})

	resp, err := suite.memberService.Add(suite.teamID, models.UserRoleAdmin, req)
	require.NoError(suite.T(), err)

	assert.Len(suite.T(), resp.TempPassword, 8)
	assert.NotEqual(suite.T(), resp.TempPassword, "")
}

func (suite *MemberServiceTestSuite) TestAddRejectsDuplicateEmail() {
	req := &service.AddMemberRequest{Name: "Sam", Email: "sam@test.com"}

	suite.mockUserRepo.EXPECT().GetByEmail("sam@test.com").Return(&models.User{}, nil)

	_, err := suite.memberService.Add(suite.teamID, models.UserRoleAdmin, req)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
}

func (suite *MemberServiceTestSuite) TestAddRejectsInvalidEmail() {
	req := &service.AddMemberRequest{Name: "Sam", Email: "not-an-email"}
	_, err := suite.memberService.Add(suite.teamID, models.UserRoleAdmin, req)
	require.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *MemberServiceTestSuite) TestUpdateRequiresAdmin() {
	req := &service.UpdateMemberRequest{Name: service.NewOptional("New Name")}
	_, err := suite.memberService.Update(suite.teamID, models.UserRoleMember, uuid.New(), req)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAdminOnly)
}

func (suite *MemberServiceTestSuite) TestUpdateMemberRole() {
	id := uuid.New()
	user := &models.User{BaseModel: models.BaseModel{ID: id}, Name: "Sam", Role: models.UserRoleMember, TeamID: suite.teamID}

	suite.mockUserRepo.EXPECT().GetByTeam(id, suite.teamID).Return(user, nil)
	suite.mockUserRepo.EXPECT().Update(gomock.Any()).DoAndReturn(func(u *models.User) error {
		assert.Equal(suite.T(), models.UserRoleAdmin, u.Role)
		return nil
	})

	req := &service.UpdateMemberRequest{Role: service.NewOptional(models.UserRoleAdmin)}
	resp, err := suite.memberService.Update(suite.teamID, models.UserRoleAdmin, id, req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.UserRoleAdmin, resp.Role)
}

func (suite *MemberServiceTestSuite) TestUpdateCrossTeamIsNotFound() {
	id := uuid.New()
	suite.mockUserRepo.EXPECT().GetByTeam(id, suite.teamID).Return(nil, gorm.ErrRecordNotFound)

	req := &service.UpdateMemberRequest{Name: service.NewOptional("New Name")}
	_, err := suite.memberService.Update(suite.teamID, models.UserRoleAdmin, id, req)
	assert.ErrorIs(suite.T(), err, apperrors.ErrMemberNotFound)
}

func (suite *MemberServiceTestSuite) TestRemoveRequiresAdmin() {
	err := suite.memberService.Remove(suite.teamID, uuid.New(), models.UserRoleMember, uuid.New())
	assert.ErrorIs(suite.T(), err, apperrors.ErrAdminOnly)
}

func (suite *MemberServiceTestSuite) TestRemoveSelfIsRejected() {
	callerID := uuid.New()
	err := suite.memberService.Remove(suite.teamID, callerID, models.UserRoleAdmin, callerID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrSelfRemoval)
}

func (suite *MemberServiceTestSuite) TestRemoveMember() {
	id := uuid.New()
	suite.mockUserRepo.EXPECT().GetByTeam(id, suite.teamID).Return(&models.User{BaseModel: models.BaseModel{ID: id}}, nil)
	suite.mockUserRepo.EXPECT().Delete(id).Return(nil)

	err := suite.memberService.Remove(suite.teamID, uuid.New(), models.UserRoleAdmin, id)
	assert.NoError(suite.T(), err)
}

func (suite *MemberServiceTestSuite) TestRemoveCrossTeamIsNotFound() {
	id := uuid.New()
	suite.mockUserRepo.EXPECT().GetByTeam(id, suite.teamID).Return(nil, gorm.ErrRecordNotFound)

	err := suite.memberService.Remove(suite.teamID, uuid.New(), models.UserRoleAdmin, id)
	assert.ErrorIs(suite.T(), err, apperrors.ErrMemberNotFound)
}

func TestMemberServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MemberServiceTestSuite))
}
