package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"sprintops-backend/internal/auth"
	"sprintops-backend/internal/database/models"
	apperrors "sprintops-backend/internal/errors"
	"sprintops-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tempPasswordLength = 8

// MemberService handles business logic for team membership. Role checks
// apply only here; task and bug CRUD is open to every team member.
type MemberService struct {
	userRepo  repository.UserRepositoryInterface
	taskRepo  repository.TaskRepositoryInterface
	validator *validator.Validate
}

// NewMemberService creates a new member service
func NewMemberService(userRepo repository.UserRepositoryInterface, taskRepo repository.TaskRepositoryInterface, validator *validator.Validate) *MemberService {
	return &MemberService{
		userRepo:  userRepo,
		taskRepo:  taskRepo,
		validator: validator,
	}
}

// AddMemberRequest represents the request to add a team member
type AddMemberRequest struct {
	Name  string          `json:"name" validate:"required,min=1,max=100"`
	Email string          `json:"email" validate:"required,email"`
	Role  models.UserRole `json:"role" validate:"omitempty,oneof=ADMIN MEMBER"`
}

// UpdateMemberRequest represents a partial member update
type UpdateMemberRequest struct {
	Name Optional[string]          `json:"name"`
	Role Optional[models.UserRole] `json:"role"`
}

// Validate rejects the whole update before any field is applied
func (req *UpdateMemberRequest) Validate() error {
	if req.Name.Set {
		if req.Name.Value == nil || *req.Name.Value == "" {
			return apperrors.NewValidationError("name", "name cannot be empty")
		}
	}
	if req.Role.Set {
		if req.Role.Value == nil || !req.Role.Value.Valid() {
			return apperrors.NewValidationError("role", "role must be one of ADMIN, MEMBER")
		}
	}
	return nil
}

// MemberResponse represents a team member with their active workload
type MemberResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Role            models.UserRole `json:"role"`
	CreatedAt       time.Time       `json:"createdAt"`
	ActiveTaskCount int64           `json:"activeTaskCount"`
}

// AddMemberResponse carries the one-time temporary credential alongside the
// created member. The member is expected to rotate it afterwards.
type AddMemberResponse struct {
	MemberResponse
	TempPassword string `json:"tempPassword"`
}

// List retrieves the team roster with active (not-done) task counts, oldest first
func (s *MemberService) List(teamID uuid.UUID) ([]MemberResponse, error) {
	users, err := s.userRepo.ListByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	counts, err := s.taskRepo.CountActiveByAssignee(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active tasks: %w", err)
	}

	members := make([]MemberResponse, len(users))
	for i, user := range users {
		members[i] = toMemberResponse(&user, counts[user.ID])
	}
	return members, nil
}

// Add creates a member in the caller's team with a generated temporary
// password. Admin only.
func (s *MemberService) Add(teamID uuid.UUID, callerRole models.UserRole, req *AddMemberRequest) (*AddMemberResponse, error) {
	if callerRole != models.UserRoleAdmin {
		return nil, apperrors.ErrAdminOnly
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	// Email uniqueness is global, not per-team
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary password: %w", err)
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash temporary password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.UserRoleMember
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		TeamID:       teamID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return &AddMemberResponse{
		MemberResponse: toMemberResponse(user, 0),
		TempPassword:   tempPassword,
	}, nil
}

// Update changes a member's name or role. Admin only.
func (s *MemberService) Update(teamID uuid.UUID, callerRole models.UserRole, id uuid.UUID, req *UpdateMemberRequest) (*MemberResponse, error) {
	if callerRole != models.UserRoleAdmin {
		return nil, apperrors.ErrAdminOnly
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByTeam(id, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if req.Name.Set {
		user.Name = *req.Name.Value
	}
	if req.Role.Set {
		user.Role = *req.Role.Value
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	resp := toMemberResponse(user, 0)
	return &resp, nil
}

// Remove deletes a member from the caller's team. Admin only, self-removal
// disallowed; the member's task assignments are detached, not deleted.
func (s *MemberService) Remove(teamID, callerID uuid.UUID, callerRole models.UserRole, id uuid.UUID) error {
	if callerRole != models.UserRoleAdmin {
		return apperrors.ErrAdminOnly
	}
	if id == callerID {
		return apperrors.ErrSelfRemoval
	}

	if _, err := s.userRepo.GetByTeam(id, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMemberNotFound
		}
		return fmt.Errorf("failed to get member: %w", err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

func toMemberResponse(user *models.User, activeTasks int64) MemberResponse {
	return MemberResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		CreatedAt:       user.CreatedAt,
		ActiveTaskCount: activeTasks,
	}
}

// generateTempPassword returns an 8-char lowercase alphanumeric credential
func generateTempPassword() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	buf := make([]byte, tempPasswordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		buf[i] = charset[n.Int64()]
	}
	return string(buf), nil
}
