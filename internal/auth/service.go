package auth

import (
	"errors"
	"fmt"
	"time"

	"sprintops-backend/internal/database/models"
	apperrors "sprintops-backend/internal/errors"
	"sprintops-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService provides signup, login and token handling. Signup creates the
// team and its first admin in one transaction; every later member joins
// through the member endpoints.
type AuthService struct {
	teamRepo  repository.TeamRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	validator *validator.Validate
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(teamRepo repository.TeamRepositoryInterface, userRepo repository.UserRepositoryInterface, validator *validator.Validate, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		validator: validator,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// SignupRequest represents the request to create a team with its first admin
type SignupRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	TeamName *string `json:"teamName" validate:"omitempty,min=1,max=100"`
}

// LoginRequest represents the request to authenticate with credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents an authenticated user in auth responses
type UserResponse struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	TeamID uuid.UUID       `json:"teamId"`
}

// SessionResponse carries the session token alongside the user
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Signup creates a team and its admin user atomically and opens a session
func (s *AuthService) Signup(req *SignupRequest) (*SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	teamName := fmt.Sprintf("%s's Team", req.Name)
	if req.TeamName != nil && *req.TeamName != "" {
		teamName = *req.TeamName
	}

	team := &models.Team{Name: teamName}
	admin := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := s.teamRepo.CreateWithAdmin(team, admin); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return s.openSession(admin)
}

// Login authenticates credentials and opens a session. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(req *LoginRequest) (*SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.openSession(user)
}

func (s *AuthService) openSession(user *models.User) (*SessionResponse, error) {
	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{
		Token: token,
		User: UserResponse{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
			TeamID: user.TeamID,
		},
	}, nil
}

// validationError maps the first violated field of a validator error to the
// 400 taxonomy; other errors pass through unchanged.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return apperrors.NewValidationError(first.Field(), fmt.Sprintf("failed on the '%s' rule", first.Tag()))
	}
	return err
}
