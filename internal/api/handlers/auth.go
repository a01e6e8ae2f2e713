package handlers

import (
	"net/http"

	"sprintops-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles HTTP requests for signup and login
type AuthHandler struct {
	authService *auth.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup creates a team with its first admin user
// @Summary Sign up
// @Description Create a team and its first admin user atomically. The team name defaults to "<name>'s Team" when omitted.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body auth.SignupRequest true "Signup data"
// @Success 201 {object} auth.SessionResponse "Team and admin created"
// @Failure 400 {object} ErrorResponse "Invalid request body or email already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req auth.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authService.Signup(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// Login authenticates credentials and issues a session token
// @Summary Log in
// @Description Authenticate with email and password and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body auth.LoginRequest true "Credentials"
// @Success 200 {object} auth.SessionResponse "Session opened"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.authService.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
