package auth

import (
	"net/http"
	"strings"

	"sprintops-backend/internal/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionContextKey = "session"

// Session is the authenticated caller's identity, set on the request context
// by RequireAuth. Every team-scoped handler reads teamID from here and never
// from the request body.
type Session struct {
	UserID uuid.UUID
	TeamID uuid.UUID
	Role   models.UserRole
	Email  string
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	service *AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(service *AuthService) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// RequireAuth validates the bearer token and sets the session context.
// Every failure mode answers with the same 401 body.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			unauthorized(c)
			return
		}

		claims, err := m.service.ValidateJWT(tokenString)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(sessionContextKey, &Session{
			UserID: claims.UserID,
			TeamID: claims.TeamID,
			Role:   claims.Role,
			Email:  claims.Email,
		})
		c.Set("email", claims.Email)

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	c.Abort()
}

// GetSession is a helper function to extract the session from context
func GetSession(c *gin.Context) (*Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}

	session, ok := value.(*Session)
	return session, ok
}
