package handlers

import (
	"net/http"

	"sprintops-backend/internal/auth"
	"sprintops-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BugHandler handles HTTP requests for bugs
type BugHandler struct {
	bugService *service.BugService
}

// NewBugHandler creates a new bug handler
func NewBugHandler(bugService *service.BugService) *BugHandler {
	return &BugHandler{
		bugService: bugService,
	}
}

// ListBugs lists the caller's team bugs
// @Summary List bugs
// @Description List all bugs of the caller's team with linked tasks, newest first
// @Tags bugs
// @Accept json
// @Produce json
// @Success 200 {array} models.Bug "Bugs"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /bugs [get]
func (h *BugHandler) ListBugs(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	bugs, err := h.bugService.List(session.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bugs)
}

// CreateBug creates a bug in the caller's team
// @Summary Create a bug
// @Description Create a bug. Severity defaults to MEDIUM and status to OPEN.
// @Tags bugs
// @Accept json
// @Produce json
// @Param bug body service.CreateBugRequest true "Bug data"
// @Success 201 {object} models.Bug "Created bug"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /bugs [post]
func (h *BugHandler) CreateBug(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req service.CreateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bug, err := h.bugService.Create(session.TeamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bug)
}

// GetBug retrieves a bug by ID
// @Summary Get bug by ID
// @Description Get a bug with its linked task. Bugs outside the caller's team answer 404.
// @Tags bugs
// @Accept json
// @Produce json
// @Param id path string true "Bug ID (UUID)"
// @Success 200 {object} models.Bug "Bug"
// @Failure 400 {object} ErrorResponse "Invalid bug ID"
// @Failure 404 {object} ErrorResponse "Bug not found"
// @Security BearerAuth
// @Router /bugs/{id} [get]
func (h *BugHandler) GetBug(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bug ID"})
		return
	}

	bug, err := h.bugService.Get(id, session.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bug)
}

// UpdateBug applies a partial update to a bug
// @Summary Update bug
// @Description Apply a partial update. Fields absent from the body stay unchanged; explicit nulls clear optional fields.
// @Tags bugs
// @Accept json
// @Produce json
// @Param id path string true "Bug ID (UUID)"
// @Param bug body service.UpdateBugRequest true "Fields to update"
// @Success 200 {object} models.Bug "Updated bug"
// @Failure 400 {object} ErrorResponse "Invalid request body or bug ID"
// @Failure 404 {object} ErrorResponse "Bug not found"
// @Security BearerAuth
// @Router /bugs/{id} [patch]
func (h *BugHandler) UpdateBug(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bug ID"})
		return
	}

	var req service.UpdateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bug, err := h.bugService.Update(id, session.TeamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bug)
}

// DeleteBug deletes a bug
// @Summary Delete bug
// @Description Hard-delete a bug
// @Tags bugs
// @Accept json
// @Produce json
// @Param id path string true "Bug ID (UUID)"
// @Success 200 {object} map[string]string "Deletion confirmation"
// @Failure 400 {object} ErrorResponse "Invalid bug ID"
// @Failure 404 {object} ErrorResponse "Bug not found"
// @Security BearerAuth
// @Router /bugs/{id} [delete]
func (h *BugHandler) DeleteBug(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bug ID"})
		return
	}

	if err := h.bugService.Delete(id, session.TeamID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bug deleted"})
}
