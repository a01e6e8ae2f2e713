package handlers

import (
	"net/http"

	"sprintops-backend/internal/auth"
	"sprintops-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MemberHandler handles HTTP requests for team members
type MemberHandler struct {
	memberService *service.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// ListMembers lists the caller's team roster
// @Summary List team members
// @Description List the caller's team members with their active task counts, oldest first
// @Tags team
// @Accept json
// @Produce json
// @Success 200 {array} service.MemberResponse "Members"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /team [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	members, err := h.memberService.List(session.TeamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// AddMember adds a member to the caller's team
// @Summary Add team member
// @Description Add a member with a generated temporary password. The password is returned once in this response. Admin only.
// @Tags team
// @Accept json
// @Produce json
// @Param member body service.AddMemberRequest true "Member data"
// @Success 201 {object} service.AddMemberResponse "Created member with temporary password"
// @Failure 400 {object} ErrorResponse "Invalid request body or email already registered"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Security BearerAuth
// @Router /team [post]
func (h *MemberHandler) AddMember(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req service.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Add(session.TeamID, session.Role, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// UpdateMember updates a member's name or role
// @Summary Update team member
// @Description Update a member's name or role. Admin only; members outside the caller's team answer 404.
// @Tags team
// @Accept json
// @Produce json
// @Param id path string true "Member ID (UUID)"
// @Param member body service.UpdateMemberRequest true "Fields to update"
// @Success 200 {object} service.MemberResponse "Updated member"
// @Failure 400 {object} ErrorResponse "Invalid request body or member ID"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Failure 404 {object} ErrorResponse "Member not found"
// @Security BearerAuth
// @Router /team/{id} [patch]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var req service.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Update(session.TeamID, session.Role, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// RemoveMember removes a member from the caller's team
// @Summary Remove team member
// @Description Remove a member. Admin only; self-removal answers 400. The member's task assignments are cleared.
// @Tags team
// @Accept json
// @Produce json
// @Param id path string true "Member ID (UUID)"
// @Success 200 {object} map[string]string "Removal confirmation"
// @Failure 400 {object} ErrorResponse "Invalid member ID or self-removal"
// @Failure 403 {object} ErrorResponse "Caller is not an admin"
// @Failure 404 {object} ErrorResponse "Member not found"
// @Security BearerAuth
// @Router /team/{id} [delete]
func (h *MemberHandler) RemoveMember(c *gin.Context) {
	session, ok := auth.GetSession(c)
	if !ok {
		unauthorized(c)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	if err := h.memberService.Remove(session.TeamID, session.UserID, session.Role, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
