package handlers

import (
	"errors"
	"net/http"
	"strings"

	"artistcollab/internal/domain"
	"artistcollab/internal/repository"
	"artistcollab/internal/service"

	"github.com/gin-gonic/gin"
)

// ListMembers is the aggregate member read: roles joined with profiles,
// available to anyone who can view the project.
func (h *Handler) ListMembers(c *gin.Context) {
	p := h.loadProjectForView(c, c.Param("id"))
	if p == nil {
		return
	}

	members, err := h.Roles.ListMembers(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}
	if members == nil {
		members = []domain.Member{}
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

// MyRole returns the caller's own membership row, 404 when they have none
// yet. A missing row is a normal state, not an error, on the client side.
func (h *Handler) MyRole(c *gin.Context) {
	p := h.loadProjectForView(c, c.Param("id"))
	if p == nil {
		return
	}

	viewer := profileID(c)
	if viewer == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no role"})
		return
	}

	role, err := h.Roles.Get(c.Request.Context(), p.ID, viewer)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no role"})
		return
	}
	c.JSON(http.StatusOK, role)
}

type inviteRequest struct {
	ProfileID string `json:"profile_id"`
	Role      string `json:"role"`
	SharePct  int    `json:"share_pct"`
}

// InviteMember inserts a membership row. Owner-only: the client-side check
// is a UX gate, this is the enforcement point.
func (h *Handler) InviteMember(c *gin.Context) {
	ctx := c.Request.Context()
	actor := profileID(c)

	p, err := h.Projects.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found or no access"})
		return
	}
	if err := h.Access.CanInvite(p, actor); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "only the owner can invite collaborators"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "no access"})
		return
	}

	var req inviteRequest
	if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.ProfileID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile_id required"})
		return
	}
	if req.SharePct < 0 || req.SharePct > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "share_pct must be between 0 and 100"})
		return
	}

	if _, err := h.Profiles.GetByID(ctx, req.ProfileID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such artist"})
		return
	}

	role := &domain.Role{
		ProjectID: p.ID,
		ProfileID: req.ProfileID,
		Role:      req.Role,
		SharePct:  req.SharePct,
	}
	if role.Role == "" {
		role.Role = domain.RoleCollaborator
	}
	if err := h.Roles.Insert(ctx, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such artist"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "already a member"})
		return
	}
	c.JSON(http.StatusOK, role)
}
