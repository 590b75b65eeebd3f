package handlers

import (
	"net/http"
	"strings"

	"artistcollab/internal/domain"
	"artistcollab/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := profileID(c)

	var (
		projects []*domain.Project
		err      error
	)
	if viewer == "" {
		projects, err = h.Projects.ListPublic(ctx, 100)
	} else {
		projects, err = h.Projects.ListVisible(ctx, viewer, 100)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

type createProjectRequest struct {
	Title    string  `json:"title"`
	Brief    *string `json:"brief"`
	IsPublic bool    `json:"is_public"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	owner := profileID(c)

	var req createProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	title := strings.TrimSpace(req.Title)
	if len(title) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must be at least 3 characters"})
		return
	}

	ctx := c.Request.Context()
	p := &domain.Project{OwnerID: owner, Title: title, Brief: req.Brief, IsPublic: req.IsPublic}
	if err := h.Projects.Create(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	// Owner gets a membership row too. Failure here is not fatal for the
	// project itself, only worth knowing about.
	role := &domain.Role{ProjectID: p.ID, ProfileID: owner, Role: domain.RoleOwner, SharePct: 100}
	if err := h.Roles.Insert(ctx, role); err != nil {
		logger.Warn("could not add owner role row", "project", p.ID, "error", err)
	}

	c.JSON(http.StatusOK, p)
}

// GetProject answers 404 both for a missing project and for one the caller
// may not see: visibility rules hide existence.
func (h *Handler) GetProject(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := profileID(c)

	p, err := h.Projects.GetByID(ctx, c.Param("id"))
	if err != nil || !h.Access.CanView(ctx, p, viewer) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found or no access"})
		return
	}
	c.JSON(http.StatusOK, p)
}
