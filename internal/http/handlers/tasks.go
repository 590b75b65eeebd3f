package handlers

import (
	"errors"
	"net/http"
	"strings"

	"artistcollab/internal/domain"
	"artistcollab/internal/repository"

	"github.com/gin-gonic/gin"
)

// loadProjectForView resolves the project and applies read visibility,
// answering 404 itself when the caller may not see it.
func (h *Handler) loadProjectForView(c *gin.Context, id string) *domain.Project {
	ctx := c.Request.Context()
	p, err := h.Projects.GetByID(ctx, id)
	if err != nil || !h.Access.CanView(ctx, p, profileID(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found or no access"})
		return nil
	}
	return p
}

func (h *Handler) ListTasks(c *gin.Context) {
	p := h.loadProjectForView(c, c.Param("id"))
	if p == nil {
		return
	}

	tasks, err := h.Tasks.ListByProject(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type createTaskRequest struct {
	Title string `json:"title"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()
	actor := profileID(c)

	p, err := h.Projects.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found or no access"})
		return
	}
	if !h.Access.CanWrite(ctx, p, actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a project member"})
		return
	}

	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	t := &domain.Task{ProjectID: p.ID, Title: title, Status: domain.StatusTodo}
	if err := h.Tasks.Create(ctx, t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	h.Bus.Publish(ctx, p.ID, domain.NewTaskEvent(domain.EventInsert, t))
	c.JSON(http.StatusOK, t)
}

type setStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

func (h *Handler) SetTaskStatus(c *gin.Context) {
	ctx := c.Request.Context()
	actor := profileID(c)

	t, err := h.Tasks.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	p, err := h.Projects.GetByID(ctx, t.ProjectID)
	if err != nil || !h.Access.CanWrite(ctx, p, actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a project member"})
		return
	}

	var req setStatusRequest
	if err := c.BindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be todo, doing or done"})
		return
	}

	updated, err := h.Tasks.SetStatus(ctx, t.ID, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	h.Bus.Publish(ctx, updated.ProjectID, domain.NewTaskEvent(domain.EventUpdate, updated))
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	actor := profileID(c)

	t, err := h.Tasks.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load task"})
		return
	}

	p, err := h.Projects.GetByID(ctx, t.ProjectID)
	if err != nil || !h.Access.CanWrite(ctx, p, actor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a project member"})
		return
	}

	if err := h.Tasks.Delete(ctx, t.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	h.Bus.Publish(ctx, t.ProjectID, domain.NewTaskDeleteEvent(t.ID))
	c.JSON(http.StatusOK, gin.H{"deleted": t.ID})
}
