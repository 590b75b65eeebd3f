package handlers

import (
	"net/http"
	"strings"

	"artistcollab/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListMessages(c *gin.Context) {
	p := h.loadProjectForView(c, c.Param("id"))
	if p == nil {
		return
	}

	msgs, err := h.Messages.ListByProject(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func (h *Handler) SendMessage(c *gin.Context) {
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

	var req sendMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message body required"})
		return
	}

	m := &domain.Message{ProjectID: p.ID, SenderID: actor, Body: body}
	if err := h.Messages.Create(ctx, m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	h.Bus.Publish(ctx, p.ID, domain.NewMessageEvent(m))
	c.JSON(http.StatusOK, m)
}
