package handlers

import (
	"net/http"
	"os"

	"artistcollab/internal/feed"
	"artistcollab/internal/logger"
	"artistcollab/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Feed upgrades to a websocket and streams change-feed events for one
// project. The token rides the query string: browsers cannot set headers
// on websocket dials. Anonymous subscribers are allowed for public
// projects, so a missing token only fails if it is present but invalid.
func (h *Handler) Feed(c *gin.Context) {
	viewer := ""
	if token := c.Query("token"); token != "" {
		id, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		viewer = id
	}

	projectID := c.Query("project")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project required"})
		return
	}

	ctx := c.Request.Context()
	p, err := h.Projects.GetByID(ctx, projectID)
	if err != nil || !h.Access.CanView(ctx, p, viewer) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found or no access"})
		return
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("feed upgrade failed", "error", err)
		return
	}

	client := feed.NewClient(projectID, viewer, conn, h.Hub)
	go client.Run()
}
