package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ListArtists serves the public artist directory.
func (h *Handler) ListArtists(c *gin.Context) {
	artists, err := h.Profiles.List(c.Request.Context(), 60)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list artists"})
		return
	}
	// never leak credentials into the directory
	for _, a := range artists {
		a.Email = ""
	}
	c.JSON(http.StatusOK, gin.H{"artists": artists})
}

func (h *Handler) GetArtist(c *gin.Context) {
	p, err := h.Profiles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artist not found"})
		return
	}
	p.Email = ""
	c.JSON(http.StatusOK, p)
}

// LookupArtist resolves a public handle to a profile id, used by the
// invite flow. A leading @ is tolerated.
func (h *Handler) LookupArtist(c *gin.Context) {
	handle := strings.TrimPrefix(strings.TrimSpace(c.Query("handle")), "@")
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handle required"})
		return
	}

	p, err := h.Profiles.GetByHandle(c.Request.Context(), handle)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no artist with that handle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": p.ID, "handle": p.Handle, "display_name": p.DisplayName})
}
