package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	id := profileID(c)
	p, err := h.Profiles.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

type updateProfileRequest struct {
	Handle      *string  `json:"handle"`
	DisplayName *string  `json:"display_name"`
	City        *string  `json:"city"`
	Bio         *string  `json:"bio"`
	AvatarURL   *string  `json:"avatar_url"`
	Mediums     []string `json:"mediums"`
	Intents     []string `json:"intents"`
}

func (h *Handler) UpdateMe(c *gin.Context) {
	id := profileID(c)
	ctx := c.Request.Context()

	p, err := h.Profiles.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	var req updateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if req.Handle != nil && *req.Handle != "" {
		p.Handle = *req.Handle
	}
	if req.DisplayName != nil && *req.DisplayName != "" {
		p.DisplayName = *req.DisplayName
	}
	if req.City != nil {
		p.City = req.City
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		p.AvatarURL = req.AvatarURL
	}
	if req.Mediums != nil {
		p.Mediums = req.Mediums
	}
	if req.Intents != nil {
		p.Intents = req.Intents
	}

	if err := h.Profiles.Update(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}
