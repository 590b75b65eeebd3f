package handlers

import (
	"errors"
	"net/http"

	"artistcollab/internal/service"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	p, err := h.Auth.SignUp(c.Request.Context(), service.SignUpInput{
		Email:       req.Email,
		Password:    req.Password,
		Handle:      req.Handle,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email, password (8+ chars), handle and display name are required"})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		case errors.Is(err, service.ErrHandleTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "handle already taken"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create profile"})
		}
		return
	}

	token, err := service.GenerateJWT(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "profile": p})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	p, err := h.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := service.GenerateJWT(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "profile": p})
}
