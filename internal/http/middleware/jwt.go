package middleware

import (
	"net/http"
	"strings"

	"artistcollab/internal/service"

	"github.com/gin-gonic/gin"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// JWT requires a valid token and stores the profile id in the gin context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}
		profileID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("profile_id", profileID)
		c.Next()
	}
}

// OptionalJWT resolves the caller when a token is present but lets
// anonymous requests through: public project reads are a first-class case.
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if profileID, err := service.ParseJWT(token); err == nil {
				c.Set("profile_id", profileID)
			}
		}
		c.Next()
	}
}
