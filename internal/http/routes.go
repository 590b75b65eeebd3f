package http

import (
	"time"

	"artistcollab/internal/config"
	"artistcollab/internal/feed"
	"artistcollab/internal/http/handlers"
	"artistcollab/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, bus *feed.Bus, hub *feed.Hub, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, bus, hub)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindowSecs) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindowSecs) * time.Second

	// Health checks skip rate limiting
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Auth
	auth := v1.Group("/auth")
	auth.Use(middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow))
	auth.POST("/signup", h.SignUp)
	auth.POST("/signin", h.SignIn)

	// Own profile
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.PUT("/me", middleware.JWT(), h.UpdateMe)

	// Artist directory
	v1.GET("/artists", h.ListArtists)
	v1.GET("/artists/lookup", h.LookupArtist)
	v1.GET("/artists/:id", h.GetArtist)

	// Projects
	v1.GET("/projects", middleware.OptionalJWT(), h.ListProjects)
	v1.POST("/projects", middleware.JWT(), h.CreateProject)
	v1.GET("/projects/:id", middleware.OptionalJWT(), h.GetProject)

	// Tasks
	v1.GET("/projects/:id/tasks", middleware.OptionalJWT(), h.ListTasks)
	v1.POST("/projects/:id/tasks", middleware.JWT(), h.CreateTask)
	v1.PATCH("/tasks/:id", middleware.JWT(), h.SetTaskStatus)
	v1.DELETE("/tasks/:id", middleware.JWT(), h.DeleteTask)

	// Chat
	v1.GET("/projects/:id/messages", middleware.OptionalJWT(), h.ListMessages)
	v1.POST("/projects/:id/messages", middleware.JWT(), h.SendMessage)

	// Membership
	v1.GET("/projects/:id/members", middleware.OptionalJWT(), h.ListMembers)
	v1.GET("/projects/:id/role", middleware.OptionalJWT(), h.MyRole)
	v1.POST("/projects/:id/members", middleware.JWT(), h.InviteMember)

	// Change feed (token via query string)
	r.GET("/ws", h.Feed)
}
