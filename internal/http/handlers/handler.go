package handlers

import (
	"artistcollab/internal/feed"
	"artistcollab/internal/repository"
	"artistcollab/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB *pgxpool.Pool

	Profiles *repository.ProfileRepository
	Projects *repository.ProjectRepository
	Tasks    *repository.TaskRepository
	Messages *repository.MessageRepository
	Roles    *repository.RoleRepository

	Auth   *service.AuthService
	Access *service.AccessService

	Bus *feed.Bus
	Hub *feed.Hub
}

func NewHandler(db *pgxpool.Pool, bus *feed.Bus, hub *feed.Hub) *Handler {
	profiles := repository.NewProfileRepository(db)
	roles := repository.NewRoleRepository(db)
	return &Handler{
		DB:       db,
		Profiles: profiles,
		Projects: repository.NewProjectRepository(db),
		Tasks:    repository.NewTaskRepository(db),
		Messages: repository.NewMessageRepository(db),
		Roles:    roles,
		Auth:     service.NewAuthService(profiles),
		Access:   service.NewAccessService(roles),
		Bus:      bus,
		Hub:      hub,
	}
}

// profileID returns the caller's profile id from the gin context, empty for
// anonymous requests that passed OptionalJWT.
func profileID(c *gin.Context) string {
	v, ok := c.Get("profile_id")
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
