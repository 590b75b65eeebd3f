// Seed creates two demo artists, a public project with a few tasks and
// messages, and prints tokens for manual poking at the API.
package main

import (
	"context"
	"log"
	"os"

	"artistcollab/internal/db"
	"artistcollab/internal/domain"
	"artistcollab/internal/repository"
	"artistcollab/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	service.InitJWT(secret)

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	profiles := repository.NewProfileRepository(pool)
	projects := repository.NewProjectRepository(pool)
	roles := repository.NewRoleRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	messages := repository.NewMessageRepository(pool)
	auth := service.NewAuthService(profiles)

	owner := ensureArtist(ctx, auth, profiles, "mara", "Mara Voss", "mara@example.com")
	collab := ensureArtist(ctx, auth, profiles, "jt", "JT Okafor", "jt@example.com")

	brief := "Four-track EP, deadline end of quarter"
	project := &domain.Project{
		OwnerID:  owner.ID,
		Title:    "Night Drive EP",
		Brief:    &brief,
		IsPublic: true,
	}
	if err := projects.Create(ctx, project); err != nil {
		log.Fatalf("create project: %v", err)
	}
	if err := roles.Insert(ctx, &domain.Role{
		ProjectID: project.ID, ProfileID: owner.ID, Role: domain.RoleOwner, SharePct: 100,
	}); err != nil {
		log.Fatalf("owner role: %v", err)
	}
	if err := roles.Insert(ctx, &domain.Role{
		ProjectID: project.ID, ProfileID: collab.ID, Role: domain.RoleCollaborator, SharePct: 30,
	}); err != nil {
		log.Fatalf("collaborator role: %v", err)
	}

	for _, title := range []string{"Record scratch vocals", "Mix track 2", "Commission cover art"} {
		if err := tasks.Create(ctx, &domain.Task{ProjectID: project.ID, Title: title}); err != nil {
			log.Fatalf("create task: %v", err)
		}
	}
	if err := messages.Create(ctx, &domain.Message{
		ProjectID: project.ID, SenderID: collab.ID, Body: "Stems are up, take a listen",
	}); err != nil {
		log.Fatalf("create message: %v", err)
	}

	log.Printf("project=%s", project.ID)
	for _, p := range []*domain.Profile{owner, collab} {
		token, err := service.GenerateJWT(p.ID)
		if err != nil {
			log.Fatalf("token for %s: %v", p.Handle, err)
		}
		log.Printf("@%s id=%s token=%s", p.Handle, p.ID, token)
	}
}

func ensureArtist(ctx context.Context, auth *service.AuthService, profiles *repository.ProfileRepository, handle, name, email string) *domain.Profile {
	if existing, err := profiles.GetByHandle(ctx, handle); err == nil {
		log.Printf("@%s already exists", handle)
		return existing
	}
	p, err := auth.SignUp(ctx, service.SignUpInput{
		Email:       email,
		Password:    "seed-password-1",
		Handle:      handle,
		DisplayName: name,
	})
	if err != nil {
		log.Fatalf("sign up @%s: %v", handle, err)
	}
	return p
}
