package repository

import (
	"context"
	"errors"

	"artistcollab/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, title, brief, is_public, created_at FROM projects WHERE id = $1`,
		id).Scan(&p.ID, &p.OwnerID, &p.Title, &p.Brief, &p.IsPublic, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListVisible returns projects the viewer may see: public ones, their own,
// and ones they hold a membership row in. Newest first.
func (r *ProjectRepository) ListVisible(ctx context.Context, viewerID string, limit int) ([]*domain.Project, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT p.id, p.owner_id, p.title, p.brief, p.is_public, p.created_at
		 FROM projects p
		 LEFT JOIN project_roles pr ON pr.project_id = p.id AND pr.profile_id = $1
		 WHERE p.is_public OR p.owner_id = $1 OR pr.profile_id IS NOT NULL
		 ORDER BY p.created_at DESC LIMIT $2`, viewerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Brief, &p.IsPublic, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

// ListPublic serves anonymous viewers.
func (r *ProjectRepository) ListPublic(ctx context.Context, limit int) ([]*domain.Project, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, title, brief, is_public, created_at FROM projects
		 WHERE is_public ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Brief, &p.IsPublic, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	p.ID = uuid.NewString()
	return r.db.QueryRow(ctx,
		`INSERT INTO projects (id, owner_id, title, brief, is_public) VALUES ($1,$2,$3,$4,$5)
		 RETURNING created_at`,
		p.ID, p.OwnerID, p.Title, p.Brief, p.IsPublic).Scan(&p.CreatedAt)
}
