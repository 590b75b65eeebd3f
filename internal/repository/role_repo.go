package repository

import (
	"context"
	"errors"

	"artistcollab/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoleRepository struct {
	db *pgxpool.Pool
}

func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{db: db}
}

// Get returns the membership row for one (project, profile) pair.
func (r *RoleRepository) Get(ctx context.Context, projectID, profileID string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRow(ctx,
		`SELECT project_id, profile_id, role, share_pct, created_at FROM project_roles
		 WHERE project_id = $1 AND profile_id = $2`, projectID, profileID).
		Scan(&role.ProjectID, &role.ProfileID, &role.Role, &role.SharePct, &role.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) error {
	if role.Role == "" {
		role.Role = domain.RoleMember
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO project_roles (project_id, profile_id, role, share_pct) VALUES ($1,$2,$3,$4)
		 RETURNING created_at`,
		role.ProjectID, role.ProfileID, role.Role, role.SharePct).Scan(&role.CreatedAt)
}

// ListMembers is the aggregate read: membership rows joined with the
// profiles they point at, for rendering the member list in one call.
func (r *RoleRepository) ListMembers(ctx context.Context, projectID string) ([]domain.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pr.profile_id, p.handle, p.display_name, pr.role, pr.share_pct
		 FROM project_roles pr
		 JOIN profiles p ON p.id = pr.profile_id
		 WHERE pr.project_id = $1
		 ORDER BY pr.created_at ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ProfileID, &m.Handle, &m.DisplayName, &m.Role, &m.SharePct); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}
