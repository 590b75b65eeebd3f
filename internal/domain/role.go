package domain

import "time"

const (
	RoleOwner        = "Owner"
	RoleCollaborator = "Collaborator"
	RoleMember       = "Member"
)

// Role is one membership row, keyed by (project, profile).
type Role struct {
	ProjectID string    `db:"project_id" json:"project_id"`
	ProfileID string    `db:"profile_id" json:"profile_id"`
	Role      string    `db:"role" json:"role"`
	SharePct  int       `db:"share_pct" json:"share_pct"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Member is the aggregate row returned by the member listing: the
// membership joined with the profile it points at.
type Member struct {
	ProfileID   string `db:"profile_id" json:"profile_id"`
	Handle      string `db:"handle" json:"handle"`
	DisplayName string `db:"display_name" json:"display_name"`
	Role        string `db:"role" json:"role"`
	SharePct    int    `db:"share_pct" json:"share_pct"`
}
