package repository

import (
	"context"
	"errors"

	"artistcollab/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by readOne-style lookups when no row matched.
var ErrNotFound = errors.New("not found")

type ProfileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileCols = `id, handle, display_name, email, password_hash, city, bio, avatar_url, mediums, intents, created_at`

func (r *ProfileRepository) scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.Handle, &p.DisplayName, &p.Email, &p.PasswordHash,
		&p.City, &p.Bio, &p.AvatarURL, &p.Mediums, &p.Intents, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE id = $1`, id))
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE email = $1`, email))
}

func (r *ProfileRepository) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	return r.scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE handle = $1`, handle))
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	p.ID = uuid.NewString()
	if p.Mediums == nil {
		p.Mediums = []string{}
	}
	if p.Intents == nil {
		p.Intents = []string{}
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO profiles (id, handle, display_name, email, password_hash, city, bio, avatar_url, mediums, intents)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING created_at`,
		p.ID, p.Handle, p.DisplayName, p.Email, p.PasswordHash,
		p.City, p.Bio, p.AvatarURL, p.Mediums, p.Intents).Scan(&p.CreatedAt)
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET handle=$2, display_name=$3, city=$4, bio=$5, avatar_url=$6, mediums=$7, intents=$8
		 WHERE id = $1`,
		p.ID, p.Handle, p.DisplayName, p.City, p.Bio, p.AvatarURL, p.Mediums, p.Intents)
	return err
}

// List returns the artist directory, newest sign-ups first.
func (r *ProfileRepository) List(ctx context.Context, limit int) ([]*domain.Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 60
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+profileCols+` FROM profiles ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Profile
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}
