package repository

import (
	"context"

	"artistcollab/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, sender_id, body, created_at FROM messages
		 WHERE project_id = $1 ORDER BY created_at ASC, id ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	m.ID = uuid.NewString()
	return r.db.QueryRow(ctx,
		`INSERT INTO messages (id, project_id, sender_id, body) VALUES ($1,$2,$3,$4)
		 RETURNING created_at`,
		m.ID, m.ProjectID, m.SenderID, m.Body).Scan(&m.CreatedAt)
}
