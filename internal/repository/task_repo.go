package repository

import (
	"context"
	"errors"

	"artistcollab/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskCols = `id, project_id, title, status, assignee_id, due_date, created_at`

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT `+taskCols+` FROM project_tasks WHERE id = $1`, id).
		Scan(&t.ID, &t.ProjectID, &t.Title, &t.Status, &t.AssigneeID, &t.DueDate, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByProject returns all tasks of a project, oldest first. The snapshot
// read and the reconciler both rely on this order.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskCols+` FROM project_tasks WHERE project_id = $1 ORDER BY created_at ASC, id ASC`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Status, &t.AssigneeID, &t.DueDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	t.ID = uuid.NewString()
	if t.Status == "" {
		t.Status = domain.StatusTodo
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO project_tasks (id, project_id, title, status, assignee_id, due_date)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING created_at`,
		t.ID, t.ProjectID, t.Title, t.Status, t.AssigneeID, t.DueDate).Scan(&t.CreatedAt)
}

// SetStatus patches the status and returns the full row after the update so
// the feed can carry the authoritative state.
func (r *TaskRepository) SetStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`UPDATE project_tasks SET status = $2 WHERE id = $1 RETURNING `+taskCols,
		id, status).Scan(&t.ID, &t.ProjectID, &t.Title, &t.Status, &t.AssigneeID, &t.DueDate, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM project_tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
