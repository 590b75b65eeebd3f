package domain

import "time"

type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID         string     `db:"id" json:"id"`
	ProjectID  string     `db:"project_id" json:"project_id"`
	Title      string     `db:"title" json:"title"`
	Status     TaskStatus `db:"status" json:"status"`
	AssigneeID *string    `db:"assignee_id" json:"assignee_id"`
	DueDate    *time.Time `db:"due_date" json:"due_date"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// TaskPatch carries the fields present on a task update event. Nil means
// "not in the event", so absent fields never clobber local state.
type TaskPatch struct {
	ID         string      `json:"id"`
	ProjectID  *string     `json:"project_id"`
	Title      *string     `json:"title"`
	Status     *TaskStatus `json:"status"`
	AssigneeID *string     `json:"assignee_id"`
	DueDate    *time.Time  `json:"due_date"`
	CreatedAt  *time.Time  `json:"created_at"`
}
