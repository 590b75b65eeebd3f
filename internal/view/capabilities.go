// Package view holds the client-side state of one collaborative project
// view: a snapshot of the project's tasks, chat and membership kept
// eventually consistent with the backend through its change feed, plus the
// commands a member can issue against it.
package view

import (
	"context"
	"errors"

	"artistcollab/internal/domain"
)

// Identity resolves the current caller. Empty id means anonymous, which is
// a valid first-class state: public projects render without signing in.
type Identity interface {
	CurrentIdentity(ctx context.Context) (string, error)
}

// Store is the data capability the view needs from the backend. Single-row
// lookups return (nil, nil) when no row is visible to the caller, so
// "missing" and "failed" stay distinguishable at the boundary.
type Store interface {
	Project(ctx context.Context, id string) (*domain.Project, error)
	MyRole(ctx context.Context, projectID, profileID string) (*domain.Role, error)
	Tasks(ctx context.Context, projectID string) ([]domain.Task, error)
	Messages(ctx context.Context, projectID string) ([]domain.Message, error)
	Members(ctx context.Context, projectID string) ([]domain.Member, error)

	// LookupHandle resolves a public handle to a profile id; empty when
	// no such handle exists.
	LookupHandle(ctx context.Context, handle string) (string, error)

	InsertTask(ctx context.Context, projectID, title string) (*domain.Task, error)
	SetTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) error
	DeleteTask(ctx context.Context, taskID string) error
	InsertMessage(ctx context.Context, projectID, body string) (*domain.Message, error)
	InsertRole(ctx context.Context, role domain.Role) error
}

// Subscription is a live change-feed binding; Unsubscribe releases it.
type Subscription interface {
	Unsubscribe()
}

// Feed delivers insert/update/delete notifications for one table scoped to
// one project. Handlers are invoked sequentially per subscription.
type Feed interface {
	Subscribe(table, projectID string, handler func(ev domain.Event)) (Subscription, error)
}

var (
	ErrNoProject    = errors.New("no active project")
	ErrEmptyTitle   = errors.New("task title is empty")
	ErrEmptyBody    = errors.New("message body is empty")
	ErrEmptyHandle  = errors.New("handle is empty")
	ErrBadShare     = errors.New("share must be between 0 and 100")
	ErrBadStatus    = errors.New("status must be todo, doing or done")
	ErrNotSignedIn  = errors.New("not signed in")
	ErrNotOwner     = errors.New("only the project owner can invite collaborators")
	ErrNoSuchHandle = errors.New("no artist with that handle")
	ErrPending      = errors.New("previous submission still in flight")
)
