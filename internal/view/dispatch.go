package view

import (
	"context"
	"strings"

	"artistcollab/internal/domain"
	"artistcollab/internal/logger"
)

// Commands mutate through the store and, for everything except task
// deletion, rely on the feed echo to surface the result locally. The
// submitting user therefore sees their own write only when the echo
// arrives; that window is the accepted cost of a single merge path.

// AddTask creates a task in the active project. No optimistic insert.
func (v *View) AddTask(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	v.mu.Lock()
	if v.project == nil {
		v.mu.Unlock()
		return ErrNoProject
	}
	if v.savingTask {
		v.mu.Unlock()
		return ErrPending
	}
	v.savingTask = true
	projectID := v.projectID
	v.mu.Unlock()

	_, err := v.store.InsertTask(ctx, projectID, title)

	v.mu.Lock()
	v.savingTask = false
	v.mu.Unlock()
	return err
}

// SetTaskStatus is fire-and-forget: local state is patched only by the
// feed echo, so the actor's own view lags a slow feed.
func (v *View) SetTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	if !status.Valid() {
		return ErrBadStatus
	}
	return v.store.SetTaskStatus(ctx, taskID, status)
}

// DeleteTask removes the row locally first so the deleter sees it vanish,
// then issues the delete. A failed delete cannot be patched back precisely
// (the echo never comes), so recovery is a fresh task snapshot.
func (v *View) DeleteTask(ctx context.Context, taskID string) error {
	v.mu.Lock()
	if v.project == nil {
		v.mu.Unlock()
		return ErrNoProject
	}
	gen := v.gen
	projectID := v.projectID
	for i := range v.tasks {
		if v.tasks[i].ID == taskID {
			v.tasks = append(v.tasks[:i], v.tasks[i+1:]...)
			break
		}
	}
	v.mu.Unlock()

	err := v.store.DeleteTask(ctx, taskID)
	if err == nil {
		return nil
	}

	tasks, lerr := v.store.Tasks(ctx, projectID)
	if lerr != nil {
		logger.Warn("task reload after failed delete also failed", "project", projectID, "error", lerr)
		return err
	}
	v.applyIfCurrent(gen, func() {
		v.tasks = tasks
		sortTasks(v.tasks)
	})
	return err
}

// SendMessage appends to the project chat. The caller's input can be
// cleared immediately: messages are append-only and deduplicated by id,
// so a lost confirmation costs nothing but a reload.
func (v *View) SendMessage(ctx context.Context, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return ErrEmptyBody
	}

	v.mu.Lock()
	if v.project == nil {
		v.mu.Unlock()
		return ErrNoProject
	}
	if v.me == "" {
		v.mu.Unlock()
		return ErrNotSignedIn
	}
	if v.sendingMsg {
		v.mu.Unlock()
		return ErrPending
	}
	v.sendingMsg = true
	projectID := v.projectID
	v.mu.Unlock()

	_, err := v.store.InsertMessage(ctx, projectID, body)

	v.mu.Lock()
	v.sendingMsg = false
	v.mu.Unlock()
	return err
}

// InviteMember resolves a handle to a profile and inserts a Collaborator
// membership row. Owner-gated locally as a UX check; the store enforces
// the policy for real. Completing the insert, successfully or not,
// triggers a full member re-read: membership changes are rare enough that
// incremental patching is not worth a third feed.
func (v *View) InviteMember(ctx context.Context, handle string, sharePct int) error {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return ErrEmptyHandle
	}
	if sharePct < 0 || sharePct > 100 {
		return ErrBadShare
	}

	v.mu.Lock()
	if v.project == nil {
		v.mu.Unlock()
		return ErrNoProject
	}
	if !v.isOwnerLocked() {
		v.mu.Unlock()
		return ErrNotOwner
	}
	if v.inviting {
		v.mu.Unlock()
		return ErrPending
	}
	v.inviting = true
	gen := v.gen
	projectID := v.projectID
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.inviting = false
		v.mu.Unlock()
	}()

	profileID, err := v.store.LookupHandle(ctx, handle)
	if err != nil {
		return err
	}
	if profileID == "" {
		return ErrNoSuchHandle
	}

	insertErr := v.store.InsertRole(ctx, domain.Role{
		ProjectID: projectID,
		ProfileID: profileID,
		Role:      domain.RoleCollaborator,
		SharePct:  sharePct,
	})

	if members, merr := v.store.Members(ctx, projectID); merr == nil {
		v.applyIfCurrent(gen, func() { v.members = members })
	} else {
		logger.Debug("member re-read after invite failed", "project", projectID, "error", merr)
	}
	return insertErr
}
