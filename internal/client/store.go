package client

import (
	"context"
	"net/http"
	"net/url"

	"artistcollab/internal/domain"
	"artistcollab/internal/view"
)

var (
	_ view.Identity = (*API)(nil)
	_ view.Store    = (*API)(nil)
	_ view.Feed     = (*FeedClient)(nil)
)

// Project returns (nil, nil) on 404: from the caller's side a hidden
// private project and a missing one look the same.
func (a *API) Project(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	err := a.doJSON(ctx, http.MethodGet, "/api/v1/projects/"+id, nil, &p)
	if IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *API) MyRole(ctx context.Context, projectID, _ string) (*domain.Role, error) {
	var r domain.Role
	err := a.doJSON(ctx, http.MethodGet, "/api/v1/projects/"+projectID+"/role", nil, &r)
	if IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (a *API) Tasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	var out struct {
		Tasks []domain.Task `json:"tasks"`
	}
	if err := a.doJSON(ctx, http.MethodGet, "/api/v1/projects/"+projectID+"/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (a *API) Messages(ctx context.Context, projectID string) ([]domain.Message, error) {
	var out struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := a.doJSON(ctx, http.MethodGet, "/api/v1/projects/"+projectID+"/messages", nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (a *API) Members(ctx context.Context, projectID string) ([]domain.Member, error) {
	var out struct {
		Members []domain.Member `json:"members"`
	}
	if err := a.doJSON(ctx, http.MethodGet, "/api/v1/projects/"+projectID+"/members", nil, &out); err != nil {
		return nil, err
	}
	return out.Members, nil
}

func (a *API) LookupHandle(ctx context.Context, handle string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := a.doJSON(ctx, http.MethodGet, "/api/v1/artists/lookup?handle="+url.QueryEscape(handle), nil, &out)
	if IsStatus(err, http.StatusNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

func (a *API) InsertTask(ctx context.Context, projectID, title string) (*domain.Task, error) {
	var t domain.Task
	body := map[string]string{"title": title}
	if err := a.doJSON(ctx, http.MethodPost, "/api/v1/projects/"+projectID+"/tasks", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *API) SetTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	body := map[string]domain.TaskStatus{"status": status}
	return a.doJSON(ctx, http.MethodPatch, "/api/v1/tasks/"+taskID, body, nil)
}

func (a *API) DeleteTask(ctx context.Context, taskID string) error {
	return a.doJSON(ctx, http.MethodDelete, "/api/v1/tasks/"+taskID, nil, nil)
}

func (a *API) InsertMessage(ctx context.Context, projectID, body string) (*domain.Message, error) {
	var m domain.Message
	req := map[string]string{"body": body}
	if err := a.doJSON(ctx, http.MethodPost, "/api/v1/projects/"+projectID+"/messages", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (a *API) InsertRole(ctx context.Context, role domain.Role) error {
	req := map[string]any{
		"profile_id": role.ProfileID,
		"role":       role.Role,
		"share_pct":  role.SharePct,
	}
	return a.doJSON(ctx, http.MethodPost, "/api/v1/projects/"+role.ProjectID+"/members", req, nil)
}
