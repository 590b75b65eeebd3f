package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"artistcollab/internal/domain"
)

func apiServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestProjectMissingMapsToNil(t *testing.T) {
	srv := apiServer(t, nil)
	api := New(srv.URL, "")

	p, err := api.Project(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("err = %v; want nil for a 404", err)
	}
	if p != nil {
		t.Fatalf("project = %+v; want nil", p)
	}
}

func TestLookupHandleMissingMapsToEmpty(t *testing.T) {
	srv := apiServer(t, nil)
	api := New(srv.URL, "")

	id, err := api.LookupHandle(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("err = %v; want nil for a 404", err)
	}
	if id != "" {
		t.Fatalf("id = %q; want empty", id)
	}
}

func TestAuthHeaderAndEnvelopes(t *testing.T) {
	var gotAuth string
	srv := apiServer(t, map[string]http.HandlerFunc{
		"/api/v1/projects/proj-1/tasks": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string][]domain.Task{
				"tasks": {{ID: "task-001", ProjectID: "proj-1", Title: "record"}},
			})
		},
	})
	api := New(srv.URL, "token-abc")

	tasks, err := api.Tasks(context.Background(), "proj-1")
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if gotAuth != "Bearer token-abc" {
		t.Fatalf("auth header = %q; want bearer token", gotAuth)
	}
	if len(tasks) != 1 || tasks[0].ID != "task-001" {
		t.Fatalf("tasks = %+v; want the one row", tasks)
	}
}

func TestAnonymousIdentityIsLocal(t *testing.T) {
	called := false
	srv := apiServer(t, map[string]http.HandlerFunc{
		"/api/v1/me": func(w http.ResponseWriter, r *http.Request) {
			called = true
			json.NewEncoder(w).Encode(map[string]string{"id": "profile-1"})
		},
	})
	api := New(srv.URL, "")

	id, err := api.CurrentIdentity(context.Background())
	if err != nil || id != "" {
		t.Fatalf("got (%q, %v); want anonymous without a request", id, err)
	}
	if called {
		t.Fatal("anonymous client hit /me")
	}
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	srv := apiServer(t, map[string]http.HandlerFunc{
		"/api/v1/tasks/task-1": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "not a project member"})
		},
	})
	api := New(srv.URL, "token")

	err := api.DeleteTask(context.Background(), "task-1")
	if !IsStatus(err, http.StatusForbidden) {
		t.Fatalf("err = %v; want 403 status error", err)
	}
	se := err.(*StatusError)
	if se.Message != "not a project member" {
		t.Fatalf("message = %q; want server error text", se.Message)
	}
}
