package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"artistcollab/internal/client"
	"artistcollab/internal/config"
	"artistcollab/internal/domain"
	"artistcollab/internal/feed"
	httpserver "artistcollab/internal/http"
	"artistcollab/internal/service"
	"artistcollab/internal/view"
)

func applyMigrations(t *testing.T, dbp *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := dbp.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func postJSON(t *testing.T, url string, token string, body, out any) int {
	t.Helper()
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer res.Body.Close()
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res.StatusCode
}

func signUp(t *testing.T, base, handle string) (token, id string) {
	t.Helper()
	var out struct {
		Token   string         `json:"token"`
		Profile domain.Profile `json:"profile"`
	}
	code := postJSON(t, base+"/api/v1/auth/signup", "", map[string]string{
		"email":        fmt.Sprintf("%s-%d@example.com", handle, time.Now().UnixNano()),
		"password":     "long-enough-pw",
		"handle":       handle,
		"display_name": handle,
	}, &out)
	if code != http.StatusOK {
		t.Fatalf("signup %s: status %d", handle, code)
	}
	return out.Token, out.Profile.ID
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// Full-stack test: two real views over the HTTP API and websocket feed,
// backed by postgres. Runs only when DATABASE_URL is set.
func TestE2EProjectViewConvergence(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	service.InitJWT("test-secret")

	dbp, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer dbp.Close()
	applyMigrations(t, dbp)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	hub := feed.NewHub()
	bus := feed.NewBus(hub, nil, "feed-events")
	cfg := &config.Config{
		APIRateLimit: 1000, APIRateWindowSecs: 60,
		AuthRateLimit: 1000, AuthRateWindowSecs: 60,
	}
	httpserver.RegisterRoutes(r, dbp, bus, hub, cfg, "test")
	srv := httptest.NewServer(r)
	defer srv.Close()

	suffix := time.Now().UnixNano()
	ownerToken, _ := signUp(t, srv.URL, fmt.Sprintf("mara%d", suffix))
	collabToken, _ := signUp(t, srv.URL, fmt.Sprintf("jt%d", suffix))

	var project domain.Project
	if code := postJSON(t, srv.URL+"/api/v1/projects", ownerToken, map[string]any{
		"title": "Night Drive EP", "is_public": false,
	}, &project); code != http.StatusOK {
		t.Fatalf("create project: status %d", code)
	}

	ownerAPI := client.New(srv.URL, ownerToken)
	ownerView := view.New(ownerAPI, ownerAPI, client.NewFeed(srv.URL, ownerToken))
	ctx := context.Background()
	if err := ownerView.Activate(ctx, project.ID); err != nil {
		t.Fatalf("owner activate: %v", err)
	}
	defer ownerView.Teardown()
	if !ownerView.IsOwner() {
		t.Fatal("owner view does not see ownership")
	}

	// owner invites the collaborator into the private project
	if err := ownerView.InviteMember(ctx, fmt.Sprintf("@jt%d", suffix), 30); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if got := len(ownerView.Members()); got != 2 {
		t.Fatalf("members = %d; want 2 after invite", got)
	}

	collabAPI := client.New(srv.URL, collabToken)
	collabView := view.New(collabAPI, collabAPI, client.NewFeed(srv.URL, collabToken))
	if err := collabView.Activate(ctx, project.ID); err != nil {
		t.Fatalf("collaborator activate: %v", err)
	}
	defer collabView.Teardown()
	if collabView.NotFound() {
		t.Fatal("invited collaborator cannot see the project")
	}
	if collabView.IsOwner() {
		t.Fatal("collaborator view claims ownership")
	}

	// task created by the owner reaches both replicas through the feed
	if err := ownerView.AddTask(ctx, "record vocals"); err != nil {
		t.Fatalf("add task: %v", err)
	}
	waitFor(t, "task on owner view", func() bool { return len(ownerView.Tasks()) == 1 })
	waitFor(t, "task on collaborator view", func() bool { return len(collabView.Tasks()) == 1 })

	// status flip from the collaborator side converges the same way
	taskID := collabView.Tasks()[0].ID
	if err := collabView.SetTaskStatus(ctx, taskID, domain.StatusDoing); err != nil {
		t.Fatalf("set status: %v", err)
	}
	waitFor(t, "status on owner view", func() bool {
		tasks := ownerView.Tasks()
		return len(tasks) == 1 && tasks[0].Status == domain.StatusDoing
	})

	// chat message from the collaborator
	if err := collabView.SendMessage(ctx, "stems are up"); err != nil {
		t.Fatalf("send message: %v", err)
	}
	waitFor(t, "message on owner view", func() bool { return len(ownerView.Messages()) == 1 })

	// delete is optimistic for the deleter and feed-driven for the peer
	if err := ownerView.DeleteTask(ctx, taskID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if got := len(ownerView.Tasks()); got != 0 {
		t.Fatalf("owner tasks = %d; want 0 immediately", got)
	}
	waitFor(t, "delete on collaborator view", func() bool { return len(collabView.Tasks()) == 0 })
}

// Anonymous viewers cannot open private projects but can open public ones.
func TestE2EAnonymousVisibility(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	service.InitJWT("test-secret")

	dbp, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer dbp.Close()
	applyMigrations(t, dbp)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	hub := feed.NewHub()
	bus := feed.NewBus(hub, nil, "feed-events")
	cfg := &config.Config{
		APIRateLimit: 1000, APIRateWindowSecs: 60,
		AuthRateLimit: 1000, AuthRateWindowSecs: 60,
	}
	httpserver.RegisterRoutes(r, dbp, bus, hub, cfg, "test")
	srv := httptest.NewServer(r)
	defer srv.Close()

	ownerToken, _ := signUp(t, srv.URL, fmt.Sprintf("solo%d", time.Now().UnixNano()))

	var private, public domain.Project
	postJSON(t, srv.URL+"/api/v1/projects", ownerToken, map[string]any{"title": "hidden work"}, &private)
	postJSON(t, srv.URL+"/api/v1/projects", ownerToken, map[string]any{"title": "open call", "is_public": true}, &public)

	anonAPI := client.New(srv.URL, "")
	anonView := view.New(anonAPI, anonAPI, client.NewFeed(srv.URL, ""))
	ctx := context.Background()

	if err := anonView.Activate(ctx, private.ID); err != nil {
		t.Fatalf("activate private: %v", err)
	}
	if !anonView.NotFound() {
		t.Fatal("private project visible to anonymous viewer")
	}

	if err := anonView.Activate(ctx, public.ID); err != nil {
		t.Fatalf("activate public: %v", err)
	}
	defer anonView.Teardown()
	if anonView.NotFound() {
		t.Fatal("public project hidden from anonymous viewer")
	}
	if err := anonView.SendMessage(ctx, "drive-by"); err != view.ErrNotSignedIn {
		t.Fatalf("err = %v; want ErrNotSignedIn", err)
	}
}
