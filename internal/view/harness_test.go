package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"artistcollab/internal/domain"
)

// fakeBackend is an in-memory stand-in for the API server: it owns the
// rows, applies the same mutation rules, and emits the same feed events.
// Feed delivery is synchronous, which keeps tests deterministic.
type fakeBackend struct {
	mu      sync.Mutex
	project *domain.Project
	roles   map[string]*domain.Role
	tasks   map[string]*domain.Task
	msgs    []domain.Message
	handles map[string]string
	names   map[string]string
	subs    []*fakeSub
	seq     int
	now     time.Time

	failTaskRead bool
	failDelete   bool
	failInsert   bool

	onTaskRead func() // runs before the task snapshot is served
}

func newFakeBackend(project *domain.Project) *fakeBackend {
	return &fakeBackend{
		project: project,
		roles:   map[string]*domain.Role{},
		tasks:   map[string]*domain.Task{},
		handles: map[string]string{},
		names:   map[string]string{},
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *fakeBackend) addProfile(id, handle, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handles[handle] = id
	b.names[id] = name
}

func (b *fakeBackend) addRole(profileID, role string, share int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roles[profileID] = &domain.Role{
		ProjectID: b.project.ID, ProfileID: profileID, Role: role, SharePct: share,
	}
}

func (b *fakeBackend) tick() time.Time {
	b.now = b.now.Add(time.Second)
	return b.now
}

type fakeSub struct {
	backend   *fakeBackend
	table     string
	projectID string
	handler   func(domain.Event)
	closed    bool
}

func (s *fakeSub) Unsubscribe() {
	s.backend.mu.Lock()
	s.closed = true
	s.backend.mu.Unlock()
}

// emit fans an event out the way the hub does: to every live subscription
// on the event's project and table.
func (b *fakeBackend) emit(projectID string, ev domain.Event) {
	b.mu.Lock()
	var targets []func(domain.Event)
	for _, s := range b.subs {
		if !s.closed && s.projectID == projectID && s.table == ev.Table {
			targets = append(targets, s.handler)
		}
	}
	b.mu.Unlock()
	for _, h := range targets {
		h(ev)
	}
}

// fakeClient binds one signed-in (or anonymous) profile to the backend.
// It implements Identity, Store and Feed, mirroring what internal/client
// provides against the real server.
type fakeClient struct {
	b  *fakeBackend
	me string

	identityErr error
}

func (c *fakeClient) CurrentIdentity(ctx context.Context) (string, error) {
	if c.identityErr != nil {
		return "", c.identityErr
	}
	return c.me, nil
}

func (c *fakeClient) Project(ctx context.Context, id string) (*domain.Project, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.project == nil || c.b.project.ID != id {
		return nil, nil
	}
	p := *c.b.project
	return &p, nil
}

func (c *fakeClient) MyRole(ctx context.Context, projectID, profileID string) (*domain.Role, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	r, ok := c.b.roles[profileID]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (c *fakeClient) Tasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	if hook := c.b.onTaskRead; hook != nil {
		hook()
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.failTaskRead {
		return nil, errors.New("task read unavailable")
	}
	var out []domain.Task
	for _, t := range c.b.tasks {
		if t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (c *fakeClient) Messages(ctx context.Context, projectID string) ([]domain.Message, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	out := make([]domain.Message, len(c.b.msgs))
	copy(out, c.b.msgs)
	return out, nil
}

func (c *fakeClient) Members(ctx context.Context, projectID string) ([]domain.Member, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	var out []domain.Member
	for id, r := range c.b.roles {
		out = append(out, domain.Member{
			ProfileID:   id,
			DisplayName: c.b.names[id],
			Role:        r.Role,
			SharePct:    r.SharePct,
		})
	}
	return out, nil
}

func (c *fakeClient) LookupHandle(ctx context.Context, handle string) (string, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	return c.b.handles[handle], nil
}

func (c *fakeClient) InsertTask(ctx context.Context, projectID, title string) (*domain.Task, error) {
	c.b.mu.Lock()
	if c.b.failInsert {
		c.b.mu.Unlock()
		return nil, errors.New("insert rejected")
	}
	c.b.seq++
	t := &domain.Task{
		ID:        fmt.Sprintf("task-%03d", c.b.seq),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.StatusTodo,
		CreatedAt: c.b.tick(),
	}
	c.b.tasks[t.ID] = t
	ev := domain.NewTaskEvent(domain.EventInsert, t)
	c.b.mu.Unlock()

	c.b.emit(projectID, ev)
	return t, nil
}

func (c *fakeClient) SetTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	c.b.mu.Lock()
	t, ok := c.b.tasks[taskID]
	if !ok {
		c.b.mu.Unlock()
		return errors.New("task not found")
	}
	t.Status = status
	cp := *t
	projectID := t.ProjectID
	c.b.mu.Unlock()

	c.b.emit(projectID, domain.NewTaskEvent(domain.EventUpdate, &cp))
	return nil
}

func (c *fakeClient) DeleteTask(ctx context.Context, taskID string) error {
	c.b.mu.Lock()
	if c.b.failDelete {
		c.b.mu.Unlock()
		return errors.New("delete rejected")
	}
	t, ok := c.b.tasks[taskID]
	if !ok {
		c.b.mu.Unlock()
		return errors.New("task not found")
	}
	delete(c.b.tasks, taskID)
	projectID := t.ProjectID
	c.b.mu.Unlock()

	c.b.emit(projectID, domain.NewTaskDeleteEvent(taskID))
	return nil
}

func (c *fakeClient) InsertMessage(ctx context.Context, projectID, body string) (*domain.Message, error) {
	c.b.mu.Lock()
	c.b.seq++
	m := domain.Message{
		ID:        fmt.Sprintf("msg-%03d", c.b.seq),
		ProjectID: projectID,
		SenderID:  c.me,
		Body:      body,
		CreatedAt: c.b.tick(),
	}
	c.b.msgs = append(c.b.msgs, m)
	c.b.mu.Unlock()

	c.b.emit(projectID, domain.NewMessageEvent(&m))
	return &m, nil
}

func (c *fakeClient) InsertRole(ctx context.Context, role domain.Role) error {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if _, exists := c.b.roles[role.ProfileID]; exists {
		return errors.New("already a member")
	}
	cp := role
	c.b.roles[role.ProfileID] = &cp
	return nil
}

func (c *fakeClient) Subscribe(table, projectID string, handler func(domain.Event)) (Subscription, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	s := &fakeSub{backend: c.b, table: table, projectID: projectID, handler: handler}
	c.b.subs = append(c.b.subs, s)
	return s, nil
}

func (b *fakeBackend) liveSubs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, s := range b.subs {
		if !s.closed {
			n++
		}
	}
	return n
}

func demoProject(owner string) *domain.Project {
	return &domain.Project{
		ID:       "proj-1",
		OwnerID:  owner,
		Title:    "Night Drive EP",
		IsPublic: true,
	}
}
