package view

import (
	"context"
	"sync"

	"artistcollab/internal/domain"
	"artistcollab/internal/logger"
)

// FeedState tracks the lifecycle of the view's subscriptions.
type FeedState string

const (
	StateUnsubscribed FeedState = "unsubscribed"
	StateSubscribing  FeedState = "subscribing"
	StateActive       FeedState = "active"
)

type Tab string

const (
	TabTasks   Tab = "tasks"
	TabChat    Tab = "chat"
	TabMembers Tab = "members"
)

// View is the in-memory state of one project detail screen. All external
// effects arrive through Activate, the feed handlers and the command
// methods; a single mutex serializes them the way a browser event loop
// serializes callbacks. Collections are owned exclusively by the view.
type View struct {
	identity Identity
	store    Store
	feed     Feed

	mu        sync.Mutex
	gen       uint64 // bumped on every (re)activation; stale async results are dropped
	projectID string
	state     FeedState
	tab       Tab

	me       string
	project  *domain.Project
	notFound bool
	myRole   *domain.Role
	tasks    []domain.Task
	msgs     []domain.Message
	members  []domain.Member
	subs     []Subscription

	savingTask bool
	sendingMsg bool
	inviting   bool

	onMessageAppend func()
}

func New(identity Identity, store Store, feed Feed) *View {
	return &View{
		identity: identity,
		store:    store,
		feed:     feed,
		state:    StateUnsubscribed,
		tab:      TabTasks,
	}
}

// SetOnMessageAppend installs the "scroll to latest" hook, called after a
// new chat message lands. Never invoked with the view lock held.
func (v *View) SetOnMessageAppend(fn func()) {
	v.mu.Lock()
	v.onMessageAppend = fn
	v.mu.Unlock()
}

// Activate points the view at a project: resolves identity once, loads the
// snapshot and subscribes to the change feeds. Safe to call again for a
// different project; the previous activation's subscriptions are released
// and any of its reads still in flight are discarded on completion.
func (v *View) Activate(ctx context.Context, projectID string) error {
	v.mu.Lock()
	v.teardownLocked()
	v.gen++
	gen := v.gen
	v.projectID = projectID
	v.state = StateSubscribing
	v.tab = TabTasks
	v.me = ""
	v.project = nil
	v.notFound = false
	v.myRole = nil
	v.tasks = nil
	v.msgs = nil
	v.members = nil
	v.mu.Unlock()

	// Identity resolves exactly once per activation. Failure means
	// anonymous, not broken: the store rejects mutations regardless.
	me, err := v.identity.CurrentIdentity(ctx)
	if err != nil {
		logger.Debug("identity resolution failed, viewing as anonymous", "error", err)
		me = ""
	}
	if !v.applyIfCurrent(gen, func() { v.me = me }) {
		return nil
	}

	project, err := v.store.Project(ctx, projectID)
	if err != nil {
		v.applyIfCurrent(gen, func() { v.notFound = true })
		return err
	}
	if project == nil {
		// terminal: rendered as "not found / no access", no subscription
		v.applyIfCurrent(gen, func() { v.notFound = true })
		return nil
	}
	if !v.applyIfCurrent(gen, func() { v.project = project }) {
		return nil
	}

	// The remaining snapshot reads are independent: each may fail or come
	// back empty without blocking the others, and the feed corrects any
	// skew between them.
	if me != "" {
		if role, err := v.store.MyRole(ctx, projectID, me); err == nil {
			v.applyIfCurrent(gen, func() { v.myRole = role })
		} else {
			logger.Debug("role snapshot failed", "project", projectID, "error", err)
		}
	}
	if tasks, err := v.store.Tasks(ctx, projectID); err == nil {
		v.applyIfCurrent(gen, func() {
			v.tasks = tasks
			sortTasks(v.tasks)
		})
	} else {
		logger.Debug("task snapshot failed", "project", projectID, "error", err)
	}
	if msgs, err := v.store.Messages(ctx, projectID); err == nil {
		v.applyIfCurrent(gen, func() { v.msgs = msgs })
	} else {
		logger.Debug("message snapshot failed", "project", projectID, "error", err)
	}
	if members, err := v.store.Members(ctx, projectID); err == nil {
		v.applyIfCurrent(gen, func() { v.members = members })
	} else {
		logger.Debug("member snapshot failed", "project", projectID, "error", err)
	}

	taskSub, err := v.feed.Subscribe(domain.TableTasks, projectID, func(ev domain.Event) {
		v.onTaskEvent(gen, ev)
	})
	if err != nil {
		return err
	}
	msgSub, err := v.feed.Subscribe(domain.TableMessages, projectID, func(ev domain.Event) {
		v.onMessageEvent(gen, ev)
	})
	if err != nil {
		taskSub.Unsubscribe()
		return err
	}

	v.mu.Lock()
	if v.gen != gen {
		// lost a race with another activation; release what we opened
		v.mu.Unlock()
		taskSub.Unsubscribe()
		msgSub.Unsubscribe()
		return nil
	}
	v.subs = []Subscription{taskSub, msgSub}
	v.state = StateActive
	v.mu.Unlock()
	return nil
}

// Teardown releases the feed subscriptions and invalidates every read and
// event still in flight for the current activation.
func (v *View) Teardown() {
	v.mu.Lock()
	v.gen++
	v.teardownLocked()
	v.mu.Unlock()
}

// teardownLocked must be called with v.mu held.
func (v *View) teardownLocked() {
	for _, s := range v.subs {
		s.Unsubscribe()
	}
	v.subs = nil
	v.state = StateUnsubscribed
}

// applyIfCurrent runs fn under the lock only if the activation that
// produced the result is still the live one.
func (v *View) applyIfCurrent(gen uint64, fn func()) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		return false
	}
	fn()
	return true
}

func (v *View) SetTab(t Tab) {
	v.mu.Lock()
	v.tab = t
	v.mu.Unlock()
}

// Accessors return copies: the collections stay owned by the view.

func (v *View) Me() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.me
}

func (v *View) Project() *domain.Project {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.project == nil {
		return nil
	}
	p := *v.project
	return &p
}

func (v *View) NotFound() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notFound
}

func (v *View) MyRole() *domain.Role {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.myRole == nil {
		return nil
	}
	r := *v.myRole
	return &r
}

// IsOwner is the client-side owner gate. UX affordance only; the store
// enforces the real policy.
func (v *View) IsOwner() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.isOwnerLocked()
}

func (v *View) isOwnerLocked() bool {
	return v.project != nil && v.me != "" && v.project.OwnerID == v.me
}

func (v *View) Tasks() []domain.Task {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.Task, len(v.tasks))
	copy(out, v.tasks)
	return out
}

func (v *View) Messages() []domain.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.Message, len(v.msgs))
	copy(out, v.msgs)
	return out
}

func (v *View) Members() []domain.Member {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]domain.Member, len(v.members))
	copy(out, v.members)
	return out
}

func (v *View) State() FeedState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) Tab() Tab {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tab
}
