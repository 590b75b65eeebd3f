package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"artistcollab/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// feedServer runs a hub behind a websocket upgrade endpoint; ?project=
// picks the room, like the real /ws handler.
func feedServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		client := NewClient(r.URL.Query().Get("project"), "", conn, hub)
		go client.Run()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialFeed(t *testing.T, srv *httptest.Server, projectID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?project=" + projectID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev domain.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return ev
}

func TestBusInProcessDelivery(t *testing.T) {
	hub := NewHub()
	srv := feedServer(t, hub)
	conn := dialFeed(t, srv, "proj-1")
	other := dialFeed(t, srv, "proj-2")

	time.Sleep(50 * time.Millisecond) // let Run attach both clients

	bus := NewBus(hub, nil, "feed-events")
	want := domain.NewTaskEvent(domain.EventInsert, &domain.Task{
		ID: "task-001", ProjectID: "proj-1", Title: "record", Status: domain.StatusTodo,
	})
	bus.Publish(context.Background(), "proj-1", want)

	got := readEvent(t, conn)
	if got.Table != domain.TableTasks || got.Kind != domain.EventInsert {
		t.Fatalf("got %s/%s; want %s/insert", got.Table, got.Kind, domain.TableTasks)
	}
	var task domain.Task
	if err := json.Unmarshal(got.New, &task); err != nil || task.ID != "task-001" {
		t.Fatalf("payload = %s; want task-001 row", got.New)
	}

	// the other room must stay silent
	other.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Fatal("event leaked into another project's room")
	}
}

func TestBusBridgesRedis(t *testing.T) {
	mini := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	hub := NewHub()
	srv := feedServer(t, hub)
	conn := dialFeed(t, srv, "proj-1")
	time.Sleep(50 * time.Millisecond)

	bus := NewBus(hub, rdb, "feed-events")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx)

	ev := domain.NewTaskDeleteEvent("task-001")

	// the subscriber side of Run comes up asynchronously; retry until the
	// bridge carries the event through
	deadline := time.Now().Add(3 * time.Second)
	conn.SetReadDeadline(deadline)
	done := make(chan domain.Event, 1)
	go func() {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var got domain.Event
		if json.Unmarshal(data, &got) == nil {
			done <- got
		}
	}()

	for {
		bus.Publish(ctx, "proj-1", ev)
		select {
		case got := <-done:
			if got.Kind != domain.EventDelete || got.Table != domain.TableTasks {
				t.Fatalf("got %s/%s; want %s/delete", got.Table, got.Kind, domain.TableTasks)
			}
			var ref domain.RowRef
			if err := json.Unmarshal(got.Old, &ref); err != nil || ref.ID != "task-001" {
				t.Fatalf("payload = %s; want key-only ref", got.Old)
			}
			return
		case <-time.After(100 * time.Millisecond):
			if time.Now().After(deadline) {
				t.Fatal("event never crossed the redis bridge")
			}
		}
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	env := Envelope{
		ProjectID: "proj-1",
		Event:     domain.NewTaskDeleteEvent("task-9"),
	}
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Envelope
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ProjectID != "proj-1" || got.Event.Kind != domain.EventDelete {
		t.Fatalf("got %+v; want original envelope back", got)
	}
}
