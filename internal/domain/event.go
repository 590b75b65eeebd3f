package domain

import "encoding/json"

type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

const (
	TableTasks    = "project_tasks"
	TableMessages = "messages"
)

// Event is one change-feed notification. New carries the row after the
// change, Old the row before it. On delete events Old may hold only the
// primary key: replicated old-row images lose non-key columns.
type Event struct {
	Table string          `json:"table"`
	Kind  EventKind       `json:"kind"`
	New   json.RawMessage `json:"new,omitempty"`
	Old   json.RawMessage `json:"old,omitempty"`
}

// RowRef is the minimal decode of an event row: enough to identify it and,
// when the field survived, scope it to a project.
type RowRef struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id,omitempty"`
}

func NewTaskEvent(kind EventKind, t *Task) Event {
	b, _ := json.Marshal(t)
	return Event{Table: TableTasks, Kind: kind, New: b}
}

// NewTaskDeleteEvent references the removed row by id alone; the rest of
// the row is gone by the time the event is emitted.
func NewTaskDeleteEvent(id string) Event {
	b, _ := json.Marshal(RowRef{ID: id})
	return Event{Table: TableTasks, Kind: EventDelete, Old: b}
}

func NewMessageEvent(m *Message) Event {
	b, _ := json.Marshal(m)
	return Event{Table: TableMessages, Kind: EventInsert, New: b}
}
