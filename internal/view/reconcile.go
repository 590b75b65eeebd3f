package view

import (
	"encoding/json"
	"sort"

	"artistcollab/internal/domain"
)

// onTaskEvent folds one change-feed notification into the task collection.
// The rules give convergence under any delivery order for a finite event
// sequence: duplicate inserts are ignored, updates for unknown rows are
// dropped (the base row arrives later or on reload), deletes key on local
// presence alone because delete payloads may lack the project id.
func (v *View) onTaskEvent(gen uint64, ev domain.Event) {
	v.applyIfCurrent(gen, func() {
		switch ev.Kind {
		case domain.EventInsert:
			var t domain.Task
			if err := json.Unmarshal(ev.New, &t); err != nil || t.ID == "" {
				return
			}
			if t.ProjectID != "" && t.ProjectID != v.projectID {
				return
			}
			for i := range v.tasks {
				if v.tasks[i].ID == t.ID {
					return
				}
			}
			v.tasks = append(v.tasks, t)
			sortTasks(v.tasks)

		case domain.EventUpdate:
			var patch domain.TaskPatch
			if err := json.Unmarshal(ev.New, &patch); err != nil || patch.ID == "" {
				return
			}
			if patch.ProjectID != nil && *patch.ProjectID != v.projectID {
				return
			}
			for i := range v.tasks {
				if v.tasks[i].ID == patch.ID {
					mergeTask(&v.tasks[i], patch)
					sortTasks(v.tasks)
					return
				}
			}
			// no base row yet: acceptable staleness, self-heals later

		case domain.EventDelete:
			var ref domain.RowRef
			if err := json.Unmarshal(ev.Old, &ref); err != nil || ref.ID == "" {
				return
			}
			for i := range v.tasks {
				if v.tasks[i].ID == ref.ID {
					v.tasks = append(v.tasks[:i], v.tasks[i+1:]...)
					return
				}
			}
		}
	})
}

// onMessageEvent handles the chat feed: insert-only, server-filtered to
// the active project, deduplicated by id.
func (v *View) onMessageEvent(gen uint64, ev domain.Event) {
	if ev.Kind != domain.EventInsert {
		return
	}
	var m domain.Message
	if err := json.Unmarshal(ev.New, &m); err != nil || m.ID == "" {
		return
	}

	var notify func()
	v.applyIfCurrent(gen, func() {
		if m.ProjectID != "" && m.ProjectID != v.projectID {
			return
		}
		for i := range v.msgs {
			if v.msgs[i].ID == m.ID {
				return
			}
		}
		v.msgs = append(v.msgs, m)
		notify = v.onMessageAppend
	})
	if notify != nil {
		notify()
	}
}

// mergeTask overwrites only the fields present on the patch.
func mergeTask(t *domain.Task, patch domain.TaskPatch) {
	if patch.ProjectID != nil {
		t.ProjectID = *patch.ProjectID
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.AssigneeID != nil {
		t.AssigneeID = patch.AssigneeID
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.CreatedAt != nil {
		t.CreatedAt = *patch.CreatedAt
	}
}

// sortTasks orders by creation time ascending with the id as tie-break, so
// rendering order is deterministic even when timestamps collide. A zero
// creation time sorts first, same as epoch.
func sortTasks(ts []domain.Task) {
	sort.SliceStable(ts, func(i, j int) bool {
		if !ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].CreatedAt.Before(ts[j].CreatedAt)
		}
		return ts[i].ID < ts[j].ID
	})
}
