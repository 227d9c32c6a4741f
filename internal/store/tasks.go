package store

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// DefaultTaskTag is applied when a new task names no tag and the tag list
// is empty.
const DefaultTaskTag = "Deep Work"

const defaultPriority = 3

// Tasks returns all tasks, newest first.
func (s *Store) Tasks() []Task {
	tasks, _ := readList[Task](s, colTasks)
	return tasks
}

// SaveTask upserts a task and returns the updated list. A task without an
// id is created with defaults (priority 3, tag, createdAt now) and
// prepended; a task with an id replaces the stored record wholesale.
func (s *Store) SaveTask(t Task) ([]Task, error) {
	tasks := s.Tasks()

	if t.ID != "" {
		for i := range tasks {
			if tasks[i].ID == t.ID {
				tasks[i] = t
				break
			}
		}
		return tasks, writeList(s, colTasks, tasks)
	}

	t.ID = uuid.NewString()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.Priority == 0 {
		t.Priority = defaultPriority
	}
	if t.Tag == "" {
		if tags := s.Tags(); len(tags) > 0 {
			t.Tag = tags[0]
		} else {
			t.Tag = DefaultTaskTag
		}
	}

	tasks = append([]Task{t}, tasks...)
	return tasks, writeList(s, colTasks, tasks)
}

// DeleteTask removes a task by id. No cascading effect.
func (s *Store) DeleteTask(id string) ([]Task, error) {
	tasks := s.Tasks()
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return kept, writeList(s, colTasks, kept)
}

// Deferred reports whether a task is hidden from the active list at the
// given instant. Visibility is always derived from DeferredUntil; there is
// no stored flag to drift out of sync.
func Deferred(t Task, now time.Time) bool {
	return !t.DeferredUntil.IsZero() && t.DeferredUntil.After(now)
}

// ToggleDefer flips a task between active and deferred: a future
// DeferredUntil is cleared, anything else becomes the start of the next
// local calendar day. Pure; the caller persists via SaveTask.
func ToggleDefer(t Task, now time.Time) Task {
	if Deferred(t, now) {
		t.DeferredUntil = time.Time{}
		return t
	}
	y, m, d := now.Date()
	t.DeferredUntil = time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return t
}

// ActionItems returns the incomplete, non-deferred tasks joined with their
// project titles, ordered by priority descending with ties broken by
// createdAt ascending (oldest first).
func (s *Store) ActionItems(now time.Time) []ActionItem {
	tasks := s.Tasks()
	projects := s.Projects()

	titles := make(map[string]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
	}

	var items []ActionItem
	for _, t := range tasks {
		if t.Completed || Deferred(t, now) {
			continue
		}
		items = append(items, ActionItem{Task: t, ProjectName: titles[t.ProjectID]})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}
