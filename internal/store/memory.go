package store

import (
	"context"
	"sync"

	"github.com/myslennya/taskpanel/internal/model"
)

// MemoryStore is an in-memory Store implementation used by tests and as a
// lightweight fallback when no database path is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	tasks    []model.Task
	states   map[string]model.ReminderState
	projects []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]model.ReminderState),
	}
}

// ReadAllTasks returns a copy of the task collection.
func (s *MemoryStore) ReadAllTasks(ctx context.Context) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]model.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks, nil
}

// WriteAllTasks replaces the task collection. Reminder state entries whose
// task no longer exists are pruned, matching the SQLite implementation.
func (s *MemoryStore) WriteAllTasks(ctx context.Context, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make([]model.Task, len(tasks))
	copy(s.tasks, tasks)

	ids := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		ids[t.ID] = true
	}
	for id := range s.states {
		if !ids[id] {
			delete(s.states, id)
		}
	}
	return nil
}

// ReadReminderStates returns a copy of the reminder bookkeeping.
func (s *MemoryStore) ReadReminderStates(
	ctx context.Context,
) (map[string]model.ReminderState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make(map[string]model.ReminderState, len(s.states))
	for id, st := range s.states {
		states[id] = st
	}
	return states, nil
}

// WriteReminderStates replaces the reminder bookkeeping, dropping
// zero-value entries.
func (s *MemoryStore) WriteReminderStates(
	ctx context.Context,
	states map[string]model.ReminderState,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states = make(map[string]model.ReminderState, len(states))
	for id, st := range states {
		if st.IsZero() {
			continue
		}
		s.states[id] = st
	}
	return nil
}

// GetProjects returns a copy of the project label list.
func (s *MemoryStore) GetProjects(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.projects))
	copy(names, s.projects)
	return names, nil
}

// SetProjects replaces the project label list.
func (s *MemoryStore) SetProjects(ctx context.Context, names []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects = make([]string, len(names))
	copy(s.projects, names)
	return nil
}
