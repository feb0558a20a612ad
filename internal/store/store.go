package store

import (
	"context"

	"github.com/myslennya/taskpanel/internal/model"
)

// Store defines the persistence contract for tasks, their reminder
// bookkeeping, and project labels.
//
// Tasks are read and written as a full collection: every mutation is one
// read-all / mutate / write-all round trip with last-writer-wins semantics.
// There is no per-task partial update. Reminder state is a separate mapping
// from task id to bookkeeping record so that task edit paths never touch it.
type Store interface {
	// ReadAllTasks returns the full ordered task collection.
	ReadAllTasks(ctx context.Context) ([]model.Task, error)

	// WriteAllTasks replaces the full task collection.
	WriteAllTasks(ctx context.Context, tasks []model.Task) error

	// ReadReminderStates returns the per-task reminder bookkeeping.
	// Tasks with no recorded state have no entry.
	ReadReminderStates(ctx context.Context) (map[string]model.ReminderState, error)

	// WriteReminderStates replaces the reminder bookkeeping. Entries for
	// task ids that no longer exist may be dropped by the implementation.
	WriteReminderStates(ctx context.Context, states map[string]model.ReminderState) error

	// GetProjects returns the ordered list of project labels.
	GetProjects(ctx context.Context) ([]string, error)

	// SetProjects replaces the project label list.
	SetProjects(ctx context.Context, names []string) error
}
