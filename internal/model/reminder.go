package model

import "time"

// Mode identifies one of the three escalating reminder kinds.
type Mode string

const (
	// ModeLead fires a configurable number of minutes before the due time,
	// or once at the snooze target when a snooze elapses.
	ModeLead Mode = "lead"

	// ModeDue fires exactly once, at the first tick at or after the due time.
	ModeDue Mode = "due"

	// ModeOverdue fires repeatedly after the due time, on a fixed backoff.
	ModeOverdue Mode = "overdue"
)

// Modes lists all reminder modes in evaluation order.
var Modes = []Mode{ModeLead, ModeDue, ModeOverdue}

// ReminderState is the per-task dedup bookkeeping, kept separate from the
// user-editable Task so edit paths cannot clobber it. The store maps task
// id to its state; a task with no entry has the zero value.
type ReminderState struct {
	// LastLead is when a lead notification for this task was last dismissed.
	LastLead *time.Time `json:"lastLead,omitempty"`

	// LastDue is when the one-shot due notification was dismissed.
	// Once set, the due mode never fires again for this task.
	LastDue *time.Time `json:"lastDue,omitempty"`

	// LastOverdue gates overdue refires by a fixed backoff interval.
	LastOverdue *time.Time `json:"lastOverdue,omitempty"`
}

// IsZero reports whether no reminder has ever been recorded.
func (s ReminderState) IsZero() bool {
	return s.LastLead == nil && s.LastDue == nil && s.LastOverdue == nil
}
