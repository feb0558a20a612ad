package model

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultRemindBeforeMin is the lead time, in minutes, applied to new tasks.
// A value of zero or less disables the lead reminder for a task.
const DefaultRemindBeforeMin = 10

// Task is a user-created item with an optional deadline.
//
// Due is kept as the raw string the user entered: either a date
// ("2006-01-02") or a local datetime ("2006-01-02T15:04"). Parsing and
// anchoring happen in the reminder package; an unparseable value simply
// means the task has no deadline.
type Task struct {
	// ID is the unique identifier, stable across edits.
	ID string `json:"id"`

	// Title is the free-form description.
	Title string `json:"title"`

	// Project is an optional grouping label. Empty means no project.
	Project string `json:"project,omitempty"`

	// Tags are free-form labels.
	Tags []string `json:"tags,omitempty"`

	// Done marks the task complete. A done task never fires a reminder.
	Done bool `json:"done"`

	// Due is the raw deadline string. Empty means no deadline.
	Due string `json:"due,omitempty"`

	// RemindBeforeMin is the lead reminder offset in minutes.
	RemindBeforeMin int `json:"remindBeforeMin"`

	// SnoozedUntil, while in the future, suppresses all reminders for
	// this task. When it elapses, the lead mode fires once at the target.
	SnoozedUntil *time.Time `json:"snoozedUntil,omitempty"`

	// Created orders tasks with equal deadlines in list views.
	Created time.Time `json:"created"`
}

// NewTask creates a task with a fresh UUID and default reminder settings.
func NewTask(title string) Task {
	return Task{
		ID:              uuid.New().String(),
		Title:           strings.TrimSpace(title),
		RemindBeforeMin: DefaultRemindBeforeMin,
		Created:         time.Now(),
	}
}

// HasTag reports whether the task carries the given tag.
func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// Snoozed reports whether a snooze is active at the given time.
func (t *Task) Snoozed(now time.Time) bool {
	return t.SnoozedUntil != nil && now.Before(*t.SnoozedUntil)
}
