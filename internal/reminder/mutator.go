package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/store"
)

// Action is the user's choice on a shown notification.
type Action int

const (
	// ActionAcknowledge marks the task done.
	ActionAcknowledge Action = iota

	// ActionSnooze pushes all reminders out by a number of minutes.
	ActionSnooze

	// ActionDismiss closes the notification without choosing, recording
	// the per-mode dedup timestamp.
	ActionDismiss
)

// Response is the asynchronous user reaction to a shown notification. It
// may arrive at any time after the notification was displayed, including
// after further ticks have run.
type Response struct {
	// TaskID identifies the task the notification was shown for.
	TaskID string

	// Mode is the reminder mode of the shown notification.
	Mode model.Mode

	// Action is what the user chose.
	Action Action

	// SnoozeMinutes applies to ActionSnooze. Zero or less falls back to
	// DefaultSnoozeMinutes.
	SnoozeMinutes int
}

// Mutator applies notification-response state transitions. Every transition
// re-reads the full task collection at response time (the task may have
// changed since the notification was shown) and writes it back whole.
type Mutator struct {
	store store.Store
	now   func() time.Time
}

// NewMutator creates a mutator backed by the given store. The clock
// defaults to time.Now and can be overridden for tests via WithNow.
func NewMutator(s store.Store) *Mutator {
	return &Mutator{store: s, now: time.Now}
}

// WithNow replaces the mutator's clock and returns the mutator.
func (m *Mutator) WithNow(now func() time.Time) *Mutator {
	m.now = now
	return m
}

// Apply performs the state transition for a notification response.
// A response for a task that no longer exists is silently dropped.
func (m *Mutator) Apply(ctx context.Context, resp Response) error {
	tasks, err := m.store.ReadAllTasks(ctx)
	if err != nil {
		return fmt.Errorf("reading tasks: %w", err)
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == resp.TaskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Deleted between notification display and response.
		return nil
	}

	now := m.now()

	switch resp.Action {
	case ActionAcknowledge:
		tasks[idx].Done = true
		tasks[idx].SnoozedUntil = nil
		if err := m.store.WriteAllTasks(ctx, tasks); err != nil {
			return fmt.Errorf("writing tasks: %w", err)
		}
		return nil

	case ActionSnooze:
		minutes := resp.SnoozeMinutes
		if minutes <= 0 {
			minutes = DefaultSnoozeMinutes
		}
		until := now.Add(time.Duration(minutes) * time.Minute)
		tasks[idx].SnoozedUntil = &until
		if err := m.store.WriteAllTasks(ctx, tasks); err != nil {
			return fmt.Errorf("writing tasks: %w", err)
		}
		return nil

	case ActionDismiss:
		return m.dismiss(ctx, tasks, idx, resp.Mode, now)
	}

	return fmt.Errorf("unknown action %d", resp.Action)
}

// dismiss records the per-mode dedup timestamp. Dismissing a lead
// notification whose snooze target has been reached is the only place an
// elapsed snooze is cleared.
func (m *Mutator) dismiss(
	ctx context.Context,
	tasks []model.Task,
	idx int,
	mode model.Mode,
	now time.Time,
) error {
	states, err := m.store.ReadReminderStates(ctx)
	if err != nil {
		return fmt.Errorf("reading reminder state: %w", err)
	}
	if states == nil {
		states = make(map[string]model.ReminderState)
	}

	taskID := tasks[idx].ID
	st := states[taskID]

	switch mode {
	case model.ModeLead:
		st.LastLead = &now
		if su := tasks[idx].SnoozedUntil; su != nil && !now.Before(*su) {
			tasks[idx].SnoozedUntil = nil
			if err := m.store.WriteAllTasks(ctx, tasks); err != nil {
				return fmt.Errorf("writing tasks: %w", err)
			}
		}
	case model.ModeDue:
		st.LastDue = &now
	case model.ModeOverdue:
		st.LastOverdue = &now
	default:
		return fmt.Errorf("unknown reminder mode %q", mode)
	}

	states[taskID] = st
	if err := m.store.WriteReminderStates(ctx, states); err != nil {
		return fmt.Errorf("writing reminder state: %w", err)
	}
	return nil
}
