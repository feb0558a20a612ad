// Package notify defines the notification-display contract between the
// reminder engine and the host environment, plus the bundled sinks.
//
// Display is fire-and-forget: Show returns immediately, and the user's
// reaction arrives later on the response channel with no ordering or timing
// guarantee relative to subsequent ticks.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/reminder"
)

// Dispatcher renders notifications for fired (task, mode) pairs and reports
// user responses back asynchronously.
type Dispatcher interface {
	// Show displays a notification for the task in the given mode.
	// It must not block the tick loop.
	Show(task model.Task, mode model.Mode)

	// Responses delivers user reactions to shown notifications. A
	// notification may remain unanswered indefinitely.
	Responses() <-chan reminder.Response
}

// Fired pairs a task with the mode that fired for it on a tick.
type Fired struct {
	Task model.Task
	Mode model.Mode
	At   time.Time
}

// Title returns the notification heading for a reminder mode.
func Title(mode model.Mode) string {
	switch mode {
	case model.ModeLead:
		return "Task reminder"
	case model.ModeDue:
		return "Task due now"
	case model.ModeOverdue:
		return "Task overdue"
	default:
		return "Task"
	}
}

// Body renders the notification body: the task title followed by its
// project, tag, and deadline badges.
func Body(task model.Task, due time.Time, hasDue bool) string {
	var parts []string
	if task.Project != "" {
		parts = append(parts, "proj:"+task.Project)
	}
	for _, tag := range task.Tags {
		parts = append(parts, "+"+tag)
	}
	if hasDue {
		parts = append(parts, "due: "+due.Format("2006-01-02 15:04"))
	}
	if len(parts) == 0 {
		return task.Title
	}
	return fmt.Sprintf("%s\n%s", task.Title, strings.Join(parts, "  "))
}
