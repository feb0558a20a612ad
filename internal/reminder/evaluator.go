package reminder

import (
	"regexp"
	"time"

	"github.com/myslennya/taskpanel/internal/model"
)

const (
	// DefaultTickPeriod is the evaluation period the scheduler runs at.
	// The due mode's one-shot window is sized to this period so the fire
	// is observed on the first tick at or after the due time.
	DefaultTickPeriod = 30 * time.Second

	// OverdueBackoff is the fixed interval between overdue refires.
	OverdueBackoff = 2 * time.Hour

	// DefaultSnoozeMinutes is the quick-snooze duration applied when a
	// response carries no explicit amount.
	DefaultSnoozeMinutes = 10

	// dueAnchorHour anchors date-only deadlines to 09:00 local time.
	dueAnchorHour = 9
)

// dateOnlyRe matches a bare calendar date with no time component.
var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dueLayouts are the datetime layouts accepted for the due field, tried in
// order. All are interpreted in the evaluator's location.
var dueLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// Evaluator decides whether a reminder of a given mode should fire for a
// task at a given instant. It is a pure function of the task, its reminder
// state, and the clock value: all mutation happens downstream in the
// response handler.
type Evaluator struct {
	// TickPeriod sizes the due mode's one-shot window. Zero or negative
	// falls back to DefaultTickPeriod.
	TickPeriod time.Duration

	// Location anchors date-only deadlines. Nil means time.Local.
	Location *time.Location
}

// NewEvaluator returns an evaluator with the default tick period and the
// local timezone.
func NewEvaluator() Evaluator {
	return Evaluator{TickPeriod: DefaultTickPeriod}
}

func (e Evaluator) loc() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.Local
}

func (e Evaluator) tick() time.Duration {
	if e.TickPeriod > 0 {
		return e.TickPeriod
	}
	return DefaultTickPeriod
}

// ParseDue interprets a raw due string. A bare date anchors to 09:00 in the
// evaluator's location. Malformed or empty input yields ok=false, meaning
// the task has no deadline; it is never an error.
func (e Evaluator) ParseDue(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if dateOnlyRe.MatchString(raw) {
		d, err := time.ParseInLocation("2006-01-02", raw, e.loc())
		if err != nil {
			return time.Time{}, false
		}
		return d.Add(dueAnchorHour * time.Hour), true
	}
	for _, layout := range dueLayouts {
		if d, err := time.ParseInLocation(layout, raw, e.loc()); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Fires reports whether a notification of the given mode should fire for
// the task at instant now.
//
// The snooze target doubles as a standalone lead trigger: a snoozed task
// fires the lead mode once at snoozedUntil even when it has no deadline.
// While a snooze is still pending, every other mode is suppressed.
func (e Evaluator) Fires(task model.Task, st model.ReminderState, now time.Time, mode model.Mode) bool {
	if task.Done {
		return false
	}

	due, hasDue := e.ParseDue(task.Due)

	// A set snooze redirects the lead mode: fire exactly once when the
	// target is reached, deduped against the last lead dismissal.
	if mode == model.ModeLead && task.SnoozedUntil != nil {
		if st.LastLead != nil && !st.LastLead.Before(*task.SnoozedUntil) {
			return false
		}
		return !now.Before(*task.SnoozedUntil)
	}

	// While the snooze is pending, suppress everything else.
	if task.Snoozed(now) {
		return false
	}

	if !hasDue {
		return false
	}

	switch mode {
	case model.ModeLead:
		lead := time.Duration(task.RemindBeforeMin) * time.Minute
		fireAt := due.Add(-lead)
		if st.LastLead != nil && !st.LastLead.Before(fireAt) {
			return false
		}
		return !now.Before(fireAt) && now.Before(due)

	case model.ModeDue:
		// Fires at most once per task lifetime.
		if st.LastDue != nil {
			return false
		}
		return !now.Before(due) && now.Before(due.Add(e.tick()))

	case model.ModeOverdue:
		if now.Before(due) {
			return false
		}
		if st.LastOverdue == nil {
			return true
		}
		return now.Sub(*st.LastOverdue) >= OverdueBackoff
	}

	return false
}

// Evaluate runs one tick pass for a single task, returning the modes that
// should fire. All three modes are checked independently: a task with a
// very short lead time may legitimately fire lead and due in the same tick.
// The lead mode is skipped entirely when the task's lead offset is disabled.
func (e Evaluator) Evaluate(task model.Task, st model.ReminderState, now time.Time) []model.Mode {
	var fired []model.Mode
	if task.RemindBeforeMin > 0 && e.Fires(task, st, now, model.ModeLead) {
		fired = append(fired, model.ModeLead)
	}
	if e.Fires(task, st, now, model.ModeDue) {
		fired = append(fired, model.ModeDue)
	}
	if e.Fires(task, st, now, model.ModeOverdue) {
		fired = append(fired, model.ModeOverdue)
	}
	return fired
}
