package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/reminder"
	"github.com/myslennya/taskpanel/internal/store"
)

// captureDispatcher records fired pairs and lets tests inject responses.
type captureDispatcher struct {
	mu     sync.Mutex
	fired  []string // "taskID/mode"
	respCh chan reminder.Response
}

func newCaptureDispatcher() *captureDispatcher {
	return &captureDispatcher{respCh: make(chan reminder.Response, 8)}
}

func (d *captureDispatcher) Show(task model.Task, mode model.Mode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fired = append(d.fired, task.ID+"/"+string(mode))
}

func (d *captureDispatcher) Responses() <-chan reminder.Response {
	return d.respCh
}

func (d *captureDispatcher) snapshot() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.fired))
	copy(out, d.fired)
	return out
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRunPassDispatchesFiredPairs(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	// Overdue task, done task, and one with no deadline.
	if err := s.WriteAllTasks(ctx, []model.Task{
		{ID: "overdue", Title: "a", Due: "2024-01-01"},
		{ID: "done", Title: "b", Due: "2024-01-01", Done: true},
		{ID: "nodue", Title: "c"},
	}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	d := newCaptureDispatcher()
	sched := New(s, d, 30*time.Second, quietLogger()).
		WithNow(func() time.Time {
			return time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)
		})

	if err := sched.RunPass(ctx); err != nil {
		t.Fatalf("RunPass: %v", err)
	}

	got := d.snapshot()
	if len(got) != 1 || got[0] != "overdue/overdue" {
		t.Errorf("expected [overdue/overdue], got %v", got)
	}
}

func TestRunPassHonorsDismissalState(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)

	if err := s.WriteAllTasks(ctx, []model.Task{
		{ID: "t1", Title: "a", Due: "2024-01-01"},
	}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	d := newCaptureDispatcher()
	sched := New(s, d, 30*time.Second, quietLogger()).
		WithNow(func() time.Time { return now })

	if err := sched.RunPass(ctx); err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if got := d.snapshot(); len(got) != 1 {
		t.Fatalf("expected one fire, got %v", got)
	}

	// Undismissed: the next pass fires again.
	if err := sched.RunPass(ctx); err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if got := d.snapshot(); len(got) != 2 {
		t.Fatalf("expected refire while undismissed, got %v", got)
	}

	// Dismissing records the backoff timestamp; the next pass is quiet.
	recorded := now
	if err := s.WriteReminderStates(ctx, map[string]model.ReminderState{
		"t1": {LastOverdue: &recorded},
	}); err != nil {
		t.Fatalf("writing states: %v", err)
	}
	if err := sched.RunPass(ctx); err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if got := d.snapshot(); len(got) != 2 {
		t.Errorf("expected no fire inside backoff, got %v", got)
	}
}

func TestResponsesAreAppliedToTheStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := s.WriteAllTasks(ctx, []model.Task{{ID: "t1", Title: "a"}}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	d := newCaptureDispatcher()
	sched := New(s, d, time.Hour, quietLogger())
	sched.Start()
	defer sched.Stop()

	d.respCh <- reminder.Response{
		TaskID: "t1",
		Mode:   model.ModeDue,
		Action: reminder.ActionAcknowledge,
	}

	deadline := time.After(2 * time.Second)
	for {
		tasks, err := s.ReadAllTasks(ctx)
		if err != nil {
			t.Fatalf("reading tasks: %v", err)
		}
		if tasks[0].Done {
			return
		}
		select {
		case <-deadline:
			t.Fatal("response was not applied before the deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStartAndStopAreIdempotent(t *testing.T) {
	s := store.NewMemoryStore()
	d := newCaptureDispatcher()
	sched := New(s, d, time.Hour, quietLogger())

	sched.Start()
	sched.Start() // second Start is a no-op
	sched.Stop()
	sched.Stop() // second Stop is a no-op
}
