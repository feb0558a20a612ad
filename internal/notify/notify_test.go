package notify

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/reminder"
)

func TestTitlePerMode(t *testing.T) {
	cases := map[model.Mode]string{
		model.ModeLead:    "Task reminder",
		model.ModeDue:     "Task due now",
		model.ModeOverdue: "Task overdue",
	}
	for mode, want := range cases {
		if got := Title(mode); got != want {
			t.Errorf("Title(%s) = %q, want %q", mode, got, want)
		}
	}
}

func TestBodyIncludesBadges(t *testing.T) {
	task := model.Task{
		Title:   "water plants",
		Project: "home",
		Tags:    []string{"garden", "weekly"},
	}
	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	body := Body(task, due, true)
	for _, want := range []string{"water plants", "proj:home", "+garden", "+weekly", "due: 2024-05-01 09:00"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %q", want, body)
		}
	}

	// No badges at all: just the title.
	plain := Body(model.Task{Title: "simple"}, time.Time{}, false)
	if plain != "simple" {
		t.Errorf("expected bare title, got %q", plain)
	}
}

func TestLogDispatcherWritesNotification(t *testing.T) {
	var buf bytes.Buffer
	d := NewLogDispatcher(&buf, reminder.Evaluator{TickPeriod: 30 * time.Second, Location: time.UTC})

	d.Show(model.Task{ID: "t1", Title: "water plants", Due: "2024-05-01"}, model.ModeOverdue)

	out := buf.String()
	if !strings.Contains(out, "Task overdue") || !strings.Contains(out, "water plants") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestInboxDispatcherQueuesAndResponds(t *testing.T) {
	d := NewInboxDispatcher()

	d.Show(model.Task{ID: "t1", Title: "a"}, model.ModeDue)

	select {
	case fired := <-d.Fires():
		if fired.Task.ID != "t1" || fired.Mode != model.ModeDue {
			t.Errorf("unexpected fired pair: %+v", fired)
		}
	default:
		t.Fatal("expected a queued fire")
	}

	d.Respond(reminder.Response{TaskID: "t1", Mode: model.ModeDue, Action: reminder.ActionDismiss})
	select {
	case resp := <-d.Responses():
		if resp.TaskID != "t1" || resp.Action != reminder.ActionDismiss {
			t.Errorf("unexpected response: %+v", resp)
		}
	default:
		t.Fatal("expected a queued response")
	}
}

func TestInboxDispatcherShowNeverBlocks(t *testing.T) {
	d := NewInboxDispatcher()

	// Nobody is draining; overflowing the queue must drop, not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			d.Show(model.Task{ID: "t1", Title: "a"}, model.ModeOverdue)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Show blocked on a full queue")
	}
}
