package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/store"
	"github.com/myslennya/taskpanel/tests/testutil"
)

// Both implementations must satisfy the same contract.
func stores(t *testing.T) map[string]store.Store {
	return map[string]store.Store{
		"sqlite": testutil.NewTestStore(t),
		"memory": store.NewMemoryStore(),
	}
}

func TestTaskRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			snooze := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

			in := []model.Task{
				{
					ID:              "t1",
					Title:           "write minutes",
					Project:         "work",
					Tags:            []string{"meeting", "urgent"},
					Due:             "2024-01-01T10:00",
					RemindBeforeMin: 15,
					SnoozedUntil:    &snooze,
					Created:         time.Date(2023, 12, 1, 8, 0, 0, 0, time.UTC),
				},
				{
					ID:              "t2",
					Title:           "no deadline",
					RemindBeforeMin: 10,
					Done:            true,
					Created:         time.Date(2023, 12, 2, 8, 0, 0, 0, time.UTC),
				},
			}

			if err := s.WriteAllTasks(ctx, in); err != nil {
				t.Fatalf("WriteAllTasks: %v", err)
			}

			out, err := s.ReadAllTasks(ctx)
			if err != nil {
				t.Fatalf("ReadAllTasks: %v", err)
			}
			if len(out) != 2 {
				t.Fatalf("expected 2 tasks, got %d", len(out))
			}

			got := out[0]
			if got.ID != "t1" || got.Title != "write minutes" || got.Project != "work" {
				t.Errorf("unexpected first task: %+v", got)
			}
			if len(got.Tags) != 2 || got.Tags[0] != "meeting" {
				t.Errorf("tags not preserved: %v", got.Tags)
			}
			if got.Due != "2024-01-01T10:00" || got.RemindBeforeMin != 15 {
				t.Errorf("due fields not preserved: %+v", got)
			}
			if got.SnoozedUntil == nil || !got.SnoozedUntil.Equal(snooze) {
				t.Errorf("snooze not preserved: %v", got.SnoozedUntil)
			}
			if !out[1].Done {
				t.Error("done flag not preserved")
			}
		})
	}
}

func TestWriteAllTasksReplacesCollection(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first := []model.Task{
				{ID: "a", Title: "a", Created: time.Now()},
				{ID: "b", Title: "b", Created: time.Now()},
			}
			if err := s.WriteAllTasks(ctx, first); err != nil {
				t.Fatalf("WriteAllTasks: %v", err)
			}

			second := []model.Task{{ID: "c", Title: "c", Created: time.Now()}}
			if err := s.WriteAllTasks(ctx, second); err != nil {
				t.Fatalf("WriteAllTasks: %v", err)
			}

			out, err := s.ReadAllTasks(ctx)
			if err != nil {
				t.Fatalf("ReadAllTasks: %v", err)
			}
			if len(out) != 1 || out[0].ID != "c" {
				t.Errorf("expected only task c, got %+v", out)
			}
		})
	}
}

func TestReminderStateRoundTripAndPrune(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			lead := time.Date(2024, 1, 1, 8, 50, 0, 0, time.UTC)

			tasks := []model.Task{
				{ID: "keep", Title: "keep", Created: time.Now()},
				{ID: "drop", Title: "drop", Created: time.Now()},
			}
			if err := s.WriteAllTasks(ctx, tasks); err != nil {
				t.Fatalf("WriteAllTasks: %v", err)
			}

			states := map[string]model.ReminderState{
				"keep": {LastLead: &lead},
				"drop": {LastDue: &lead},
				"zero": {},
			}
			if err := s.WriteReminderStates(ctx, states); err != nil {
				t.Fatalf("WriteReminderStates: %v", err)
			}

			got, err := s.ReadReminderStates(ctx)
			if err != nil {
				t.Fatalf("ReadReminderStates: %v", err)
			}
			if _, ok := got["zero"]; ok {
				t.Error("zero-value state must not be stored")
			}
			if st := got["keep"]; st.LastLead == nil || !st.LastLead.Equal(lead) {
				t.Errorf("lead timestamp not preserved: %+v", st)
			}

			// Removing a task prunes its bookkeeping on the next write.
			if err := s.WriteAllTasks(ctx, tasks[:1]); err != nil {
				t.Fatalf("WriteAllTasks: %v", err)
			}
			got, err = s.ReadReminderStates(ctx)
			if err != nil {
				t.Fatalf("ReadReminderStates: %v", err)
			}
			if _, ok := got["drop"]; ok {
				t.Error("state for deleted task must be pruned")
			}
			if _, ok := got["keep"]; !ok {
				t.Error("state for surviving task must be kept")
			}
		})
	}
}

func TestProjects(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite seeds defaults", func(t *testing.T) {
		s := testutil.NewTestStore(t)
		names, err := s.GetProjects(ctx)
		if err != nil {
			t.Fatalf("GetProjects: %v", err)
		}
		if len(names) != 2 || names[0] != "personal" || names[1] != "work" {
			t.Errorf("expected seeded [personal work], got %v", names)
		}
	})

	for name, s := range stores(t) {
		t.Run(name+" set replaces", func(t *testing.T) {
			if err := s.SetProjects(ctx, []string{"home", "errands"}); err != nil {
				t.Fatalf("SetProjects: %v", err)
			}
			names, err := s.GetProjects(ctx)
			if err != nil {
				t.Fatalf("GetProjects: %v", err)
			}
			if len(names) != 2 || names[0] != "home" || names[1] != "errands" {
				t.Errorf("expected [home errands], got %v", names)
			}
		})
	}
}
