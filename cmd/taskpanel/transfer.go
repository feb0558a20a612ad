package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/myslennya/taskpanel/internal/logging"
	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/notify"
	"github.com/myslennya/taskpanel/internal/reminder"
	"github.com/myslennya/taskpanel/internal/schedule"
	"github.com/myslennya/taskpanel/internal/transfer"
)

// runExport writes the task collection as JSON to the given path, or to
// stdout when no path is given.
func runExport(cfg *model.AppConfig, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	tasks, err := st.ReadAllTasks(context.Background())
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if len(args) > 0 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return transfer.Export(out, tasks)
}

// runImport merges tasks from a JSON file into the collection and reports
// how many were imported and skipped.
func runImport(cfg *model.AppConfig, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("import: file path required")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	tasks, err := st.ReadAllTasks(ctx)
	if err != nil {
		return err
	}

	added, result, err := transfer.Import(f, tasks)
	if err != nil {
		return err
	}

	if len(added) > 0 {
		tasks = append(tasks, added...)
		if err := st.WriteAllTasks(ctx, tasks); err != nil {
			return err
		}
	}

	fmt.Printf("Imported %d, skipped %d\n", result.Imported, result.Skipped)
	return nil
}

// runTick runs a single evaluation pass, rendering anything that fires to
// stdout. Useful for cron-style setups and for inspecting reminder state.
func runTick(cfg *model.AppConfig, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	interval := time.Duration(cfg.TickIntervalSec) * time.Second
	log := logging.New(os.Stderr, cfg.LogLevel)
	dispatcher := notify.NewLogDispatcher(os.Stdout, reminder.Evaluator{TickPeriod: interval})

	sched := schedule.New(st, dispatcher, interval, log)
	return sched.RunPass(context.Background())
}
