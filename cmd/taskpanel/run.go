package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/myslennya/taskpanel/internal/logging"
	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/notify"
	"github.com/myslennya/taskpanel/internal/reminder"
	"github.com/myslennya/taskpanel/internal/schedule"
	"github.com/myslennya/taskpanel/internal/ui/inbox"
)

// runRun starts the scheduler. By default it attaches the interactive
// notification inbox; with -headless it renders notifications to stdout
// and blocks until interrupted.
func runRun(cfg *model.AppConfig, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	headless := fs.Bool("headless", false, "Render notifications to stdout instead of the inbox UI")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	interval := time.Duration(cfg.TickIntervalSec) * time.Second

	if *headless {
		log := logging.New(os.Stderr, cfg.LogLevel)
		dispatcher := notify.NewLogDispatcher(os.Stdout, reminder.Evaluator{TickPeriod: interval})
		sched := schedule.New(st, dispatcher, interval, log)
		sched.Start()
		defer sched.Stop()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	}

	// The inbox owns the terminal; discard log output rather than
	// corrupting the view.
	log := logging.New(io.Discard, cfg.LogLevel)
	dispatcher := notify.NewInboxDispatcher()
	sched := schedule.New(st, dispatcher, interval, log)
	sched.Start()
	defer sched.Stop()

	program := tea.NewProgram(
		inbox.New(dispatcher, sched.Evaluator(), cfg.QuickSnoozeMin),
		tea.WithAltScreen(),
	)
	_, err = program.Run()
	return err
}
