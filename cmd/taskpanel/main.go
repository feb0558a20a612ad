package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/myslennya/taskpanel/internal/model"
	"github.com/myslennya/taskpanel/internal/store"
)

var (
	configPath string
	dbPath     string
	verbose    bool
)

func main() {
	flag.StringVar(&configPath, "config", model.DefaultConfigPath(), "Path to config file")
	flag.StringVar(&dbPath, "db", "", "Override database path")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	switch command {
	case "run":
		err = runRun(cfg, args)
	case "add":
		err = runAdd(cfg, args)
	case "list":
		err = runList(cfg, args)
	case "done":
		err = runDone(cfg, args)
	case "snooze":
		err = runSnooze(cfg, args)
	case "rm":
		err = runRemove(cfg, args)
	case "projects":
		err = runProjects(cfg, args)
	case "export":
		err = runExport(cfg, args)
	case "import":
		err = runImport(cfg, args)
	case "tick":
		err = runTick(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `taskpanel - task tracker with snooze-aware reminders

Usage:
  taskpanel [flags] <command> [args]

Commands:
  run        Start the reminder scheduler with the notification inbox
  add        Add a task (supports "proj:x +tag due:2006-01-02" tokens, -i for a form)
  list       List tasks (-filter all|today|overdue|next, plus query tokens)
  done       Mark a task done by id prefix
  snooze     Snooze a task: taskpanel snooze <id> <minutes> (0 clears)
  rm         Delete a task by id prefix
  projects   Manage project labels: projects [add|rm <name>]
  export     Write tasks as JSON to a file or stdout
  import     Merge tasks from a JSON file, skipping duplicates
  tick       Run one evaluation pass and print what fires

Flags:
`)
	flag.PrintDefaults()
}

// openStore opens the configured SQLite database.
func openStore(cfg *model.AppConfig) (*store.SQLiteStore, error) {
	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", cfg.DBPath, err)
	}
	return s, nil
}
