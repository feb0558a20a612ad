package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/myslennya/taskpanel/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
// Parent directories are created if needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReadAllTasks returns all tasks in stored order.
func (s *SQLiteStore) ReadAllTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, title, project, tags, done, due, remind_before_min, snoozed_until, created_at FROM tasks ORDER BY sort_order, created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// WriteAllTasks replaces the full task collection in a single transaction.
// Reminder state rows whose task no longer exists are pruned in the same
// transaction so the bookkeeping mapping never outlives its task.
func (s *SQLiteStore) WriteAllTasks(ctx context.Context, tasks []model.Task) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	const query = `
		INSERT INTO tasks (
			id, title, project, tags, done, due,
			remind_before_min, snoozed_until, created_at, sort_order
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		tags, err := json.Marshal(t.Tags)
		if err != nil {
			return fmt.Errorf("marshaling tags for task %s: %w", t.ID, err)
		}

		var snoozed *time.Time
		if t.SnoozedUntil != nil {
			u := t.SnoozedUntil.UTC()
			snoozed = &u
		}

		_, err = stmt.ExecContext(ctx,
			t.ID, t.Title, t.Project, string(tags), boolToInt(t.Done), t.Due,
			t.RemindBeforeMin, snoozed, t.Created.UTC(), i,
		)
		if err != nil {
			return fmt.Errorf("inserting task %s: %w", t.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM reminder_state WHERE task_id NOT IN (SELECT id FROM tasks)",
	); err != nil {
		return fmt.Errorf("pruning reminder state: %w", err)
	}

	return tx.Commit()
}

// ReadReminderStates returns the reminder bookkeeping keyed by task id.
func (s *SQLiteStore) ReadReminderStates(
	ctx context.Context,
) (map[string]model.ReminderState, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT task_id, last_lead_at, last_due_at, last_overdue_at FROM reminder_state",
	)
	if err != nil {
		return nil, fmt.Errorf("querying reminder state: %w", err)
	}
	defer rows.Close()

	states := make(map[string]model.ReminderState)
	for rows.Next() {
		var (
			taskID string
			st     model.ReminderState
		)
		if err := rows.Scan(&taskID, &st.LastLead, &st.LastDue, &st.LastOverdue); err != nil {
			return nil, fmt.Errorf("scanning reminder state row: %w", err)
		}
		states[taskID] = st
	}

	return states, rows.Err()
}

// WriteReminderStates replaces the reminder bookkeeping. Zero-value entries
// are dropped rather than stored.
func (s *SQLiteStore) WriteReminderStates(
	ctx context.Context,
	states map[string]model.ReminderState,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM reminder_state"); err != nil {
		return fmt.Errorf("clearing reminder state: %w", err)
	}

	const query = `
		INSERT INTO reminder_state (task_id, last_lead_at, last_due_at, last_overdue_at)
		VALUES (?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing reminder state statement: %w", err)
	}
	defer stmt.Close()

	for taskID, st := range states {
		if st.IsZero() {
			continue
		}
		_, err = stmt.ExecContext(ctx,
			taskID, utcOrNil(st.LastLead), utcOrNil(st.LastDue), utcOrNil(st.LastOverdue),
		)
		if err != nil {
			return fmt.Errorf("inserting reminder state for task %s: %w", taskID, err)
		}
	}

	return tx.Commit()
}

// GetProjects returns all project labels in stored order.
func (s *SQLiteStore) GetProjects(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names,
		"SELECT name FROM projects ORDER BY sort_order, name",
	)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	return names, nil
}

// SetProjects replaces the project label list.
func (s *SQLiteStore) SetProjects(ctx context.Context, names []string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return fmt.Errorf("clearing projects: %w", err)
	}

	for i, name := range names {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO projects (name, sort_order) VALUES (?, ?)", name, i,
		)
		if err != nil {
			return fmt.Errorf("inserting project %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	var (
		task      model.Task
		tagsJSON  string
		doneInt   int
		snoozed   *time.Time
		createdAt time.Time
	)

	err := rows.Scan(
		&task.ID, &task.Title, &task.Project, &tagsJSON, &doneInt,
		&task.Due, &task.RemindBeforeMin, &snoozed, &createdAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.Done = doneInt != 0
	task.SnoozedUntil = snoozed
	task.Created = createdAt

	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &task.Tags); err != nil {
			return model.Task{}, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}

	return task, nil
}

// utcOrNil normalizes an optional timestamp to UTC for storage.
func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
