package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id                TEXT PRIMARY KEY,
	title             TEXT NOT NULL,
	project           TEXT NOT NULL DEFAULT '',
	tags              TEXT NOT NULL DEFAULT '[]',
	done              INTEGER NOT NULL DEFAULT 0 CHECK(done IN (0, 1)),
	due               TEXT NOT NULL DEFAULT '',
	remind_before_min INTEGER NOT NULL DEFAULT 10,
	snoozed_until     DATETIME,
	created_at        DATETIME NOT NULL,
	sort_order        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS reminder_state (
	task_id         TEXT PRIMARY KEY,
	last_lead_at    DATETIME,
	last_due_at     DATETIME,
	last_overdue_at DATETIME
);

CREATE TABLE IF NOT EXISTS projects (
	name       TEXT PRIMARY KEY,
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_tasks_done ON tasks(done);
CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
INSERT OR IGNORE INTO projects (name, sort_order) VALUES ('personal', 0);
INSERT OR IGNORE INTO projects (name, sort_order) VALUES ('work', 1);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
