package storage

import "fmt"

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations returns the ordered migration list for the given driver.
// The schema is shared between sqlite and postgres; only the activity
// sequence column needs a per-driver spelling. Dependent tables carry plain
// REFERENCES without ON DELETE actions: deletion fan-out is an explicit
// ordered routine in the repositories, so it behaves identically on both
// backends.
func migrations(driver string) []migration {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	return []migration{
		{
			version: 1,
			sql: fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS profiles (
	principal_id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	avatar_url   TEXT,
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS lists (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	title      TEXT NOT NULL,
	color      TEXT,
	archived   BOOLEAN NOT NULL DEFAULT FALSE,
	rank       REAL NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lists_owner ON lists(owner_id);

CREATE TABLE IF NOT EXISTS tasks (
	id           TEXT PRIMARY KEY,
	owner_id     TEXT NOT NULL,
	list_id      TEXT NOT NULL REFERENCES lists(id),
	title        TEXT NOT NULL,
	notes        TEXT,
	status       TEXT NOT NULL DEFAULT 'open',
	priority     INTEGER NOT NULL DEFAULT 3,
	due_date     TEXT,
	due_time     TEXT,
	important    BOOLEAN NOT NULL DEFAULT FALSE,
	rank         REAL NOT NULL DEFAULT 0,
	completed_at TIMESTAMP,
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
CREATE INDEX IF NOT EXISTS idx_tasks_list ON tasks(list_id);

CREATE TABLE IF NOT EXISTS tags (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	name       TEXT NOT NULL,
	color      TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	UNIQUE (owner_id, name)
);

CREATE TABLE IF NOT EXISTS task_tags (
	task_id TEXT NOT NULL REFERENCES tasks(id),
	tag_id  TEXT NOT NULL REFERENCES tags(id),
	PRIMARY KEY (task_id, tag_id)
);

CREATE TABLE IF NOT EXISTS reminders (
	id         TEXT PRIMARY KEY,
	owner_id   TEXT NOT NULL,
	task_id    TEXT NOT NULL REFERENCES tasks(id),
	fire_at    TIMESTAMP NOT NULL,
	delivered  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reminders_owner ON reminders(owner_id);
CREATE INDEX IF NOT EXISTS idx_reminders_task ON reminders(task_id);

CREATE TABLE IF NOT EXISTS activity (
	seq          %s,
	task_id      TEXT NOT NULL,
	owner_id     TEXT NOT NULL,
	action       TEXT NOT NULL,
	before_state TEXT,
	after_state  TEXT,
	created_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_task ON activity(task_id);

INSERT INTO schema_version (version) VALUES (1);
`, serial),
		},
	}
}
