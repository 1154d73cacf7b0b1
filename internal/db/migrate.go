package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	// One bearer token per user, reused across logins until logout.
	`CREATE TABLE IF NOT EXISTS auth_tokens (
		key        TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS password_resets (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL,
		expires_at TEXT NOT NULL,
		used       INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_password_resets_user ON password_resets(user_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		owner_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id)`,

	`CREATE TABLE IF NOT EXISTS project_members (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (project_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		due_date   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_categories_project ON categories(project_id)`,

	// Tags are global and shared across projects.
	`CREATE TABLE IF NOT EXISTS tags (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS todos (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		completed         INTEGER NOT NULL DEFAULT 0,
		user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		category_id       TEXT REFERENCES categories(id) ON DELETE SET NULL,
		milestone_id      TEXT REFERENCES milestones(id) ON DELETE SET NULL,
		priority          TEXT NOT NULL DEFAULT 'MEDIUM'
		                  CHECK(priority IN ('LOW','MEDIUM','HIGH','URGENT')),
		due_date          TEXT,
		estimated_minutes INTEGER,
		actual_minutes    INTEGER,
		parent_id         TEXT REFERENCES todos(id) ON DELETE CASCADE,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_todos_project ON todos(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_user ON todos(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_parent ON todos(parent_id)`,

	`CREATE TABLE IF NOT EXISTS todo_tags (
		todo_id TEXT NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
		tag_id  TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (todo_id, tag_id)
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		todo_id    TEXT NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_comments_todo ON comments(todo_id)`,

	`CREATE TABLE IF NOT EXISTS attachments (
		id          TEXT PRIMARY KEY,
		todo_id     TEXT NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		file_name   TEXT NOT NULL,
		file_path   TEXT NOT NULL,
		uploaded_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_attachments_todo ON attachments(todo_id)`,

	// At most one recurrence rule per todo.
	`CREATE TABLE IF NOT EXISTS recurring_tasks (
		id         TEXT PRIMARY KEY,
		todo_id    TEXT NOT NULL UNIQUE REFERENCES todos(id) ON DELETE CASCADE,
		frequency  TEXT NOT NULL
		           CHECK(frequency IN ('DAILY','WEEKLY','MONTHLY','YEARLY')),
		start_date TEXT NOT NULL,
		end_date   TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS activity_logs (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		action     TEXT NOT NULL,
		target     TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activity_logs_user ON activity_logs(user_id)`,
}
