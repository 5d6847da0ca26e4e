package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
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
	`CREATE TABLE IF NOT EXISTS goals (
		id                    TEXT PRIMARY KEY,
		description           TEXT NOT NULL,
		sector                TEXT NOT NULL DEFAULT '',
		preferred_time        TEXT NOT NULL DEFAULT '',
		end_date              TEXT NOT NULL,
		times_per_week        INTEGER NOT NULL DEFAULT 3
		                      CHECK(times_per_week BETWEEN 1 AND 7),
		progress              INTEGER NOT NULL DEFAULT 0
		                      CHECK(progress BETWEEN 0 AND 100),
		daily_time_allocation INTEGER,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS goal_steps (
		goal_id           TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		step_index        INTEGER NOT NULL CHECK(step_index >= 0),
		text              TEXT NOT NULL,
		duration_min      INTEGER NOT NULL CHECK(duration_min > 0),
		completed         INTEGER NOT NULL DEFAULT 0,
		habit_type        TEXT NOT NULL DEFAULT ''
		                  CHECK(habit_type IN ('','identity','process','outcome')),
		cue_stacking_idea TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (goal_id, step_index)
	)`,

	`CREATE TABLE IF NOT EXISTS weekly_commitments (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		weekday    INTEGER NOT NULL CHECK(weekday BETWEEN 0 AND 6),
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_commitments_weekday ON weekly_commitments(weekday)`,

	`CREATE TABLE IF NOT EXISTS daily_tasks (
		id           TEXT PRIMARY KEY,
		date         TEXT NOT NULL,
		name         TEXT NOT NULL,
		start_time   TEXT NOT NULL,
		end_time     TEXT NOT NULL,
		duration_min INTEGER NOT NULL CHECK(duration_min >= 0),
		kind         TEXT NOT NULL
		             CHECK(kind IN ('goal-step','weekly-factor','ad-hoc')),
		completed    INTEGER NOT NULL DEFAULT 0,
		goal_id      TEXT REFERENCES goals(id) ON DELETE CASCADE,
		step_index   INTEGER,
		sector       TEXT NOT NULL DEFAULT '',
		priority     REAL,
		proof        TEXT NOT NULL DEFAULT '',
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_daily_tasks_date ON daily_tasks(date)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_tasks_goal ON daily_tasks(goal_id)`,

	`CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date        TEXT NOT NULL,
		priority    INTEGER NOT NULL DEFAULT 3 CHECK(priority BETWEEN 1 AND 5),
		repetition  INTEGER NOT NULL DEFAULT 0 CHECK(repetition >= 0),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS leisure_items (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		cost        REAL NOT NULL CHECK(cost > 0),
		icon        TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS purchases (
		id           TEXT PRIMARY KEY,
		item_id      TEXT NOT NULL,
		item_name    TEXT NOT NULL,
		item_icon    TEXT NOT NULL DEFAULT '',
		cost         REAL NOT NULL,
		scheduled_at TEXT NOT NULL,
		purchased_at TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'scheduled'
		             CHECK(status IN ('scheduled','used'))
	)`,

	`CREATE TABLE IF NOT EXISTS user_profile (
		id                      TEXT PRIMARY KEY DEFAULT 'default',
		leisure_points          REAL NOT NULL DEFAULT 0 CHECK(leisure_points >= 0),
		auto_schedule_reminders INTEGER NOT NULL DEFAULT 1,
		initialized             INTEGER NOT NULL DEFAULT 0,
		updated_at              TEXT NOT NULL DEFAULT ''
	)`,

	`INSERT OR IGNORE INTO user_profile (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS task_reminders (
		id              TEXT PRIMARY KEY,
		task_id         TEXT NOT NULL,
		task_name       TEXT NOT NULL,
		duration_min    INTEGER NOT NULL DEFAULT 0,
		fire_at         TEXT NOT NULL,
		kind            TEXT NOT NULL CHECK(kind IN ('reminder','task')),
		source          TEXT NOT NULL CHECK(source IN ('to-day','manual')),
		notification_id TEXT NOT NULL,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_reminders_source ON task_reminders(source)`,

	// Columns added after the first release.
	`ALTER TABLE goals ADD COLUMN identity_statement TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE goals ADD COLUMN habit_tips TEXT NOT NULL DEFAULT '[]'`,
	`ALTER TABLE daily_tasks ADD COLUMN attachments TEXT NOT NULL DEFAULT '[]'`,
}
