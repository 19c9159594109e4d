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
	`CREATE TABLE IF NOT EXISTS courses (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL DEFAULT '',
		units          INTEGER NOT NULL CHECK(units > 0),
		difficulty     INTEGER NOT NULL DEFAULT 1 CHECK(difficulty >= 0),
		category       TEXT NOT NULL DEFAULT 'required'
		               CHECK(category IN ('required','optional','capstone','external')),
		original_order INTEGER NOT NULL DEFAULT 0,
		taken_label    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS course_prerequisites (
		course_id       TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		prerequisite_id TEXT NOT NULL,
		position        INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (course_id, prerequisite_id)
	)`,

	`CREATE TABLE IF NOT EXISTS course_corequisites (
		course_id      TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		corequisite_id TEXT NOT NULL,
		position       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (course_id, corequisite_id)
	)`,

	`CREATE TABLE IF NOT EXISTS terms (
		id       TEXT PRIMARY KEY,
		label    TEXT NOT NULL,
		year     INTEGER NOT NULL CHECK(year > 0),
		season   TEXT NOT NULL CHECK(season IN ('summer','fall','winter','spring')),
		position INTEGER NOT NULL DEFAULT 0,
		locked   INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS term_courses (
		term_id   TEXT NOT NULL REFERENCES terms(id) ON DELETE CASCADE,
		course_id TEXT NOT NULL UNIQUE REFERENCES courses(id) ON DELETE CASCADE,
		position  INTEGER NOT NULL DEFAULT 0,
		pinned    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (term_id, course_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_term_courses_term ON term_courses(term_id)`,

	`CREATE TABLE IF NOT EXISTS plan_settings (
		id                TEXT PRIMARY KEY DEFAULT 'default',
		academic_system   TEXT NOT NULL DEFAULT 'quarter'
		                  CHECK(academic_system IN ('quarter','semester')),
		graduation_years  INTEGER NOT NULL DEFAULT 4 CHECK(graduation_years > 0),
		custom_term_count INTEGER,
		min_units         INTEGER,
		target_units      INTEGER,
		max_units         INTEGER,
		target_difficulty INTEGER,
		max_difficulty    INTEGER,
		top_up_attempts   INTEGER
	)`,

	// Seed default planning settings
	`INSERT OR IGNORE INTO plan_settings (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS plan_runs (
		id             TEXT PRIMARY KEY,
		started_at     TEXT NOT NULL,
		duration_ms    INTEGER NOT NULL DEFAULT 0,
		placed         INTEGER NOT NULL DEFAULT 0,
		unplaced       INTEGER NOT NULL DEFAULT 0,
		over_capacity  INTEGER NOT NULL DEFAULT 0,
		min_units      INTEGER NOT NULL,
		target_units   INTEGER NOT NULL,
		max_units      INTEGER NOT NULL,
		max_difficulty INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_runs_started ON plan_runs(started_at)`,

	`CREATE TABLE IF NOT EXISTS plan_run_diagnostics (
		run_id    TEXT NOT NULL REFERENCES plan_runs(id) ON DELETE CASCADE,
		course_id TEXT NOT NULL,
		term_id   TEXT NOT NULL DEFAULT '',
		phase     TEXT NOT NULL DEFAULT '',
		reason    TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, course_id)
	)`,

	// Course descriptions were added after the first catalog format
	`ALTER TABLE courses ADD COLUMN description TEXT NOT NULL DEFAULT ''`,
}
