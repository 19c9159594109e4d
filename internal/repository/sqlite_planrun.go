package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
)

// SQLitePlanRunRepo implements PlanRunRepo using a SQLite database.
type SQLitePlanRunRepo struct {
	db db.DBTX
}

// NewSQLitePlanRunRepo creates a new SQLitePlanRunRepo.
func NewSQLitePlanRunRepo(conn db.DBTX) *SQLitePlanRunRepo {
	return &SQLitePlanRunRepo{db: conn}
}

func (r *SQLitePlanRunRepo) Create(ctx context.Context, run *domain.PlanRun) error {
	query := `INSERT INTO plan_runs (id, started_at, duration_ms, placed, unplaced, over_capacity,
		min_units, target_units, max_units, max_difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		formatTime(run.StartedAt),
		run.DurationMs,
		run.Placed,
		run.Unplaced,
		run.OverCapacity,
		run.MinUnits,
		run.TargetUnits,
		run.MaxUnits,
		run.MaxDifficulty,
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}

	for _, d := range run.Diagnostics {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO plan_run_diagnostics (run_id, course_id, term_id, phase, reason) VALUES (?, ?, ?, ?, ?)`,
			run.ID, d.CourseID, d.TermID, string(d.Phase), d.Reason)
		if err != nil {
			return fmt.Errorf("inserting diagnostic for %s: %w", d.CourseID, err)
		}
	}
	return nil
}

func (r *SQLitePlanRunRepo) GetByID(ctx context.Context, id string) (*domain.PlanRun, error) {
	query := `SELECT id, started_at, duration_ms, placed, unplaced, over_capacity,
		min_units, target_units, max_units, max_difficulty
		FROM plan_runs WHERE id = ?`
	run, err := scanPlanRun(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan run %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT course_id, term_id, phase, reason FROM plan_run_diagnostics
		 WHERE run_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("listing diagnostics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.RunDiagnostic
		var phase string
		if err := rows.Scan(&d.CourseID, &d.TermID, &phase, &d.Reason); err != nil {
			return nil, fmt.Errorf("scanning diagnostic: %w", err)
		}
		d.Phase = domain.Phase(phase)
		run.Diagnostics = append(run.Diagnostics, d)
	}
	return run, rows.Err()
}

// ListRecent returns up to limit runs, newest first, without diagnostics.
func (r *SQLitePlanRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	query := `SELECT id, started_at, duration_ms, placed, unplaced, over_capacity,
		min_units, target_units, max_units, max_difficulty
		FROM plan_runs ORDER BY started_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.PlanRun
	for rows.Next() {
		run, err := scanPlanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanPlanRun(s rowScanner) (*domain.PlanRun, error) {
	var run domain.PlanRun
	var startedAt string
	err := s.Scan(
		&run.ID,
		&startedAt,
		&run.DurationMs,
		&run.Placed,
		&run.Unplaced,
		&run.OverCapacity,
		&run.MinUnits,
		&run.TargetUnits,
		&run.MaxUnits,
		&run.MaxDifficulty,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan run: %w", err)
	}
	run.StartedAt = parseTime(startedAt)
	return &run, nil
}
