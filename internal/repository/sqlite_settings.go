package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo using a SQLite database.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(conn db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: conn}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context) (*domain.PlanSettings, error) {
	query := `SELECT id, academic_system, graduation_years, custom_term_count,
		min_units, target_units, max_units, target_difficulty, max_difficulty, top_up_attempts
		FROM plan_settings WHERE id = 'default'`

	var s domain.PlanSettings
	var system string
	var customTerms, minUnits, targetUnits, maxUnits, targetDiff, maxDiff, attempts sql.NullInt64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID,
		&system,
		&s.GraduationYears,
		&customTerms,
		&minUnits,
		&targetUnits,
		&maxUnits,
		&targetDiff,
		&maxDiff,
		&attempts,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("getting plan settings: %w", err)
	}

	s.AcademicSystem = domain.AcademicSystem(system)
	s.CustomTermCount = nullIntToPtr(customTerms)
	s.MinUnits = nullIntToPtr(minUnits)
	s.TargetUnits = nullIntToPtr(targetUnits)
	s.MaxUnits = nullIntToPtr(maxUnits)
	s.TargetDifficulty = nullIntToPtr(targetDiff)
	s.MaxDifficulty = nullIntToPtr(maxDiff)
	s.TopUpAttempts = nullIntToPtr(attempts)
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.PlanSettings) error {
	query := `INSERT INTO plan_settings (id, academic_system, graduation_years, custom_term_count,
		min_units, target_units, max_units, target_difficulty, max_difficulty, top_up_attempts)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			academic_system = excluded.academic_system,
			graduation_years = excluded.graduation_years,
			custom_term_count = excluded.custom_term_count,
			min_units = excluded.min_units,
			target_units = excluded.target_units,
			max_units = excluded.max_units,
			target_difficulty = excluded.target_difficulty,
			max_difficulty = excluded.max_difficulty,
			top_up_attempts = excluded.top_up_attempts`

	_, err := r.db.ExecContext(ctx, query,
		string(s.AcademicSystem),
		s.GraduationYears,
		nullableIntToValue(s.CustomTermCount),
		nullableIntToValue(s.MinUnits),
		nullableIntToValue(s.TargetUnits),
		nullableIntToValue(s.MaxUnits),
		nullableIntToValue(s.TargetDifficulty),
		nullableIntToValue(s.MaxDifficulty),
		nullableIntToValue(s.TopUpAttempts),
	)
	if err != nil {
		return fmt.Errorf("upserting plan settings: %w", err)
	}
	return nil
}
