package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
)

// SQLiteTermRepo implements TermRepo using a SQLite database.
type SQLiteTermRepo struct {
	db db.DBTX
}

// NewSQLiteTermRepo creates a new SQLiteTermRepo.
func NewSQLiteTermRepo(conn db.DBTX) *SQLiteTermRepo {
	return &SQLiteTermRepo{db: conn}
}

// SaveAll replaces every stored term and assignment with terms, keeping
// their order. The unassigned bucket is skipped. Run it inside a transaction.
func (r *SQLiteTermRepo) SaveAll(ctx context.Context, terms []*domain.Term) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM terms`); err != nil {
		return fmt.Errorf("clearing terms: %w", err)
	}

	position := 0
	for _, t := range terms {
		if t.ID == domain.UnassignedTermID {
			continue
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO terms (id, label, year, season, position, locked) VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Label, t.Year, string(t.Season), position, boolToInt(t.Locked))
		if err != nil {
			return fmt.Errorf("inserting term %s: %w", t.ID, err)
		}
		position++

		for i, courseID := range t.Courses {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO term_courses (term_id, course_id, position, pinned) VALUES (?, ?, ?, ?)`,
				t.ID, courseID, i, boolToInt(t.IsPinned(courseID)))
			if err != nil {
				return fmt.Errorf("assigning %s to %s: %w", courseID, t.ID, err)
			}
		}
	}
	return nil
}

// List returns stored terms in sequence order with their assignments.
// Unit and difficulty totals are left at zero for the caller to recount.
func (r *SQLiteTermRepo) List(ctx context.Context) ([]*domain.Term, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, year, season, locked FROM terms ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("listing terms: %w", err)
	}
	defer rows.Close()

	var terms []*domain.Term
	byID := make(map[string]*domain.Term)
	for rows.Next() {
		var t domain.Term
		var season string
		var locked int
		if err := rows.Scan(&t.ID, &t.Label, &t.Year, &season, &locked); err != nil {
			return nil, fmt.Errorf("scanning term: %w", err)
		}
		t.Season = domain.Season(season)
		t.Locked = intToBool(locked)
		t.Pinned = make(map[string]bool)
		terms = append(terms, &t)
		byID[t.ID] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating terms: %w", err)
	}
	rows.Close()

	assignRows, err := r.db.QueryContext(ctx,
		`SELECT term_id, course_id, pinned FROM term_courses ORDER BY term_id, position`)
	if err != nil {
		return nil, fmt.Errorf("listing term courses: %w", err)
	}
	defer assignRows.Close()

	for assignRows.Next() {
		var termID, courseID string
		var pinned int
		if err := assignRows.Scan(&termID, &courseID, &pinned); err != nil {
			return nil, fmt.Errorf("scanning term course: %w", err)
		}
		t, ok := byID[termID]
		if !ok {
			continue
		}
		t.Courses = append(t.Courses, courseID)
		if intToBool(pinned) {
			t.Pinned[courseID] = true
		}
	}
	if err := assignRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating term courses: %w", err)
	}
	return terms, nil
}
