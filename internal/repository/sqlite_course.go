package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a new SQLiteCourseRepo.
func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

// ReplaceAll swaps the stored catalog for courses. Term assignments of
// removed courses are cascade-deleted. Run it inside a transaction.
func (r *SQLiteCourseRepo) ReplaceAll(ctx context.Context, courses []domain.Course) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("clearing courses: %w", err)
	}

	insertCourse := `INSERT INTO courses (id, name, description, units, difficulty, category, original_order, taken_label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, c := range courses {
		_, err := r.db.ExecContext(ctx, insertCourse,
			c.ID,
			c.Name,
			c.Description,
			c.Units,
			c.Difficulty,
			string(c.Category),
			c.OriginalOrder,
			c.TakenLabel,
		)
		if err != nil {
			return fmt.Errorf("inserting course %s: %w", c.ID, err)
		}
	}

	for _, c := range courses {
		for i, p := range c.Prerequisites {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO course_prerequisites (course_id, prerequisite_id, position) VALUES (?, ?, ?)`,
				c.ID, p, i)
			if err != nil {
				return fmt.Errorf("inserting prerequisite %s of %s: %w", p, c.ID, err)
			}
		}
		for i, q := range c.Corequisites {
			_, err := r.db.ExecContext(ctx,
				`INSERT INTO course_corequisites (course_id, corequisite_id, position) VALUES (?, ?, ?)`,
				c.ID, q, i)
			if err != nil {
				return fmt.Errorf("inserting corequisite %s of %s: %w", q, c.ID, err)
			}
		}
	}
	return nil
}

func (r *SQLiteCourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	query := `SELECT id, name, description, units, difficulty, category, original_order, taken_label
		FROM courses ORDER BY original_order, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	index := make(map[string]int)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		index[c.ID] = len(courses)
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}

	prereqs, err := r.edges(ctx, `SELECT course_id, prerequisite_id FROM course_prerequisites ORDER BY course_id, position`)
	if err != nil {
		return nil, err
	}
	coreqs, err := r.edges(ctx, `SELECT course_id, corequisite_id FROM course_corequisites ORDER BY course_id, position`)
	if err != nil {
		return nil, err
	}
	for id, i := range index {
		courses[i].Prerequisites = prereqs[id]
		courses[i].Corequisites = coreqs[id]
	}
	return courses, nil
}

func (r *SQLiteCourseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	query := `SELECT id, name, description, units, difficulty, category, original_order, taken_label
		FROM courses WHERE id = ?`
	c, err := scanCourse(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	prereqs, err := r.edges(ctx, `SELECT course_id, prerequisite_id FROM course_prerequisites WHERE course_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	coreqs, err := r.edges(ctx, `SELECT course_id, corequisite_id FROM course_corequisites WHERE course_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	c.Prerequisites = prereqs[id]
	c.Corequisites = coreqs[id]
	return c, nil
}

func (r *SQLiteCourseRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting courses: %w", err)
	}
	return n, nil
}

// edges loads (course, target) pairs grouped by course, preserving row order.
func (r *SQLiteCourseRepo) edges(ctx context.Context, query string, args ...any) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading course edges: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("scanning course edge: %w", err)
		}
		out[from] = append(out[from], to)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(s rowScanner) (*domain.Course, error) {
	var c domain.Course
	var category string
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Units,
		&c.Difficulty,
		&category,
		&c.OriginalOrder,
		&c.TakenLabel,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}
	c.Category = domain.Category(category)
	return &c, nil
}
