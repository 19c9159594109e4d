package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringPlanSave verifies that term listings taken
// while the plan is rewritten see either the old or the new layout, never a
// half-written one.
func TestConcurrentAccess_ReadDuringPlanSave(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)

	ids := make([]string, 6)
	for i := range ids {
		ids[i] = fmt.Sprintf("C%d", i)
	}
	seedCourses(t, NewSQLiteCourseRepo(database), ids...)

	layout := func(round int) []*domain.Term {
		fall := domain.NewTerm(domain.SeasonFall, 1)
		spring := domain.NewTerm(domain.SeasonSpring, 1)
		for i, id := range ids {
			if (i+round)%2 == 0 {
				fall.Courses = append(fall.Courses, id)
			} else {
				spring.Courses = append(spring.Courses, id)
			}
		}
		return []*domain.Term{fall, spring}
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for round := 0; round < 20; round++ {
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLiteTermRepo(tx).SaveAll(ctx, layout(round))
			})
			if err != nil {
				t.Errorf("writer: round %d: %v", round, err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				var terms []*domain.Term
				err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
					var err error
					terms, err = NewSQLiteTermRepo(tx).List(ctx)
					return err
				})
				if err != nil {
					t.Errorf("reader %d: list terms: %v", reader, err)
					return
				}
				total := 0
				for _, term := range terms {
					total += len(term.Courses)
				}
				if len(terms) > 0 && total != len(ids) {
					t.Errorf("reader %d: saw %d assigned courses, want %d", reader, total, len(ids))
				}
			}
		}(r)
	}

	wg.Wait()

	terms, err := NewSQLiteTermRepo(database).List(ctx)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Len(t, append(terms[0].Courses, terms[1].Courses...), len(ids))
}
