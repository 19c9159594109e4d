package planner

import (
	"testing"

	"github.com/alexanderramin/termplan/internal/catalog"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/stretchr/testify/require"
)

func required(id string, order, units, difficulty int, prereqs ...string) domain.Course {
	return domain.Course{
		ID:            id,
		Name:          id,
		Units:         units,
		Difficulty:    difficulty,
		Category:      domain.CategoryRequired,
		Prerequisites: prereqs,
		OriginalOrder: order,
	}
}

func optional(id string, order, units int) domain.Course {
	c := required(id, order, units, 1)
	c.Category = domain.CategoryOptional
	return c
}

func withCoreqs(c domain.Course, coreqs ...string) domain.Course {
	c.Corequisites = coreqs
	return c
}

func mustCatalog(t *testing.T, courses ...domain.Course) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(courses)
	require.NoError(t, err)
	return cat
}

func standardThresholds() Thresholds {
	return DefaultThresholds()
}

func semesterYears(years int) *TermSequence {
	return NewTermSequence(domain.SystemSemester, years)
}

func termOf(t *testing.T, seq *TermSequence, id string) *domain.Term {
	t.Helper()
	term, ok := seq.Term(id)
	require.True(t, ok, "term %s", id)
	return term
}

func assign(t *testing.T, seq *TermSequence, cat *catalog.Catalog, courseID, termID string, pinned bool) {
	t.Helper()
	c, ok := cat.Get(courseID)
	require.True(t, ok, "course %s", courseID)
	seq.Assign(c, termOf(t, seq, termID), pinned)
}
