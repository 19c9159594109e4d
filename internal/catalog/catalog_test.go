package catalog

import (
	"errors"
	"testing"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func course(id string, units int, prereqs ...string) domain.Course {
	return domain.Course{ID: id, Name: id, Units: units, Difficulty: 2, Category: domain.CategoryRequired, Prerequisites: prereqs}
}

func validationIssues(t *testing.T, err error) []Issue {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Issues
}

func TestNew_ValidCatalogSortedByOriginalOrder(t *testing.T) {
	a := course("A", 4)
	a.OriginalOrder = 1
	b := course("B", 4, "A")
	b.OriginalOrder = 0

	cat, err := New([]domain.Course{a, b})
	require.NoError(t, err)

	require.Equal(t, 2, cat.Len())
	assert.Equal(t, "B", cat.Courses()[0].ID)
	assert.Equal(t, "A", cat.Courses()[1].ID)

	got, ok := cat.Get("A")
	require.True(t, ok)
	assert.Equal(t, 4, got.Units)
	assert.False(t, cat.Has("Z"))
}

func TestNew_SelfPrerequisiteRejected(t *testing.T) {
	_, err := New([]domain.Course{course("X", 3, "X")})
	require.Error(t, err)

	issues := validationIssues(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueSelfPrerequisite, issues[0].Code)
	assert.Equal(t, "X", issues[0].CourseID)
	assert.Contains(t, err.Error(), `"X"`)
}

func TestNew_AggregatesAllIssues(t *testing.T) {
	c := course("C", 3)
	c.Corequisites = []string{"D"}
	d := course("D", 3)
	e := course("E", 0, "MISSING")
	e.Corequisites = []string{"E", "GHOST"}
	dup := course("C", 3)
	empty := course("", 3)
	neg := course("N", 3)
	neg.Difficulty = -2

	_, err := New([]domain.Course{c, d, e, dup, empty, neg})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasCode(IssueAsymmetricCorequisite))
	assert.True(t, verr.HasCode(IssueInvalidUnits))
	assert.True(t, verr.HasCode(IssueUnknownPrerequisite))
	assert.True(t, verr.HasCode(IssueSelfCorequisite))
	assert.True(t, verr.HasCode(IssueUnknownCorequisite))
	assert.True(t, verr.HasCode(IssueDuplicateID))
	assert.True(t, verr.HasCode(IssueEmptyID))
	assert.True(t, verr.HasCode(IssueInvalidDifficulty))
	assert.GreaterOrEqual(t, len(verr.Issues), 8)
}

func TestNew_PrerequisiteCycleRejected(t *testing.T) {
	_, err := New([]domain.Course{
		course("A", 3, "C"),
		course("B", 3, "A"),
		course("C", 3, "B"),
	})
	require.Error(t, err)
	issues := validationIssues(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, IssuePrerequisiteCycle, issues[0].Code)
}

func TestNew_SymmetricCorequisitesAccepted(t *testing.T) {
	c := course("C", 3)
	c.Corequisites = []string{"D"}
	d := course("D", 3)
	d.Corequisites = []string{"C"}

	_, err := New([]domain.Course{c, d})
	assert.NoError(t, err)
}

func TestCatalog_PlannableTotals(t *testing.T) {
	opt := course("OPT", 5)
	opt.Category = domain.CategoryOptional
	noDiff := course("ND", 3)
	noDiff.Difficulty = 0

	cat, err := New([]domain.Course{course("A", 4), opt, noDiff})
	require.NoError(t, err)

	units, difficulty := cat.PlannableTotals()
	assert.Equal(t, 7, units)
	assert.Equal(t, 3, difficulty, "unspecified difficulty counts as 1")
	assert.Len(t, cat.Plannable(), 2)
}

func TestNew_DoesNotAliasInputSlices(t *testing.T) {
	a := course("A", 3)
	b := course("B", 3, "A")
	input := []domain.Course{a, b}

	cat, err := New(input)
	require.NoError(t, err)

	input[1].Prerequisites[0] = "MUTATED"
	got, _ := cat.Get("B")
	assert.Equal(t, []string{"A"}, got.Prerequisites)
}
