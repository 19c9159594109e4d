package planner

import (
	"errors"
	"testing"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSettings(system domain.AcademicSystem, years int) domain.PlanSettings {
	return domain.PlanSettings{
		ID:               "default",
		AcademicSystem:   system,
		GraduationYears:  years,
		MinUnits:         intPtr(12),
		TargetUnits:      intPtr(13),
		MaxUnits:         intPtr(15),
		TargetDifficulty: intPtr(12),
		MaxDifficulty:    intPtr(15),
	}
}

func requireOpCode(t *testing.T, err error, code OperationCode) {
	t.Helper()
	var opErr *OperationError
	require.True(t, errors.As(err, &opErr), "expected OperationError, got %v", err)
	assert.Equal(t, code, opErr.Code)
}

func sessionCourses() []domain.Course {
	return []domain.Course{
		required("A", 0, 4, 2),
		required("B", 1, 4, 2, "A"),
		required("E", 2, 4, 2),
		required("F", 3, 5, 3),
		withCoreqs(required("LAB", 4, 1, 1), "LEC"),
		withCoreqs(required("LEC", 5, 3, 2), "LAB"),
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(mustCatalog(t, sessionCourses()...), fixedSettings(domain.SystemSemester, 2))
	require.NoError(t, err)
	return s
}

func TestNewSession_AppliesTakenLabels(t *testing.T) {
	a := required("A", 0, 4, 2)
	a.TakenLabel = "Winter, Year 1"
	b := required("B", 1, 4, 2)
	b.TakenLabel = "sometime later"
	c := required("C", 2, 4, 2)
	c.TakenLabel = "Fall Year 9"

	s, err := NewSession(mustCatalog(t, a, b, c), fixedSettings(domain.SystemQuarter, 2))
	require.NoError(t, err)

	winter := termOf(t, s.Sequence(), "winter1")
	assert.Equal(t, []string{"A"}, winter.Courses)
	assert.True(t, winter.IsPinned("A"))
	assert.Equal(t, []string{"B", "C"}, s.Sequence().Unassigned())
}

func TestNewSession_RejectsBadSettings(t *testing.T) {
	settings := fixedSettings(domain.SystemSemester, 2)
	settings.MinUnits = intPtr(40)

	_, err := NewSession(mustCatalog(t, sessionCourses()...), settings)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "min_units", cfgErr.Field)
}

func TestSession_PlaceCourse(t *testing.T) {
	t.Run("invalid placement is made and reported", func(t *testing.T) {
		s := newTestSession(t)

		v, err := s.PlaceCourse("B", "fall1")
		require.NoError(t, err)

		assert.False(t, v.Valid)
		assert.Equal(t, VerdictMissingPrerequisite, v.Code)
		fall := termOf(t, s.Sequence(), "fall1")
		assert.Equal(t, []string{"B"}, fall.Courses)
		assert.True(t, fall.IsPinned("B"))
	})

	t.Run("valid placement", func(t *testing.T) {
		s := newTestSession(t)
		_, err := s.PlaceCourse("A", "fall1")
		require.NoError(t, err)

		v, err := s.PlaceCourse("B", "spring1")
		require.NoError(t, err)
		assert.True(t, v.Valid)
	})

	t.Run("moving between terms updates both", func(t *testing.T) {
		s := newTestSession(t)
		_, err := s.PlaceCourse("A", "fall1")
		require.NoError(t, err)
		_, err = s.PlaceCourse("A", "fall2")
		require.NoError(t, err)

		assert.Equal(t, 0, termOf(t, s.Sequence(), "fall1").Units)
		assert.Equal(t, 4, termOf(t, s.Sequence(), "fall2").Units)
	})

	t.Run("unassigned target removes", func(t *testing.T) {
		s := newTestSession(t)
		_, err := s.PlaceCourse("A", "fall1")
		require.NoError(t, err)

		v, err := s.PlaceCourse("A", domain.UnassignedTermID)
		require.NoError(t, err)
		assert.True(t, v.Valid)
		assert.True(t, s.Sequence().IsUnassigned("A"))
	})

	t.Run("rejections leave state unchanged", func(t *testing.T) {
		s := newTestSession(t)
		_, err := s.PlaceCourse("E", "spring1")
		require.NoError(t, err)
		require.NoError(t, s.LockTerm("spring1"))

		_, err = s.PlaceCourse("A", "spring1")
		requireOpCode(t, err, OpTermLocked)
		_, err = s.PlaceCourse("E", "fall1")
		requireOpCode(t, err, OpTermLocked)
		_, err = s.PlaceCourse("NOPE", "fall1")
		requireOpCode(t, err, OpUnknownCourse)
		_, err = s.PlaceCourse("A", "winter9")
		requireOpCode(t, err, OpUnknownTerm)

		assert.Equal(t, []string{"E"}, termOf(t, s.Sequence(), "spring1").Courses)
		assert.Empty(t, termOf(t, s.Sequence(), "fall1").Courses)
		assert.True(t, s.Sequence().IsUnassigned("A"))
	})
}

func TestSession_RemoveCourse(t *testing.T) {
	s := newTestSession(t)
	_, err := s.PlaceCourse("A", "fall1")
	require.NoError(t, err)
	_, err = s.PlaceCourse("E", "spring1")
	require.NoError(t, err)
	require.NoError(t, s.LockTerm("spring1"))

	require.NoError(t, s.RemoveCourse("A"))
	assert.True(t, s.Sequence().IsUnassigned("A"))
	require.NoError(t, s.RemoveCourse("A"))

	requireOpCode(t, s.RemoveCourse("E"), OpTermLocked)
	requireOpCode(t, s.RemoveCourse("NOPE"), OpUnknownCourse)
}

func TestSession_PinAndUnpin(t *testing.T) {
	s := newTestSession(t)

	requireOpCode(t, s.Pin("A"), OpCourseUnassigned)
	requireOpCode(t, s.Unpin("A"), OpCourseUnassigned)

	_, err := s.PlaceCourse("B", "fall1")
	require.NoError(t, err)
	require.NoError(t, s.Unpin("B"))
	assert.False(t, termOf(t, s.Sequence(), "fall1").IsPinned("B"))

	err = s.Pin("B")
	requireOpCode(t, err, OpCourseInvalid)
	assert.Contains(t, err.Error(), "Missing prerequisite: A")
	assert.False(t, termOf(t, s.Sequence(), "fall1").IsPinned("B"))

	_, err = s.PlaceCourse("A", "fall1")
	require.NoError(t, err)
	require.NoError(t, s.Unpin("A"))
	require.NoError(t, s.Pin("A"))
	assert.True(t, termOf(t, s.Sequence(), "fall1").IsPinned("A"))
}

func TestSession_LockTerm(t *testing.T) {
	s := newTestSession(t)
	_, err := s.PlaceCourse("LAB", "fall1")
	require.NoError(t, err)

	requireOpCode(t, s.LockTerm("fall1"), OpTermInvalid)
	assert.False(t, termOf(t, s.Sequence(), "fall1").Locked)

	_, err = s.PlaceCourse("LEC", "fall1")
	require.NoError(t, err)
	require.NoError(t, s.LockTerm("fall1"))
	assert.True(t, termOf(t, s.Sequence(), "fall1").Locked)

	require.NoError(t, s.UnlockTerm("fall1"))
	assert.False(t, termOf(t, s.Sequence(), "fall1").Locked)

	requireOpCode(t, s.LockTerm(domain.UnassignedTermID), OpUnknownTerm)
}

func TestSession_LockedTermSurvivesAutoPlan(t *testing.T) {
	s := newTestSession(t)
	_, err := s.PlaceCourse("E", "spring2")
	require.NoError(t, err)
	_, err = s.PlaceCourse("F", "spring2")
	require.NoError(t, err)
	require.NoError(t, s.LockTerm("spring2"))

	res := s.AutoPlan()

	spring := termOf(t, s.Sequence(), "spring2")
	assert.Equal(t, []string{"E", "F"}, spring.Courses)
	assert.Equal(t, 9, spring.Units)
	assert.Equal(t, 5, spring.Difficulty)
	assert.Same(t, res, s.LastResult())
	assert.Empty(t, res.Unassigned)
}

func TestSession_ResetPlanning(t *testing.T) {
	s := newTestSession(t)
	_, err := s.PlaceCourse("E", "spring1")
	require.NoError(t, err)
	require.NoError(t, s.LockTerm("spring1"))
	_, err = s.PlaceCourse("F", "fall2")
	require.NoError(t, err)
	s.AutoPlan()

	s.ResetPlanning()

	for _, term := range s.Sequence().Terms() {
		if term.ID == "spring1" {
			assert.Equal(t, []string{"E"}, term.Courses)
			continue
		}
		assert.Empty(t, term.Courses, term.ID)
	}
	assert.Nil(t, s.LastResult())
	assert.Len(t, s.Sequence().Unassigned(), 5)
}

func TestSession_SetSettings(t *testing.T) {
	s := newTestSession(t)
	_, err := s.PlaceCourse("A", "fall1")
	require.NoError(t, err)
	before := s.Settings()

	bad := fixedSettings(domain.SystemSemester, 2)
	bad.TargetUnits = intPtr(99)
	err = s.SetSettings(bad)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, before, s.Settings())
	assert.Equal(t, 15, s.Thresholds().MaxUnits)

	wider := fixedSettings(domain.SystemSemester, 2)
	wider.MaxUnits = intPtr(18)
	require.NoError(t, s.SetSettings(wider))
	assert.Equal(t, 18, s.Thresholds().MaxUnits)
	assert.Len(t, s.Sequence().Terms(), 4)

	require.NoError(t, s.SetSettings(fixedSettings(domain.SystemQuarter, 1)))
	assert.Len(t, s.Sequence().Terms(), 4)
	assert.Equal(t, []string{"A"}, termOf(t, s.Sequence(), "fall1").Courses)
	_, ok := s.Sequence().Term("winter1")
	assert.True(t, ok)
}

func TestSession_ReloadCatalog(t *testing.T) {
	s := newTestSession(t)
	_, err := s.PlaceCourse("E", "spring1")
	require.NoError(t, err)
	require.NoError(t, s.LockTerm("spring1"))
	_, err = s.PlaceCourse("A", "fall1")
	require.NoError(t, err)
	require.NoError(t, s.Unpin("A"))
	_, err = s.PlaceCourse("F", "fall2")
	require.NoError(t, err)

	g := required("G", 6, 3, 1)
	g.TakenLabel = "Spring, Year 2"
	next := mustCatalog(t,
		required("A", 0, 4, 2),
		required("E", 2, 4, 2),
		required("F", 3, 6, 3),
		g,
	)

	require.NoError(t, s.ReloadCatalog(next))

	assert.Equal(t, []string{"E"}, termOf(t, s.Sequence(), "spring1").Courses)
	assert.Equal(t, []string{"F"}, termOf(t, s.Sequence(), "fall2").Courses)
	assert.Equal(t, 6, termOf(t, s.Sequence(), "fall2").Units)
	assert.Empty(t, termOf(t, s.Sequence(), "fall1").Courses)
	assert.Equal(t, []string{"G"}, termOf(t, s.Sequence(), "spring2").Courses)
	assert.Equal(t, []string{"A"}, s.Sequence().Unassigned())
	assert.Same(t, next, s.Catalog())
}

func TestSession_InvalidCourses(t *testing.T) {
	s := newTestSession(t)
	_, err := s.PlaceCourse("B", "fall1")
	require.NoError(t, err)
	_, err = s.PlaceCourse("LAB", "spring1")
	require.NoError(t, err)
	_, err = s.PlaceCourse("A", "fall2")
	require.NoError(t, err)

	invalid := s.InvalidCourses()

	require.Len(t, invalid, 2)
	assert.Equal(t, "B", invalid[0].CourseID)
	assert.Equal(t, VerdictMissingPrerequisite, invalid[0].Verdict.Code)
	assert.Equal(t, "LAB", invalid[1].CourseID)
	assert.Equal(t, VerdictMissingCorequisite, invalid[1].Verdict.Code)
}

func TestSession_CheckPlacementDoesNotMutate(t *testing.T) {
	s := newTestSession(t)

	v, err := s.CheckPlacement("B", "fall1")
	require.NoError(t, err)
	assert.Equal(t, VerdictMissingPrerequisite, v.Code)
	assert.True(t, s.Sequence().IsUnassigned("B"))

	_, err = s.CheckPlacement("B", "nowhere")
	requireOpCode(t, err, OpUnknownTerm)
}
