package testutil

import (
	"time"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/google/uuid"
)

// Course options
type CourseOption func(*domain.Course)

func WithUnits(u int) CourseOption {
	return func(c *domain.Course) {
		c.Units = u
	}
}

func WithDifficulty(d int) CourseOption {
	return func(c *domain.Course) {
		c.Difficulty = d
	}
}

func WithCategory(cat domain.Category) CourseOption {
	return func(c *domain.Course) {
		c.Category = cat
	}
}

func WithPrereqs(ids ...string) CourseOption {
	return func(c *domain.Course) {
		c.Prerequisites = ids
	}
}

func WithCoreqs(ids ...string) CourseOption {
	return func(c *domain.Course) {
		c.Corequisites = ids
	}
}

func WithTaken(label string) CourseOption {
	return func(c *domain.Course) {
		c.TakenLabel = label
	}
}

func WithOrder(i int) CourseOption {
	return func(c *domain.Course) {
		c.OriginalOrder = i
	}
}

func NewTestCourse(id string, opts ...CourseOption) domain.Course {
	c := domain.Course{
		ID:         id,
		Name:       "Course " + id,
		Units:      4,
		Difficulty: 3,
		Category:   domain.CategoryRequired,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Plan run options
type PlanRunOption func(*domain.PlanRun)

func WithStartedAt(t time.Time) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.StartedAt = t
	}
}

func WithRunDiagnostic(courseID, termID string, phase domain.Phase, reason string) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.Diagnostics = append(r.Diagnostics, domain.RunDiagnostic{
			CourseID: courseID,
			TermID:   termID,
			Phase:    phase,
			Reason:   reason,
		})
	}
}

func NewTestPlanRun(opts ...PlanRunOption) *domain.PlanRun {
	r := &domain.PlanRun{
		ID:            uuid.New().String(),
		StartedAt:     time.Now().UTC(),
		DurationMs:    3,
		MinUnits:      12,
		TargetUnits:   13,
		MaxUnits:      15,
		MaxDifficulty: 15,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
