// Package catalog holds the validated, immutable-per-run course list that
// feeds the planner.
package catalog

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/termplan/internal/domain"
)

// Catalog is an ordered, validated set of courses keyed by ID.
type Catalog struct {
	courses []domain.Course
	byID    map[string]int
}

// New validates courses and returns a Catalog. All integrity problems are
// collected into a single *ValidationError; nothing is returned on failure.
// Courses are kept sorted by OriginalOrder.
func New(courses []domain.Course) (*Catalog, error) {
	issues := Validate(courses)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	sorted := make([]domain.Course, len(courses))
	for i, c := range courses {
		sorted[i] = cloneCourse(c)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OriginalOrder < sorted[j].OriginalOrder
	})

	cat := &Catalog{
		courses: sorted,
		byID:    make(map[string]int, len(sorted)),
	}
	for i, c := range sorted {
		cat.byID[c.ID] = i
	}
	return cat, nil
}

// Empty returns a catalog with no courses.
func Empty() *Catalog {
	return &Catalog{byID: map[string]int{}}
}

// Validate checks courses for data-integrity problems and returns every issue found.
func Validate(courses []domain.Course) []Issue {
	var issues []Issue

	known := make(map[string]bool, len(courses))
	for i, c := range courses {
		if c.ID == "" {
			issues = append(issues, Issue{
				Code:    IssueEmptyID,
				Message: fmt.Sprintf("courses[%d] has an empty identifier", i),
			})
			continue
		}
		if known[c.ID] {
			issues = append(issues, Issue{
				Code:     IssueDuplicateID,
				CourseID: c.ID,
				Message:  fmt.Sprintf("duplicate course identifier %q", c.ID),
			})
			continue
		}
		known[c.ID] = true
	}

	coreqs := make(map[string]map[string]bool, len(courses))
	for _, c := range courses {
		if c.ID == "" {
			continue
		}
		set := coreqs[c.ID]
		if set == nil {
			set = make(map[string]bool)
			coreqs[c.ID] = set
		}
		for _, id := range c.Corequisites {
			set[id] = true
		}
	}

	for _, c := range courses {
		if c.ID == "" {
			continue
		}
		if c.Units <= 0 {
			issues = append(issues, Issue{
				Code:     IssueInvalidUnits,
				CourseID: c.ID,
				Message:  fmt.Sprintf("course %q: units must be positive (got %d)", c.ID, c.Units),
			})
		}
		if c.Difficulty < 0 {
			issues = append(issues, Issue{
				Code:     IssueInvalidDifficulty,
				CourseID: c.ID,
				Message:  fmt.Sprintf("course %q: difficulty must not be negative (got %d)", c.ID, c.Difficulty),
			})
		}

		for _, p := range c.Prerequisites {
			switch {
			case p == c.ID:
				issues = append(issues, Issue{
					Code:     IssueSelfPrerequisite,
					CourseID: c.ID,
					Message:  fmt.Sprintf("course %q lists itself as a prerequisite", c.ID),
				})
			case !known[p]:
				issues = append(issues, Issue{
					Code:     IssueUnknownPrerequisite,
					CourseID: c.ID,
					Message:  fmt.Sprintf("course %q: prerequisite %q not found in catalog", c.ID, p),
				})
			}
		}

		for _, q := range c.Corequisites {
			switch {
			case q == c.ID:
				issues = append(issues, Issue{
					Code:     IssueSelfCorequisite,
					CourseID: c.ID,
					Message:  fmt.Sprintf("course %q lists itself as a corequisite", c.ID),
				})
			case !known[q]:
				issues = append(issues, Issue{
					Code:     IssueUnknownCorequisite,
					CourseID: c.ID,
					Message:  fmt.Sprintf("course %q: corequisite %q not found in catalog", c.ID, q),
				})
			case !coreqs[q][c.ID]:
				issues = append(issues, Issue{
					Code:     IssueAsymmetricCorequisite,
					CourseID: c.ID,
					Message:  fmt.Sprintf("course %q lists %q as corequisite but %q does not list %q", c.ID, q, q, c.ID),
				})
			}
		}
	}

	issues = append(issues, detectCycles(courses, known)...)
	return issues
}

// detectCycles reports prerequisite cycles of length two or more. Self-loops
// are reported separately as SELF_PREREQUISITE.
func detectCycles(courses []domain.Course, known map[string]bool) []Issue {
	graph := make(map[string][]string)
	var order []string
	for _, c := range courses {
		if c.ID == "" || graph[c.ID] != nil {
			continue
		}
		order = append(order, c.ID)
		edges := []string{}
		for _, p := range c.Prerequisites {
			if p != c.ID && known[p] {
				edges = append(edges, p)
			}
		}
		graph[c.ID] = edges
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	color := make(map[string]int)
	var issues []Issue

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, next := range graph[id] {
			if color[next] == gray {
				issues = append(issues, Issue{
					Code:     IssuePrerequisiteCycle,
					CourseID: id,
					Message:  fmt.Sprintf("prerequisite cycle detected involving %q and %q", id, next),
				})
				return true
			}
			if color[next] == white && visit(next) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, id := range order {
		if color[id] == white {
			visit(id)
		}
	}
	return issues
}

// Courses returns the catalog in original order. The slice must not be modified.
func (c *Catalog) Courses() []domain.Course {
	return c.courses
}

// Len returns the number of courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Get returns the course with the given ID.
func (c *Catalog) Get(id string) (*domain.Course, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.courses[i], true
}

// Has reports whether id is a catalog course.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Plannable returns the courses eligible for automatic planning, in original order.
func (c *Catalog) Plannable() []domain.Course {
	out := make([]domain.Course, 0, len(c.courses))
	for _, course := range c.courses {
		if course.Plannable() {
			out = append(out, course)
		}
	}
	return out
}

// PlannableTotals returns the unit and difficulty sums over plannable courses.
func (c *Catalog) PlannableTotals() (units, difficulty int) {
	for i := range c.courses {
		if c.courses[i].Plannable() {
			units += c.courses[i].Units
			difficulty += c.courses[i].Load()
		}
	}
	return units, difficulty
}

func cloneCourse(c domain.Course) domain.Course {
	c.Prerequisites = append([]string(nil), c.Prerequisites...)
	c.Corequisites = append([]string(nil), c.Corequisites...)
	return c
}
