package domain

import "fmt"

// UnassignedTermID identifies the synthetic holding bucket for unscheduled courses.
const UnassignedTermID = "unassigned"

// Term is one scheduling slot. Courses keeps insertion order; Pinned is a subset
// of Courses exempt from automatic replanning.
type Term struct {
	ID         string
	Label      string
	Year       int
	Season     Season
	Courses    []string
	Pinned     map[string]bool
	Units      int
	Difficulty int
	Locked     bool
}

// NewTerm builds an empty term with the canonical ID and label.
func NewTerm(season Season, year int) *Term {
	return &Term{
		ID:     TermID(season, year),
		Label:  TermLabel(season, year),
		Year:   year,
		Season: season,
		Pinned: make(map[string]bool),
	}
}

// TermID returns the internal identifier for a season and year, e.g. "fall2".
func TermID(season Season, year int) string {
	return fmt.Sprintf("%s%d", season, year)
}

// Has reports whether the course is assigned to the term.
func (t *Term) Has(courseID string) bool {
	for _, id := range t.Courses {
		if id == courseID {
			return true
		}
	}
	return false
}

// IsPinned reports whether the course is pinned inside this term.
func (t *Term) IsPinned(courseID string) bool {
	return t.Pinned[courseID]
}
