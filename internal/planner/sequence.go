package planner

import (
	"sort"

	"github.com/alexanderramin/termplan/internal/catalog"
	"github.com/alexanderramin/termplan/internal/domain"
)

// TermSequence is the ordered set of terms plus the unassigned bucket.
// Courses appear in at most one term; anything not in a term is unassigned.
type TermSequence struct {
	System     domain.AcademicSystem
	terms      []*domain.Term
	byID       map[string]*domain.Term
	unassigned []string
}

// NewTermSequence builds empty terms for the given number of academic years.
func NewTermSequence(system domain.AcademicSystem, years int) *TermSequence {
	var terms []*domain.Term
	for y := 1; y <= years; y++ {
		for _, season := range system.Seasons() {
			terms = append(terms, domain.NewTerm(season, y))
		}
	}
	return RestoreTermSequence(system, terms, nil)
}

// RestoreTermSequence assembles a sequence from persisted terms. Missing
// Pinned maps are initialised; unit and difficulty totals are taken as given.
func RestoreTermSequence(system domain.AcademicSystem, terms []*domain.Term, unassigned []string) *TermSequence {
	s := &TermSequence{
		System:     system,
		byID:       make(map[string]*domain.Term, len(terms)),
		unassigned: append([]string(nil), unassigned...),
	}
	for _, t := range terms {
		if t.Pinned == nil {
			t.Pinned = make(map[string]bool)
		}
		s.terms = append(s.terms, t)
		s.byID[t.ID] = t
	}
	return s
}

// Terms returns the terms in calendar construction order.
func (s *TermSequence) Terms() []*domain.Term {
	return s.terms
}

// Term looks a term up by ID.
func (s *TermSequence) Term(id string) (*domain.Term, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// Unassigned returns a copy of the unassigned bucket.
func (s *TermSequence) Unassigned() []string {
	return append([]string(nil), s.unassigned...)
}

// IsUnassigned reports whether the course sits in the unassigned bucket.
func (s *TermSequence) IsUnassigned(courseID string) bool {
	for _, id := range s.unassigned {
		if id == courseID {
			return true
		}
	}
	return false
}

// Order returns the chronological position of a term; the unassigned bucket
// and unknown terms sort first with -1.
func (s *TermSequence) Order(t *domain.Term) int {
	if t == nil || t.ID == domain.UnassignedTermID {
		return -1
	}
	idx := s.System.SeasonIndex(t.Season)
	if idx < 0 {
		return -1
	}
	return (t.Year-1)*s.System.TermsPerYear() + idx
}

// IsPreTerm reports whether a term's contents count as completed before every
// chronologically ordered term. Quarter-system summers are pre-terms.
func (s *TermSequence) IsPreTerm(t *domain.Term) bool {
	return s.System == domain.SystemQuarter && t.Season == domain.SeasonSummer
}

// Chronological returns every term sorted by chronological order.
func (s *TermSequence) Chronological() []*domain.Term {
	out := append([]*domain.Term(nil), s.terms...)
	sort.SliceStable(out, func(i, j int) bool {
		return s.Order(out[i]) < s.Order(out[j])
	})
	return out
}

// PlanningTerms returns the chronologically ordered terms the engine may fill,
// locked ones included. Pre-terms are excluded.
func (s *TermSequence) PlanningTerms() []*domain.Term {
	var out []*domain.Term
	for _, t := range s.Chronological() {
		if !s.IsPreTerm(t) {
			out = append(out, t)
		}
	}
	return out
}

// Locate returns the term holding the course, or nil when it is unassigned.
func (s *TermSequence) Locate(courseID string) *domain.Term {
	for _, t := range s.terms {
		if t.Has(courseID) {
			return t
		}
	}
	return nil
}

// PreTermCourses returns the set of courses in pre-term buckets.
func (s *TermSequence) PreTermCourses() map[string]bool {
	done := make(map[string]bool)
	for _, t := range s.terms {
		if s.IsPreTerm(t) {
			for _, id := range t.Courses {
				done[id] = true
			}
		}
	}
	return done
}

// CompletedBefore returns the courses that count as completed when target
// starts: all pre-term courses plus everything in strictly earlier terms.
func (s *TermSequence) CompletedBefore(target *domain.Term) map[string]bool {
	targetOrder := s.Order(target)
	targetIsPre := target != nil && s.IsPreTerm(target)

	done := make(map[string]bool)
	for _, t := range s.terms {
		if t == target {
			continue
		}
		include := s.Order(t) < targetOrder
		if s.IsPreTerm(t) && !targetIsPre {
			include = true
		}
		if !include {
			continue
		}
		for _, id := range t.Courses {
			done[id] = true
		}
	}
	return done
}

// Fits reports whether adding the given load keeps the term within both maxima.
func Fits(t *domain.Term, units, difficulty int, th Thresholds) bool {
	return t.Units+units <= th.MaxUnits && t.Difficulty+difficulty <= th.MaxDifficulty
}

// FitsUnits reports whether adding units keeps the term within the unit maximum.
func FitsUnits(t *domain.Term, units int, th Thresholds) bool {
	return t.Units+units <= th.MaxUnits
}

// Assign moves a course into term t, updating totals and the unassigned
// bucket. A course already in another term is released first.
func (s *TermSequence) Assign(c *domain.Course, t *domain.Term, pinned bool) {
	if cur := s.Locate(c.ID); cur != nil {
		if cur == t {
			if pinned {
				t.Pinned[c.ID] = true
			}
			return
		}
		s.detach(c, cur)
	}
	s.dropUnassigned(c.ID)
	t.Courses = append(t.Courses, c.ID)
	t.Units += c.Units
	t.Difficulty += c.Load()
	if pinned {
		t.Pinned[c.ID] = true
	}
}

// Release moves a course from its term back to the unassigned bucket.
// It reports false when the course was not in any term.
func (s *TermSequence) Release(c *domain.Course) bool {
	cur := s.Locate(c.ID)
	if cur == nil {
		return false
	}
	s.detach(c, cur)
	s.unassigned = append(s.unassigned, c.ID)
	return true
}

func (s *TermSequence) detach(c *domain.Course, t *domain.Term) {
	for i, id := range t.Courses {
		if id == c.ID {
			t.Courses = append(t.Courses[:i], t.Courses[i+1:]...)
			break
		}
	}
	delete(t.Pinned, c.ID)
	t.Units -= c.Units
	t.Difficulty -= c.Load()
}

func (s *TermSequence) dropUnassigned(courseID string) {
	for i, id := range s.unassigned {
		if id == courseID {
			s.unassigned = append(s.unassigned[:i], s.unassigned[i+1:]...)
			return
		}
	}
}

// ResetForPlanning prepares the sequence for an automatic run. Locked terms
// are untouched. Unlocked terms are cleared and their pinned courses re-added
// with stats taken from the catalog. Everything else becomes unassigned.
func (s *TermSequence) ResetForPlanning(cat *catalog.Catalog) {
	for _, t := range s.terms {
		if t.Locked {
			continue
		}
		var keep []*domain.Course
		for _, id := range t.Courses {
			if !t.Pinned[id] {
				continue
			}
			if c, ok := cat.Get(id); ok {
				keep = append(keep, c)
			}
		}
		t.Courses = nil
		t.Pinned = make(map[string]bool)
		t.Units = 0
		t.Difficulty = 0
		for _, c := range keep {
			t.Courses = append(t.Courses, c.ID)
			t.Pinned[c.ID] = true
			t.Units += c.Units
			t.Difficulty += c.Load()
		}
	}
	s.RebuildUnassigned(cat)
}

// ClearUnlocked empties every unlocked term, pins included.
func (s *TermSequence) ClearUnlocked(cat *catalog.Catalog) {
	for _, t := range s.terms {
		if t.Locked {
			continue
		}
		t.Courses = nil
		t.Pinned = make(map[string]bool)
		t.Units = 0
		t.Difficulty = 0
	}
	s.RebuildUnassigned(cat)
}

// RebuildUnassigned sets the bucket to every catalog course not in a term,
// in catalog order.
func (s *TermSequence) RebuildUnassigned(cat *catalog.Catalog) {
	inTerm := make(map[string]bool)
	for _, t := range s.terms {
		for _, id := range t.Courses {
			inTerm[id] = true
		}
	}
	s.unassigned = s.unassigned[:0]
	for _, c := range cat.Courses() {
		if !inTerm[c.ID] {
			s.unassigned = append(s.unassigned, c.ID)
		}
	}
}

// Recount recomputes every term's totals from its membership and drops
// members that are no longer catalog courses.
func (s *TermSequence) Recount(cat *catalog.Catalog) {
	for _, t := range s.terms {
		units, difficulty := 0, 0
		kept := t.Courses[:0]
		for _, id := range t.Courses {
			c, ok := cat.Get(id)
			if !ok {
				delete(t.Pinned, id)
				continue
			}
			kept = append(kept, id)
			units += c.Units
			difficulty += c.Load()
		}
		t.Courses = kept
		t.Units = units
		t.Difficulty = difficulty
	}
}

// Clone returns a deep copy of the sequence.
func (s *TermSequence) Clone() *TermSequence {
	terms := make([]*domain.Term, 0, len(s.terms))
	for _, t := range s.terms {
		cp := *t
		cp.Courses = append([]string(nil), t.Courses...)
		cp.Pinned = make(map[string]bool, len(t.Pinned))
		for id, v := range t.Pinned {
			cp.Pinned[id] = v
		}
		terms = append(terms, &cp)
	}
	return RestoreTermSequence(s.System, terms, s.unassigned)
}

// Reshape rebuilds the sequence for a new academic system or length. Terms
// whose ID survives keep their contents, pins and lock; courses from dropped
// terms become unassigned.
func (s *TermSequence) Reshape(system domain.AcademicSystem, years int, cat *catalog.Catalog) *TermSequence {
	next := NewTermSequence(system, years)
	for _, old := range s.terms {
		t, ok := next.byID[old.ID]
		if !ok {
			continue
		}
		t.Locked = old.Locked
		for _, id := range old.Courses {
			c, ok := cat.Get(id)
			if !ok {
				continue
			}
			next.Assign(c, t, old.Pinned[id])
		}
	}
	next.RebuildUnassigned(cat)
	return next
}
