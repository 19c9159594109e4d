package planner

import (
	"fmt"

	"github.com/alexanderramin/termplan/internal/catalog"
	"github.com/alexanderramin/termplan/internal/domain"
)

// InvalidCourse is a placed course whose prerequisites or corequisites are
// not satisfied where it sits.
type InvalidCourse struct {
	CourseID string
	TermID   string
	Verdict  Verdict
}

// Session owns the catalog, term sequence and planning configuration. All
// mutation goes through its methods.
type Session struct {
	cat      *catalog.Catalog
	seq      *TermSequence
	settings domain.PlanSettings
	th       Thresholds
	opts     []EngineOption
	last     *Result
}

// NewSession starts a session over a fresh term sequence. Courses with a
// parseable taken label are pinned into that term.
func NewSession(cat *catalog.Catalog, settings domain.PlanSettings, opts ...EngineOption) (*Session, error) {
	th, err := resolveFor(cat, settings)
	if err != nil {
		return nil, err
	}
	seq := NewTermSequence(settings.AcademicSystem, settings.GraduationYears)
	applyTakenLabels(seq, cat)
	seq.RebuildUnassigned(cat)
	return &Session{cat: cat, seq: seq, settings: settings, th: th, opts: opts}, nil
}

// RestoreSession resumes a session over a persisted term sequence. Term
// totals are recomputed from membership.
func RestoreSession(cat *catalog.Catalog, seq *TermSequence, settings domain.PlanSettings, opts ...EngineOption) (*Session, error) {
	th, err := resolveFor(cat, settings)
	if err != nil {
		return nil, err
	}
	seq.Recount(cat)
	seq.RebuildUnassigned(cat)
	return &Session{cat: cat, seq: seq, settings: settings, th: th, opts: opts}, nil
}

func resolveFor(cat *catalog.Catalog, settings domain.PlanSettings) (Thresholds, error) {
	units, difficulty := cat.PlannableTotals()
	return ResolveThresholds(settings, units, difficulty)
}

// Catalog returns the active catalog.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// Sequence returns the live term sequence.
func (s *Session) Sequence() *TermSequence {
	return s.seq
}

func (s *Session) Settings() domain.PlanSettings {
	return s.settings
}

func (s *Session) Thresholds() Thresholds {
	return s.th
}

// LastResult returns the most recent automatic planning result, or nil.
func (s *Session) LastResult() *Result {
	return s.last
}

func (s *Session) course(id string) (*domain.Course, error) {
	c, ok := s.cat.Get(id)
	if !ok {
		return nil, unknownCourse(id)
	}
	return c, nil
}

func (s *Session) term(id string) (*domain.Term, error) {
	t, ok := s.seq.Term(id)
	if !ok {
		return nil, unknownTerm(id)
	}
	return t, nil
}

// CheckPlacement evaluates moving a course into a term without mutating anything.
func (s *Session) CheckPlacement(courseID, termID string) (Verdict, error) {
	c, err := s.course(courseID)
	if err != nil {
		return Verdict{}, err
	}
	if termID == domain.UnassignedTermID {
		return validVerdict(), nil
	}
	t, err := s.term(termID)
	if err != nil {
		return Verdict{}, err
	}
	return CheckPlacement(s.seq, s.cat, c, t, s.th), nil
}

// PlaceCourse moves a course into a term and pins it there. The move is made
// even when the verdict is invalid; the verdict tells the caller why. Moving
// into or out of a locked term is rejected. Placing into the unassigned
// bucket is the same as RemoveCourse.
func (s *Session) PlaceCourse(courseID, termID string) (Verdict, error) {
	if termID == domain.UnassignedTermID {
		if err := s.RemoveCourse(courseID); err != nil {
			return Verdict{}, err
		}
		return validVerdict(), nil
	}

	c, err := s.course(courseID)
	if err != nil {
		return Verdict{}, err
	}
	t, err := s.term(termID)
	if err != nil {
		return Verdict{}, err
	}
	if t.Locked {
		return Verdict{}, termLocked(t.ID)
	}
	if cur := s.seq.Locate(c.ID); cur != nil && cur != t && cur.Locked {
		return Verdict{}, termLocked(cur.ID)
	}

	verdict := CheckPlacement(s.seq, s.cat, c, t, s.th)
	s.seq.Assign(c, t, true)
	return verdict, nil
}

// RemoveCourse returns a course to the unassigned bucket. Removing an
// unassigned course is a no-op.
func (s *Session) RemoveCourse(courseID string) error {
	c, err := s.course(courseID)
	if err != nil {
		return err
	}
	cur := s.seq.Locate(c.ID)
	if cur == nil {
		return nil
	}
	if cur.Locked {
		return termLocked(cur.ID)
	}
	s.seq.Release(c)
	return nil
}

// Pin exempts a placed course from automatic replanning. Unassigned courses
// and courses whose ordering rules fail where they sit cannot be pinned.
func (s *Session) Pin(courseID string) error {
	c, err := s.course(courseID)
	if err != nil {
		return err
	}
	t := s.seq.Locate(c.ID)
	if t == nil {
		return &OperationError{
			Code:     OpCourseUnassigned,
			CourseID: c.ID,
			Message:  fmt.Sprintf("course %q is not in a term", c.ID),
		}
	}
	if v := CheckOrdering(s.seq, s.cat, c, t); !v.Valid {
		return &OperationError{
			Code:     OpCourseInvalid,
			CourseID: c.ID,
			TermID:   t.ID,
			Message:  fmt.Sprintf("course %q is invalid in %s: %s", c.ID, t.Label, v.Reason),
		}
	}
	t.Pinned[c.ID] = true
	return nil
}

// Unpin releases a pin. The course stays where it is.
func (s *Session) Unpin(courseID string) error {
	c, err := s.course(courseID)
	if err != nil {
		return err
	}
	t := s.seq.Locate(c.ID)
	if t == nil {
		return &OperationError{
			Code:     OpCourseUnassigned,
			CourseID: c.ID,
			Message:  fmt.Sprintf("course %q is not in a term", c.ID),
		}
	}
	delete(t.Pinned, c.ID)
	return nil
}

// LockTerm freezes a term. It fails when any member course is invalid.
func (s *Session) LockTerm(termID string) error {
	t, err := s.term(termID)
	if err != nil {
		return err
	}
	for _, id := range t.Courses {
		c, ok := s.cat.Get(id)
		if !ok {
			continue
		}
		if v := CheckOrdering(s.seq, s.cat, c, t); !v.Valid {
			return &OperationError{
				Code:     OpTermInvalid,
				CourseID: id,
				TermID:   t.ID,
				Message:  fmt.Sprintf("%s holds invalid course %q: %s", t.Label, id, v.Reason),
			}
		}
	}
	t.Locked = true
	return nil
}

// UnlockTerm lets automatic planning touch the term again.
func (s *Session) UnlockTerm(termID string) error {
	t, err := s.term(termID)
	if err != nil {
		return err
	}
	t.Locked = false
	return nil
}

// AutoPlan runs the placement engine over the session's sequence.
func (s *Session) AutoPlan() *Result {
	s.last = NewEngine(s.seq, s.cat, s.th, s.opts...).Run()
	return s.last
}

// ResetPlanning empties every unlocked term, pins included.
func (s *Session) ResetPlanning() {
	s.seq.ClearUnlocked(s.cat)
	s.last = nil
}

// SetSettings applies new planning settings. On error the previous settings
// stay in effect. A change of academic system or length reshapes the terms.
func (s *Session) SetSettings(settings domain.PlanSettings) error {
	th, err := resolveFor(s.cat, settings)
	if err != nil {
		return err
	}
	if settings.AcademicSystem != s.settings.AcademicSystem || settings.GraduationYears != s.settings.GraduationYears {
		s.seq = s.seq.Reshape(settings.AcademicSystem, settings.GraduationYears, s.cat)
	}
	s.settings = settings
	s.th = th
	return nil
}

// ReloadCatalog swaps in a rebuilt catalog. Locked terms keep their courses
// and pinned courses keep their places as long as they still exist; every
// other assignment is dropped. Taken labels then pin remaining courses.
func (s *Session) ReloadCatalog(cat *catalog.Catalog) error {
	th, err := resolveFor(cat, s.settings)
	if err != nil {
		return err
	}

	next := s.seq.Clone()
	for _, t := range next.Terms() {
		var keep []string
		for _, id := range t.Courses {
			if (t.Locked || t.Pinned[id]) && cat.Has(id) {
				keep = append(keep, id)
			}
		}
		t.Courses = keep
		for id := range t.Pinned {
			if !cat.Has(id) || !t.Has(id) {
				delete(t.Pinned, id)
			}
		}
	}
	next.Recount(cat)
	applyTakenLabels(next, cat)
	next.RebuildUnassigned(cat)

	s.cat = cat
	s.seq = next
	s.th = th
	s.last = nil
	return nil
}

// applyTakenLabels pins every course not already in a term into the
// unlocked term its taken label names. Unparseable labels are ignored.
func applyTakenLabels(seq *TermSequence, cat *catalog.Catalog) {
	for i := range cat.Courses() {
		c := &cat.Courses()[i]
		if c.TakenLabel == "" || seq.Locate(c.ID) != nil {
			continue
		}
		id, ok := domain.TermIDFromLabel(c.TakenLabel)
		if !ok {
			continue
		}
		t, ok := seq.Term(id)
		if !ok || t.Locked {
			continue
		}
		seq.Assign(c, t, true)
	}
}

// InvalidCourses lists placed courses whose ordering rules fail, in
// chronological term order.
func (s *Session) InvalidCourses() []InvalidCourse {
	var out []InvalidCourse
	for _, t := range s.seq.Chronological() {
		for _, id := range t.Courses {
			c, ok := s.cat.Get(id)
			if !ok {
				continue
			}
			if v := CheckOrdering(s.seq, s.cat, c, t); !v.Valid {
				out = append(out, InvalidCourse{CourseID: id, TermID: t.ID, Verdict: v})
			}
		}
	}
	return out
}

// Snapshot copies the current terms.
func (s *Session) Snapshot() []TermSnapshot {
	return Snapshot(s.seq)
}
