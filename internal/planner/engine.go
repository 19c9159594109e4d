package planner

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/alexanderramin/termplan/internal/catalog"
	"github.com/alexanderramin/termplan/internal/domain"
)

const fallbackIterationSlack = 5

// Unplaced-course diagnostics.
const (
	ReasonNoSuitableTerm   = "No suitable term (capacity/schedule)."
	ReasonMaxIterations    = "Max planning iterations reached."
	reasonPrereqUnplaced   = "Prereq. %s not scheduled."
	reasonPrereqMissing    = "Prereq. %s missing from data."
	reasonPrereqOptionalNA = "Prereq. %s (optional) not taken."
)

// Diagnostic is the per-course outcome of a planning run.
type Diagnostic struct {
	CourseID string
	Placed   bool
	TermID   string
	Phase    domain.Phase
	Reason   string
}

// TermSnapshot is a read-only copy of one term after a run.
type TermSnapshot struct {
	ID         string
	Label      string
	Courses    []string
	Pinned     []string
	Units      int
	Difficulty int
	Locked     bool
	PreTerm    bool
}

// Result is everything the collaborator layer needs to render a plan.
type Result struct {
	Terms        []TermSnapshot
	Unassigned   []string
	Diagnostics  []Diagnostic
	OverCapacity []string
	Placements   map[domain.Phase]int
	Thresholds   Thresholds
}

// Diagnostic returns the diagnostic for one course.
func (r *Result) Diagnostic(courseID string) (Diagnostic, bool) {
	for _, d := range r.Diagnostics {
		if d.CourseID == courseID {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// Unplaced returns the plannable courses left unassigned with their reasons.
func (r *Result) Unplaced() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if !d.Placed && d.Reason != "" {
			out = append(out, d)
		}
	}
	return out
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithScoreWeights overrides the fallback and cleanup scoring magnitudes.
func WithScoreWeights(w ScoreWeights) EngineOption {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithLogger sets the logger that receives per-phase debug records.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine runs one automatic planning pass over a term sequence.
type Engine struct {
	seq     *TermSequence
	cat     *catalog.Catalog
	th      Thresholds
	weights ScoreWeights
	logger  *slog.Logger

	graph  *Graph
	coreqs *CoreqIndex
	limits map[string]int
	phases map[string]domain.Phase
	counts map[domain.Phase]int
}

// NewEngine binds an engine to the sequence it will mutate.
func NewEngine(seq *TermSequence, cat *catalog.Catalog, th Thresholds, opts ...EngineOption) *Engine {
	e := &Engine{
		seq:     seq,
		cat:     cat,
		th:      th,
		weights: DefaultScoreWeights(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph exposes the graph built by the last Run.
func (e *Engine) Graph() *Graph {
	return e.graph
}

// Run resets the sequence and places every plannable course. It always
// completes; courses that cannot be placed carry a diagnostic reason.
func (e *Engine) Run() *Result {
	e.prepare()

	completed := e.seq.PreTermCourses()
	for _, t := range e.seq.PlanningTerms() {
		if !t.Locked {
			added := make(map[string]bool)
			e.primary(t, completed, added)
			e.secondary(t, completed, added)
			e.tertiary(t, completed, added)
			e.logger.Debug("planning_term",
				"term", t.ID, "units", t.Units, "difficulty", t.Difficulty, "added", len(added))
		}
		for _, id := range t.Courses {
			completed[id] = true
		}
	}

	e.fallback()
	e.cleanup()
	e.seq.RebuildUnassigned(e.cat)

	for phase, n := range e.counts {
		e.logger.Debug("planning_phase", "phase", string(phase), "placed", n)
	}
	return e.result()
}

// prepare resets the sequence and builds the per-run graph state.
func (e *Engine) prepare() {
	e.seq.ResetForPlanning(e.cat)
	e.graph = BuildGraph(e.cat.Courses())
	e.coreqs = NewCoreqIndex(e.graph)
	e.phases = make(map[string]domain.Phase)
	e.counts = make(map[domain.Phase]int)
	e.markPreserved()
	e.limits = e.placementLimits()
}

// markPreserved flags courses that survived the reset as placed.
func (e *Engine) markPreserved() {
	for _, t := range e.seq.Terms() {
		for _, id := range t.Courses {
			phase := domain.PhasePinned
			switch {
			case t.Locked:
				phase = domain.PhaseLocked
			case e.seq.IsPreTerm(t):
				phase = domain.PhasePreTerm
			}
			e.phases[id] = phase
			if n, ok := e.graph.Node(id); ok {
				n.Placed = true
			}
		}
	}
}

// placementLimits maps each unplaced node to the chronological order it must
// stay strictly before. A locked or pinned course in term L bounds its
// unplaced prerequisites, and those of its corequisites, by L; their own prerequisites are bounded by the
// latest unlocked planning term before that, and so on down the chain.
func (e *Engine) placementLimits() map[string]int {
	type bound struct {
		id    string
		limit int
	}

	var open []int
	for _, t := range e.seq.PlanningTerms() {
		if !t.Locked {
			open = append(open, e.seq.Order(t))
		}
	}
	// latestBefore returns the order of the latest unlocked planning term
	// before limit, or -1 when there is none.
	latestBefore := func(limit int) int {
		prev := -1
		for _, o := range open {
			if o >= limit {
				break
			}
			prev = o
		}
		return prev
	}

	limits := make(map[string]int)
	var queue []bound
	for _, t := range e.seq.PlanningTerms() {
		for _, id := range t.Courses {
			if !e.graph.Has(id) {
				continue
			}
			// Corequisites still to be placed must join t, so their
			// prerequisites are bounded by t as well.
			for _, member := range e.coreqs.Group(id) {
				m, _ := e.graph.Node(member)
				for _, p := range m.Prerequisites {
					queue = append(queue, bound{id: p, limit: e.seq.Order(t)})
				}
			}
		}
	}

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		if n, ok := e.graph.Node(b.id); !ok || n.Placed {
			continue
		}
		next := latestBefore(b.limit)
		// The whole corequisite group lands in one term.
		for _, member := range e.coreqs.Group(b.id) {
			m, _ := e.graph.Node(member)
			if m.Placed {
				continue
			}
			if cur, seen := limits[member]; seen && cur <= b.limit {
				continue
			}
			limits[member] = b.limit
			for _, q := range m.Prerequisites {
				queue = append(queue, bound{id: q, limit: next})
			}
		}
	}
	return limits
}

// withinLimit reports whether n may go into t without landing at or after a
// preserved course that depends on it.
func (e *Engine) withinLimit(n *Node, t *domain.Term) bool {
	limit, ok := e.limits[n.ID()]
	return !ok || e.seq.Order(t) < limit
}

// available returns unplaced nodes whose prerequisites are all completed,
// sorted for greedy selection.
func (e *Engine) available(completed, added map[string]bool) []*Node {
	var out []*Node
	for _, n := range e.graph.Nodes() {
		if n.Placed || added[n.ID()] {
			continue
		}
		if e.graph.PrerequisitesMet(n, completed) {
			out = append(out, n)
		}
	}
	SortCandidates(out)
	return out
}

// pendingGroup returns the unplaced members of n's corequisite group. It
// reports false when a member is already placed outside t, since the group
// could then never share a term.
func (e *Engine) pendingGroup(n *Node, t *domain.Term) ([]*Node, bool) {
	var pending []*Node
	for _, id := range e.coreqs.Group(n.ID()) {
		m, _ := e.graph.Node(id)
		if m.Placed {
			if !t.Has(id) {
				return nil, false
			}
			continue
		}
		pending = append(pending, m)
	}
	return pending, true
}

func groupLoad(members []*Node) (units, difficulty int) {
	for _, m := range members {
		units += m.Course.Units
		difficulty += m.Course.Load()
	}
	return units, difficulty
}

// tryPlace places n (and its corequisite group) into t when every member is
// available and the combined load fits. limitDifficulty=false ignores the
// difficulty ceiling.
func (e *Engine) tryPlace(n *Node, t *domain.Term, completed, added map[string]bool, limitDifficulty bool, phase domain.Phase) bool {
	members, ok := e.pendingGroup(n, t)
	if !ok || len(members) == 0 {
		return false
	}
	for _, m := range members {
		if added[m.ID()] || !e.graph.PrerequisitesMet(m, completed) || !e.withinLimit(m, t) {
			return false
		}
	}

	units, difficulty := groupLoad(members)
	if limitDifficulty {
		if !Fits(t, units, difficulty, e.th) {
			return false
		}
	} else if !FitsUnits(t, units, e.th) {
		return false
	}

	for _, m := range members {
		e.place(m, t, phase)
		added[m.ID()] = true
	}
	return true
}

// placeBest places the first available candidate that fits. It reports
// whether anything was placed.
func (e *Engine) placeBest(t *domain.Term, completed, added map[string]bool, limitDifficulty bool, phase domain.Phase) bool {
	for _, n := range e.available(completed, added) {
		if e.tryPlace(n, t, completed, added, limitDifficulty, phase) {
			return true
		}
	}
	return false
}

func (e *Engine) primary(t *domain.Term, completed, added map[string]bool) {
	for e.placeBest(t, completed, added, true, domain.PhasePrimary) {
	}
}

func (e *Engine) secondary(t *domain.Term, completed, added map[string]bool) {
	for attempts := 0; t.Units < e.th.MinUnits && attempts < e.th.TopUpAttempts; attempts++ {
		if !e.placeBest(t, completed, added, true, domain.PhaseSecondary) {
			return
		}
	}
}

// tertiary tops up a term still under the unit minimum while ignoring the
// difficulty ceiling.
func (e *Engine) tertiary(t *domain.Term, completed, added map[string]bool) {
	for attempts := 0; t.Units < e.th.MinUnits && attempts < e.th.TopUpAttempts; attempts++ {
		if !e.placeBest(t, completed, added, false, domain.PhaseTertiary) {
			return
		}
	}
}

func (e *Engine) place(n *Node, t *domain.Term, phase domain.Phase) {
	e.seq.Assign(n.Course, t, false)
	n.Placed = true
	n.UnassignedReason = ""
	e.phases[n.ID()] = phase
	e.counts[phase]++
}

// candidateTerm is a scored destination in the fallback and cleanup phases.
type candidateTerm struct {
	term    *domain.Term
	members []*Node
	score   float64
}

// bestTerm searches the unlocked planning terms for the highest-scoring
// destination of n's group. capacity=true enforces both maxima and uses the
// fallback score; capacity=false ignores them and uses the cleanup score.
func (e *Engine) bestTerm(n *Node, capacity bool) *candidateTerm {
	var best *candidateTerm
	for pos, t := range e.seq.PlanningTerms() {
		if t.Locked {
			continue
		}
		members, ok := e.pendingGroup(n, t)
		if !ok || len(members) == 0 {
			continue
		}

		completed := e.seq.CompletedBefore(t)
		satisfied := true
		for _, m := range members {
			if !e.graph.PrerequisitesMet(m, completed) || !e.withinLimit(m, t) {
				satisfied = false
				break
			}
		}
		if !satisfied {
			continue
		}

		var score float64
		if capacity {
			units, difficulty := groupLoad(members)
			if !Fits(t, units, difficulty, e.th) {
				continue
			}
			for _, m := range members {
				score += ScoreTerm(t, m.Course.Units, m.Course.Load(), pos, e.th, e.weights)
			}
			score /= float64(len(members))
		} else {
			score = CleanupScore(t, pos, e.th, e.weights)
		}

		if best == nil || score > best.score {
			best = &candidateTerm{term: t, members: members, score: score}
		}
	}
	return best
}

func (e *Engine) fallback() {
	unplaced := e.graph.Unplaced()
	budget := len(unplaced) + len(e.seq.PlanningTerms()) + fallbackIterationSlack

	iterations := 0
	for len(unplaced) > 0 && iterations < budget {
		SortFallback(e.graph, unplaced)

		progress := false
		for _, n := range unplaced {
			if n.Placed {
				continue
			}
			if best := e.bestTerm(n, true); best != nil {
				for _, m := range best.members {
					e.place(m, best.term, domain.PhaseFallback)
				}
				progress = true
				break
			}
		}

		unplaced = e.graph.Unplaced()
		if !progress && len(unplaced) > 0 {
			for _, n := range unplaced {
				if n.UnassignedReason == "" {
					n.UnassignedReason = e.unplacedReason(n)
				}
			}
			break
		}
		iterations++
	}

	if iterations >= budget {
		for _, n := range e.graph.Unplaced() {
			if n.UnassignedReason == "" {
				n.UnassignedReason = ReasonMaxIterations
			}
		}
	}
}

// cleanup places any course still unplaced into the term with the best
// capacity preference, ignoring unit and difficulty ceilings. Only
// prerequisite ordering and corequisite atomicity are still enforced.
func (e *Engine) cleanup() {
	unplaced := e.graph.Unplaced()
	SortFallback(e.graph, unplaced)

	for _, n := range unplaced {
		if n.Placed {
			continue
		}
		best := e.bestTerm(n, false)
		if best == nil {
			continue
		}
		for _, m := range best.members {
			e.place(m, best.term, domain.PhaseCleanup)
		}
	}

	for _, n := range e.graph.Unplaced() {
		if n.UnassignedReason == "" {
			n.UnassignedReason = e.unplacedReason(n)
		}
	}
}

// unplacedReason classifies why n could not be placed.
func (e *Engine) unplacedReason(n *Node) string {
	for _, p := range n.Prerequisites {
		if pn, ok := e.graph.Node(p); ok && !pn.Placed {
			return fmt.Sprintf(reasonPrereqUnplaced, p)
		}
		pc, ok := e.cat.Get(p)
		if !ok && !e.graph.Has(p) {
			return fmt.Sprintf(reasonPrereqMissing, p)
		}
		if ok && pc.Category == domain.CategoryOptional && e.seq.Locate(p) == nil {
			return fmt.Sprintf(reasonPrereqOptionalNA, p)
		}
	}
	return ReasonNoSuitableTerm
}

func (e *Engine) result() *Result {
	res := &Result{
		Unassigned: e.seq.Unassigned(),
		Placements: make(map[domain.Phase]int, len(e.counts)),
		Thresholds: e.th,
	}
	for phase, n := range e.counts {
		res.Placements[phase] = n
	}
	res.Terms = Snapshot(e.seq)
	res.OverCapacity = OverCapacity(e.seq, e.th)

	for _, c := range e.cat.Courses() {
		d := Diagnostic{CourseID: c.ID}
		if t := e.seq.Locate(c.ID); t != nil {
			d.Placed = true
			d.TermID = t.ID
			d.Phase = e.phases[c.ID]
		} else if n, ok := e.graph.Node(c.ID); ok {
			d.Reason = n.UnassignedReason
		}
		res.Diagnostics = append(res.Diagnostics, d)
	}
	return res
}

// Snapshot copies the sequence's terms in chronological order.
func Snapshot(seq *TermSequence) []TermSnapshot {
	var out []TermSnapshot
	for _, t := range seq.Chronological() {
		snap := TermSnapshot{
			ID:         t.ID,
			Label:      t.Label,
			Courses:    append([]string(nil), t.Courses...),
			Units:      t.Units,
			Difficulty: t.Difficulty,
			Locked:     t.Locked,
			PreTerm:    seq.IsPreTerm(t),
		}
		for _, id := range t.Courses {
			if t.Pinned[id] {
				snap.Pinned = append(snap.Pinned, id)
			}
		}
		out = append(out, snap)
	}
	return out
}

// OverCapacity lists planning terms above either ceiling.
func OverCapacity(seq *TermSequence, th Thresholds) []string {
	var out []string
	for _, t := range seq.PlanningTerms() {
		if t.Units > th.MaxUnits || t.Difficulty > th.MaxDifficulty {
			out = append(out, t.ID)
		}
	}
	return out
}

// Utilization returns the share of the unit maximum a term uses, clamped to [0, 1].
func Utilization(units int, th Thresholds) float64 {
	if th.MaxUnits <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, float64(units)/float64(th.MaxUnits)))
}
