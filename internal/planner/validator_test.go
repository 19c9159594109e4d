package planner

import (
	"testing"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCheckPlacement(t *testing.T) {
	cat := mustCatalog(t,
		required("INTRO", 0, 4, 3),
		required("ADV", 1, 4, 3, "INTRO"),
		withCoreqs(required("LAB", 2, 1, 1), "LEC"),
		withCoreqs(required("LEC", 3, 3, 2), "LAB"),
		required("BIG", 4, 10, 2),
		required("HARD", 5, 2, 13),
	)
	th := standardThresholds()

	tests := []struct {
		name     string
		setup    func(seq *TermSequence)
		course   string
		term     string
		wantCode VerdictCode
		reason   string
	}{
		{
			name:     "no prerequisites into empty term",
			course:   "INTRO",
			term:     "fall1",
			wantCode: VerdictOK,
		},
		{
			name:     "prerequisite not yet taken",
			course:   "ADV",
			term:     "fall1",
			wantCode: VerdictMissingPrerequisite,
			reason:   "Missing prerequisite: INTRO",
		},
		{
			name: "prerequisite in the same term is not enough",
			setup: func(seq *TermSequence) {
				assign(t, seq, cat, "INTRO", "fall1", false)
			},
			course:   "ADV",
			term:     "fall1",
			wantCode: VerdictMissingPrerequisite,
		},
		{
			name: "prerequisite in an earlier term",
			setup: func(seq *TermSequence) {
				assign(t, seq, cat, "INTRO", "fall1", false)
			},
			course:   "ADV",
			term:     "spring1",
			wantCode: VerdictOK,
		},
		{
			name:     "corequisite missing",
			course:   "LAB",
			term:     "fall1",
			wantCode: VerdictMissingCorequisite,
			reason:   "Missing corequisite: LEC",
		},
		{
			name: "corequisite in the same term",
			setup: func(seq *TermSequence) {
				assign(t, seq, cat, "LEC", "fall1", false)
			},
			course:   "LAB",
			term:     "fall1",
			wantCode: VerdictOK,
		},
		{
			name: "corequisite already completed",
			setup: func(seq *TermSequence) {
				assign(t, seq, cat, "LEC", "fall1", false)
			},
			course:   "LAB",
			term:     "spring1",
			wantCode: VerdictOK,
		},
		{
			name: "earlier term load does not count",
			setup: func(seq *TermSequence) {
				assign(t, seq, cat, "BIG", "fall1", false)
				assign(t, seq, cat, "INTRO", "fall1", false)
			},
			course:   "ADV",
			term:     "spring1",
			wantCode: VerdictOK,
		},
		{
			name: "unit overflow reports figures",
			setup: func(seq *TermSequence) {
				assign(t, seq, cat, "BIG", "fall1", false)
				assign(t, seq, cat, "HARD", "fall1", false)
			},
			course:   "INTRO",
			term:     "fall1",
			wantCode: VerdictUnitOverflow,
			reason:   "Unit limit exceeded: current 12 + adding 4 > max 15",
		},
		{
			name: "units checked before difficulty",
			setup: func(seq *TermSequence) {
				assign(t, seq, cat, "HARD", "fall1", false)
				assign(t, seq, cat, "BIG", "fall1", false)
			},
			course:   "INTRO",
			term:     "fall1",
			wantCode: VerdictUnitOverflow,
		},
		{
			name: "difficulty overflow reports figures",
			setup: func(seq *TermSequence) {
				assign(t, seq, cat, "HARD", "fall1", false)
			},
			course:   "INTRO",
			term:     "fall1",
			wantCode: VerdictDifficultyOverflow,
			reason:   "Difficulty limit exceeded: current 13 + adding 3 > max 15",
		},
		{
			name: "own load excluded when already in term",
			setup: func(seq *TermSequence) {
				assign(t, seq, cat, "BIG", "fall1", false)
				assign(t, seq, cat, "INTRO", "fall1", false)
			},
			course:   "BIG",
			term:     "fall1",
			wantCode: VerdictOK,
		},
		{
			name:     "unassigned bucket accepts anything",
			course:   "ADV",
			term:     domain.UnassignedTermID,
			wantCode: VerdictOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := semesterYears(2)
			if tt.setup != nil {
				tt.setup(seq)
			}
			course, _ := cat.Get(tt.course)
			var term *domain.Term
			if tt.term != domain.UnassignedTermID {
				term = termOf(t, seq, tt.term)
			} else {
				term = &domain.Term{ID: domain.UnassignedTermID}
			}

			v := CheckPlacement(seq, cat, course, term, th)

			assert.Equal(t, tt.wantCode, v.Code)
			assert.Equal(t, tt.wantCode == VerdictOK, v.Valid)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, v.Reason)
			}
		})
	}
}

func TestCheckPlacement_PrerequisiteBeforeCorequisite(t *testing.T) {
	cat := mustCatalog(t,
		required("BASE", 0, 3, 1),
		withCoreqs(required("X", 1, 3, 1, "BASE"), "Y"),
		withCoreqs(required("Y", 2, 3, 1), "X"),
	)
	seq := semesterYears(1)
	x, _ := cat.Get("X")

	v := CheckPlacement(seq, cat, x, termOf(t, seq, "fall1"), standardThresholds())

	assert.Equal(t, VerdictMissingPrerequisite, v.Code)
	assert.Equal(t, "Missing prerequisite: BASE", v.Reason)
}

func TestCheckOrdering_IgnoresCapacity(t *testing.T) {
	cat := mustCatalog(t, required("HUGE", 0, 30, 30))
	seq := semesterYears(1)
	assign(t, seq, cat, "HUGE", "fall1", false)
	huge, _ := cat.Get("HUGE")

	assert.True(t, CheckOrdering(seq, cat, huge, termOf(t, seq, "fall1")).Valid)
	assert.Equal(t, VerdictUnitOverflow, CheckPlacement(seq, cat, huge, termOf(t, seq, "fall1"), standardThresholds()).Code)
}
