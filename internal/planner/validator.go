package planner

import (
	"fmt"

	"github.com/alexanderramin/termplan/internal/catalog"
	"github.com/alexanderramin/termplan/internal/domain"
)

type VerdictCode string

const (
	VerdictOK                  VerdictCode = "OK"
	VerdictMissingPrerequisite VerdictCode = "MISSING_PREREQUISITE"
	VerdictMissingCorequisite  VerdictCode = "MISSING_COREQUISITE"
	VerdictUnitOverflow        VerdictCode = "UNIT_OVERFLOW"
	VerdictDifficultyOverflow  VerdictCode = "DIFFICULTY_OVERFLOW"
)

// Verdict is the outcome of a single-course-into-single-term legality check.
type Verdict struct {
	Valid  bool
	Code   VerdictCode
	Reason string
}

func validVerdict() Verdict {
	return Verdict{Valid: true, Code: VerdictOK}
}

// CheckOrdering applies only the prerequisite and corequisite rules to course
// sitting in term. A placed course failing this check is considered invalid.
func CheckOrdering(seq *TermSequence, cat *catalog.Catalog, course *domain.Course, term *domain.Term) Verdict {
	if term == nil || term.ID == domain.UnassignedTermID {
		return validVerdict()
	}

	completed := seq.CompletedBefore(term)

	for _, p := range course.Prerequisites {
		if !completed[p] {
			return Verdict{
				Code:   VerdictMissingPrerequisite,
				Reason: fmt.Sprintf("Missing prerequisite: %s", displayName(cat, p)),
			}
		}
	}

	for _, q := range course.Corequisites {
		if !completed[q] && !term.Has(q) {
			return Verdict{
				Code:   VerdictMissingCorequisite,
				Reason: fmt.Sprintf("Missing corequisite: %s", displayName(cat, q)),
			}
		}
	}
	return validVerdict()
}

// CheckPlacement decides whether course may sit in term. Checks run in a
// fixed order and the first failure wins: prerequisites, corequisites, units,
// difficulty. When the course already sits in term its own load is excluded
// from the capacity figures. The unassigned bucket accepts anything.
func CheckPlacement(seq *TermSequence, cat *catalog.Catalog, course *domain.Course, term *domain.Term, th Thresholds) Verdict {
	if term == nil || term.ID == domain.UnassignedTermID {
		return validVerdict()
	}
	if v := CheckOrdering(seq, cat, course, term); !v.Valid {
		return v
	}

	currentUnits, currentDifficulty := term.Units, term.Difficulty
	if term.Has(course.ID) {
		currentUnits -= course.Units
		currentDifficulty -= course.Load()
	}

	if currentUnits+course.Units > th.MaxUnits {
		return Verdict{
			Code: VerdictUnitOverflow,
			Reason: fmt.Sprintf("Unit limit exceeded: current %d + adding %d > max %d",
				currentUnits, course.Units, th.MaxUnits),
		}
	}
	if currentDifficulty+course.Load() > th.MaxDifficulty {
		return Verdict{
			Code: VerdictDifficultyOverflow,
			Reason: fmt.Sprintf("Difficulty limit exceeded: current %d + adding %d > max %d",
				currentDifficulty, course.Load(), th.MaxDifficulty),
		}
	}
	return validVerdict()
}

func displayName(cat *catalog.Catalog, id string) string {
	if c, ok := cat.Get(id); ok {
		return c.DisplayName()
	}
	return id
}
