package domain

type Category string

const (
	CategoryRequired Category = "required"
	CategoryOptional Category = "optional"
	CategoryCapstone Category = "capstone"
	CategoryExternal Category = "external"
)

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[string]bool{
	"required": true, "optional": true, "capstone": true, "external": true,
}

// Plannable reports whether courses of this category take part in automatic planning.
func (c Category) Plannable() bool {
	switch c {
	case CategoryRequired, CategoryCapstone, CategoryExternal:
		return true
	default:
		return false
	}
}

type AcademicSystem string

const (
	SystemQuarter  AcademicSystem = "quarter"
	SystemSemester AcademicSystem = "semester"
)

// ValidAcademicSystems is the canonical set of accepted academic system strings.
var ValidAcademicSystems = map[string]bool{
	"quarter": true, "semester": true,
}

type Season string

const (
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
)

// Seasons returns the seasons of one academic year in calendar order.
func (s AcademicSystem) Seasons() []Season {
	if s == SystemSemester {
		return []Season{SeasonFall, SeasonSpring}
	}
	return []Season{SeasonSummer, SeasonFall, SeasonWinter, SeasonSpring}
}

// SeasonIndex returns the position of a season within the academic year,
// or -1 when the season does not exist in this system.
func (s AcademicSystem) SeasonIndex(season Season) int {
	for i, candidate := range s.Seasons() {
		if candidate == season {
			return i
		}
	}
	return -1
}

// TermsPerYear returns how many terms one academic year holds.
func (s AcademicSystem) TermsPerYear() int {
	return len(s.Seasons())
}

// Phase identifies how a course came to sit in its term.
type Phase string

const (
	PhaseLocked    Phase = "locked"
	PhasePinned    Phase = "pinned"
	PhasePreTerm   Phase = "pre_term"
	PhasePrimary   Phase = "primary"
	PhaseSecondary Phase = "secondary"
	PhaseTertiary  Phase = "tertiary"
	PhaseFallback  Phase = "fallback"
	PhaseCleanup   Phase = "cleanup"
)
