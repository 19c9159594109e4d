package planner

import (
	"fmt"

	"github.com/alexanderramin/termplan/internal/domain"
)

// Thresholds are the per-term capacity limits and top-up budget used by one
// planning run.
type Thresholds struct {
	MinUnits         int
	TargetUnits      int
	MaxUnits         int
	TargetDifficulty int
	MaxDifficulty    int
	TopUpAttempts    int
}

// DefaultThresholds returns the limits used when nothing can be derived from
// the catalog.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinUnits:         12,
		TargetUnits:      13,
		MaxUnits:         15,
		TargetDifficulty: 12,
		MaxDifficulty:    15,
		TopUpAttempts:    5,
	}
}

const defaultTopUpAttempts = 5

// ConfigError reports a rejected planning configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// Validate checks internal consistency of the limits.
func (t Thresholds) Validate() error {
	positive := []struct {
		field string
		val   int
	}{
		{"min_units", t.MinUnits},
		{"target_units", t.TargetUnits},
		{"max_units", t.MaxUnits},
		{"target_difficulty", t.TargetDifficulty},
		{"max_difficulty", t.MaxDifficulty},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return &ConfigError{Field: p.field, Message: fmt.Sprintf("must be positive (got %d)", p.val)}
		}
	}
	if t.TopUpAttempts < 0 {
		return &ConfigError{Field: "top_up_attempts", Message: fmt.Sprintf("must not be negative (got %d)", t.TopUpAttempts)}
	}
	if t.MinUnits > t.MaxUnits {
		return &ConfigError{Field: "min_units", Message: fmt.Sprintf("min (%d) must be <= max (%d)", t.MinUnits, t.MaxUnits)}
	}
	if t.TargetUnits > t.MaxUnits {
		return &ConfigError{Field: "target_units", Message: fmt.Sprintf("target (%d) must be <= max (%d)", t.TargetUnits, t.MaxUnits)}
	}
	if t.TargetDifficulty > t.MaxDifficulty {
		return &ConfigError{Field: "target_difficulty", Message: fmt.Sprintf("target (%d) must be <= max (%d)", t.TargetDifficulty, t.MaxDifficulty)}
	}
	return nil
}

// ValidateSettings checks the structural settings that do not depend on the catalog.
func ValidateSettings(s domain.PlanSettings) error {
	if !domain.ValidAcademicSystems[string(s.AcademicSystem)] {
		return &ConfigError{Field: "academic_system", Message: fmt.Sprintf("invalid value %q", s.AcademicSystem)}
	}
	if s.GraduationYears <= 0 {
		return &ConfigError{Field: "graduation_years", Message: fmt.Sprintf("must be positive (got %d)", s.GraduationYears)}
	}
	if s.CustomTermCount != nil && *s.CustomTermCount <= 0 {
		return &ConfigError{Field: "custom_term_count", Message: fmt.Sprintf("must be positive (got %d)", *s.CustomTermCount)}
	}
	return nil
}

// PlanningTermCount returns how many terms the unit and difficulty load is
// spread across. Quarter-system summers do not count.
func PlanningTermCount(s domain.PlanSettings) int {
	if s.CustomTermCount != nil && *s.CustomTermCount > 0 {
		return *s.CustomTermCount
	}
	total := s.GraduationYears * s.AcademicSystem.TermsPerYear()
	if s.AcademicSystem != domain.SystemSemester {
		total = total * 3 / 4
	}
	if total < 1 {
		return 1
	}
	return total
}

// ResolveThresholds fills every unset override from catalog totals and
// validates the resulting limits.
func ResolveThresholds(s domain.PlanSettings, totalUnits, totalDifficulty int) (Thresholds, error) {
	if err := ValidateSettings(s); err != nil {
		return Thresholds{}, err
	}

	computed := DefaultThresholds()
	if totalUnits > 0 {
		n := PlanningTermCount(s)
		target := ceilDiv(totalUnits, n)
		targetDiff := ceilDiv(totalDifficulty, n)
		if targetDiff < 1 {
			targetDiff = 1
		}
		computed = Thresholds{
			MinUnits:         max(1, target-1),
			TargetUnits:      target,
			MaxUnits:         target + 2,
			TargetDifficulty: targetDiff,
			MaxDifficulty:    targetDiff + 3,
			TopUpAttempts:    defaultTopUpAttempts,
		}
	}

	th := Thresholds{
		MinUnits:         domain.IntFromPtrWithDefault(computed.MinUnits, s.MinUnits),
		TargetUnits:      domain.IntFromPtrWithDefault(computed.TargetUnits, s.TargetUnits),
		MaxUnits:         domain.IntFromPtrWithDefault(computed.MaxUnits, s.MaxUnits),
		TargetDifficulty: domain.IntFromPtrWithDefault(computed.TargetDifficulty, s.TargetDifficulty),
		MaxDifficulty:    domain.IntFromPtrWithDefault(computed.MaxDifficulty, s.MaxDifficulty),
		TopUpAttempts:    domain.IntFromPtrWithDefault(computed.TopUpAttempts, s.TopUpAttempts),
	}
	if err := th.Validate(); err != nil {
		return Thresholds{}, err
	}
	return th, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// ScoreWeights are the bonus and penalty magnitudes used to rank candidate
// terms in the fallback and cleanup phases.
type ScoreWeights struct {
	UnderMinBonus            float64
	ReachMinBonus            float64
	OverMaxPenalty           float64
	DifficultyTargetBonus    float64
	DifficultyOveragePenalty float64
	DifficultyHeadroomBonus  float64
	DifficultyHeadroomMargin int
	UnitDeviationPenalty     float64
	LateTermPenalty          float64

	CleanupLowUnitsWeight  float64
	CleanupHeadroomWeight  float64
	CleanupEarlyTermWeight float64
}

// DefaultScoreWeights returns the standard magnitudes.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		UnderMinBonus:            300,
		ReachMinBonus:            150,
		OverMaxPenalty:           1000,
		DifficultyTargetBonus:    100,
		DifficultyOveragePenalty: 30,
		DifficultyHeadroomBonus:  20,
		DifficultyHeadroomMargin: 3,
		UnitDeviationPenalty:     10,
		LateTermPenalty:          15,

		CleanupLowUnitsWeight:  10,
		CleanupHeadroomWeight:  5,
		CleanupEarlyTermWeight: 15,
	}
}
