package app

import (
	"time"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/planner"
)

type ImportResult struct {
	CourseCount    int
	PlannableCount int
	TotalUnits     int
	// Kept counts courses that stayed in a term across the reload
	// (locked terms, pins, taken labels).
	Kept int
}

// PlanView is the persisted plan as the CLI renders it.
type PlanView struct {
	Settings     domain.PlanSettings
	Thresholds   planner.Thresholds
	Terms        []planner.TermSnapshot
	Unassigned   []string
	Invalid      []planner.InvalidCourse
	OverCapacity []string
	Courses      map[string]domain.Course
}

type RunPlanResponse struct {
	RunID      string
	StartedAt  time.Time
	Duration   time.Duration
	Placements map[domain.Phase]int
	Unplaced   []planner.Diagnostic
	View       *PlanView
}

type PlacementResponse struct {
	CourseID string
	TermID   string
	Verdict  planner.Verdict
}

// SettingsUpdate carries only the fields a caller wants changed. ClearOverrides
// drops every unit and difficulty override before the new values apply.
type SettingsUpdate struct {
	AcademicSystem   *domain.AcademicSystem
	GraduationYears  *int
	CustomTermCount  *int
	MinUnits         *int
	TargetUnits      *int
	MaxUnits         *int
	TargetDifficulty *int
	MaxDifficulty    *int
	TopUpAttempts    *int
	ClearOverrides   bool
}

// Apply returns s with the update's fields overlaid.
func (u SettingsUpdate) Apply(s domain.PlanSettings) domain.PlanSettings {
	if u.ClearOverrides {
		s.CustomTermCount = nil
		s.MinUnits = nil
		s.TargetUnits = nil
		s.MaxUnits = nil
		s.TargetDifficulty = nil
		s.MaxDifficulty = nil
		s.TopUpAttempts = nil
	}
	if u.AcademicSystem != nil {
		s.AcademicSystem = *u.AcademicSystem
	}
	if u.GraduationYears != nil {
		s.GraduationYears = *u.GraduationYears
	}
	if u.CustomTermCount != nil {
		s.CustomTermCount = u.CustomTermCount
	}
	if u.MinUnits != nil {
		s.MinUnits = u.MinUnits
	}
	if u.TargetUnits != nil {
		s.TargetUnits = u.TargetUnits
	}
	if u.MaxUnits != nil {
		s.MaxUnits = u.MaxUnits
	}
	if u.TargetDifficulty != nil {
		s.TargetDifficulty = u.TargetDifficulty
	}
	if u.MaxDifficulty != nil {
		s.MaxDifficulty = u.MaxDifficulty
	}
	if u.TopUpAttempts != nil {
		s.TopUpAttempts = u.TopUpAttempts
	}
	return s
}

type SettingsView struct {
	Settings   domain.PlanSettings
	Thresholds planner.Thresholds
	TermCount  int
}
