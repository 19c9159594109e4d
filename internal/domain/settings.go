package domain

// PlanSettings holds persisted planning configuration. Nil override pointers
// mean "compute dynamically from the catalog and timeline".
type PlanSettings struct {
	ID               string
	AcademicSystem   AcademicSystem
	GraduationYears  int
	CustomTermCount  *int
	MinUnits         *int
	TargetUnits      *int
	MaxUnits         *int
	TargetDifficulty *int
	MaxDifficulty    *int
	TopUpAttempts    *int
}

// DefaultPlanSettings mirrors the seeded settings row.
func DefaultPlanSettings() PlanSettings {
	return PlanSettings{
		ID:              "default",
		AcademicSystem:  SystemQuarter,
		GraduationYears: 4,
	}
}
