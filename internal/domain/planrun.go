package domain

import "time"

// PlanRun records one automatic planning invocation.
type PlanRun struct {
	ID            string
	StartedAt     time.Time
	DurationMs    int64
	Placed        int
	Unplaced      int
	OverCapacity  int
	MinUnits      int
	TargetUnits   int
	MaxUnits      int
	MaxDifficulty int
	Diagnostics   []RunDiagnostic
}

// RunDiagnostic is the stored outcome for one course in a run. TermID is
// empty when the course was left unassigned.
type RunDiagnostic struct {
	CourseID string
	TermID   string
	Phase    Phase
	Reason   string
}
