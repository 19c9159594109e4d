package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/planner"
	"github.com/alexanderramin/termplan/internal/repository"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 10

type planService struct {
	runs     repository.PlanRunRepo
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewPlanService(runs repository.PlanRunRepo, uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) PlanService {
	if logger == nil {
		logger = NewPlannerLogger(nil)
	}
	return &planService{
		runs:     runs,
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Run executes automatic planning over the stored plan, persists the new
// layout, and records the run in history.
func (s *planService) Run(ctx context.Context) (resp *app.RunPlanResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observe(ctx, s.observer, "plan-run", startedAt, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		session, err := loadSession(ctx, tx, s.logger)
		if err != nil {
			return err
		}
		if err := requireCatalog(session); err != nil {
			return err
		}

		result := session.AutoPlan()
		duration := time.Since(startedAt)
		if err := saveTerms(ctx, tx, session); err != nil {
			return err
		}

		run := newPlanRun(startedAt, duration, result)
		if err := repository.NewSQLitePlanRunRepo(tx).Create(ctx, run); err != nil {
			return fmt.Errorf("recording plan run: %w", err)
		}

		resp = &app.RunPlanResponse{
			RunID:      run.ID,
			StartedAt:  startedAt,
			Duration:   duration,
			Placements: result.Placements,
			Unplaced:   result.Unplaced(),
			View:       buildView(session),
		}
		fields["run_id"] = run.ID
		fields["placed"] = run.Placed
		fields["unplaced"] = run.Unplaced
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func newPlanRun(startedAt time.Time, duration time.Duration, result *planner.Result) *domain.PlanRun {
	run := &domain.PlanRun{
		ID:            uuid.New().String(),
		StartedAt:     startedAt,
		DurationMs:    duration.Milliseconds(),
		OverCapacity:  len(result.OverCapacity),
		MinUnits:      result.Thresholds.MinUnits,
		TargetUnits:   result.Thresholds.TargetUnits,
		MaxUnits:      result.Thresholds.MaxUnits,
		MaxDifficulty: result.Thresholds.MaxDifficulty,
	}
	for _, d := range result.Diagnostics {
		if d.Placed {
			run.Placed++
		} else if d.Reason != "" {
			run.Unplaced++
		} else {
			continue
		}
		run.Diagnostics = append(run.Diagnostics, domain.RunDiagnostic{
			CourseID: d.CourseID,
			TermID:   d.TermID,
			Phase:    d.Phase,
			Reason:   d.Reason,
		})
	}
	return run
}

// Reset returns every course in an unlocked term to the unassigned bucket.
func (s *planService) Reset(ctx context.Context) (view *app.PlanView, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "plan-reset", startedAt, nil, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		session, err := loadSession(ctx, tx, s.logger)
		if err != nil {
			return err
		}
		if err := requireCatalog(session); err != nil {
			return err
		}
		session.ResetPlanning()
		if err := saveTerms(ctx, tx, session); err != nil {
			return err
		}
		view = buildView(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *planService) Show(ctx context.Context) (*app.PlanView, error) {
	var view *app.PlanView
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		session, err := loadSession(ctx, tx, s.logger)
		if err != nil {
			return err
		}
		if err := requireCatalog(session); err != nil {
			return err
		}
		view = buildView(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Check evaluates a placement without changing the stored plan.
func (s *planService) Check(ctx context.Context, courseID, termID string) (*app.PlacementResponse, error) {
	var resp *app.PlacementResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		session, err := loadSession(ctx, tx, s.logger)
		if err != nil {
			return err
		}
		if err := requireCatalog(session); err != nil {
			return err
		}
		verdict, err := session.CheckPlacement(courseID, termID)
		if err != nil {
			return planError(err)
		}
		resp = &app.PlacementResponse{CourseID: courseID, TermID: termID, Verdict: verdict}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *planService) History(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.runs.ListRecent(ctx, limit)
}

func (s *planService) GetRun(ctx context.Context, id string) (*domain.PlanRun, error) {
	return s.runs.GetByID(ctx, id)
}

func (s *planService) Place(ctx context.Context, courseID, termID string) (*app.PlacementResponse, error) {
	var resp *app.PlacementResponse
	err := s.mutate(ctx, "course-place", map[string]any{"course": courseID, "term": termID}, func(session *planner.Session) error {
		verdict, err := session.PlaceCourse(courseID, termID)
		if err != nil {
			return err
		}
		resp = &app.PlacementResponse{CourseID: courseID, TermID: termID, Verdict: verdict}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *planService) Remove(ctx context.Context, courseID string) error {
	return s.mutate(ctx, "course-remove", map[string]any{"course": courseID}, func(session *planner.Session) error {
		return session.RemoveCourse(courseID)
	})
}

func (s *planService) Pin(ctx context.Context, courseID string) error {
	return s.mutate(ctx, "course-pin", map[string]any{"course": courseID}, func(session *planner.Session) error {
		return session.Pin(courseID)
	})
}

func (s *planService) Unpin(ctx context.Context, courseID string) error {
	return s.mutate(ctx, "course-unpin", map[string]any{"course": courseID}, func(session *planner.Session) error {
		return session.Unpin(courseID)
	})
}

func (s *planService) LockTerm(ctx context.Context, termID string) error {
	return s.mutate(ctx, "term-lock", map[string]any{"term": termID}, func(session *planner.Session) error {
		return session.LockTerm(termID)
	})
}

func (s *planService) UnlockTerm(ctx context.Context, termID string) error {
	return s.mutate(ctx, "term-unlock", map[string]any{"term": termID}, func(session *planner.Session) error {
		return session.UnlockTerm(termID)
	})
}

// mutate loads the session, applies fn, and saves the terms in one
// transaction. A rejected operation writes nothing.
func (s *planService) mutate(ctx context.Context, name string, fields map[string]any, fn func(*planner.Session) error) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, name, startedAt, fields, err)
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		session, err := loadSession(ctx, tx, s.logger)
		if err != nil {
			return err
		}
		if err := requireCatalog(session); err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return planError(err)
		}
		return saveTerms(ctx, tx, session)
	})
}
