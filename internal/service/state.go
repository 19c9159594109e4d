package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/catalog"
	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/planner"
	"github.com/alexanderramin/termplan/internal/repository"
)

// loadSession rebuilds the planning session from the rows visible to tx.
// An empty store yields a session over an empty catalog.
func loadSession(ctx context.Context, tx db.DBTX, logger *slog.Logger) (*planner.Session, error) {
	courses, err := repository.NewSQLiteCourseRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading courses: %w", err)
	}
	cat, err := catalog.New(courses)
	if err != nil {
		return nil, planError(err)
	}

	settings, err := repository.NewSQLiteSettingsRepo(tx).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	terms, err := repository.NewSQLiteTermRepo(tx).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading terms: %w", err)
	}

	opts := []planner.EngineOption{planner.WithLogger(logger)}
	var session *planner.Session
	if len(terms) == 0 {
		session, err = planner.NewSession(cat, *settings, opts...)
	} else {
		seq := planner.RestoreTermSequence(settings.AcademicSystem, terms, nil)
		session, err = planner.RestoreSession(cat, seq, *settings, opts...)
	}
	if err != nil {
		return nil, planError(err)
	}
	return session, nil
}

// requireCatalog rejects planning against an empty store.
func requireCatalog(session *planner.Session) error {
	if session.Catalog().Len() == 0 {
		return &app.PlanError{Code: app.PlanErrNoCatalog, Message: "no courses imported"}
	}
	return nil
}

func saveTerms(ctx context.Context, tx db.DBTX, session *planner.Session) error {
	if err := repository.NewSQLiteTermRepo(tx).SaveAll(ctx, session.Sequence().Terms()); err != nil {
		return fmt.Errorf("saving terms: %w", err)
	}
	return nil
}

// planError maps planner and catalog errors onto the shared error surface.
// Anything else is returned unchanged.
func planError(err error) error {
	var opErr *planner.OperationError
	var cfgErr *planner.ConfigError
	var valErr *catalog.ValidationError
	switch {
	case errors.As(err, &opErr):
		return &app.PlanError{Code: app.PlanErrInvalidOperation, Message: opErr.Message, Err: err}
	case errors.As(err, &cfgErr):
		return &app.PlanError{Code: app.PlanErrInvalidConfig, Message: cfgErr.Error(), Err: err}
	case errors.As(err, &valErr):
		return &app.PlanError{Code: app.PlanErrDataIntegrity, Message: valErr.Error(), Err: err}
	default:
		return err
	}
}

func buildView(session *planner.Session) *app.PlanView {
	seq := session.Sequence()
	view := &app.PlanView{
		Settings:     session.Settings(),
		Thresholds:   session.Thresholds(),
		Terms:        session.Snapshot(),
		Unassigned:   seq.Unassigned(),
		Invalid:      session.InvalidCourses(),
		OverCapacity: planner.OverCapacity(seq, session.Thresholds()),
		Courses:      make(map[string]domain.Course, session.Catalog().Len()),
	}
	for _, c := range session.Catalog().Courses() {
		view.Courses[c.ID] = c
	}
	return view
}
