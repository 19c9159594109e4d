package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/planner"
	"github.com/alexanderramin/termplan/internal/repository"
)

type settingsService struct {
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewSettingsService(uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) SettingsService {
	if logger == nil {
		logger = NewPlannerLogger(nil)
	}
	return &settingsService{
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *settingsService) Get(ctx context.Context) (*app.SettingsView, error) {
	var view *app.SettingsView
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		session, err := loadSession(ctx, tx, s.logger)
		if err != nil {
			return err
		}
		view = settingsView(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Update applies a partial settings change. Invalid settings are rejected
// and the stored ones stay in effect. Changing the academic system or the
// number of years rebuilds the terms.
func (s *settingsService) Update(ctx context.Context, update app.SettingsUpdate) (view *app.SettingsView, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "config-set", startedAt, nil, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		session, err := loadSession(ctx, tx, s.logger)
		if err != nil {
			return err
		}

		next := update.Apply(session.Settings())
		if err := session.SetSettings(next); err != nil {
			return planError(err)
		}

		if err := repository.NewSQLiteSettingsRepo(tx).Upsert(ctx, &next); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		if err := saveTerms(ctx, tx, session); err != nil {
			return err
		}
		view = settingsView(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func settingsView(session *planner.Session) *app.SettingsView {
	return &app.SettingsView{
		Settings:   session.Settings(),
		Thresholds: session.Thresholds(),
		TermCount:  planner.PlanningTermCount(session.Settings()),
	}
}
