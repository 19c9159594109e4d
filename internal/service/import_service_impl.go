package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/catalog"
	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/importer"
	"github.com/alexanderramin/termplan/internal/planner"
	"github.com/alexanderramin/termplan/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, logger *slog.Logger, observers ...UseCaseObserver) ImportService {
	if logger == nil {
		logger = NewPlannerLogger(nil)
	}
	return &importService{
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportCatalog(ctx context.Context, filePath string) (*app.ImportResult, error) {
	file, err := importer.LoadCatalogFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	return s.ImportCatalogFile(ctx, file)
}

// ImportCatalogFile replaces the stored catalog. Locked terms, pins and
// taken labels carry over as far as the new catalog allows; everything else
// returns to the unassigned bucket.
func (s *importService) ImportCatalogFile(ctx context.Context, file *importer.CatalogFile) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observe(ctx, s.observer, "import-catalog", startedAt, fields, err)
	}()

	if errs := importer.ValidateCatalogFile(file); len(errs) > 0 {
		return nil, &app.PlanError{Code: app.PlanErrDataIntegrity, Message: formatValidationErrors(errs)}
	}

	courses := importer.Convert(file)
	cat, err := catalog.New(courses)
	if err != nil {
		return nil, planError(err)
	}
	fields["course_count"] = cat.Len()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		session, err := s.carryOver(ctx, tx, cat)
		if err != nil {
			return err
		}

		if err := repository.NewSQLiteCourseRepo(tx).ReplaceAll(ctx, cat.Courses()); err != nil {
			return fmt.Errorf("replacing catalog: %w", err)
		}
		if err := saveTerms(ctx, tx, session); err != nil {
			return err
		}

		units, _ := cat.PlannableTotals()
		result = &app.ImportResult{
			CourseCount:    cat.Len(),
			PlannableCount: len(cat.Plannable()),
			TotalUnits:     units,
		}
		for _, t := range session.Sequence().Terms() {
			result.Kept += len(t.Courses)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["kept"] = result.Kept
	return result, nil
}

// carryOver moves the stored session onto cat. A store whose catalog no
// longer validates is discarded in favour of a fresh session.
func (s *importService) carryOver(ctx context.Context, tx db.DBTX, cat *catalog.Catalog) (*planner.Session, error) {
	current, err := loadSession(ctx, tx, s.logger)
	if err != nil {
		if !app.IsCode(err, app.PlanErrDataIntegrity) {
			return nil, err
		}
		settings, serr := repository.NewSQLiteSettingsRepo(tx).Get(ctx)
		if serr != nil {
			return nil, fmt.Errorf("loading settings: %w", serr)
		}
		fresh, ferr := planner.NewSession(cat, *settings, planner.WithLogger(s.logger))
		if ferr != nil {
			return nil, planError(ferr)
		}
		return fresh, nil
	}

	if err := current.ReloadCatalog(cat); err != nil {
		return nil, planError(err)
	}
	return current, nil
}

func formatValidationErrors(errs []error) string {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return msg
}
