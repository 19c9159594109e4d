package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/importer"
	"github.com/alexanderramin/termplan/internal/repository"
	"github.com/alexanderramin/termplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func difficulty(v int) *int { return &v }

// chainCatalog is A -> B -> D plus a free-standing C, four units each.
// Over two semester years that resolves to target 4, min 3, max 6 units.
func chainCatalog() *importer.CatalogFile {
	return &importer.CatalogFile{Courses: []importer.CourseRecord{
		{ID: "A", Name: "Foundations", Units: 4, Difficulty: difficulty(3)},
		{ID: "B", Units: 4, Difficulty: difficulty(3), Prerequisites: []string{"A"}},
		{ID: "C", Units: 4, Difficulty: difficulty(3)},
		{ID: "D", Units: 4, Difficulty: difficulty(3), Prerequisites: []string{"B"}},
	}}
}

type testServices struct {
	db       *sql.DB
	uow      db.UnitOfWork
	imports  ImportService
	plans    PlanService
	settings SettingsService
}

func newTestServices(t *testing.T, observers ...UseCaseObserver) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	return &testServices{
		db:       database,
		uow:      uow,
		imports:  NewImportService(uow, nil, observers...),
		plans:    NewPlanService(repository.NewSQLitePlanRunRepo(database), uow, nil, observers...),
		settings: NewSettingsService(uow, nil, observers...),
	}
}

// seedSemesterPlan switches to two semester years and imports file.
func seedSemesterPlan(t *testing.T, svc *testServices, file *importer.CatalogFile) {
	t.Helper()
	ctx := context.Background()
	system := domain.SystemSemester
	_, err := svc.settings.Update(ctx, app.SettingsUpdate{AcademicSystem: &system, GraduationYears: intPtr(2)})
	require.NoError(t, err)
	_, err = svc.imports.ImportCatalogFile(ctx, file)
	require.NoError(t, err)
}

func termByID(t *testing.T, view *app.PlanView, id string) []string {
	t.Helper()
	for _, term := range view.Terms {
		if term.ID == id {
			return term.Courses
		}
	}
	t.Fatalf("term %s not in view", id)
	return nil
}

func requirePlanCode(t *testing.T, err error, code app.PlanErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, app.IsCode(err, code), "expected %s, got %v", code, err)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
