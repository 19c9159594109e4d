package service

import (
	"context"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/importer"
)

type ImportService interface {
	ImportCatalog(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportCatalogFile(ctx context.Context, file *importer.CatalogFile) (*app.ImportResult, error)
}

// PlanService covers automatic planning and the manual edits made between runs.
type PlanService interface {
	Run(ctx context.Context) (*app.RunPlanResponse, error)
	Reset(ctx context.Context) (*app.PlanView, error)
	Show(ctx context.Context) (*app.PlanView, error)
	Check(ctx context.Context, courseID, termID string) (*app.PlacementResponse, error)
	History(ctx context.Context, limit int) ([]*domain.PlanRun, error)
	GetRun(ctx context.Context, id string) (*domain.PlanRun, error)

	Place(ctx context.Context, courseID, termID string) (*app.PlacementResponse, error)
	Remove(ctx context.Context, courseID string) error
	Pin(ctx context.Context, courseID string) error
	Unpin(ctx context.Context, courseID string) error
	LockTerm(ctx context.Context, termID string) error
	UnlockTerm(ctx context.Context, termID string) error
}

type SettingsService interface {
	Get(ctx context.Context) (*app.SettingsView, error)
	Update(ctx context.Context, update app.SettingsUpdate) (*app.SettingsView, error)
}
