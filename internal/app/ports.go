package app

import (
	"context"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/importer"
)

type ImportCatalogUseCase interface {
	ImportCatalog(ctx context.Context, filePath string) (*ImportResult, error)
	ImportCatalogFile(ctx context.Context, file *importer.CatalogFile) (*ImportResult, error)
}

type PlanUseCase interface {
	Run(ctx context.Context) (*RunPlanResponse, error)
	Reset(ctx context.Context) (*PlanView, error)
	Show(ctx context.Context) (*PlanView, error)
	Check(ctx context.Context, courseID, termID string) (*PlacementResponse, error)
	History(ctx context.Context, limit int) ([]*domain.PlanRun, error)
	GetRun(ctx context.Context, id string) (*domain.PlanRun, error)
}

type ManualPlanUseCase interface {
	Place(ctx context.Context, courseID, termID string) (*PlacementResponse, error)
	Remove(ctx context.Context, courseID string) error
	Pin(ctx context.Context, courseID string) error
	Unpin(ctx context.Context, courseID string) error
	LockTerm(ctx context.Context, termID string) error
	UnlockTerm(ctx context.Context, termID string) error
}

type SettingsUseCase interface {
	Get(ctx context.Context) (*SettingsView, error)
	Update(ctx context.Context, update SettingsUpdate) (*SettingsView, error)
}
