package repository

import (
	"context"

	"github.com/alexanderramin/termplan/internal/domain"
)

type CourseRepo interface {
	ReplaceAll(ctx context.Context, courses []domain.Course) error
	List(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	Count(ctx context.Context) (int, error)
}

// TermRepo persists the term sequence. The unassigned bucket is derived
// from the catalog and is not stored.
type TermRepo interface {
	SaveAll(ctx context.Context, terms []*domain.Term) error
	List(ctx context.Context) ([]*domain.Term, error)
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.PlanSettings, error)
	Upsert(ctx context.Context, s *domain.PlanSettings) error
}

type PlanRunRepo interface {
	Create(ctx context.Context, run *domain.PlanRun) error
	GetByID(ctx context.Context, id string) (*domain.PlanRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.PlanRun, error)
}
