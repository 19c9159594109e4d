package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsGet_DefaultsWithoutCatalog(t *testing.T) {
	svc := newTestServices(t)

	view, err := svc.settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SystemQuarter, view.Settings.AcademicSystem)
	assert.Equal(t, 4, view.Settings.GraduationYears)
	assert.Equal(t, 12, view.TermCount)
	assert.Equal(t, planner.DefaultThresholds(), view.Thresholds)
}

func TestSettingsUpdate_OverridesApply(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	seedSemesterPlan(t, svc, chainCatalog())

	view, err := svc.settings.Update(ctx, app.SettingsUpdate{MaxUnits: intPtr(9), MinUnits: intPtr(8)})
	require.NoError(t, err)
	assert.Equal(t, 9, view.Thresholds.MaxUnits)
	assert.Equal(t, 8, view.Thresholds.MinUnits)
	assert.Equal(t, 4, view.Thresholds.TargetUnits)

	got, err := svc.settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, view.Settings, got.Settings)

	view, err = svc.settings.Update(ctx, app.SettingsUpdate{ClearOverrides: true})
	require.NoError(t, err)
	assert.Nil(t, view.Settings.MaxUnits)
	assert.Equal(t, 6, view.Thresholds.MaxUnits)
}

func TestSettingsUpdate_InvalidKeepsPrevious(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	seedSemesterPlan(t, svc, chainCatalog())

	_, err := svc.settings.Update(ctx, app.SettingsUpdate{MinUnits: intPtr(20)})
	requirePlanCode(t, err, app.PlanErrInvalidConfig)

	var cfgErr *planner.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "min_units", cfgErr.Field)

	view, err := svc.settings.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, view.Settings.MinUnits)
	assert.Equal(t, 3, view.Thresholds.MinUnits)
}

func TestSettingsUpdate_UnknownSystemRejected(t *testing.T) {
	svc := newTestServices(t)
	system := domain.AcademicSystem("trimester")

	_, err := svc.settings.Update(context.Background(), app.SettingsUpdate{AcademicSystem: &system})
	requirePlanCode(t, err, app.PlanErrInvalidConfig)
}

func TestSettingsUpdate_ReshapeKeepsPlacements(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	seedSemesterPlan(t, svc, chainCatalog())

	_, err := svc.plans.Place(ctx, "A", "fall1")
	require.NoError(t, err)

	_, err = svc.settings.Update(ctx, app.SettingsUpdate{GraduationYears: intPtr(3)})
	require.NoError(t, err)

	view, err := svc.plans.Show(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Terms, 6)
	assert.Equal(t, []string{"A"}, termByID(t, view, "fall1"))
}

func TestSettingsUpdate_SwitchToQuarter(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	seedSemesterPlan(t, svc, chainCatalog())

	quarter := domain.SystemQuarter
	view, err := svc.settings.Update(ctx, app.SettingsUpdate{AcademicSystem: &quarter})
	require.NoError(t, err)
	assert.Equal(t, 6, view.TermCount)

	plan, err := svc.plans.Show(ctx)
	require.NoError(t, err)
	assert.Len(t, plan.Terms, 8)
	assert.True(t, plan.Terms[0].PreTerm)
}
