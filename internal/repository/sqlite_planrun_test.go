package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/alexanderramin/termplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRunRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRunRepo(db)
	ctx := context.Background()

	started := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	run := testutil.NewTestPlanRun(
		testutil.WithStartedAt(started),
		testutil.WithRunDiagnostic("MATH1", "fall1", domain.PhasePrimary, ""),
		testutil.WithRunDiagnostic("HARD", "", domain.Phase(""), "No suitable term (capacity/schedule)."),
	)
	run.Placed = 1
	run.Unplaced = 1
	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, 1, got.Placed)
	assert.Equal(t, 1, got.Unplaced)
	assert.Equal(t, int64(3), got.DurationMs)
	assert.Equal(t, 15, got.MaxUnits)
	require.Len(t, got.Diagnostics, 2)
	assert.Equal(t, run.Diagnostics, got.Diagnostics)
}

func TestPlanRunRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := NewSQLitePlanRunRepo(db).GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRunRepo_ListRecent_NewestFirstWithLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePlanRunRepo(db)
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 4; i++ {
		run := testutil.NewTestPlanRun(testutil.WithStartedAt(base.Add(time.Duration(i) * time.Hour)))
		require.NoError(t, repo.Create(ctx, run))
		ids = append(ids, run.ID)
	}

	got, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[3], got[0].ID)
	assert.Equal(t, ids[2], got[1].ID)
	assert.Empty(t, got[0].Diagnostics)
}
