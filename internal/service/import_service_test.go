package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/catalog"
	"github.com/alexanderramin/termplan/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCatalogFile_StoresCoursesUnassigned(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	seedSemesterPlan(t, svc, chainCatalog())

	view, err := svc.plans.Show(ctx)
	require.NoError(t, err)

	assert.Len(t, view.Terms, 4)
	assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, view.Unassigned)
	assert.Equal(t, "Foundations", view.Courses["A"].Name)
	assert.Equal(t, "B", view.Courses["B"].Name)
	assert.Equal(t, 4, view.Thresholds.TargetUnits)
	assert.Equal(t, 6, view.Thresholds.MaxUnits)
}

func TestImportCatalogFile_ReportsCounts(t *testing.T) {
	svc := newTestServices(t)
	file := chainCatalog()
	file.Courses = append(file.Courses, importer.CourseRecord{ID: "ELEC", Units: 2, Category: "optional"})

	res, err := svc.imports.ImportCatalogFile(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 5, res.CourseCount)
	assert.Equal(t, 4, res.PlannableCount)
	assert.Equal(t, 16, res.TotalUnits)
	assert.Equal(t, 0, res.Kept)
}

func TestImportCatalogFile_RecordErrorsAreDataIntegrity(t *testing.T) {
	svc := newTestServices(t)
	file := &importer.CatalogFile{Courses: []importer.CourseRecord{
		{ID: "A", Units: -2},
		{ID: "A", Units: 3},
	}}

	_, err := svc.imports.ImportCatalogFile(context.Background(), file)
	requirePlanCode(t, err, app.PlanErrDataIntegrity)
	assert.Contains(t, err.Error(), "catalog validation failed")

	_, err = svc.plans.Show(context.Background())
	requirePlanCode(t, err, app.PlanErrNoCatalog)
}

func TestImportCatalogFile_UnknownPrerequisiteRejected(t *testing.T) {
	svc := newTestServices(t)
	file := &importer.CatalogFile{Courses: []importer.CourseRecord{
		{ID: "A", Units: 3, Prerequisites: []string{"GHOST"}},
	}}

	_, err := svc.imports.ImportCatalogFile(context.Background(), file)
	requirePlanCode(t, err, app.PlanErrDataIntegrity)

	var valErr *catalog.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.True(t, valErr.HasCode(catalog.IssueUnknownPrerequisite))
}

func TestImportCatalogFile_TakenLabelPinsCourse(t *testing.T) {
	svc := newTestServices(t)
	file := chainCatalog()
	file.Courses[2].Taken = "Spring, Year 1"
	seedSemesterPlan(t, svc, file)

	view, err := svc.plans.Show(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, termByID(t, view, "spring1"))
	assert.NotContains(t, view.Unassigned, "C")
	for _, term := range view.Terms {
		if term.ID == "spring1" {
			assert.Equal(t, []string{"C"}, term.Pinned)
		}
	}
}

func TestImportCatalogFile_ReimportKeepsLockedTerm(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	seedSemesterPlan(t, svc, chainCatalog())

	_, err := svc.plans.Place(ctx, "A", "fall1")
	require.NoError(t, err)
	require.NoError(t, svc.plans.Unpin(ctx, "A"))
	require.NoError(t, svc.plans.LockTerm(ctx, "fall1"))
	_, err = svc.plans.Place(ctx, "C", "fall2")
	require.NoError(t, err)
	require.NoError(t, svc.plans.Unpin(ctx, "C"))

	res, err := svc.imports.ImportCatalogFile(ctx, chainCatalog())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Kept)

	view, err := svc.plans.Show(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, termByID(t, view, "fall1"))
	assert.Empty(t, termByID(t, view, "fall2"))
	assert.Contains(t, view.Unassigned, "C")
}

func TestImportCatalog_FromYAMLFile(t *testing.T) {
	svc := newTestServices(t)
	path := filepath.Join(t.TempDir(), "catalog.yml")
	data := []byte("courses:\n  - id: X1\n    units: 3\n  - id: X2\n    units: 3\n    prerequisites: [X1]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	res, err := svc.imports.ImportCatalog(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.CourseCount)
}

func TestImportCatalog_MissingFile(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.imports.ImportCatalog(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading catalog file")
}
