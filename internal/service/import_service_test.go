package service

import (
	"bytes"
	"strings"
	"testing"

	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/scoring"
	"greenscore/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportService_ImportCSV(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)
	admin := env.newUser(t, "importer", models.RoleAdmin)

	data := strings.Join([]string{
		"month,year,energy,water,waste,greenery",
		"2,2025,1000,1000,500,0",
		"1,2025,1200,800,300,150",
		"1,2025,1200,800,300,150",
	}, "\n")

	resp, err := env.imports.Import(ctx, admin, "data.csv", strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Rows)
	assert.Equal(t, []dto.Bucket{{Month: 1, Year: 2025}, {Month: 2, Year: 2025}}, resp.Buckets)
	require.Len(t, resp.Scores, 2)
	assert.Equal(t, 33.75, resp.Scores[0].TotalScore)
	assert.Equal(t, 0.0, resp.Scores[1].TotalScore)

	_, total, err := env.measurementRepo.List(ctx, scoring.Greenery, repository.MeasurementFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(1), env.activityCount(t, admin.UserID))
}

func TestImportService_ReimportUpdatesScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)
	admin := env.newUser(t, "importer", models.RoleAdmin)

	_, err := env.imports.Import(ctx, admin, "a.csv", strings.NewReader("month,year,energy,water,waste,greenery\n1,2025,1200,800,300,150\n"))
	require.NoError(t, err)
	resp, err := env.imports.Import(ctx, admin, "b.csv", strings.NewReader("month,year,energy,water,waste,greenery\n1,2025,0,0,0,0\n"))
	require.NoError(t, err)

	// averages now 600/400/150/75 -> 40+60+70+37.5
	assert.Equal(t, 51.88, resp.Scores[0].TotalScore)
	count, err := env.scoreRepo.CountByBucket(ctx, 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestImportService_RejectsWholeFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)
	admin := env.newUser(t, "importer", models.RoleAdmin)

	data := "month,year,energy,water,waste,greenery\n1,2025,1,1,1,1\n2,2025,1,oops,1,1\n"
	_, err := env.imports.Import(ctx, admin, "bad.csv", strings.NewReader(data))
	var rowErr *utils.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Row)
	assert.Equal(t, "water", rowErr.Column)

	_, err = env.imports.Import(ctx, admin, "cols.csv", strings.NewReader("month,year,energy\n1,2025,1\n"))
	assert.ErrorIs(t, err, utils.ErrMissingColumns)

	for _, kind := range scoring.Kinds {
		_, total, err := env.measurementRepo.List(ctx, kind, repository.MeasurementFilter{}, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total, kind.String())
	}
	scores, err := env.scoreRepo.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.Equal(t, int64(0), env.activityCount(t, admin.UserID))
}

func TestImportService_TemplateRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	admin := env.newUser(t, "importer", models.RoleAdmin)

	buf, err := env.imports.Template()
	require.NoError(t, err)

	resp, err := env.imports.Import(testContext(t), admin, "template.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Rows)
	assert.Equal(t, 33.75, resp.Scores[0].TotalScore)
}
