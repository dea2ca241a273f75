package service

import (
	"bytes"
	"testing"
	"time"

	"greenscore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Generate(t *testing.T) {
	env := newTestEnv(t)
	ctx := testContext(t)

	_, err := env.reports.Generate(ctx, 2025)
	assert.ErrorIs(t, err, ErrNoScores)

	require.NoError(t, env.scoreRepo.Replace(ctx, &models.Score{Month: 1, Year: 2025, TotalScore: 33.75}))
	require.NoError(t, env.scoreRepo.Replace(ctx, &models.Score{Month: 1, Year: 2024, TotalScore: 90}))

	buf, err := env.reports.Generate(ctx, 2025)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	_, err = env.reports.Generate(ctx, 2023)
	assert.ErrorIs(t, err, ErrNoScores)
}

func TestBuildReport_GradesExactMean(t *testing.T) {
	scores := []models.Score{
		{Month: 1, Year: 2025, TotalScore: 84.99, EnergyScore: 80},
		{Month: 2, Year: 2025, TotalScore: 85},
		{Month: 3, Year: 2025, TotalScore: 85},
	}

	doc := buildReport(2025, scores, time.Now())
	require.Len(t, doc.Lines, 3)
	assert.Equal(t, 80.0, doc.Lines[0].Energy)
	assert.Equal(t, 85.0, doc.Overall, "printed overall is rounded")
	assert.Equal(t, "B", doc.Grade, "a mean just under 85 is not an A")
}
