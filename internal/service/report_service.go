package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/scoring"
	"greenscore/pkg/report"
)

// ReportService produces the yearly PDF report
type ReportService struct {
	scoreRepo *repository.ScoreRepository
}

// NewReportService creates a ReportService
func NewReportService(scoreRepo *repository.ScoreRepository) *ReportService {
	return &ReportService{scoreRepo: scoreRepo}
}

// Generate renders the scores of year. A year without scores is ErrNoScores.
func (s *ReportService) Generate(ctx context.Context, year int) (*bytes.Buffer, error) {
	scores, err := s.scoreRepo.List(ctx, &year)
	if err != nil {
		return nil, fmt.Errorf("list scores for %d: %w", year, err)
	}
	if len(scores) == 0 {
		return nil, ErrNoScores
	}

	doc := buildReport(year, scores, time.Now())

	var buf bytes.Buffer
	if _, err := report.Render(&buf, doc); err != nil {
		return nil, err
	}
	return &buf, nil
}

// buildReport lays out one line per month. The grade uses the exact mean of
// the totals; Overall is the rounded value printed next to it.
func buildReport(year int, scores []models.Score, generatedAt time.Time) report.Report {
	doc := report.Report{
		Year:        year,
		Lines:       make([]report.Line, len(scores)),
		GeneratedAt: generatedAt,
	}
	totals := make([]float64, len(scores))
	for i, sc := range scores {
		doc.Lines[i] = report.Line{
			Month:    sc.Month,
			Total:    sc.TotalScore,
			Energy:   sc.EnergyScore,
			Water:    sc.WaterScore,
			Waste:    sc.WasteScore,
			Greenery: sc.GreeneryScore,
		}
		totals[i] = sc.TotalScore
	}
	mean := scoring.Overall(totals)
	doc.Overall = scoring.Round2(mean)
	doc.Grade = scoring.Grade(mean)
	return doc
}
