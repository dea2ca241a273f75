package service

import (
	"context"
	"fmt"
	"time"

	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/scoring"
	"greenscore/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// Recompute triggers, used as metric labels
const (
	TriggerManual      = "manual"
	TriggerMeasurement = "measurement"
	TriggerImport      = "import"
)

// ScoreService derives bucket scores from raw measurements
type ScoreService struct {
	measurementRepo *repository.MeasurementRepository
	scoreRepo       *repository.ScoreRepository
	locker          BucketLocker
	audit           *AuditService
	metrics         *metrics.Metrics
	logger          *logrus.Logger
}

// NewScoreService creates a ScoreService. m may be nil.
func NewScoreService(
	measurementRepo *repository.MeasurementRepository,
	scoreRepo *repository.ScoreRepository,
	locker BucketLocker,
	audit *AuditService,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *ScoreService {
	return &ScoreService{
		measurementRepo: measurementRepo,
		scoreRepo:       scoreRepo,
		locker:          locker,
		audit:           audit,
		metrics:         m,
		logger:          logger,
	}
}

// Recompute reads the bucket's current averages and replaces its score row.
// It holds the bucket lock for the whole read-compute-write so concurrent
// callers cannot interleave; calling it again with unchanged data yields the
// same row.
func (s *ScoreService) Recompute(ctx context.Context, month, year int, trigger string) (score *models.Score, err error) {
	start := time.Now()
	defer func() { s.metrics.RecomputeDone(trigger, start, err) }()

	unlock, err := s.locker.Lock(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("lock bucket %d/%d: %w", month, year, err)
	}
	defer unlock()

	avg, err := s.measurementRepo.Averages(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("read averages %d/%d: %w", month, year, err)
	}
	result := scoring.Compute(avg)

	score = &models.Score{
		Month:         month,
		Year:          year,
		EnergyScore:   result.EnergyScore,
		WaterScore:    result.WaterScore,
		WasteScore:    result.WasteScore,
		GreeneryScore: result.GreeneryScore,
		TotalScore:    result.TotalScore,
		CalculatedAt:  time.Now(),
	}
	if err := s.scoreRepo.Replace(ctx, score); err != nil {
		return nil, fmt.Errorf("save score %d/%d: %w", month, year, err)
	}

	s.logger.WithFields(logrus.Fields{
		"month":   month,
		"year":    year,
		"total":   score.TotalScore,
		"trigger": trigger,
	}).Debug("score recomputed")
	return score, nil
}

// Calculate recomputes one bucket on request of a user
func (s *ScoreService) Calculate(ctx context.Context, id dto.Identity, month, year int) (*dto.ScoreResponse, error) {
	if !validBucket(month, year) {
		return nil, ErrInvalidBucket
	}
	score, err := s.Recompute(ctx, month, year, TriggerManual)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, id.UserID, fmt.Sprintf("Calculated score for %d/%d", month, year))

	resp := toScoreResponse(score)
	return &resp, nil
}

// List returns stored scores ordered by year, month
func (s *ScoreService) List(ctx context.Context, year *int) ([]dto.ScoreResponse, error) {
	scores, err := s.scoreRepo.List(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	resp := make([]dto.ScoreResponse, len(scores))
	for i := range scores {
		resp[i] = toScoreResponse(&scores[i])
	}
	return resp, nil
}

// Dashboard builds the chart series with forecast point, overall score and grade
func (s *ScoreService) Dashboard(ctx context.Context, id dto.Identity, year *int) (*dto.DashboardResponse, error) {
	scores, err := s.scoreRepo.List(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	labels := make([]string, 0, len(scores)+1)
	totals := make([]float64, 0, len(scores)+1)
	for _, sc := range scores {
		labels = append(labels, fmt.Sprintf("%d-%d", sc.Month, sc.Year))
		totals = append(totals, sc.TotalScore)
	}

	// graded on the exact mean; only the displayed overall is rounded
	mean := scoring.Overall(totals)
	prediction := scoring.Forecast(totals)

	resp := &dto.DashboardResponse{
		Predicted: prediction.Value,
		Trend:     prediction.Trend,
		Overall:   scoring.Round2(mean),
		Grade:     scoring.Grade(mean),
		Username:  id.Username,
		Role:      id.Role,
	}
	if len(scores) > 0 {
		latest := toScoreResponse(&scores[len(scores)-1])
		resp.Latest = &latest
	}
	if prediction.Value != nil {
		labels = append(labels, scoring.NextLabel)
		totals = append(totals, *prediction.Value)
	}
	resp.Labels = labels
	resp.Scores = totals
	return resp, nil
}
