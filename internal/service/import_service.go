package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"

	"greenscore/internal/config"
	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/scoring"
	"greenscore/internal/utils"
	"greenscore/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// ImportService bulk-loads measurements from spreadsheets
type ImportService struct {
	measurementRepo *repository.MeasurementRepository
	scores          *ScoreService
	audit           *AuditService
	metrics         *metrics.Metrics
	cfg             *config.Config
	logger          *logrus.Logger
}

// NewImportService creates an ImportService
func NewImportService(
	measurementRepo *repository.MeasurementRepository,
	scores *ScoreService,
	audit *AuditService,
	m *metrics.Metrics,
	cfg *config.Config,
	logger *logrus.Logger,
) *ImportService {
	return &ImportService{
		measurementRepo: measurementRepo,
		scores:          scores,
		audit:           audit,
		metrics:         m,
		cfg:             cfg,
		logger:          logger,
	}
}

// Import validates the whole file first, writes every row in one
// transaction and then recomputes each distinct bucket. A file with any
// invalid row writes nothing.
func (s *ImportService) Import(ctx context.Context, id dto.Identity, filename string, r io.Reader) (*dto.ImportResponse, error) {
	rows, err := utils.ParseImportFile(filename, r, s.cfg.Import.MaxRows)
	if err != nil {
		return nil, err
	}

	owner := id.UserID
	err = s.measurementRepo.Transaction(ctx, func(tx *repository.MeasurementRepository) error {
		for _, row := range rows {
			values := map[scoring.Kind]float64{
				scoring.Energy:   row.Energy,
				scoring.Water:    row.Water,
				scoring.Waste:    row.Waste,
				scoring.Greenery: row.Greenery,
			}
			for _, kind := range scoring.Kinds {
				m := &models.Measurement{Value: values[kind], Month: row.Month, Year: row.Year, EnteredBy: &owner}
				if err := tx.Create(ctx, kind, m); err != nil {
					return fmt.Errorf("row %d: insert %s: %w", row.Line, kind, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", filename, err)
	}
	s.metrics.ImportedRows(len(rows))
	s.audit.Record(ctx, id.UserID, fmt.Sprintf("Imported %d rows from %s", len(rows), filename))

	buckets := distinctBuckets(rows)
	resp := &dto.ImportResponse{
		Rows:    len(rows),
		Buckets: buckets,
		Scores:  make([]dto.ScoreResponse, 0, len(buckets)),
	}
	for _, b := range buckets {
		score, err := s.scores.Recompute(ctx, b.Month, b.Year, TriggerImport)
		if err != nil {
			return nil, err
		}
		resp.Scores = append(resp.Scores, toScoreResponse(score))
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": id.UserID,
		"file":    filename,
		"rows":    len(rows),
		"buckets": len(buckets),
	}).Info("spreadsheet imported")
	return resp, nil
}

// Template the downloadable example workbook
func (s *ImportService) Template() (*bytes.Buffer, error) {
	return utils.BuildImportTemplate()
}

// distinctBuckets returns the buckets of rows ordered by year, month
func distinctBuckets(rows []utils.ImportRow) []dto.Bucket {
	seen := make(map[dto.Bucket]struct{}, len(rows))
	buckets := make([]dto.Bucket, 0)
	for _, row := range rows {
		b := dto.Bucket{Month: row.Month, Year: row.Year}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		return buckets[i].Month < buckets[j].Month
	})
	return buckets
}
