package service

import (
	"context"
	"fmt"

	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/scoring"
)

// MeasurementService CRUD over the four measurement tables. Every write
// recomputes the score of each bucket it touched.
type MeasurementService struct {
	measurementRepo *repository.MeasurementRepository
	scores          *ScoreService
	audit           *AuditService
}

// NewMeasurementService creates a MeasurementService
func NewMeasurementService(measurementRepo *repository.MeasurementRepository, scores *ScoreService, audit *AuditService) *MeasurementService {
	return &MeasurementService{
		measurementRepo: measurementRepo,
		scores:          scores,
		audit:           audit,
	}
}

// canModify admins may change any row, users only their own
func canModify(id dto.Identity, m *models.Measurement) bool {
	if id.IsAdmin() {
		return true
	}
	return m.EnteredBy != nil && *m.EnteredBy == id.UserID
}

// Create stores a measurement entered by the caller
func (s *MeasurementService) Create(ctx context.Context, id dto.Identity, kind scoring.Kind, req *dto.MeasurementRequest) (*dto.MeasurementWriteResponse, error) {
	if !kind.Valid() {
		return nil, scoring.ErrUnknownKind
	}
	if !validBucket(req.Month, req.Year) {
		return nil, ErrInvalidBucket
	}

	owner := id.UserID
	m := &models.Measurement{
		Value:     *req.Value,
		Month:     req.Month,
		Year:      req.Year,
		EnteredBy: &owner,
	}
	if err := s.measurementRepo.Create(ctx, kind, m); err != nil {
		return nil, fmt.Errorf("create %s measurement: %w", kind, err)
	}
	s.audit.Record(ctx, id.UserID, fmt.Sprintf("Added %s data for %d/%d", kind, m.Month, m.Year))

	scores, err := s.recompute(ctx, dto.Bucket{Month: m.Month, Year: m.Year})
	if err != nil {
		return nil, err
	}
	return &dto.MeasurementWriteResponse{Measurement: toMeasurementResponse(kind, m), Scores: scores}, nil
}

// List measurements of one kind. Mine restricts the listing to the caller's rows.
func (s *MeasurementService) List(ctx context.Context, id dto.Identity, kind scoring.Kind, query *dto.MeasurementListQuery) ([]*dto.MeasurementResponse, int64, error) {
	query.Normalize()
	filter := repository.MeasurementFilter{Month: query.Month, Year: query.Year}
	if query.Mine {
		owner := id.UserID
		filter.EnteredBy = &owner
	}

	items, total, err := s.measurementRepo.List(ctx, kind, filter, query.Offset(), query.PerPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s measurements: %w", kind, err)
	}
	resp := make([]*dto.MeasurementResponse, len(items))
	for i := range items {
		resp[i] = toMeasurementResponse(kind, &items[i])
	}
	return resp, total, nil
}

// Update changes value, month and year. When the row moves to another
// bucket both the old and the new bucket are recomputed.
func (s *MeasurementService) Update(ctx context.Context, id dto.Identity, kind scoring.Kind, measurementID uint, req *dto.MeasurementRequest) (*dto.MeasurementWriteResponse, error) {
	if !validBucket(req.Month, req.Year) {
		return nil, ErrInvalidBucket
	}
	m, err := s.load(ctx, id, kind, measurementID)
	if err != nil {
		return nil, err
	}

	old := dto.Bucket{Month: m.Month, Year: m.Year}
	m.Value, m.Month, m.Year = *req.Value, req.Month, req.Year
	if err := s.measurementRepo.Update(ctx, kind, m); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update %s measurement %d: %w", kind, measurementID, err)
	}
	s.audit.Record(ctx, id.UserID, fmt.Sprintf("Updated %s data #%d", kind, measurementID))

	buckets := []dto.Bucket{old}
	if current := (dto.Bucket{Month: m.Month, Year: m.Year}); current != old {
		buckets = append(buckets, current)
	}
	scores, err := s.recompute(ctx, buckets...)
	if err != nil {
		return nil, err
	}

	fresh, err := s.measurementRepo.GetByID(ctx, kind, measurementID)
	if err != nil {
		return nil, fmt.Errorf("reload %s measurement %d: %w", kind, measurementID, err)
	}
	return &dto.MeasurementWriteResponse{Measurement: toMeasurementResponse(kind, fresh), Scores: scores}, nil
}

// Delete removes a measurement and recomputes its bucket
func (s *MeasurementService) Delete(ctx context.Context, id dto.Identity, kind scoring.Kind, measurementID uint) (*dto.MeasurementWriteResponse, error) {
	m, err := s.load(ctx, id, kind, measurementID)
	if err != nil {
		return nil, err
	}
	if err := s.measurementRepo.Delete(ctx, kind, measurementID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete %s measurement %d: %w", kind, measurementID, err)
	}
	s.audit.Record(ctx, id.UserID, fmt.Sprintf("Deleted %s data #%d", kind, measurementID))

	scores, err := s.recompute(ctx, dto.Bucket{Month: m.Month, Year: m.Year})
	if err != nil {
		return nil, err
	}
	return &dto.MeasurementWriteResponse{Scores: scores}, nil
}

// load fetches a row and checks that the caller may modify it
func (s *MeasurementService) load(ctx context.Context, id dto.Identity, kind scoring.Kind, measurementID uint) (*models.Measurement, error) {
	m, err := s.measurementRepo.GetByID(ctx, kind, measurementID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s measurement %d: %w", kind, measurementID, err)
	}
	if !canModify(id, m) {
		return nil, ErrForbidden
	}
	return m, nil
}

func (s *MeasurementService) recompute(ctx context.Context, buckets ...dto.Bucket) ([]dto.ScoreResponse, error) {
	scores := make([]dto.ScoreResponse, 0, len(buckets))
	for _, b := range buckets {
		score, err := s.scores.Recompute(ctx, b.Month, b.Year, TriggerMeasurement)
		if err != nil {
			return nil, err
		}
		scores = append(scores, toScoreResponse(score))
	}
	return scores, nil
}
