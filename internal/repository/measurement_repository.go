package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"greenscore/internal/models"
	"greenscore/internal/scoring"

	"gorm.io/gorm"
)

// MeasurementFilter narrows a listing to a bucket or part of one.
type MeasurementFilter struct {
	Month     int
	Year      int
	EnteredBy *uint
}

// MeasurementRepository data access for the four metric tables
type MeasurementRepository struct {
	db *gorm.DB
}

// NewMeasurementRepository creates a MeasurementRepository
func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// table scopes a query to the kind's table, rejecting unknown kinds.
func (r *MeasurementRepository) table(ctx context.Context, kind scoring.Kind) (*gorm.DB, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", scoring.ErrUnknownKind, kind)
	}
	return r.db.WithContext(ctx).Table(kind.Table()), nil
}

// Transaction runs fn with a repository bound to a single transaction.
func (r *MeasurementRepository) Transaction(ctx context.Context, fn func(tx *MeasurementRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MeasurementRepository{db: tx})
	})
}

// Create inserts a measurement
func (r *MeasurementRepository) Create(ctx context.Context, kind scoring.Kind, m *models.Measurement) error {
	q, err := r.table(ctx, kind)
	if err != nil {
		return err
	}
	return q.Create(m).Error
}

// GetByID finds a measurement by id
func (r *MeasurementRepository) GetByID(ctx context.Context, kind scoring.Kind, id uint) (*models.Measurement, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}
	var m models.Measurement
	if err := q.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Update saves value, month and year of an existing measurement
func (r *MeasurementRepository) Update(ctx context.Context, kind scoring.Kind, m *models.Measurement) error {
	q, err := r.table(ctx, kind)
	if err != nil {
		return err
	}
	res := q.Where("id = ?", m.ID).Updates(map[string]interface{}{
		"value":      m.Value,
		"month":      m.Month,
		"year":       m.Year,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a measurement
func (r *MeasurementRepository) Delete(ctx context.Context, kind scoring.Kind, id uint) error {
	q, err := r.table(ctx, kind)
	if err != nil {
		return err
	}
	res := q.Where("id = ?", id).Delete(&models.Measurement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns measurements of a kind, newest bucket first
func (r *MeasurementRepository) List(ctx context.Context, kind scoring.Kind, f MeasurementFilter, offset, limit int) ([]models.Measurement, int64, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, 0, err
	}
	if f.Month > 0 {
		q = q.Where("month = ?", f.Month)
	}
	if f.Year > 0 {
		q = q.Where("year = ?", f.Year)
	}
	if f.EnteredBy != nil {
		q = q.Where("entered_by = ?", *f.EnteredBy)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Measurement
	err = q.Order("year DESC, month DESC, id DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// Average is the mean value of a kind within a bucket, zero when the bucket
// holds no rows of that kind.
func (r *MeasurementRepository) Average(ctx context.Context, kind scoring.Kind, month, year int) (float64, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return 0, err
	}
	var avg sql.NullFloat64
	row := q.Select("AVG(value)").Where("month = ? AND year = ?", month, year).Row()
	if err := row.Scan(&avg); err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// Averages collects the averages of all four kinds for a bucket.
func (r *MeasurementRepository) Averages(ctx context.Context, month, year int) (scoring.Averages, error) {
	var avg scoring.Averages
	targets := map[scoring.Kind]*float64{
		scoring.Energy:   &avg.Energy,
		scoring.Water:    &avg.Water,
		scoring.Waste:    &avg.Waste,
		scoring.Greenery: &avg.Greenery,
	}
	for _, kind := range scoring.Kinds {
		v, err := r.Average(ctx, kind, month, year)
		if err != nil {
			return scoring.Averages{}, fmt.Errorf("average %s: %w", kind, err)
		}
		*targets[kind] = v
	}
	return avg, nil
}
