package repository

import (
	"context"

	"greenscore/internal/models"

	"gorm.io/gorm"
)

// ScoreRepository data access for sustainability_scores
type ScoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository creates a ScoreRepository
func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Replace deletes any score of the bucket and inserts score, atomically.
func (r *ScoreRepository) Replace(ctx context.Context, score *models.Score) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("month = ? AND year = ?", score.Month, score.Year).Delete(&models.Score{}).Error; err != nil {
			return err
		}
		score.ID = 0
		return tx.Create(score).Error
	})
}

// GetByBucket returns the score of a bucket
func (r *ScoreRepository) GetByBucket(ctx context.Context, month, year int) (*models.Score, error) {
	var score models.Score
	err := r.db.WithContext(ctx).Where("month = ? AND year = ?", month, year).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// CountByBucket counts score rows of a bucket
func (r *ScoreRepository) CountByBucket(ctx context.Context, month, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Score{}).Where("month = ? AND year = ?", month, year).Count(&count).Error
	return count, err
}

// List returns scores ordered by year then month, optionally for one year.
func (r *ScoreRepository) List(ctx context.Context, year *int) ([]models.Score, error) {
	q := r.db.WithContext(ctx).Model(&models.Score{})
	if year != nil {
		q = q.Where("year = ?", *year)
	}
	var scores []models.Score
	err := q.Order("year ASC, month ASC").Find(&scores).Error
	return scores, err
}
