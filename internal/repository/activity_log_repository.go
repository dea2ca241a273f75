package repository

import (
	"context"

	"greenscore/internal/models"

	"gorm.io/gorm"
)

// ActivityLogRepository data access for activity_logs
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates an ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create appends a log record
func (r *ActivityLogRepository) Create(ctx context.Context, log *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByUserID lists a user's activity, newest first
func (r *ActivityLogRepository) ListByUserID(ctx context.Context, userID uint, offset, limit int) ([]models.ActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ActivityLog
	err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, total, err
}
