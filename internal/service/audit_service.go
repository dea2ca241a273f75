package service

import (
	"context"

	"greenscore/internal/models"
	"greenscore/internal/repository"

	"github.com/sirupsen/logrus"
)

// AuditService appends activity log entries. Recording is best-effort: it
// runs after the audited change has committed and never fails the caller.
type AuditService struct {
	logRepo *repository.ActivityLogRepository
	logger  *logrus.Logger
}

// NewAuditService creates an AuditService
func NewAuditService(logRepo *repository.ActivityLogRepository, logger *logrus.Logger) *AuditService {
	return &AuditService{logRepo: logRepo, logger: logger}
}

// Record appends one entry for userID
func (s *AuditService) Record(ctx context.Context, userID uint, action string) {
	entry := &models.ActivityLog{UserID: &userID, Action: action}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"action":  action,
			"error":   err,
		}).Warn("failed to write activity log")
	}
}
