package service

import (
	"context"
	"fmt"

	"greenscore/internal/config"
	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/utils"
)

// UserService admin account management
type UserService struct {
	userRepo *repository.UserRepository
	logRepo  *repository.ActivityLogRepository
	audit    *AuditService
	cfg      *config.Config
}

// NewUserService creates a UserService
func NewUserService(userRepo *repository.UserRepository, logRepo *repository.ActivityLogRepository, audit *AuditService, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		logRepo:  logRepo,
		audit:    audit,
		cfg:      cfg,
	}
}

// List users with their per-kind entry and activity counts
func (s *UserService) List(ctx context.Context, query *dto.UserListQuery) ([]dto.UserSummary, int64, error) {
	query.Normalize()
	users, total, err := s.userRepo.ListWithCounts(ctx, query.Search, query.Offset(), query.PerPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	resp := make([]dto.UserSummary, len(users))
	for i, u := range users {
		resp[i] = dto.UserSummary{
			ID:            u.ID,
			Username:      u.Username,
			Role:          u.Role,
			CreatedAt:     u.CreatedAt,
			EnergyCount:   u.EnergyCount,
			WaterCount:    u.WaterCount,
			WasteCount:    u.WasteCount,
			GreeneryCount: u.GreeneryCount,
			ActivityCount: u.ActivityCount,
		}
	}
	return resp, total, nil
}

// Create adds an account. Role defaults to user.
func (s *UserService) Create(ctx context.Context, actor dto.Identity, req *dto.CreateUserRequest) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{Username: req.Username, PasswordHash: hashed, Role: role}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.audit.Record(ctx, actor.UserID, fmt.Sprintf("Added user %s", user.Username))

	info := toUserInfo(user)
	return &info, nil
}

// Delete removes an account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor dto.Identity, userID uint) error {
	if userID == actor.UserID {
		return ErrSelfDelete
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	s.audit.Record(ctx, actor.UserID, fmt.Sprintf("Deleted user %d", userID))
	return nil
}

// ResetPassword sets the configured reset password and returns it
func (s *UserService) ResetPassword(ctx context.Context, actor dto.Identity, userID uint) (*dto.ResetPasswordResponse, error) {
	hashed, err := utils.HashPassword(s.cfg.Admin.ResetPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reset password of user %d: %w", userID, err)
	}
	s.audit.Record(ctx, actor.UserID, fmt.Sprintf("Reset password for user %d", userID))
	return &dto.ResetPasswordResponse{UserID: userID, Password: s.cfg.Admin.ResetPassword}, nil
}

// Activity lists a user's audit entries, newest first
func (s *UserService) Activity(ctx context.Context, userID uint, page *dto.PageQuery) ([]dto.ActivityResponse, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("load user %d: %w", userID, err)
	}

	page.Normalize()
	logs, total, err := s.logRepo.ListByUserID(ctx, userID, page.Offset(), page.PerPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity of user %d: %w", userID, err)
	}
	resp := make([]dto.ActivityResponse, len(logs))
	for i, l := range logs {
		resp[i] = dto.ActivityResponse{ID: l.ID, Action: l.Action, Timestamp: l.CreatedAt}
	}
	return resp, total, nil
}
