package service

import (
	"context"
	"fmt"
	"strings"

	"greenscore/internal/config"
	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/utils"

	"github.com/sirupsen/logrus"
)

// AuthService login, logout and first-admin provisioning
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	audit      *AuditService
	cfg        *config.Config
	logger     *logrus.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(userRepo *repository.UserRepository, jwtManager *utils.JWTManager, audit *AuditService, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		audit:      audit,
		cfg:        cfg,
		logger:     logger,
	}
}

// Login checks credentials and issues a token. A legacy SHA-256 digest is
// accepted once and replaced with a bcrypt hash.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if utils.IsLegacyHash(user.PasswordHash) {
		if !utils.CheckLegacyPassword(req.Password, user.PasswordHash) {
			return nil, ErrInvalidCredentials
		}
		s.upgradeHash(ctx, user, req.Password)
	} else if err := utils.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	s.audit.Record(ctx, user.ID, "Logged in")

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.jwtManager.ExpiresIn(),
		User:        toUserInfo(user),
	}, nil
}

func (s *AuthService) upgradeHash(ctx context.Context, user *models.User, password string) {
	hashed, err := utils.HashPassword(password)
	if err == nil {
		err = s.userRepo.UpdatePassword(ctx, user.ID, hashed)
	}
	if err != nil {
		s.logger.WithFields(logrus.Fields{"user_id": user.ID, "error": err}).Warn("failed to upgrade legacy password hash")
		return
	}
	user.PasswordHash = hashed
	s.logger.WithField("user_id", user.ID).Info("legacy password hash upgraded")
}

// Logout records the logout. Tokens are stateless and simply expire.
func (s *AuthService) Logout(ctx context.Context, id dto.Identity) {
	s.audit.Record(ctx, id.UserID, "Logged out")
}

// GetMe returns the caller's account
func (s *AuthService) GetMe(ctx context.Context, id dto.Identity) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	info := toUserInfo(user)
	return &info, nil
}

// InitAdmin creates the configured admin account unless an admin already
// exists. created reports whether an account was written.
func (s *AuthService) InitAdmin(ctx context.Context) (created bool, err error) {
	_, err = s.userRepo.GetAdmin(ctx)
	if err == nil {
		return false, nil
	}
	if !repository.IsNotFound(err) {
		return false, fmt.Errorf("look up admin: %w", err)
	}

	// the configured password may already be a bcrypt hash
	passwordHash := s.cfg.Admin.Password
	if !strings.HasPrefix(passwordHash, "$2a$") && !strings.HasPrefix(passwordHash, "$2b$") {
		passwordHash, err = utils.HashPassword(s.cfg.Admin.Password)
		if err != nil {
			return false, fmt.Errorf("hash admin password: %w", err)
		}
	}

	user := &models.User{
		Username:     s.cfg.Admin.Username,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	s.logger.WithField("username", user.Username).Info("admin account created")
	return true, nil
}
