package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"greenscore/internal/config"
	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/utils"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db   *gorm.DB
	cfg  *config.Config
	hook *test.Hook

	userRepo        *repository.UserRepository
	measurementRepo *repository.MeasurementRepository
	scoreRepo       *repository.ScoreRepository
	logRepo         *repository.ActivityLogRepository

	audit        *AuditService
	scores       *ScoreService
	measurements *MeasurementService
	imports      *ImportService
	reports      *ReportService
	auth         *AuthService
	users        *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := models.InitDB(config.DatabaseConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() { _ = models.CloseDB(db) })

	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{SecretKey: "test-secret", Algorithm: "HS256", ExpireMinutes: 60}
	cfg.Admin = config.AdminConfig{Username: "admin", Password: "admin123", ResetPassword: "password123"}
	cfg.Import = config.ImportConfig{MaxUploadMB: 1, MaxRows: 100}

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	env := &testEnv{
		db:              db,
		cfg:             cfg,
		hook:            hook,
		userRepo:        repository.NewUserRepository(db),
		measurementRepo: repository.NewMeasurementRepository(db),
		scoreRepo:       repository.NewScoreRepository(db),
		logRepo:         repository.NewActivityLogRepository(db),
	}
	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Algorithm, cfg.JWT.GetExpireDuration())

	env.audit = NewAuditService(env.logRepo, logger)
	env.scores = NewScoreService(env.measurementRepo, env.scoreRepo, NewLocalLocker(), env.audit, nil, logger)
	env.measurements = NewMeasurementService(env.measurementRepo, env.scores, env.audit)
	env.imports = NewImportService(env.measurementRepo, env.scores, env.audit, nil, cfg, logger)
	env.reports = NewReportService(env.scoreRepo)
	env.auth = NewAuthService(env.userRepo, jwtManager, env.audit, cfg, logger)
	env.users = NewUserService(env.userRepo, env.logRepo, env.audit, cfg)
	return env
}

// newUser stores an account and returns the matching identity
func (e *testEnv) newUser(t *testing.T, username, role string) dto.Identity {
	t.Helper()
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	u := &models.User{Username: username, PasswordHash: hash, Role: role}
	require.NoError(t, e.userRepo.Create(context.Background(), u))
	return dto.Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}

func (e *testEnv) activityCount(t *testing.T, userID uint) int64 {
	t.Helper()
	_, total, err := e.logRepo.ListByUserID(context.Background(), userID, 0, 1)
	require.NoError(t, err)
	return total
}

func floatPtr(v float64) *float64 { return &v }

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
