package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greenscore/internal/config"
	"greenscore/internal/models"
	"greenscore/internal/repository"
	"greenscore/internal/router"
	"greenscore/internal/service"
	"greenscore/internal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	version    = "dev"
	configPath string

	rootCmd = &cobra.Command{
		Use:   "greenscore",
		Short: "Campus sustainability scoring service",
		RunE:  runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create the schema and the first admin account",
		RunE:  runInit,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("greenscore", version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "conf", "c", "./config/config.yaml", "path to configuration file")
	rootCmd.AddCommand(serveCmd, initCmd, versionCmd)
}

// bootstrap loads configuration, builds the logger and opens a migrated database
func bootstrap() (*config.Config, *logrus.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := models.InitDB(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := models.AutoMigrate(db); err != nil {
		_ = models.CloseDB(db)
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}

func initAdmin(ctx context.Context, cfg *config.Config, logger *logrus.Logger, db *gorm.DB, jwtManager *utils.JWTManager) error {
	logRepo := repository.NewActivityLogRepository(db)
	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		jwtManager,
		service.NewAuditService(logRepo, logger),
		cfg,
		logger,
	)
	created, err := authService.InitAdmin(ctx)
	if err != nil {
		return err
	}
	if !created {
		logger.Info("admin account already present")
	}
	return nil
}

func newJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Algorithm, cfg.JWT.GetExpireDuration())
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer models.CloseDB(db)

	if err := initAdmin(cmd.Context(), cfg, logger, db, newJWTManager(cfg)); err != nil {
		return err
	}
	logger.WithField("database", cfg.Database.Type).Info("database initialised")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer models.CloseDB(db)

	if err := utils.InitValidator(); err != nil {
		return err
	}

	jwtManager := newJWTManager(cfg)
	if err := initAdmin(cmd.Context(), cfg, logger, db, jwtManager); err != nil {
		logger.WithError(err).Warn("admin initialisation failed")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddress(),
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("connect redis %s: %w", cfg.Redis.GetAddress(), err)
		}
		logger.WithField("addr", cfg.Redis.GetAddress()).Info("using redis bucket locks")
	}

	router.Version = version
	srv := &http.Server{
		Addr:              cfg.Server.GetAddress(),
		Handler:           router.SetupRouter(cfg, jwtManager, logger, db, redisClient),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("greenscore exited")
		os.Exit(1)
	}
}
