package router

import (
	"net/http"

	"greenscore/internal/config"
	"greenscore/internal/handler"
	"greenscore/internal/middleware"
	"greenscore/internal/repository"
	"greenscore/internal/service"
	"greenscore/internal/utils"
	"greenscore/pkg/metrics"
	"greenscore/pkg/redis_lock"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Version reported by GET /
var Version = "dev"

// SetupRouter wires repositories, services and handlers onto a gin engine.
// redisClient may be nil, in which case bucket locks are process local.
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) *gin.Engine {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.Import.GetMaxUploadBytes()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
		r.Use(m.Middleware())
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Campus Sustainability Score API",
			"version": Version,
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		utils.SuccessResponse(c, gin.H{"status": "ok"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	userRepo := repository.NewUserRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	logRepo := repository.NewActivityLogRepository(db)

	var locker service.BucketLocker = service.NewLocalLocker()
	if redisClient != nil {
		locker = service.NewRedisLocker(redis_lock.NewRedisLock(redisClient, "greenscore:lock:", cfg.Redis.GetLockTTL()), logger)
	}

	auditService := service.NewAuditService(logRepo, logger)
	authService := service.NewAuthService(userRepo, jwtManager, auditService, cfg, logger)
	scoreService := service.NewScoreService(measurementRepo, scoreRepo, locker, auditService, m, logger)
	measurementService := service.NewMeasurementService(measurementRepo, scoreService, auditService)
	importService := service.NewImportService(measurementRepo, scoreService, auditService, m, cfg, logger)
	reportService := service.NewReportService(scoreRepo)
	userService := service.NewUserService(userRepo, logRepo, auditService, cfg)

	authHandler := handler.NewAuthHandler(authService)
	measurementHandler := handler.NewMeasurementHandler(measurementService)
	scoreHandler := handler.NewScoreHandler(scoreService)
	importHandler := handler.NewImportHandler(importService, cfg)
	reportHandler := handler.NewReportHandler(reportService)
	adminHandler := handler.NewAdminHandler(userService)

	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(jwtManager), middleware.ActiveUserMiddleware(userRepo))
		{
			authorized.GET("/me", authHandler.GetMe)
			authorized.POST("/logout", authHandler.Logout)

			// measurements
			authorized.GET("/measurements/:kind", measurementHandler.List)
			authorized.POST("/measurements/:kind", measurementHandler.Create)
			authorized.PUT("/measurements/:kind/:id", measurementHandler.Update)
			authorized.DELETE("/measurements/:kind/:id", measurementHandler.Delete)

			// scores
			authorized.POST("/scores/calculate/:month/:year", scoreHandler.Calculate)
			authorized.GET("/scores", scoreHandler.List)
			authorized.GET("/dashboard", scoreHandler.Dashboard)

			authorized.GET("/reports/:year", reportHandler.Download)
			authorized.GET("/import/template", importHandler.Template)
			authorized.POST("/import", middleware.AdminMiddleware(), importHandler.Import)

			adminGroup := authorized.Group("/admin")
			adminGroup.Use(middleware.AdminMiddleware())
			{
				adminGroup.GET("/users", adminHandler.ListUsers)
				adminGroup.POST("/users", adminHandler.CreateUser)
				adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
				adminGroup.POST("/users/:id/reset_password", adminHandler.ResetPassword)
				adminGroup.GET("/users/:id/activity", adminHandler.UserActivity)
			}
		}
	}

	return r
}
