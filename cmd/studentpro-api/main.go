package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studentpro/studentpro-api/api/swagger"
	"github.com/studentpro/studentpro-api/internal/handler"
	"github.com/studentpro/studentpro-api/internal/middleware"
	"github.com/studentpro/studentpro-api/internal/repository"
	"github.com/studentpro/studentpro-api/internal/service"
	"github.com/studentpro/studentpro-api/pkg/cache"
	"github.com/studentpro/studentpro-api/pkg/config"
	"github.com/studentpro/studentpro-api/pkg/database"
	"github.com/studentpro/studentpro-api/pkg/logger"
	corsmiddleware "github.com/studentpro/studentpro-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studentpro/studentpro-api/pkg/middleware/requestid"
	"github.com/studentpro/studentpro-api/pkg/storage"
)

// @title StudentPro API
// @version 1.0.0
// @description Student record management: CRUD, avatar uploads, dashboard view, exports
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck
	sugar := logr.Sugar()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		sugar.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	// Redis is optional: without it the API serves straight from Postgres.
	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		sugar.Warnw("redis unavailable, caching disabled", "error", err)
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Dashboard.CacheTTL, logr, false)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	store, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		sugar.Fatalw("failed to prepare uploads directory", "dir", cfg.Uploads.Dir, "error", err)
	}

	studentRepo := repository.NewStudentRepository(db)
	validate := validator.New()

	studentSvc := service.NewStudentService(studentRepo, store, cacheSvc, validate, metricsSvc, logr, service.StudentServiceConfig{
		MaxFileSize:  cfg.Uploads.MaxFileSizeBytes,
		AllowedMIMEs: cfg.Uploads.AllowedMIMEs,
		URLPrefix:    cfg.Uploads.URLPrefix,
	})
	dashboardSvc := service.NewDashboardService(studentRepo, cacheSvc, logr, service.DashboardServiceConfig{
		CacheTTL:        cfg.Dashboard.CacheTTL,
		DefaultPageSize: cfg.Dashboard.DefaultPageSize,
	})
	exportSvc := service.NewExportService(dashboardSvc, nil, nil, logr)

	studentHandler := handler.NewStudentHandler(studentSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.Static(cfg.Uploads.URLPrefix, store.Dir())

	api := r.Group(cfg.APIPrefix)
	{
		students := api.Group("/students")
		{
			students.GET("", studentHandler.List)
			students.POST("", studentHandler.Create)

			if cfg.Dashboard.Enabled {
				students.GET("/view", dashboardHandler.View)
			}
			students.GET("/export/csv", exportHandler.CSV)
			students.GET("/export/pdf", exportHandler.PDF)
			students.GET("/summary/departments", exportHandler.Departments)

			students.GET("/:id", studentHandler.Get)
			students.PUT("/:id", studentHandler.Update)
			students.DELETE("/:id", studentHandler.Delete)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	sugar.Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		sugar.Fatalw("server failed", "error", err)
	}
}
