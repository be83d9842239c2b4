package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/scolara/scolara-api/api/swagger"
	"github.com/scolara/scolara-api/internal/handler"
	"github.com/scolara/scolara-api/internal/middleware"
	"github.com/scolara/scolara-api/internal/models"
	"github.com/scolara/scolara-api/internal/repository"
	"github.com/scolara/scolara-api/internal/seed"
	"github.com/scolara/scolara-api/internal/service"
	"github.com/scolara/scolara-api/internal/store"
	"github.com/scolara/scolara-api/pkg/cache"
	"github.com/scolara/scolara-api/pkg/config"
	"github.com/scolara/scolara-api/pkg/database"
	"github.com/scolara/scolara-api/pkg/jobs"
	"github.com/scolara/scolara-api/pkg/logger"
	"github.com/scolara/scolara-api/pkg/mail"
	corsmiddleware "github.com/scolara/scolara-api/pkg/middleware/cors"
	reqidmiddleware "github.com/scolara/scolara-api/pkg/middleware/requestid"
	"github.com/scolara/scolara-api/pkg/storage"
)

// @title Scolara API
// @version 1.0.0
// @description Multi-tenant school management platform
// @BasePath /api/v1
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Sugar().Fatalw("schema bootstrap failed", "error", err)
	}

	schoolRepo := repository.NewSchoolRepository(db)

	st := store.New(schoolRepo, logr)
	var bootstrap []models.SchoolData
	if cfg.Platform.SeedOnEmpty {
		count, err := schoolRepo.Count(ctx)
		if err != nil {
			logr.Sugar().Fatalw("counting tenants failed", "error", err)
		}
		if count == 0 {
			bootstrap = seed.Schools(cfg.Platform.HomeTenantID)
		}
	}
	if err := st.Load(ctx, bootstrap); err != nil {
		logr.Sugar().Fatalw("loading tenant mirror failed", "error", err)
	}

	metricsSvc := service.NewMetricsService()
	st.SetObserver(metricsSvc)

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled")
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Dashboard.CacheTTL, logr, false)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	var sender mail.Sender
	if cfg.Mail.SendgridKey != "" {
		sender = mail.NewSendgridSender(cfg.Mail, logr)
	} else {
		sender = mail.NewConsoleSender(logr)
	}

	academicsSvc := service.NewAcademicsService(st, nil, logr)
	financeSvc := service.NewFinanceService(st, nil, logr)
	attendanceSvc := service.NewAttendanceService(st, logr)
	admissionSvc := service.NewAdmissionService(st, logr)
	communitySvc := service.NewCommunityService(st, logr)
	leaderboardSvc := service.NewLeaderboardService(st, cfg.Dashboard.LeaderboardTop, logr)
	rollupSvc := service.NewRollupService(st, cfg.Platform.HomeTenantID, logr)
	provisioningSvc := service.NewProvisioningService(st, sender, nil, logr)
	dashboardSvc := service.NewDashboardService(st, cacheSvc, logr)

	var insightsClient service.InsightsClient
	if cfg.Insights.Enabled {
		insightsClient = service.NewHTTPInsightsClient(cfg.Insights.BaseURL, cfg.Insights.APIKey, cfg.Insights.Timeout)
	}
	insightsSvc := service.NewInsightsService(st, insightsClient, cfg.Insights.Enabled, logr)

	var reportSvc *service.ReportService
	var reportQueue *jobs.Queue
	if cfg.Reports.Enabled {
		localStorage, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("report storage init failed", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
		reportSvc = service.NewReportService(academicsSvc, financeSvc, localStorage, signer, nil, logr)
		reportQueue = jobs.NewQueue("reports", reportSvc.Process, jobs.QueueConfig{
			Workers:    cfg.Reports.WorkerConcurrency,
			MaxRetries: cfg.Reports.WorkerRetries,
			Logger:     logr,
		})
		reportQueue.Start(ctx)
		defer reportQueue.Stop()
		reportSvc.SetQueue(reportQueue)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := handler.Handlers{
		Academics:   handler.NewAcademicsHandler(academicsSvc),
		Attendance:  handler.NewAttendanceHandler(attendanceSvc),
		Finance:     handler.NewFinanceHandler(financeSvc),
		Admissions:  handler.NewAdmissionHandler(admissionSvc),
		Community:   handler.NewCommunityHandler(communitySvc),
		Dashboard:   handler.NewDashboardHandler(dashboardSvc),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardSvc),
		Insights:    handler.NewInsightsHandler(insightsSvc),
		Platform:    handler.NewPlatformHandler(provisioningSvc, rollupSvc),
		Metrics:     handler.NewMetricsHandler(metricsSvc),
	}
	if reportSvc != nil {
		handlers.Reports = handler.NewReportHandler(reportSvc)
	}
	handler.RegisterRoutes(r, cfg, st, cacheSvc, handlers)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
