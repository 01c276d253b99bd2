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
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/hostel-desk-api/api/swagger"
	"github.com/noah-isme/hostel-desk-api/internal/handler"
	internalmiddleware "github.com/noah-isme/hostel-desk-api/internal/middleware"
	"github.com/noah-isme/hostel-desk-api/internal/repository"
	"github.com/noah-isme/hostel-desk-api/internal/service"
	"github.com/noah-isme/hostel-desk-api/pkg/cache"
	"github.com/noah-isme/hostel-desk-api/pkg/config"
	"github.com/noah-isme/hostel-desk-api/pkg/export"
	"github.com/noah-isme/hostel-desk-api/pkg/genai"
	"github.com/noah-isme/hostel-desk-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/hostel-desk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/hostel-desk-api/pkg/middleware/requestid"
)

// @title Hostel Desk API
// @version 0.1.0
// @description Hostel rooms, complaints and advisory insights
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, continuing without cache", zap.Error(err))
	}
	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Advisory.CacheTTL, logr, cacheRepo.Enabled())

	advisoryParams := service.AdvisoryParams{
		Cache:    cacheSvc,
		Metrics:  metrics,
		Logger:   logr,
		Timeout:  cfg.Advisory.Timeout,
		CacheTTL: cfg.Advisory.CacheTTL,
	}
	if cfg.Advisory.APIKey != "" {
		client, err := genai.New(ctx, genai.Config{
			BaseURL: cfg.Advisory.BaseURL,
			Model:   cfg.Advisory.Model,
			APIKey:  cfg.Advisory.APIKey,
		})
		if err != nil {
			logr.Warn("advisory client disabled", zap.Error(err))
		} else {
			advisoryParams.Generator = client
			logr.Info("advisory client enabled", zap.String("model", client.Model()))
		}
	} else {
		logr.Info("advisory key not set, using fallbacks")
	}
	advisory := service.NewAdvisoryService(advisoryParams)

	users := repository.NewUserRepository(repository.SeedUsers())
	rooms := repository.NewRoomRepository(repository.SeedRooms())
	complaints := repository.NewComplaintRepository(repository.SeedComplaints())
	audit := repository.NewAuditRepository()
	validate := validator.New()

	insights := service.NewInsightService(service.InsightParams{
		Predictor:  advisory,
		Metrics:    metrics,
		Logger:     logr,
		Workers:    cfg.Insights.Workers,
		BufferSize: cfg.Insights.BufferSize,
	})
	insights.Start(ctx)
	defer insights.Stop()

	if snapshot, version, err := complaints.Snapshot(ctx); err == nil {
		insights.Refresh(version, snapshot)
	}

	sessions := service.NewSessionService(users, audit, validate, logr, service.SessionConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	complaintSvc := service.NewComplaintService(service.ComplaintParams{
		Store:      complaints,
		Users:      users,
		Classifier: advisory,
		Insights:   insights,
		Validator:  validate,
		Metrics:    metrics,
		Logger:     logr,
	})
	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Rooms:      rooms,
		Complaints: complaints,
		Insights:   insights,
		Advisor:    advisory,
		Validator:  validate,
		Logger:     logr,
	})
	reports := service.NewReportService(rooms, complaints, export.NewCSVExporter(), export.NewPDFExporter(), validate, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, cacheRepo)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Routes{
		Sessions:   handler.NewSessionHandler(sessions),
		Complaints: handler.NewComplaintHandler(complaintSvc),
		Dashboard:  handler.NewDashboardHandler(dashboard),
		Reports:    handler.NewReportHandler(reports),
	}.Register(r.Group(cfg.APIPrefix), internalmiddleware.JWT(sessions))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
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
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
