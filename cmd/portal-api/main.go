package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/scholarhub-api/api/swagger"
	"github.com/noah-isme/scholarhub-api/internal/handler"
	"github.com/noah-isme/scholarhub-api/internal/repository"
	"github.com/noah-isme/scholarhub-api/internal/router"
	"github.com/noah-isme/scholarhub-api/internal/seed"
	"github.com/noah-isme/scholarhub-api/internal/service"
	"github.com/noah-isme/scholarhub-api/pkg/cache"
	"github.com/noah-isme/scholarhub-api/pkg/config"
	"github.com/noah-isme/scholarhub-api/pkg/jobs"
	"github.com/noah-isme/scholarhub-api/pkg/latency"
	"github.com/noah-isme/scholarhub-api/pkg/logger"
	"github.com/noah-isme/scholarhub-api/pkg/storage"
)

// @title ScholarHub API
// @version 1.0.0
// @description Student academic portal over an in-memory mock store
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const (
	exportQueueBuffer  = 32
	exportRetryDelay   = 2 * time.Second
	exportCleanupEvery = 10 * time.Minute
	shutdownTimeout    = 10 * time.Second
)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataset, err := loadDataset(cfg.Seed.File)
	if err != nil {
		logr.Fatal("failed to load seed data", zap.Error(err), zap.String("file", cfg.Seed.File))
	}

	metrics := service.NewMetricsService()
	store := repository.NewStore(dataset, latency.New(cfg.Latency.Multiplier), metrics)

	var (
		cacheRepo service.CacheRepository
		checks    = map[string]handler.Pinger{}
	)
	if cfg.Dashboard.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			redisRepo := repository.NewCacheRepository(client, "scholarhub", logr)
			defer redisRepo.Close() //nolint:errcheck
			cacheRepo = redisRepo
			checks["redis"] = redisRepo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, cacheRepo != nil)

	validate := service.NewValidator()
	students := service.NewStudentService(store.Students, cacheSvc, validate, logr)
	courses := service.NewCourseService(store.Courses, cacheSvc, validate, logr)
	grades := service.NewGradeService(store.Grades, cacheSvc, validate, logr)
	events := service.NewEventService(store.Events, cacheSvc, validate, logr)
	announcements := service.NewAnnouncementService(store.Announcements, cacheSvc, validate, logr)

	sessions := service.NewSessionService(students, service.SessionConfig{
		Secret:        cfg.Session.Secret,
		TTL:           cfg.Session.TTL,
		DemoStudentID: cfg.Session.DemoStudentID,
	}, validate, logr)

	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Students:      students,
		Courses:       courses,
		Announcements: announcements,
		Events:        events,
		Cache:         cacheSvc,
		Logger:        logr,
		Config:        service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	portal := service.NewPortalService(service.PortalServiceParams{
		Courses:       courses,
		Grades:        grades,
		Events:        events,
		Announcements: announcements,
		Profiles:      students,
		Logger:        logr,
	})

	exportStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare export storage", zap.Error(err), zap.String("dir", cfg.Exports.StorageDir))
	}
	exports := service.NewExportService(service.ExportServiceParams{
		Students:  students,
		Grades:    grades,
		Storage:   exportStorage,
		Signer:    storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL),
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
		Config:    service.ExportServiceConfig{APIPrefix: cfg.APIPrefix},
	})
	queue := jobs.NewQueue("transcript-exports", exports.Process, jobs.QueueConfig{
		Workers:     cfg.Exports.Workers,
		BufferSize:  exportQueueBuffer,
		MaxRetries:  cfg.Exports.Retries,
		RetryDelay:  exportRetryDelay,
		OnExhausted: exports.Fail,
		Logger:      logr,
	})
	queue.Start(ctx)
	defer queue.Stop()
	exports.AttachQueue(queue)
	go runExportCleanup(ctx, exports, logr)

	engine := router.New(router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequireSession: cfg.Session.RequireSession,
		EnableMetrics:  cfg.Metrics.Enabled,
		EnableDocs:     cfg.Env != config.EnvProduction,
	}, logr, sessions, metrics, router.Handlers{
		Students:      handler.NewStudentHandler(students),
		Courses:       handler.NewCourseHandler(courses),
		Grades:        handler.NewGradeHandler(grades),
		Events:        handler.NewEventHandler(events),
		Announcements: handler.NewAnnouncementHandler(announcements),
		Views:         handler.NewViewHandler(dashboard, portal),
		Navigation:    handler.NewNavigationHandler(),
		Sessions:      handler.NewSessionHandler(sessions, students),
		Exports:       handler.NewExportHandler(exports),
		Metrics:       handler.NewMetricsHandler(metrics, checks),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env, "latency_multiplier", cfg.Latency.Multiplier)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logr.Info("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logr.Error("could not stop server gracefully", zap.Error(err))
			_ = server.Close()
		}
	}
}

func loadDataset(path string) (seed.Dataset, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.Load(path)
}

func runExportCleanup(ctx context.Context, exports *service.ExportService, logr *zap.Logger) {
	ticker := time.NewTicker(exportCleanupEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := exports.Cleanup(ctx)
			if err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logr.Info("export cleanup removed files", zap.Int("count", removed))
			}
		}
	}
}
