package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"jobrec/internal/config"
	"jobrec/internal/database"
	"jobrec/internal/database/migration"
	handlers "jobrec/internal/http/handler"
	"jobrec/internal/logger"
	"jobrec/internal/otel"
	"jobrec/internal/repository/postgres"
	"jobrec/internal/server"
	"jobrec/internal/service"
	"jobrec/internal/snapshot"
	"jobrec/internal/storage"
	"jobrec/internal/webhook"
)

// @title Job Recommender Relay API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "jobrec-backend", log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	uploads, err := newUploadStorage(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize upload storage", zap.Error(err))
	}
	log.Info("upload storage ready", zap.String("backend", cfg.Upload.Backend))

	hook := webhook.New(cfg.Webhook.URL, config.Timeout(cfg.Webhook.TimeoutSec))
	if hook.URL() == "" {
		log.Warn("N8N_WEBHOOK_URL is not set; uploads will fail to trigger the workflow")
	}

	relaySvc := service.NewRelayService(uploads, hook)
	jobSvc := service.NewJobService(postgres.NewJobPostgres(db), snapshot.NewStore())

	app, err := server.New(server.Options{
		Name:      "jobrec-backend",
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
		Logger:    log,
		Registry:  prometheus.DefaultRegisterer,
	})
	if err != nil {
		log.Fatal("failed to build http server", zap.Error(err))
	}

	handlers.RegisterBackendRoutes(app, db, prometheus.DefaultGatherer, handlers.BackendServices{
		Relay:          relaySvc,
		Jobs:           jobSvc,
		UploadMaxBytes: cfg.Upload.MaxBytes,
	})

	if err := server.Run(ctx, app, ":"+cfg.BackendPort, log); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func newUploadStorage(ctx context.Context, cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Upload.Backend {
	case "local":
		return storage.NewLocal(cfg.Upload.Dir)
	case "minio":
		return storage.NewMinIO(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown UPLOAD_BACKEND %q", cfg.Upload.Backend)
	}
}
