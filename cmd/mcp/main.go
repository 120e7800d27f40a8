package main

import (
	"context"
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
	"jobrec/internal/llm/gemini"
	"jobrec/internal/logger"
	"jobrec/internal/notify"
	"jobrec/internal/otel"
	"jobrec/internal/repository/postgres"
	"jobrec/internal/server"
	"jobrec/internal/service"
	"jobrec/internal/structurer"
	"jobrec/internal/webhook"
)

// @title Job Recommender Analysis API
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

	shutdownTracing, err := otel.Init(ctx, "jobrec-mcp", log)
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

	gen, err := gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, config.Timeout(cfg.Gemini.TimeoutSec), log)
	if err != nil {
		log.Fatal("failed to initialize model client", zap.Error(err))
	}

	hook := webhook.New(cfg.Webhook.URL, config.Timeout(cfg.Webhook.TimeoutSec))
	if hook.URL() == "" {
		log.Warn("N8N_WEBHOOK_URL is not set; notifications will fail")
	}

	dispatcher, err := notify.NewDispatcher(hook, log, prometheus.DefaultRegisterer, config.Timeout(cfg.Webhook.TimeoutSec))
	if err != nil {
		log.Fatal("failed to register notification metrics", zap.Error(err))
	}

	analysisSvc := service.NewAnalysisService(structurer.New(gen), dispatcher, cfg.Notify.RapidAPIKey)
	jobSvc := service.NewJobService(postgres.NewJobPostgres(db), nil)

	app, err := server.New(server.Options{
		Name:      "jobrec-mcp",
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
		Logger:    log,
		Registry:  prometheus.DefaultRegisterer,
	})
	if err != nil {
		log.Fatal("failed to build http server", zap.Error(err))
	}

	handlers.RegisterMCPRoutes(app, db, prometheus.DefaultGatherer, handlers.MCPServices{
		Analysis: analysisSvc,
		Jobs:     jobSvc,
		Analyze: handlers.AnalyzeOptions{
			DefaultIdentity: cfg.Notify.DefaultIdentity,
			MaxBytes:        cfg.Upload.MaxBytes,
		},
	})

	if err := server.Run(ctx, app, ":"+cfg.MCPPort, log); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
