package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"

	"jobrec/docs"
	"jobrec/internal/http/middleware"
	"jobrec/internal/service"
)

// MCPServices are the services behind the analysis routes.
type MCPServices struct {
	Analysis service.AnalysisService
	Jobs     service.JobService
	Analyze  AnalyzeOptions
}

// BackendServices are the services behind the relay routes.
type BackendServices struct {
	Relay          service.RelayService
	Jobs           service.JobService
	UploadMaxBytes int64
}

// RegisterMCPRoutes attaches the analysis service routes.
func RegisterMCPRoutes(app *fiber.App, db *sql.DB, g prometheus.Gatherer, s MCPServices) {
	registerCommon(app, db, g)

	app.Post("/analyze_resume", AnalyzeResume(s.Analysis, s.Analyze))
	app.Post("/store_jobs", StoreJobs(s.Jobs))
}

// RegisterBackendRoutes attaches the relay service routes.
func RegisterBackendRoutes(app *fiber.App, db *sql.DB, g prometheus.Gatherer, s BackendServices) {
	registerCommon(app, db, g)

	app.Post("/upload_resume", UploadResume(s.Relay, s.UploadMaxBytes))
	app.Post("/save_jobs", SaveJobs(s.Jobs))
	app.Get("/get_latest_jobs", GetLatestJobs(s.Jobs))
}

func registerCommon(app *fiber.App, db *sql.DB, g prometheus.Gatherer) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	if g != nil {
		app.Get(middleware.MetricsPath, Metrics(g))
	}
	app.Get("/swagger/*", Swagger())
}

// Swagger serves the UI with the host and scheme of the incoming request.
func Swagger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
