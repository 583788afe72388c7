package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bmireport/adapters/excel"
	"bmireport/app"
	"bmireport/internal"
	"bmireport/internal/errors"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App represents the report web application
type App struct {
	router    *chi.Mux
	service   *app.ReportService
	writer    *excel.ReportWriter
	source    DatasetSource
	options   app.Options
	templates *template.Template
	logger    *internal.Logger
	port      string
}

// Config holds UI application configuration
type Config struct {
	Port    string
	Options app.Options
}

// NewApp creates a new UI application
func NewApp(config Config, source DatasetSource, service *app.ReportService, logger *internal.Logger) (*App, error) {
	if source == nil || service == nil {
		return nil, errors.ConfigInvalid("ui: dataset source and report service are required")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		"fixed": func(decimals int, v float64) string { return fmt.Sprintf("%.*f", decimals, v) },
		"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		service:   service,
		writer:    excel.NewReportWriter(),
		source:    source,
		options:   config.Options,
		templates: templates,
		logger:    logger,
		port:      config.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Get("/report", a.handleReport)
		r.Get("/data", a.handleData)
		r.Get("/grid", a.handleGrid)
		r.Get("/thresholds", a.handleThresholds)
		r.Get("/charts/{name}", a.handleChart)
		r.Get("/export.xlsx", a.handleExport)
	})
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("Starting BMI report server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// renderTemplate executes a named template
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
