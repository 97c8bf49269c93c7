package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/catalog-viewer/internal/catalog/display"
	custommw "finitefield.org/catalog-viewer/internal/httpserver/middleware"
	"finitefield.org/catalog-viewer/internal/httpserver/ui"
	"finitefield.org/catalog-viewer/internal/observability"
	"finitefield.org/catalog-viewer/public"
)

// Config holds runtime options for the catalog HTTP server.
type Config struct {
	Address         string
	BasePath        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	Logger          *zap.Logger
	Catalog         ui.CatalogReader
	DefaultPageSize int
	Display         display.Options
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLogger(logger))
	router.Use(observability.RequestLogger())
	router.Use(observability.Recoverer())
	router.Use(chimw.Timeout(60 * time.Second))

	staticContent, err := public.StaticFS()
	if err != nil {
		logger.Fatal("embed static", zap.Error(err))
	}
	router.With(custommw.StaticCache("3600")).
		Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))

	handlers := ui.NewHandlers(ui.Dependencies{
		Catalog:         cfg.Catalog,
		BasePath:        normalizeBasePath(cfg.BasePath),
		DefaultPageSize: cfg.DefaultPageSize,
		Display:         cfg.Display,
	})
	router.Get("/healthz", handlers.Healthz)
	mountCatalogRoutes(router, normalizeBasePath(cfg.BasePath), handlers)

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}
}

func mountCatalogRoutes(router chi.Router, base string, handlers *ui.Handlers) {
	if base != "/" {
		router.With(custommw.HTMX(), custommw.NoStore()).Get(base, handlers.CatalogPage)
	}

	router.Route(base, func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())

		r.Get("/", handlers.CatalogPage)
		RegisterFragment(r, "/table", handlers.CatalogTable)
	})
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}
