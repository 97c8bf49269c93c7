package testutil

import (
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"finitefield.org/catalog-viewer/internal/catalog"
	"finitefield.org/catalog-viewer/internal/catalog/display"
	"finitefield.org/catalog-viewer/internal/httpserver"
	"finitefield.org/catalog-viewer/internal/httpserver/ui"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBasePath mounts the catalog routes under path.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithCatalog serves snapshots from reader.
func WithCatalog(reader ui.CatalogReader) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Catalog = reader
	}
}

// WithProducts serves a catalog already loaded with products.
func WithProducts(products []catalog.Product) ServerOption {
	return WithCatalog(catalog.NewLoadedStore(products))
}

// WithLogger routes server logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// WithDefaultPageSize overrides the page size used when a request names none.
func WithDefaultPageSize(size int) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.DefaultPageSize = size
	}
}

// NewServer constructs an httptest server running the catalog HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:         ":0",
		BasePath:        "/",
		Catalog:         catalog.NewLoadedStore(SampleProducts()),
		DefaultPageSize: catalog.DefaultPageSize,
		Display:         display.DefaultOptions(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httpserver.New(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
