package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile          = ".env"
	defaultHTTPAddr         = ":8080"
	defaultBasePath         = "/"
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 30 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultEndpoint         = "https://api.escuelajs.co/api/v1/products"
	defaultPageSize         = 10
	defaultImageProxy       = "https://wsrv.nl/"
	defaultImagePlaceholder = "https://placehold.co/100x100?text=No+Image"
	defaultImageSize        = 100
	defaultImageFit         = "cover"
	defaultLogLevel         = "info"
)

// Source kinds accepted by CATALOG_SOURCE.
const (
	SourceRemote = "remote"
	SourceStatic = "static"
)

var defaultPageSizes = []int{5, 10, 20, 50}

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Images  ImageConfig
	Log     LogConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address      string
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// CatalogConfig controls where products come from and how they are paged.
type CatalogConfig struct {
	Source       string
	Endpoint     string
	FetchTimeout time.Duration
	PageSize     int
	PageSizes    []int
}

// ImageConfig configures the thumbnail proxy.
type ImageConfig struct {
	Proxy       string
	Placeholder string
	Width       int
	Height      int
	Fit         string
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises configuration loading.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile reads additional values from path. An empty path disables the file.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap supplies explicit values taking precedence over every other source.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves configuration from defaults, the .env file, the process environment and
// explicit overrides, in increasing order of precedence.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	var invalid []string
	duration := func(key string, fallback time.Duration) time.Duration {
		d, ok := durationWithDefault(lookup, key, fallback)
		if !ok {
			invalid = append(invalid, key)
		}
		return d
	}
	integer := func(key string, fallback int) int {
		n, ok := intWithDefault(lookup, key, fallback)
		if !ok {
			invalid = append(invalid, key)
		}
		return n
	}

	cfg := Config{
		Server: ServerConfig{
			Address:      stringWithDefault(lookup, "CATALOG_HTTP_ADDR", defaultHTTPAddr),
			BasePath:     stringWithDefault(lookup, "CATALOG_BASE_PATH", defaultBasePath),
			ReadTimeout:  duration("CATALOG_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: duration("CATALOG_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  duration("CATALOG_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Catalog: CatalogConfig{
			Source:       strings.ToLower(stringWithDefault(lookup, "CATALOG_SOURCE", SourceRemote)),
			Endpoint:     stringWithDefault(lookup, "CATALOG_PRODUCTS_ENDPOINT", defaultEndpoint),
			FetchTimeout: duration("CATALOG_FETCH_TIMEOUT", 0),
			PageSize:     integer("CATALOG_PAGE_SIZE", defaultPageSize),
		},
		Images: ImageConfig{
			Proxy:       stringWithDefault(lookup, "CATALOG_IMAGE_PROXY", defaultImageProxy),
			Placeholder: stringWithDefault(lookup, "CATALOG_IMAGE_PLACEHOLDER", defaultImagePlaceholder),
			Width:       integer("CATALOG_IMAGE_WIDTH", defaultImageSize),
			Height:      integer("CATALOG_IMAGE_HEIGHT", defaultImageSize),
			Fit:         stringWithDefault(lookup, "CATALOG_IMAGE_FIT", defaultImageFit),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		},
	}

	sizes, ok := intListWithDefault(lookup, "CATALOG_PAGE_SIZES", defaultPageSizes)
	if !ok {
		invalid = append(invalid, "CATALOG_PAGE_SIZES")
	}
	cfg.Catalog.PageSizes = sizes

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	fields := append([]string(nil), invalid...)

	if strings.TrimSpace(cfg.Server.Address) == "" {
		fields = append(fields, "Server.Address")
	}
	if cfg.Server.ReadTimeout <= 0 {
		fields = append(fields, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		fields = append(fields, "Server.WriteTimeout")
	}
	if cfg.Catalog.FetchTimeout < 0 {
		fields = append(fields, "Catalog.FetchTimeout")
	}
	switch cfg.Catalog.Source {
	case SourceRemote:
		if !isHTTPURL(cfg.Catalog.Endpoint) {
			fields = append(fields, "Catalog.Endpoint")
		}
	case SourceStatic:
	default:
		fields = append(fields, "Catalog.Source")
	}
	if cfg.Catalog.PageSize <= 0 {
		fields = append(fields, "Catalog.PageSize")
	}
	if !isHTTPURL(cfg.Images.Proxy) {
		fields = append(fields, "Images.Proxy")
	}
	if cfg.Images.Width <= 0 {
		fields = append(fields, "Images.Width")
	}
	if cfg.Images.Height <= 0 {
		fields = append(fields, "Images.Height")
	}

	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) (time.Duration, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback, false
	}
	return d, true
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) (int, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback, false
	}
	return parsed, true
}

func intListWithDefault(lookup func(string) (string, bool), key string, fallback []int) ([]int, bool) {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return append([]int(nil), fallback...), true
	}
	out := make([]int, 0, 4)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return append([]int(nil), fallback...), false
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return append([]int(nil), fallback...), true
	}
	return out, true
}
