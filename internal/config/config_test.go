package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWithDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Address)
	require.Equal(t, "/", cfg.Server.BasePath)
	require.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, SourceRemote, cfg.Catalog.Source)
	require.Equal(t, defaultEndpoint, cfg.Catalog.Endpoint)
	require.Zero(t, cfg.Catalog.FetchTimeout)
	require.Equal(t, 10, cfg.Catalog.PageSize)
	require.Equal(t, []int{5, 10, 20, 50}, cfg.Catalog.PageSizes)
	require.Equal(t, "https://wsrv.nl/", cfg.Images.Proxy)
	require.Equal(t, 100, cfg.Images.Width)
	require.Equal(t, "cover", cfg.Images.Fit)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadWithOverrides(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"CATALOG_HTTP_ADDR":         "127.0.0.1:9000",
		"CATALOG_BASE_PATH":         "/catalog",
		"CATALOG_SOURCE":            "STATIC",
		"CATALOG_PRODUCTS_ENDPOINT": "",
		"CATALOG_FETCH_TIMEOUT":     "5s",
		"CATALOG_PAGE_SIZE":         "20",
		"CATALOG_PAGE_SIZES":        "10, 20,40",
		"CATALOG_IMAGE_WIDTH":       "64",
		"LOG_LEVEL":                 "DEBUG",
	}

	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	require.Equal(t, "/catalog", cfg.Server.BasePath)
	require.Equal(t, SourceStatic, cfg.Catalog.Source)
	require.Equal(t, 5*time.Second, cfg.Catalog.FetchTimeout)
	require.Equal(t, 20, cfg.Catalog.PageSize)
	require.Equal(t, []int{10, 20, 40}, cfg.Catalog.PageSizes)
	require.Equal(t, 64, cfg.Images.Width)
	require.Equal(t, 100, cfg.Images.Height)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadReadsDotEnvWithLowestPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport CATALOG_HTTP_ADDR=:7070\nCATALOG_PAGE_SIZE=\"5\"\nCATALOG_IMAGE_FIT='contain'\nnot a pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(context.Background(),
		WithEnvFile(path),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{"CATALOG_PAGE_SIZE": "50"}),
	)
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.Address)
	require.Equal(t, 50, cfg.Catalog.PageSize)
	require.Equal(t, "contain", cfg.Images.Fit)
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), WithEnvFile(filepath.Join(t.TempDir(), "missing.env")), WithoutSystemEnv())
	require.NoError(t, err)
}

func TestLoadValidationError(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"CATALOG_SOURCE":              "ftp",
		"CATALOG_PAGE_SIZE":           "0",
		"CATALOG_PAGE_SIZES":          "5,ten",
		"CATALOG_SERVER_READ_TIMEOUT": "soon",
		"CATALOG_IMAGE_PROXY":         "not a url",
	}

	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	require.ElementsMatch(t, []string{
		"CATALOG_SERVER_READ_TIMEOUT",
		"CATALOG_PAGE_SIZES",
		"Catalog.Source",
		"Catalog.PageSize",
		"Images.Proxy",
	}, validation.Fields())
	require.Contains(t, err.Error(), "Catalog.Source")
}

func TestLoadRemoteRequiresHTTPEndpoint(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(),
		WithEnvMap(map[string]string{"CATALOG_PRODUCTS_ENDPOINT": "file:///tmp/products.json"}),
		WithoutSystemEnv(), WithEnvFile(""))
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, []string{"Catalog.Endpoint"}, validation.Fields())
}
