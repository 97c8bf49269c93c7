package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/catalog-viewer/internal/catalog"
	"finitefield.org/catalog-viewer/internal/catalog/display"
	"finitefield.org/catalog-viewer/internal/config"
	"finitefield.org/catalog-viewer/internal/productsapi"
)

type rootFlags struct {
	envFile  string
	addr     string
	basePath string
	source   string
	endpoint string
	logLevel string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse, search and sort the product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file with configuration defaults (empty to skip)")
	pf.StringVar(&flags.addr, "addr", "", "listen address (overrides CATALOG_HTTP_ADDR)")
	pf.StringVar(&flags.basePath, "base-path", "", "path the catalog is mounted under (overrides CATALOG_BASE_PATH)")
	pf.StringVar(&flags.source, "source", "", "product source: remote or static (overrides CATALOG_SOURCE)")
	pf.StringVar(&flags.endpoint, "endpoint", "", "products API endpoint (overrides CATALOG_PRODUCTS_ENDPOINT)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(newServeCommand(flags), newBrowseCommand(flags))
	return root
}

// loadConfig resolves configuration with command-line flags taking precedence.
func loadConfig(ctx context.Context, flags *rootFlags, opts ...config.Option) (config.Config, error) {
	overrides := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			overrides[key] = value
		}
	}
	set("CATALOG_HTTP_ADDR", flags.addr)
	set("CATALOG_BASE_PATH", flags.basePath)
	set("CATALOG_SOURCE", flags.source)
	set("CATALOG_PRODUCTS_ENDPOINT", flags.endpoint)
	set("LOG_LEVEL", flags.logLevel)

	opts = append([]config.Option{config.WithEnvFile(flags.envFile)}, opts...)
	opts = append(opts, config.WithEnvMap(overrides))
	return config.Load(ctx, opts...)
}

// newSource picks the product source named by cfg. Remote fetches report progress on
// indicator.
func newSource(cfg config.Config, indicator productsapi.Indicator, logger *zap.Logger) (catalog.Source, error) {
	if cfg.Catalog.Source == config.SourceStatic {
		return productsapi.NewStaticSource(), nil
	}
	return productsapi.NewClient(cfg.Catalog.Endpoint,
		productsapi.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.FetchTimeout}),
		productsapi.WithLogger(logger.Named("productsapi")),
		productsapi.WithIndicator(indicator),
	)
}

func displayOptions(cfg config.Config) display.Options {
	opts := display.DefaultOptions()
	opts.Resolver = catalog.ImageResolver{
		Placeholder: cfg.Images.Placeholder,
		ProxyBase:   cfg.Images.Proxy,
		Width:       cfg.Images.Width,
		Height:      cfg.Images.Height,
		Fit:         cfg.Images.Fit,
	}
	if len(cfg.Catalog.PageSizes) > 0 {
		opts.PageSizes = cfg.Catalog.PageSizes
	}
	return opts
}
