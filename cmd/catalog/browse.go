package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/catalog-viewer/internal/catalog"
	"finitefield.org/catalog-viewer/internal/observability"
	"finitefield.org/catalog-viewer/internal/tui"
)

func newBrowseCommand(flags *rootFlags) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd.Context(), flags, logFile)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file; the terminal UI discards them otherwise")
	return cmd
}

func runBrowse(parent context.Context, flags *rootFlags, logFile string) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if logFile != "" {
		logger, err = observability.NewLoggerTo(cfg.Log.Level, logFile)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	store := catalog.NewStore(logger.Named("catalog"))
	source, err := newSource(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("products source: %w", err)
	}

	model := tui.New(tui.Options{
		Context:  ctx,
		Source:   source,
		Store:    store,
		Display:  displayOptions(cfg),
		PageSize: cfg.Catalog.PageSize,
		Logger:   logger.Named("tui"),
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
