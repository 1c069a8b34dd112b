package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/nysm/internal/config"
	"github.com/roach88/nysm/internal/integrity"
	"github.com/roach88/nysm/internal/records"
	"github.com/roach88/nysm/internal/server"
	"github.com/roach88/nysm/internal/store"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	st, err := store.New(cfg.DataDir, logger)
	if err != nil {
		return err
	}

	recordsSvc := records.NewService(st, logger)
	if err := recordsSvc.EnsureDefaultCatalog(ctx); err != nil {
		return err
	}

	overrides, err := integrity.OpenOverrides(cfg.OverridesPath())
	if err != nil {
		return err
	}
	defer overrides.Close()

	integritySvc := integrity.NewService(overrides, logger)
	if !integritySvc.Check(ctx) {
		// The server still runs; restore-feelings answers with an empty
		// baseline until the binary is replaced.
		logger.Warn("shipped baseline failed its integrity check")
	}

	logger.Info("starting nysm server",
		slog.String("version", Version),
		slog.String("data_dir", cfg.DataDir),
	)

	return server.New(cfg, logger, Version, recordsSvc, integritySvc).Run(ctx)
}

func printVersion() {
	fmt.Printf("nysm server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
