package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/openbarpro/openbar/internal/config"
	"github.com/openbarpro/openbar/internal/http"
	"github.com/openbarpro/openbar/internal/log"
	"github.com/openbarpro/openbar/internal/repository"
	"github.com/openbarpro/openbar/internal/service"
	"github.com/openbarpro/openbar/internal/storage/kv"
	"github.com/openbarpro/openbar/pkg/cmdutil"
	"github.com/openbarpro/openbar/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running openbar: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type Config struct {
		Log     config.Log
		HTTP    config.HTTP
		Storage config.Storage
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	store, err := kv.NewBoltStore(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("error opening store: %w", err)
	}
	defer store.Close()

	catalogService := service.NewCatalogService(
		repository.NewProductRepository(store, logger),
		repository.NewPackageRepository(store, logger),
		validator.NewDefaultValidator(),
	)

	svc := http.New(cfg.HTTP, logger, catalogService)
	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}

	logger.InfoContext(ctx, "http service started",
		slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)),
		slog.String("store", cfg.Storage.Path))

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
