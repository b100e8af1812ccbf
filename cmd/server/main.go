package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-posts-api/internal/config"
	"github.com/MKhiriev/go-posts-api/internal/handler"
	"github.com/MKhiriev/go-posts-api/internal/logger"
	"github.com/MKhiriev/go-posts-api/internal/metrics"
	"github.com/MKhiriev/go-posts-api/internal/server"
	"github.com/MKhiriev/go-posts-api/internal/service"
	"github.com/MKhiriev/go-posts-api/internal/store"
	"github.com/MKhiriev/go-posts-api/internal/tracing"
	"github.com/MKhiriev/go-posts-api/models"
)

const serviceName = "go-posts-api"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewLogger(serviceName, cfg.App.LogLevel)
	log.Debug().Str("driver", cfg.Storage.DB.Driver).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	version := buildVersion
	if version == "N/A" {
		version = cfg.App.Version
	}
	build := models.NewAppBuildInfo(version, buildDate, buildCommit)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, serviceName, version)
	if err != nil {
		return fmt.Errorf("error initializing tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Error().Err(err).Msg("error flushing traces")
		}
	}()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}
	log.Info().Str("driver", db.Driver()).Msg("database migrated")

	services, err := service.NewServices(store.NewRepositories(db, log), *cfg, build, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	m := metrics.New()
	m.SetBuildInfo(build)

	handlers, err := handler.NewHandlers(ctx, services, *cfg, m, db.PingContext, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer(ctx)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
