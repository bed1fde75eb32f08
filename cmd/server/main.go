package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadapter "placify-resume/internal/adapter/http"
	"placify-resume/internal/adapter/repository"
	"placify-resume/internal/adapter/storage"
	"placify-resume/internal/config"
	"placify-resume/internal/infrastructure/migration"
	"placify-resume/internal/usecase"
	infra "placify-resume/pkg/infrastructure"
	"placify-resume/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()
	ctx := context.Background()

	var factory httpadapter.BuilderFactory
	var experiences *httpadapter.ExperiencesHandler

	if cfg.DatabaseURL != "" {
		pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := migration.RunMigrations(ctx, pool); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		snapshots := repository.NewSnapshotsRepo(pool)
		factory = func(userID uuid.UUID) *usecase.Builder {
			return usecase.NewBuilder(snapshots.ForUser(userID))
		}
		experiences = httpadapter.NewExperiencesHandler(repository.NewExperiencesRepo(pool))
	} else {
		slog.Warn("DATABASE_URL not set: using file snapshots, experiences API disabled")
		factory = func(userID uuid.UUID) *usecase.Builder {
			path := filepath.Join(cfg.SnapshotDir, userID.String()+".json")
			return usecase.NewBuilder(storage.NewFileStore(path))
		}
	}

	exporter := usecase.NewExporter(infra.NewChromedpCapturer(cfg.CaptureWidth))

	app := fiber.New()

	metrics, err := httpadapter.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		slog.Error("metrics setup failed", "error", err)
		os.Exit(1)
	}
	app.Use(metrics.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	httpadapter.NewHandler(factory, exporter).Register(app)
	if experiences != nil {
		experiences.Register(app)
	}

	slog.Info("server listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
