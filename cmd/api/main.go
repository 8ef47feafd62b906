package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/dcastano/warehouse-backend/api/routes"
	"github.com/dcastano/warehouse-backend/internal/inventory"
	"github.com/dcastano/warehouse-backend/internal/movements"
	"github.com/dcastano/warehouse-backend/internal/picking"
	"github.com/dcastano/warehouse-backend/internal/problems"
	"github.com/dcastano/warehouse-backend/internal/tasks"
	"github.com/dcastano/warehouse-backend/internal/waves"
	"github.com/dcastano/warehouse-backend/pkg/config"
	"github.com/dcastano/warehouse-backend/pkg/db"
	"github.com/dcastano/warehouse-backend/pkg/logger"
	"github.com/dcastano/warehouse-backend/pkg/metrics"
	"github.com/dcastano/warehouse-backend/pkg/migrate"
	pkgredis "github.com/dcastano/warehouse-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := pkgredis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mutationMetrics := metrics.NewMutationMetrics(registry)

	recorder := movements.NewRecorder()

	inventorySvc, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), dbClient, recorder, mutationMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}
	tasksSvc, err := tasks.NewService(tasks.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create putaway service", err)
		os.Exit(1)
	}
	reporter, err := problems.NewReporter(problems.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create short pick reporter", err)
		os.Exit(1)
	}
	pickingSvc, err := picking.NewService(picking.NewRepository(dbClient.DB()), dbClient, inventorySvc, recorder, reporter)
	if err != nil {
		logg.Error(context.Background(), "failed to create picking service", err)
		os.Exit(1)
	}
	wavesSvc, err := waves.NewService(waves.NewRepository(dbClient.DB()), dbClient, inventorySvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create waves service", err)
		os.Exit(1)
	}
	problemsSvc, err := problems.NewService(problems.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create problems service", err)
		os.Exit(1)
	}
	movementsSvc, err := movements.NewService(movements.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create movements service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			routes.Services{
				Inventory: inventorySvc,
				Tasks:     tasksSvc,
				Picking:   pickingSvc,
				Waves:     wavesSvc,
				Problems:  problemsSvc,
				Movements: movementsSvc,
			}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, redisClient.Close())
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down cleanly")
}
