package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/99minutos/tracking-aggregator/internal/api"
	"github.com/99minutos/tracking-aggregator/internal/api/handler"
	"github.com/99minutos/tracking-aggregator/internal/core/service"
	"github.com/99minutos/tracking-aggregator/internal/infrastructure/db/mongo"
	"github.com/99minutos/tracking-aggregator/internal/infrastructure/db/redis"
	"github.com/99minutos/tracking-aggregator/internal/infrastructure/queue"
	"github.com/99minutos/tracking-aggregator/internal/infrastructure/trackingmore"
	"github.com/99minutos/tracking-aggregator/internal/pkg/config"
	"github.com/99minutos/tracking-aggregator/pkg/logger"
)

const (
	serviceName     = "tracking-aggregator"
	shutdownTimeout = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}

	lookups := mongo.NewLookupRepository(db)
	if err := lookups.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure lookup indexes")
	}

	// --- Provider and services ---
	provider, err := trackingmore.New(cfg.TrackingMore.APIKey, cfg.TrackingMore.BaseURL,
		trackingmore.WithTimeout(cfg.TrackingMore.Timeout),
		trackingmore.WithLogger(logger.Component("trackingmore")),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("trackingmore client")
	}

	trackingService := service.NewTrackingService(provider, lookups, logger.Component("tracking"))
	courierService := service.NewCourierService(provider, redis.NewCourierCache(rdb), cfg.CourierCacheTTL, logger.Component("couriers"))
	refreshService := service.NewRefreshService(trackingService, redis.NewRefreshGuard(rdb, cfg.Refresh.Cooldown), logger.Component("refresh"))

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Refresh.Workers, refreshService, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Tracking:   trackingService,
		Couriers:   courierService,
		Lookups:    lookups,
		Dispatcher: dispatcher,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		JWTSecret: cfg.JWTSecret,
		Log:       logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Bool("operator_routes", cfg.OperatorRoutesEnabled()).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	cancelWorkers()
	dispatcher.Wait()

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
}
