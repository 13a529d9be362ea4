// @title        Delivery Zones API
// @version      1.0
// @description  Resolves customer addresses and reports which delivery areas serve them on a given day.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/delivery-zones/internal/api"
	"github.com/99minutos/delivery-zones/internal/api/handler"
	"github.com/99minutos/delivery-zones/internal/core/ports"
	"github.com/99minutos/delivery-zones/internal/core/service"
	"github.com/99minutos/delivery-zones/internal/infrastructure/db/mongo"
	"github.com/99minutos/delivery-zones/internal/infrastructure/db/redis"
	"github.com/99minutos/delivery-zones/internal/infrastructure/geocode/google"
	"github.com/99minutos/delivery-zones/internal/pkg/config"
	"github.com/99minutos/delivery-zones/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "delivery-zones",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- Zone store (required) ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	zones := mongo.NewZoneRepository(db)
	if err := zones.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("could not ensure delivery_areas indexes")
	}

	readiness := []handler.Dependency{{
		Name:     "mongodb",
		Required: true,
		Check:    func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}}

	// --- Geocode cache (optional) ---
	var cache ports.GeocodeCache
	if cfg.Redis.Enabled {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, geocode results will not be cached")
		} else {
			defer func() { _ = rdb.Close() }()
			cache = redis.NewGeocodeCache(rdb)
			readiness = append(readiness, redisDependency(rdb))
		}
	}

	// --- Core ---
	geocoder := google.NewClient(google.Config{
		APIKey:   cfg.Geocode.APIKey,
		BaseURL:  cfg.Geocode.BaseURL,
		Timeout:  cfg.Geocode.Timeout,
		Region:   cfg.Geocode.Region,
		Language: cfg.Geocode.Language,
		Country:  cfg.Geocode.Country,
	}, log)

	resolver := service.NewAddressResolver(geocoder, cache, cfg.Geocode.CacheTTL, log)
	areas := service.NewRetryingDeliveryAreaService(
		service.NewDeliveryAreaService(resolver, zones, log),
		cfg.Verify.Retries,
		cfg.Verify.Backoff,
		log,
	)

	e := api.NewRouter(api.Deps{
		Log:           log,
		JWTSecret:     cfg.JWTSecret,
		DeliveryAreas: areas,
		Resolver:      resolver,
		Location:      loc,
		Readiness:     readiness,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func redisDependency(rdb *goredis.Client) handler.Dependency {
	return handler.Dependency{
		Name:  "redis",
		Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
}
