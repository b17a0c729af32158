package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mixtrail-service/internal/adapters/cache"
	"mixtrail-service/internal/adapters/repositories"
	"mixtrail-service/internal/adapters/routing"
	"mixtrail-service/internal/api"
	"mixtrail-service/internal/config"
	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/platform/db"
	"mixtrail-service/internal/platform/logger"
	"mixtrail-service/internal/ports"
)

// Vertices inserted per leg by the offline route provider.
const mockDensify = 40

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, ORS, Redis) behind ports and starts the HTTP server.
func main() {
	cfg := config.Load()
	slog.SetDefault(logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))

	if err := run(cfg); err != nil {
		slog.Error("server_failed", "err", err)
		os.Exit(1)
	}
}

// run owns every resource of the process so deferred cleanup completes
// before main exits.
func run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	conn, dialect, err := openCatalogue(cfg)
	if err != nil {
		return fmt.Errorf("open catalogue: %w", err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(ctx, conn, dialect, cfg.SeedPath); err != nil {
		return fmt.Errorf("init catalogue: %w", err)
	}

	geocoder, provider, err := newRouting(cfg, conn, dialect)
	if err != nil {
		return fmt.Errorf("routing setup: %w", err)
	}

	candidates := repositories.NewSqliteCandidateRepository(conn)
	if dialect == repositories.Postgres {
		candidates = repositories.NewPostgresCandidateRepository(conn)
	}

	router := api.NewRouter(api.Deps{
		Geocoder:   geocoder,
		Provider:   provider,
		Candidates: candidates,
	})

	// Timeouts are tuned for cold-cache route planning (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server_shutdown_failed", "err", err)
		}
	}()

	slog.Info("server_listening", "addr", srv.Addr, "provider", cfg.RoutingProvider, "dialect", dialect.String())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	slog.Info("server_stopped")
	return nil
}

// openCatalogue prefers Postgres when DATABASE_URL is set and falls back to
// the local SQLite file.
func openCatalogue(cfg *config.Config) (*sql.DB, repositories.Dialect, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		return conn, repositories.Postgres, err
	}
	conn, err := db.OpenSqlite(cfg.DBPath)
	return conn, repositories.Sqlite, err
}

func initAndSeed(ctx context.Context, conn *sql.DB, d repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn, d); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	err := repositories.SeedFromJSON(ctx, conn, d, seedPath)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("seed_file_missing", "path", seedPath, "fallback", "demo")
		err = repositories.UpsertCandidates(ctx, conn, d, repositories.DemoCandidates())
	}
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// newRouting builds the geocoder and route provider for cfg.RoutingProvider.
// The ORS client keeps geocodes in the catalogue database and, when
// REDIS_ADDR is set, directions in Redis.
func newRouting(cfg *config.Config, conn *sql.DB, d repositories.Dialect) (ports.Geocoder, ports.RouteProvider, error) {
	if cfg.RoutingProvider == config.ProviderMock {
		slog.Warn("routing_mock_enabled", "densify", mockDensify)
		return routing.NewMockGeocoder(demoPlaces), routing.NewMockRouteProvider(mockDensify), nil
	}

	var geocodeCache ports.GeocodeCache = cache.NewSqliteGeocodeCache(conn)
	if d == repositories.Postgres {
		geocodeCache = cache.NewSQLGeocodeCache(conn)
	}

	opts := []routing.Option{
		routing.WithBaseURL(cfg.ORSBaseURL),
		routing.WithTimeout(cfg.ORSTimeout),
		routing.WithGeocodeCache(geocodeCache),
	}
	if rdb := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		opts = append(opts, routing.WithDirectionsCache(cache.NewRedisDirectionsCache(rdb, cfg.DirectionsTTL)))
		slog.Info("directions_cache_enabled", "addr", cfg.RedisAddr, "ttl", cfg.DirectionsTTL)
	}

	client, err := routing.NewORSClient(cfg.ORSAPIKey, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, client, nil
}

// Addresses the offline geocoder understands.
var demoPlaces = map[string]domain.GeoPoint{
	"Washington, DC":  {Lat: 38.9072, Lng: -77.0369},
	"Front Royal, VA": {Lat: 38.9182, Lng: -78.1944},
	"Luray, VA":       {Lat: 38.6654, Lng: -78.4594},
	"Shenandoah, VA":  {Lat: 38.2929, Lng: -78.6796},
}
