package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"mixtrail-service/internal/adapters/repositories"
	"mixtrail-service/internal/config"
	"mixtrail-service/internal/platform/db"
	"mixtrail-service/internal/platform/logger"
)

// dbtool prepares a Postgres catalogue: it creates the schema and upserts the
// seed file. Rerunning it is safe.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}
	logger.Setup()

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		slog.Error("open database", "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/caches.json")
	if err := initAndSeed(context.Background(), conn, seedPath); err != nil {
		slog.Error("dbtool failed", "err", err)
		conn.Close()
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	slog.Info("schema_init_started")
	if err := repositories.InitSchema(ctx, conn, repositories.Postgres); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	slog.Info("schema_ready")

	slog.Info("seed_started", "path", seedPath)
	if err := repositories.SeedFromJSON(ctx, conn, repositories.Postgres, seedPath); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	slog.Info("seed_complete")

	return nil
}
