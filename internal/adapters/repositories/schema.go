package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL flavour of a connection.
type Dialect int

const (
	Sqlite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS caches (
		gc_code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		cache_type TEXT NOT NULL,
		difficulty REAL NOT NULL,
		terrain REAL NOT NULL,
		size TEXT NOT NULL,
		favorite_points INTEGER NOT NULL DEFAULT 0,
		last_found_days INTEGER,
		recent_dnfs INTEGER NOT NULL DEFAULT 0,
		on_trail_hint INTEGER NOT NULL DEFAULT 0
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_caches_lat_lng
	ON caches(lat, lng);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lng REAL NOT NULL
	);
	`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS caches (
		gc_code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		cache_type TEXT NOT NULL,
		difficulty DOUBLE PRECISION NOT NULL,
		terrain DOUBLE PRECISION NOT NULL,
		size TEXT NOT NULL,
		favorite_points INTEGER NOT NULL DEFAULT 0,
		last_found_days INTEGER,
		recent_dnfs INTEGER NOT NULL DEFAULT 0,
		on_trail_hint BOOLEAN NOT NULL DEFAULT FALSE
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_caches_lat_lng
	ON caches(lat, lng);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`,
}

// Create the caches and geocode_cache tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	statements := sqliteSchema
	if d == Postgres {
		statements = postgresSchema
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
