package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"mixtrail-service/internal/domain"
)

// CandidateSeed is one cache record of the JSON seed file.
type CandidateSeed struct {
	Code           string          `json:"gc_code"`
	Name           string          `json:"name"`
	Coords         domain.GeoPoint `json:"coords"`
	Type           string          `json:"type"`
	Difficulty     float64         `json:"difficulty"`
	Terrain        float64         `json:"terrain"`
	Size           string          `json:"size"`
	FavoritePoints int             `json:"favorite_points"`
	LastFoundDays  *int            `json:"last_found_days"`
	RecentDNFs     int             `json:"recent_dnfs"`
	OnTrailHint    bool            `json:"on_trail_hint"`
}

func (s CandidateSeed) toDomain() domain.RawCandidate {
	return domain.RawCandidate{
		Code:           strings.TrimSpace(s.Code),
		Name:           strings.TrimSpace(s.Name),
		Coords:         s.Coords,
		Type:           domain.CacheType(s.Type),
		Difficulty:     s.Difficulty,
		Terrain:        s.Terrain,
		Size:           domain.CacheSize(s.Size),
		FavoritePoints: s.FavoritePoints,
		LastFoundDays:  s.LastFoundDays,
		RecentDNFs:     s.RecentDNFs,
		OnTrailHint:    s.OnTrailHint,
	}
}

func validateSeed(i int, c domain.RawCandidate) error {
	switch {
	case c.Code == "":
		return fmt.Errorf("item at index %d: gc_code cannot be empty", i+1)
	case c.Name == "":
		return fmt.Errorf("item %s: name cannot be empty", c.Code)
	case c.Coords.Lat < -90 || c.Coords.Lat > 90 || c.Coords.Lng < -180 || c.Coords.Lng > 180:
		return fmt.Errorf("item %s: coordinates out of range", c.Code)
	case c.Difficulty < 1 || c.Difficulty > 5 || c.Terrain < 1 || c.Terrain > 5:
		return fmt.Errorf("item %s: difficulty and terrain must lie in [1, 5]", c.Code)
	case c.FavoritePoints < 0 || c.RecentDNFs < 0:
		return fmt.Errorf("item %s: counts cannot be negative", c.Code)
	case c.LastFoundDays != nil && *c.LastFoundDays < 0:
		return fmt.Errorf("item %s: last_found_days cannot be negative", c.Code)
	}
	return nil
}

// Read and validate the candidate seed file.
func LoadSeed(jsonPath string) ([]domain.RawCandidate, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", jsonPath, err)
	}

	var data []CandidateSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load seed: parse json: %w", err)
	}

	out := make([]domain.RawCandidate, 0, len(data))
	for i, item := range data {
		c := item.toDomain()
		if err := validateSeed(i, c); err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		out = append(out, c)
	}

	return out, nil
}

const sqliteUpsert = `
	INSERT INTO caches (
		gc_code, name, lat, lng, cache_type, difficulty, terrain, size,
		favorite_points, last_found_days, recent_dnfs, on_trail_hint
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (gc_code) DO UPDATE SET
		name = excluded.name,
		lat = excluded.lat,
		lng = excluded.lng,
		cache_type = excluded.cache_type,
		difficulty = excluded.difficulty,
		terrain = excluded.terrain,
		size = excluded.size,
		favorite_points = excluded.favorite_points,
		last_found_days = excluded.last_found_days,
		recent_dnfs = excluded.recent_dnfs,
		on_trail_hint = excluded.on_trail_hint;
	`

const postgresUpsert = `
	INSERT INTO caches (
		gc_code, name, lat, lng, cache_type, difficulty, terrain, size,
		favorite_points, last_found_days, recent_dnfs, on_trail_hint
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (gc_code) DO UPDATE SET
		name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		cache_type = EXCLUDED.cache_type,
		difficulty = EXCLUDED.difficulty,
		terrain = EXCLUDED.terrain,
		size = EXCLUDED.size,
		favorite_points = EXCLUDED.favorite_points,
		last_found_days = EXCLUDED.last_found_days,
		recent_dnfs = EXCLUDED.recent_dnfs,
		on_trail_hint = EXCLUDED.on_trail_hint;
	`

// Upsert candidates into the caches table in one transaction.
func UpsertCandidates(ctx context.Context, db *sql.DB, d Dialect, candidates []domain.RawCandidate) error {
	if db == nil {
		return errors.New("upsert candidates: DB is nil")
	}

	query := sqliteUpsert
	if d == Postgres {
		query = postgresUpsert
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert candidates: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("upsert candidates: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range candidates {
		var lastFound sql.NullInt64
		if c.LastFoundDays != nil {
			lastFound = sql.NullInt64{Int64: int64(*c.LastFoundDays), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			c.Code, c.Name, c.Coords.Lat, c.Coords.Lng, string(c.Type), c.Difficulty, c.Terrain, string(c.Size),
			c.FavoritePoints, lastFound, c.RecentDNFs, c.OnTrailHint,
		); err != nil {
			return fmt.Errorf("upsert candidates: insert gc_code=%s: %w", c.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert candidates: commit tx: %w", err)
	}

	return nil
}

// Populate the caches table from a JSON seed file.
func SeedFromJSON(ctx context.Context, db *sql.DB, d Dialect, jsonPath string) error {
	candidates, err := LoadSeed(jsonPath)
	if err != nil {
		return fmt.Errorf("seed candidates: %w", err)
	}

	if err := UpsertCandidates(ctx, db, d, candidates); err != nil {
		return fmt.Errorf("seed candidates: %w", err)
	}

	return nil
}
