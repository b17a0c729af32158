package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/platform/obs"
)

const sqliteListInBox = `
	SELECT
		gc_code, name, lat, lng, cache_type, difficulty, terrain, size,
		favorite_points, last_found_days, recent_dnfs, on_trail_hint
	FROM caches
	WHERE lat BETWEEN ? AND ?
	  AND lng BETWEEN ? AND ?
	ORDER BY gc_code;
	`

const postgresListInBox = `
	SELECT
		gc_code, name, lat, lng, cache_type, difficulty, terrain, size,
		favorite_points, last_found_days, recent_dnfs, on_trail_hint
	FROM caches
	WHERE lat BETWEEN $1 AND $2
	  AND lng BETWEEN $3 AND $4
	ORDER BY gc_code;
	`

// SQL-backed implementation of the CandidateSource port.
// The same type serves SQLite and Postgres; only the query text differs.
type SQLCandidateRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSqliteCandidateRepository(db *sql.DB) *SQLCandidateRepository {
	return &SQLCandidateRepository{DB: db, Dialect: Sqlite}
}

func NewPostgresCandidateRepository(db *sql.DB) *SQLCandidateRepository {
	return &SQLCandidateRepository{DB: db, Dialect: Postgres}
}

// Return the stored caches inside box, ordered by code.
func (r *SQLCandidateRepository) ListCandidates(
	ctx context.Context,
	box domain.BoundingBox,
) (_ []domain.RawCandidate, err error) {
	defer obs.Time(ctx, "candidates.ListCandidates")(&err)

	if r.DB == nil {
		return nil, errors.New("candidate repository: DB is nil")
	}

	query := sqliteListInBox
	if r.Dialect == Postgres {
		query = postgresListInBox
	}

	rows, err := r.DB.QueryContext(ctx, query, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng)
	if err != nil {
		return nil, fmt.Errorf("list candidates: query caches table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.RawCandidate, 0, 64)
	for rows.Next() {
		var (
			c         domain.RawCandidate
			cacheType string
			size      string
			lastFound sql.NullInt64
		)
		if err := rows.Scan(
			&c.Code, &c.Name, &c.Coords.Lat, &c.Coords.Lng, &cacheType, &c.Difficulty, &c.Terrain, &size,
			&c.FavoritePoints, &lastFound, &c.RecentDNFs, &c.OnTrailHint,
		); err != nil {
			return nil, fmt.Errorf("list candidates: scan row: %w", err)
		}
		c.Type = domain.CacheType(cacheType)
		c.Size = domain.CacheSize(size)
		if lastFound.Valid {
			days := int(lastFound.Int64)
			c.LastFoundDays = &days
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: row iteration: %w", err)
	}

	return out, nil
}
