package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mixtrail-service/internal/domain"
	"mixtrail-service/internal/platform/db"
)

func newTestSqlite(t *testing.T) *SqliteGeocodeCache {
	t.Helper()
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(`CREATE TABLE geocode_cache (address TEXT PRIMARY KEY, lat REAL NOT NULL, lng REAL NOT NULL)`)
	require.NoError(t, err)

	return NewSqliteGeocodeCache(conn)
}

func TestSqliteGeocodeCache_RoundTrip(t *testing.T) {
	c := newTestSqlite(t)
	ctx := context.Background()

	got, err := c.GetMany(ctx, []string{"Front Royal, VA"})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, c.PutMany(ctx, map[string]domain.GeoPoint{
		"Front Royal, VA": {Lat: 38.9182, Lng: -78.1944},
		"Washington, DC":  {Lat: 38.9072, Lng: -77.0369},
	}))

	got, err = c.GetMany(ctx, []string{"Front Royal, VA", " Front Royal, VA ", "", "Luray, VA"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.GeoPoint{"Front Royal, VA": {Lat: 38.9182, Lng: -78.1944}}, got)
}

func TestSqliteGeocodeCache_Overwrites(t *testing.T) {
	c := newTestSqlite(t)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, map[string]domain.GeoPoint{"Luray, VA": {Lat: 1, Lng: 2}}))
	require.NoError(t, c.PutMany(ctx, map[string]domain.GeoPoint{"Luray, VA": {Lat: 38.6654, Lng: -78.4595}}))

	got, err := c.GetMany(ctx, []string{"Luray, VA"})
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 38.6654, Lng: -78.4595}, got["Luray, VA"])
}

func TestSqliteGeocodeCache_RejectsEmptyKey(t *testing.T) {
	c := newTestSqlite(t)

	err := c.PutMany(context.Background(), map[string]domain.GeoPoint{"  ": {}})
	assert.Error(t, err)
}

func TestSqliteGeocodeCache_NilDB(t *testing.T) {
	c := NewSqliteGeocodeCache(nil)

	_, err := c.GetMany(context.Background(), []string{"x"})
	assert.Error(t, err)
}
