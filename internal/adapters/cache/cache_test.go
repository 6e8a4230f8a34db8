package cache

import (
	"context"
	"database/sql"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/ports"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(context.Background(), db))
	return db
}

func TestGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewGeocodeCache(openTestDB(t), SQLite)

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		"1 Main St":   {Lon: 139.7, Lat: 35.6},
		"Elm Station": {Lon: 139.8, Lat: 35.7},
	}))

	got, err := c.GetMany(ctx, []string{"1 Main St", " 1 Main St ", "Unknown", ""})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinates{"1 Main St": {Lon: 139.7, Lat: 35.6}}, got)

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{"1 Main St": {Lon: 1, Lat: 2}}))
	got, err = c.GetMany(ctx, []string{"1 Main St"})
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: 1, Lat: 2}, got["1 Main St"])
}

func TestGeocodeCacheRejectsBadRows(t *testing.T) {
	ctx := context.Background()
	c := NewGeocodeCache(openTestDB(t), SQLite)

	assert.Error(t, c.PutMany(ctx, map[string]domain.Coordinates{"  ": {Lon: 1, Lat: 1}}))
	assert.Error(t, c.PutMany(ctx, map[string]domain.Coordinates{"x": {Lon: 500, Lat: 1}}))

	_, err := (&GeocodeCache{}).GetMany(ctx, []string{"x"})
	assert.Error(t, err)
}

func TestLegCacheIsDirected(t *testing.T) {
	ctx := context.Background()
	c := NewLegCache(openTestDB(t), SQLite)

	a := domain.Coordinates{Lon: 1, Lat: 1}
	b := domain.Coordinates{Lon: 2, Lat: 2}
	ab := ports.LegKey{From: a, To: b}
	ba := ports.LegKey{From: b, To: a}

	require.NoError(t, c.PutMany(ctx, map[ports.LegKey]domain.LegCost{
		ab: {DistanceMeters: 1200, DurationSeconds: 300},
	}))

	got, err := c.GetMany(ctx, []ports.LegKey{ab, ba, ab})
	require.NoError(t, err)
	assert.Equal(t, map[ports.LegKey]domain.LegCost{ab: {DistanceMeters: 1200, DurationSeconds: 300}}, got)

	assert.Error(t, c.PutMany(ctx, map[ports.LegKey]domain.LegCost{ba: {DistanceMeters: -1}}))
}

func TestSeedGeocodeFromJSON(t *testing.T) {
	ctx := context.Background()
	c := NewGeocodeCache(openTestDB(t), SQLite)

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"address": "Depot,  Harbor Rd", "lon": 10.5, "lat": 50.1}
	]`), 0o600))

	n, err := SeedGeocodeFromJSON(ctx, c, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := c.GetMany(ctx, []string{"Depot, Harbor Rd"})
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: 10.5, Lat: 50.1}, got["Depot, Harbor Rd"])
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("SQLite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)
	assert.Equal(t, "?", d.placeholders(1, 1))
	assert.Equal(t, "$2,$3", Postgres.placeholders(2, 2))

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}
