package cache

import (
	"context"
	"database/sql"
	"dropoff-route-planner/internal/domain"
	"dropoff-route-planner/internal/platform/obs"
	"dropoff-route-planner/internal/ports"
	"errors"
	"fmt"
)

// LegCache is a SQL-backed cache of directed leg costs keyed by coordinate pair.
type LegCache struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewLegCache(db *sql.DB, dialect Dialect) *LegCache {
	return &LegCache{DB: db, Dialect: dialect}
}

func legKey(k ports.LegKey) string { return k.From.Key() + "|" + k.To.Key() }

// Fetch cached costs for the given legs. Misses are simply absent from the map.
func (s *LegCache) GetMany(ctx context.Context, keys []ports.LegKey) (_ map[ports.LegKey]domain.LegCost, err error) {
	defer obs.Time(ctx, "leg.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("leg cache: db is nil")
	}

	byKey := make(map[string]ports.LegKey, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		sk := legKey(k)
		if _, ok := byKey[sk]; ok {
			continue
		}
		byKey[sk] = k
		args = append(args, sk)
	}
	if len(args) == 0 {
		return map[ports.LegKey]domain.LegCost{}, nil
	}

	q := fmt.Sprintf(`
	SELECT leg_key, distance_meters, duration_seconds
	FROM leg_cache
	WHERE leg_key IN (%s);
	`, s.Dialect.placeholders(1, len(args)))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[ports.LegKey]domain.LegCost, len(args))
	for rows.Next() {
		var sk string
		var meters, seconds int
		if err := rows.Scan(&sk, &meters, &seconds); err != nil {
			return nil, fmt.Errorf("get leg cache: scan rows: %w", err)
		}
		k, ok := byKey[sk]
		if !ok {
			continue
		}
		out[k] = domain.LegCost{DistanceMeters: meters, DurationSeconds: seconds}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get leg cache: row iteration: %w", err)
	}

	return out, nil
}

// Store leg costs, replacing existing entries.
func (s *LegCache) PutMany(ctx context.Context, results map[ports.LegKey]domain.LegCost) (err error) {
	defer obs.Time(ctx, "leg.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert leg cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO leg_cache (leg_key, from_key, to_key, distance_meters, duration_seconds)
	VALUES (%s)
	ON CONFLICT (leg_key) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`, s.Dialect.placeholders(1, 5)))
	if err != nil {
		return fmt.Errorf("insert leg cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for k, c := range results {
		if c.DistanceMeters < 0 || c.DurationSeconds < 0 {
			return fmt.Errorf("insert leg cache leg=%q: negative cost", legKey(k))
		}
		if _, err := stmt.ExecContext(ctx, legKey(k), k.From.Key(), k.To.Key(), c.DistanceMeters, c.DurationSeconds); err != nil {
			return fmt.Errorf("insert leg cache leg=%q: %w", legKey(k), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert leg cache commit: %w", err)
	}

	return nil
}
