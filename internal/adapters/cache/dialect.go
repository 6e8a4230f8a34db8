package cache

import (
	"fmt"
	"strings"
)

// Dialect selects placeholder syntax for the SQL caches.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// ParseDialect maps a CACHE_BACKEND value to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("unknown cache dialect %q", s)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "pgx"
}

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) placeholder(n int) string {
	if d == SQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// placeholders returns count bind parameters starting at start, comma separated.
// Only the placeholder structure is interpolated into queries; all values stay parameterized.
func (d Dialect) placeholders(start, count int) string {
	ph := make([]string, count)
	for i := range ph {
		ph[i] = d.placeholder(start + i)
	}
	return strings.Join(ph, ",")
}

// uniqueTrimmed drops blank and duplicate keys, keeping first-seen order.
func uniqueTrimmed(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
