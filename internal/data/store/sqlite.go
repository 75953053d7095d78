// Package store reads observation rows from the screen recorder's
// SQLite database. The core depends only on the query contract here,
// not on the storage engine.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNoData means the store is reachable but holds no rows. A normal,
// reportable outcome, distinct from an empty day.
var ErrNoData = errors.New("no observations recorded in source store")

// Row is one raw observation row as stored: timestamp still a string in
// the store's own format, app and window guaranteed non-empty by the
// query filter.
type Row struct {
	Timestamp string
	App       string
	Window    string
}

// Store is the source-store query contract consumed by the feed.
type Store interface {
	// LatestTimestamp returns the most recent raw timestamp, or
	// ErrNoData when the store holds no rows.
	LatestTimestamp(ctx context.Context) (string, error)
	// RowsForDays returns all rows whose stored UTC date key matches
	// one of the candidates, ascending by timestamp.
	RowsForDays(ctx context.Context, dayKeys []string) ([]Row, error)
	Close() error
}

// SQLiteStore reads the recorder's frames table.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the database at path. A missing file is a fatal
// source-unavailable condition, reported as such.
func Open(path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("source store not found at %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open source store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("source store unavailable at %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// LatestTimestamp implements Store.
func (s *SQLiteStore) LatestTimestamp(ctx context.Context) (string, error) {
	var latest sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT MAX(timestamp) FROM frames`).Scan(&latest)
	if err != nil {
		return "", fmt.Errorf("query latest timestamp: %w", err)
	}
	if !latest.Valid || latest.String == "" {
		return "", ErrNoData
	}
	return latest.String, nil
}

// RowsForDays implements Store. The stored date key is the first ten
// characters of the UTC timestamp, matching the recorder's indexing.
func (s *SQLiteStore) RowsForDays(ctx context.Context, dayKeys []string) ([]Row, error) {
	if len(dayKeys) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(dayKeys)), ",")
	query := fmt.Sprintf(`
SELECT f.timestamp, f.app_name, f.window_name
FROM frames f
WHERE SUBSTR(f.timestamp, 1, 10) IN (%s)
AND f.app_name IS NOT NULL AND f.app_name != ''
AND f.window_name IS NOT NULL AND f.window_name != ''
ORDER BY f.timestamp ASC`, placeholders)

	args := make([]any, len(dayKeys))
	for i, key := range dayKeys {
		args[i] = key
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query observation rows: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Timestamp, &r.App, &r.Window); err != nil {
			return nil, fmt.Errorf("scan observation row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observation rows: %w", err)
	}
	return result, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
