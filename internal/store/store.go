// Package store implements the TTL content cache, the refresh-run log, and
// the advisory-lock table on SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"newsdesk/internal/core"
)

// Store represents the SQLite-backed cache and run log.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a store instance with a SQLite database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "newsdesk.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	contentTable := `
	CREATE TABLE IF NOT EXISTS content_cache (
		content_type TEXT NOT NULL,
		source TEXT NOT NULL,
		data TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		cached_at DATETIME NOT NULL,
		PRIMARY KEY (content_type, source)
	);`

	runsTable := `
	CREATE TABLE IF NOT EXISTS refresh_runs (
		request_id TEXT PRIMARY KEY,
		started_at DATETIME,
		finished_at DATETIME,
		successful INTEGER,
		failed INTEGER,
		skipped INTEGER,
		error TEXT,
		sources TEXT,
		missing_envs TEXT
	);`

	locksTable := `
	CREATE TABLE IF NOT EXISTS advisory_locks (
		name TEXT PRIMARY KEY,
		holder TEXT NOT NULL,
		acquired_at DATETIME NOT NULL
	);`

	tables := []string{contentTable, runsTable, locksTable}
	for _, table := range tables {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// CacheContent upserts a cache entry keyed by (contentType, source). The
// latest write for a key wins; the previous value is discarded.
func (s *Store) CacheContent(contentType, source, data string, expiresHours int) error {
	query := `
	INSERT OR REPLACE INTO content_cache
	(content_type, source, data, expires_at, cached_at)
	VALUES (?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	_, err := s.db.Exec(query,
		contentType,
		source,
		data,
		now.Add(time.Duration(expiresHours)*time.Hour),
		now,
	)
	return err
}

// SourceData pairs a cache entry's source with its raw payload.
type SourceData struct {
	Source string
	Data   string
}

// GetFreshContent returns the unexpired entries for each requested content
// type, grouped by type.
func (s *Store) GetFreshContent(types []string) (map[string][]SourceData, error) {
	result := make(map[string][]SourceData, len(types))
	now := time.Now().UTC()

	for _, contentType := range types {
		rows, err := s.db.Query(
			`SELECT source, data FROM content_cache WHERE content_type = ? AND expires_at > ? ORDER BY source`,
			contentType, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to query fresh content for %s: %w", contentType, err)
		}

		for rows.Next() {
			var entry SourceData
			if err := rows.Scan(&entry.Source, &entry.Data); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan content row: %w", err)
			}
			result[contentType] = append(result[contentType], entry)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to read content rows: %w", err)
		}
		rows.Close()
	}

	return result, nil
}

// GetEntry returns a single cache entry, or nil on a miss or expiry.
func (s *Store) GetEntry(contentType, source string) (*core.CacheEntry, error) {
	row := s.db.QueryRow(
		`SELECT content_type, source, data, expires_at FROM content_cache
		 WHERE content_type = ? AND source = ? AND expires_at > ?`,
		contentType, source, time.Now().UTC(),
	)

	var entry core.CacheEntry
	err := row.Scan(&entry.ContentType, &entry.Source, &entry.Data, &entry.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan cache entry: %w", err)
	}
	return &entry, nil
}

// CleanupExpired removes expired cache entries, returning the removed count.
func (s *Store) CleanupExpired() (int, error) {
	result, err := s.db.Exec(`DELETE FROM content_cache WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to clean expired content: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed entries: %w", err)
	}
	return int(count), nil
}

// LogRun persists the bookkeeping record for one refresh cycle.
func (s *Store) LogRun(run core.RefreshRun) error {
	sources, _ := json.Marshal(run.Sources)
	missingEnvs, _ := json.Marshal(run.MissingEnvs)

	query := `
	INSERT OR REPLACE INTO refresh_runs
	(request_id, started_at, finished_at, successful, failed, skipped, error, sources, missing_envs)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		run.RequestID,
		run.StartedAt,
		run.FinishedAt,
		run.Successful,
		run.Failed,
		run.Skipped,
		run.Error,
		string(sources),
		string(missingEnvs),
	)
	return err
}

// GetRecentRuns returns the most recent refresh runs, newest first.
func (s *Store) GetRecentRuns(limit int) ([]core.RefreshRun, error) {
	rows, err := s.db.Query(
		`SELECT request_id, started_at, finished_at, successful, failed, skipped, error, sources, missing_envs
		 FROM refresh_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []core.RefreshRun
	for rows.Next() {
		var run core.RefreshRun
		var sources, missingEnvs string
		if err := rows.Scan(&run.RequestID, &run.StartedAt, &run.FinishedAt,
			&run.Successful, &run.Failed, &run.Skipped, &run.Error, &sources, &missingEnvs); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		_ = json.Unmarshal([]byte(sources), &run.Sources)
		_ = json.Unmarshal([]byte(missingEnvs), &run.MissingEnvs)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// TryAcquireLock attempts to insert the named advisory lock row. It returns
// false when another holder already owns the lock. Locks older than
// staleAfter are treated as leaked and stolen.
func (s *Store) TryAcquireLock(name, holder string, staleAfter time.Duration) (bool, error) {
	now := time.Now().UTC()
	if staleAfter > 0 {
		_, err := s.db.Exec(`DELETE FROM advisory_locks WHERE name = ? AND acquired_at < ?`,
			name, now.Add(-staleAfter))
		if err != nil {
			return false, fmt.Errorf("failed to expire stale lock: %w", err)
		}
	}

	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO advisory_locks (name, holder, acquired_at) VALUES (?, ?, ?)`,
		name, holder, now,
	)
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check lock result: %w", err)
	}
	return affected == 1, nil
}

// ReleaseLock removes the advisory lock row if held by holder.
func (s *Store) ReleaseLock(name, holder string) error {
	_, err := s.db.Exec(`DELETE FROM advisory_locks WHERE name = ? AND holder = ?`, name, holder)
	return err
}

// CacheStats represents cache statistics
type CacheStats struct {
	EntriesByType map[string]int
	RunCount      int
	CacheSize     int64
	LastUpdated   time.Time
}

// GetCacheStats returns statistics about the cache.
func (s *Store) GetCacheStats() (*CacheStats, error) {
	stats := &CacheStats{EntriesByType: make(map[string]int)}

	rows, err := s.db.Query(`SELECT content_type, COUNT(*) FROM content_cache GROUP BY content_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var contentType string
		var count int
		if err := rows.Scan(&contentType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		stats.EntriesByType[contentType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM refresh_runs`).Scan(&stats.RunCount); err != nil {
		return nil, fmt.Errorf("failed to get run count: %w", err)
	}

	if fileInfo, err := os.Stat(s.path); err == nil {
		stats.CacheSize = fileInfo.Size()
		stats.LastUpdated = fileInfo.ModTime()
	}

	return stats, nil
}

// ClearCache removes all cached content and run history.
func (s *Store) ClearCache() error {
	tables := []string{"content_cache", "refresh_runs"}

	for _, table := range tables {
		_, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			return fmt.Errorf("failed to clear %s table: %w", table, err)
		}
	}

	// Vacuum to reclaim space
	_, err := s.db.Exec("VACUUM")
	if err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	return nil
}
