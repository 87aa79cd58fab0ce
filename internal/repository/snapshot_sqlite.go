package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteSnapshotRepository implements SnapshotRepository using SQLite.
type SQLiteSnapshotRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteSnapshotRepository opens (creating if needed) the database at
// dbPath. ":memory:" gives a private in-memory database.
func NewSQLiteSnapshotRepository(dbPath string) (*SQLiteSnapshotRepository, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer; a single connection also keeps
	// ":memory:" databases and per-connection pragmas stable.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", p, err)
		}
	}

	if err := createSQLiteTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteSnapshotRepository{db: db}, nil
}

func createSQLiteTables(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS ` + snapshotTable + ` (
		slot_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		saved_at DATETIME NOT NULL
	);`)
	return err
}

// LoadSnapshot returns the payload stored under key.
func (r *SQLiteSnapshotRepository) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM `+snapshotTable+` WHERE slot_key = ?`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return []byte(payload), nil
}

// SaveSnapshot upserts the payload stored under key.
func (r *SQLiteSnapshotRepository) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO `+snapshotTable+` (slot_key, payload, saved_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(slot_key) DO UPDATE SET
			payload = excluded.payload,
			saved_at = excluded.saved_at`,
		key, string(data))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetStats returns statistics about the snapshot database.
func (r *SQLiteSnapshotRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := map[string]interface{}{"backend": "sqlite"}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+snapshotTable).Scan(&count); err != nil {
		return nil, err
	}
	stats["snapshots"] = count

	var lastSaved sql.NullString
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(saved_at) FROM "+snapshotTable).Scan(&lastSaved); err == nil && lastSaved.Valid {
		stats["last_saved"] = lastSaved.String
	}

	var pageCount, pageSize int64
	r.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	r.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
	stats["db_size_bytes"] = pageCount * pageSize

	return stats, nil
}

// Close closes the database connection.
func (r *SQLiteSnapshotRepository) Close() error {
	return r.db.Close()
}

var _ SnapshotRepository = (*SQLiteSnapshotRepository)(nil)
