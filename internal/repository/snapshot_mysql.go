package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLSnapshotRepository implements SnapshotRepository using MySQL.
type MySQLSnapshotRepository struct {
	db *sql.DB
}

// OpenMySQL opens and pings a MySQL pool with the service's pool settings.
func OpenMySQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}
	return db, nil
}

// NewMySQLSnapshotRepository creates a MySQL snapshot repository on db and
// ensures the snapshot table exists.
func NewMySQLSnapshotRepository(db *sql.DB) (*MySQLSnapshotRepository, error) {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS ` + snapshotTable + ` (
		slot_key VARCHAR(191) NOT NULL PRIMARY KEY,
		payload LONGTEXT NOT NULL,
		saved_at DATETIME NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &MySQLSnapshotRepository{db: db}, nil
}

// LoadSnapshot returns the payload stored under key.
func (r *MySQLSnapshotRepository) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM `+snapshotTable+` WHERE slot_key = ? LIMIT 1`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return payload, nil
}

// SaveSnapshot upserts the payload stored under key.
func (r *MySQLSnapshotRepository) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO `+snapshotTable+` (slot_key, payload, saved_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			payload = VALUES(payload),
			saved_at = NOW()`,
		key, string(data))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetStats returns statistics about the snapshot table.
func (r *MySQLSnapshotRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := map[string]interface{}{"backend": "mysql"}

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+snapshotTable).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	stats["snapshots"] = count
	return stats, nil
}

// Close closes the database connection.
func (r *MySQLSnapshotRepository) Close() error {
	return r.db.Close()
}

var _ SnapshotRepository = (*MySQLSnapshotRepository)(nil)
