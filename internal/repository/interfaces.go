package repository

import (
	"context"
)

// SnapshotRepository is a durable key-value slot holding one serialized
// snapshot per key. The board keeps its whole request collection under a
// single fixed key.
type SnapshotRepository interface {
	// LoadSnapshot returns the bytes stored under key, or nil if the slot is empty.
	LoadSnapshot(ctx context.Context, key string) ([]byte, error)

	// SaveSnapshot replaces the bytes stored under key.
	SaveSnapshot(ctx context.Context, key string, data []byte) error

	// GetStats returns backend statistics for the admin endpoint.
	GetStats(ctx context.Context) (map[string]interface{}, error)

	// Close closes the repository connection.
	Close() error
}

const snapshotTable = "board_snapshots"
