package repository

import (
	"context"
	"sync"
	"time"
)

// MemorySnapshotRepository keeps snapshots in process memory. Nothing
// survives a restart; used for tests and STORAGE_TYPE=memory.
type MemorySnapshotRepository struct {
	mu        sync.RWMutex
	slots     map[string][]byte
	lastSaved time.Time
}

// NewMemorySnapshotRepository creates an empty in-memory repository.
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{slots: make(map[string][]byte)}
}

// LoadSnapshot returns a copy of the bytes stored under key.
func (r *MemorySnapshotRepository) LoadSnapshot(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.slots[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// SaveSnapshot stores a copy of data under key.
func (r *MemorySnapshotRepository) SaveSnapshot(_ context.Context, key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	r.mu.Lock()
	r.slots[key] = stored
	r.lastSaved = time.Now()
	r.mu.Unlock()
	return nil
}

// GetStats returns the number of slots in use.
func (r *MemorySnapshotRepository) GetStats(_ context.Context) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := map[string]interface{}{
		"backend":   "memory",
		"snapshots": len(r.slots),
	}
	if !r.lastSaved.IsZero() {
		stats["last_saved"] = r.lastSaved
	}
	return stats, nil
}

// Close is a no-op.
func (r *MemorySnapshotRepository) Close() error {
	return nil
}

var _ SnapshotRepository = (*MemorySnapshotRepository)(nil)
