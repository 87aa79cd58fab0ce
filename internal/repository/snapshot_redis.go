package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotRepository implements SnapshotRepository on Redis strings.
// Snapshots never expire.
type RedisSnapshotRepository struct {
	client    *redis.Client
	keyPrefix string
}

// RedisSnapshotConfig holds configuration for the Redis repository.
type RedisSnapshotConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisSnapshotRepository dials Redis and verifies the connection.
func NewRedisSnapshotRepository(ctx context.Context, cfg RedisSnapshotConfig) (*RedisSnapshotRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "buildboard:snapshot:"
	}
	return &RedisSnapshotRepository{client: client, keyPrefix: keyPrefix}, nil
}

// LoadSnapshot returns the payload stored under key.
func (r *RedisSnapshotRepository) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return data, nil
}

// SaveSnapshot replaces the payload stored under key.
func (r *RedisSnapshotRepository) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, r.keyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetStats counts the snapshot keys under the prefix.
func (r *RedisSnapshotRepository) GetStats(ctx context.Context) (map[string]interface{}, error) {
	var count int64
	iter := r.client.Scan(ctx, 0, r.keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return map[string]interface{}{
		"backend":    "redis",
		"snapshots":  count,
		"key_prefix": r.keyPrefix,
	}, nil
}

// Close closes the Redis client.
func (r *RedisSnapshotRepository) Close() error {
	return r.client.Close()
}

var _ SnapshotRepository = (*RedisSnapshotRepository)(nil)
