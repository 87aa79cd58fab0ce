package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSnapshotRepository(t *testing.T) {
	mr := miniredis.RunT(t)

	repo, err := NewRedisSnapshotRepository(context.Background(), RedisSnapshotConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer repo.Close()

	exerciseRepository(t, repo)

	assert.True(t, mr.Exists("buildboard:snapshot:recovery_requests"))
	assert.Zero(t, mr.TTL("buildboard:snapshot:recovery_requests"), "snapshots never expire")
}

func TestRedisSnapshotRepositoryUnreachable(t *testing.T) {
	_, err := NewRedisSnapshotRepository(context.Background(), RedisSnapshotConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
