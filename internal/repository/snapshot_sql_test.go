package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSnapshotRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS board_snapshots").
		WillReturnResult(sqlmock.NewResult(0, 0))
	repo, err := NewPostgresSnapshotRepositoryFromDB(db)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM board_snapshots WHERE slot_key = $1")).
		WithArgs("recovery_requests").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))
	data, err := repo.LoadSnapshot(ctx, "recovery_requests")
	require.NoError(t, err)
	assert.Nil(t, data)

	mock.ExpectExec("INSERT INTO board_snapshots").
		WithArgs("recovery_requests", `[{"id":"a"}]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SaveSnapshot(ctx, "recovery_requests", []byte(`[{"id":"a"}]`)))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM board_snapshots WHERE slot_key = $1")).
		WithArgs("recovery_requests").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`[{"id":"a"}]`)))
	data, err = repo.LoadSnapshot(ctx, "recovery_requests")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(data))

	saved := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*), MAX(saved_at) FROM board_snapshots")).
		WillReturnRows(sqlmock.NewRows([]string{"count", "max"}).AddRow(1, saved))
	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats["snapshots"])
	assert.Equal(t, saved, stats["last_saved"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositoryWrapsErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	repo, err := NewPostgresSnapshotRepositoryFromDB(db)
	require.NoError(t, err)

	down := errors.New("connection reset")
	mock.ExpectExec("INSERT INTO board_snapshots").WillReturnError(down)
	err = repo.SaveSnapshot(context.Background(), "k", []byte(`[]`))
	assert.ErrorIs(t, err, down)

	mock.ExpectQuery("SELECT payload").WillReturnError(down)
	_, err = repo.LoadSnapshot(context.Background(), "k")
	assert.ErrorIs(t, err, down)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotRepositoryCreateTableFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	_, err = NewPostgresSnapshotRepositoryFromDB(db)
	assert.Error(t, err)
}

func TestMySQLSnapshotRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	ctx := context.Background()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS board_snapshots").
		WillReturnResult(sqlmock.NewResult(0, 0))
	repo, err := NewMySQLSnapshotRepository(db)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE")).
		WithArgs("recovery_requests", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SaveSnapshot(ctx, "recovery_requests", []byte(`[]`)))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM board_snapshots WHERE slot_key = ? LIMIT 1")).
		WithArgs("recovery_requests").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`[]`)))
	data, err := repo.LoadSnapshot(ctx, "recovery_requests")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM board_snapshots WHERE slot_key = ? LIMIT 1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))
	data, err = repo.LoadSnapshot(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, data)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM board_snapshots")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	stats, err := repo.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mysql", stats["backend"])
	assert.EqualValues(t, 1, stats["snapshots"])

	mock.ExpectClose()
	require.NoError(t, repo.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
