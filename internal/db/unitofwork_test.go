package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertEvent(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO events (id, title, date, created_at, updated_at)
		VALUES (?, 'Exam', '2025-06-20', '2025-06-01T00:00:00Z', '2025-06-01T00:00:00Z')`, id)
	return err
}

func eventExists(t *testing.T, uow *db.SQLiteUnitOfWork, id string) bool {
	t.Helper()
	var n int
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE id = ?`, id).Scan(&n)
	})
	require.NoError(t, err)
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertEvent(ctx, tx, "e1")
	})
	require.NoError(t, err)

	assert.True(t, eventExists(t, uow, "e1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertEvent(ctx, tx, "e2"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.False(t, eventExists(t, uow, "e2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertEvent(ctx, tx, "e3")
			panic("boom")
		})
	})

	assert.False(t, eventExists(t, uow, "e3"), "row should not exist after panic rollback")
}

func TestWithinTx_ConstraintViolationRollsBackEarlierWrites(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertEvent(ctx, tx, "e4"); err != nil {
			return err
		}
		return insertEvent(ctx, tx, "e4")
	})
	require.Error(t, err)

	assert.False(t, eventExists(t, uow, "e4"))
}

func TestWithinTx_CancelledContext(t *testing.T) {
	uow := openTestUoW(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
