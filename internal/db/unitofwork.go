package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TxFunc is the body of a transaction. Repositories built from tx see the
// same snapshot and commit or roll back together.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork manages transactional boundaries.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn returns nil and rolls back otherwise. A panic in
// fn rolls back and is re-raised.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
