package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
)

type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

const eventColumns = `id, title, description, date, priority, repetition, created_at, updated_at`

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, formatDate(e.Date), e.Priority, e.Repetition,
		formatTimestamp(e.CreatedAt), formatTimestamp(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return e, err
}

func (r *SQLiteEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events
		ORDER BY priority DESC, date ASC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return out, nil
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET title = ?, description = ?, date = ?, priority = ?, repetition = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, formatDate(e.Date), e.Priority, e.Repetition, formatTimestamp(e.UpdatedAt), e.ID)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return rowsAffected(res, "event "+e.ID)
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return rowsAffected(res, "event "+id)
}

func scanEvent(s scanner) (*domain.Event, error) {
	var e domain.Event
	var date, createdAt, updatedAt string
	if err := s.Scan(&e.ID, &e.Title, &e.Description, &date, &e.Priority, &e.Repetition, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	var err error
	if e.Date, err = parseDate(date, "date"); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &e, nil
}
