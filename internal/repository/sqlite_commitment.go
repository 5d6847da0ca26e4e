package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
)

type SQLiteCommitmentRepo struct {
	db db.DBTX
}

func NewSQLiteCommitmentRepo(conn db.DBTX) *SQLiteCommitmentRepo {
	return &SQLiteCommitmentRepo{db: conn}
}

const commitmentColumns = `id, name, weekday, start_time, end_time, created_at, updated_at`

func (r *SQLiteCommitmentRepo) Create(ctx context.Context, c *domain.WeeklyCommitment) error {
	query := `INSERT INTO weekly_commitments (` + commitmentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, int(c.Weekday), c.StartTime, c.EndTime,
		formatTimestamp(c.CreatedAt), formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting commitment: %w", err)
	}
	return nil
}

func (r *SQLiteCommitmentRepo) GetByID(ctx context.Context, id string) (*domain.WeeklyCommitment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+commitmentColumns+` FROM weekly_commitments WHERE id = ?`, id)
	c, err := scanCommitment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("commitment %s: %w", id, ErrNotFound)
	}
	return c, err
}

// List orders by weekday, then start time, then insertion.
func (r *SQLiteCommitmentRepo) List(ctx context.Context) ([]*domain.WeeklyCommitment, error) {
	return r.query(ctx, `SELECT `+commitmentColumns+` FROM weekly_commitments
		ORDER BY weekday, start_time, created_at, id`)
}

func (r *SQLiteCommitmentRepo) ListByWeekday(ctx context.Context, day domain.Weekday) ([]*domain.WeeklyCommitment, error) {
	return r.query(ctx, `SELECT `+commitmentColumns+` FROM weekly_commitments
		WHERE weekday = ? ORDER BY start_time, created_at, id`, int(day))
}

func (r *SQLiteCommitmentRepo) Update(ctx context.Context, c *domain.WeeklyCommitment) error {
	query := `UPDATE weekly_commitments SET name = ?, weekday = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, int(c.Weekday), c.StartTime, c.EndTime, formatTimestamp(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("updating commitment: %w", err)
	}
	return rowsAffected(res, "commitment "+c.ID)
}

func (r *SQLiteCommitmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weekly_commitments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting commitment: %w", err)
	}
	return rowsAffected(res, "commitment "+id)
}

func (r *SQLiteCommitmentRepo) query(ctx context.Context, query string, args ...any) ([]*domain.WeeklyCommitment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing commitments: %w", err)
	}
	defer rows.Close()

	var out []*domain.WeeklyCommitment
	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating commitments: %w", err)
	}
	return out, nil
}

func scanCommitment(s scanner) (*domain.WeeklyCommitment, error) {
	var c domain.WeeklyCommitment
	var weekday int
	var createdAt, updatedAt string
	if err := s.Scan(&c.ID, &c.Name, &weekday, &c.StartTime, &c.EndTime, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning commitment: %w", err)
	}
	c.Weekday = domain.Weekday(weekday)

	var err error
	if c.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
