package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
)

// SQLiteTaskRepo stores the persisted daily schedule in daily_tasks.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, date, name, start_time, end_time, duration_min, kind, completed,
	goal_id, step_index, sector, priority, proof, attachments, completed_at, created_at, updated_at`

func (r *SQLiteTaskRepo) Upsert(ctx context.Context, t *domain.ScheduledTask) error {
	attachments, err := encodeStrings(t.Attachments)
	if err != nil {
		return err
	}
	var goalID any
	if t.GoalID != "" {
		goalID = t.GoalID
	}

	query := `INSERT INTO daily_tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			name = excluded.name,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			duration_min = excluded.duration_min,
			kind = excluded.kind,
			goal_id = excluded.goal_id,
			step_index = excluded.step_index,
			sector = excluded.sector,
			priority = excluded.priority,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		formatDate(t.Date),
		t.Name,
		t.StartTime,
		t.EndTime,
		t.DurationMin,
		string(t.Kind),
		boolToInt(t.Completed),
		goalID,
		nullableIntToValue(t.StepIndex),
		t.Sector,
		nullableFloatToValue(t.Priority),
		t.Proof,
		attachments,
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting task %s: %w", t.ID, err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.ScheduledTask, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM daily_tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

// ListByDate returns the day's tasks by start time. Zero-padded HH:MM sorts
// correctly as text.
func (r *SQLiteTaskRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.ScheduledTask, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM daily_tasks
		WHERE date = ? ORDER BY start_time, end_time, id`, formatDate(date))
}

func (r *SQLiteTaskRepo) ListByGoal(ctx context.Context, goalID string) ([]*domain.ScheduledTask, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM daily_tasks
		WHERE goal_id = ? ORDER BY date, start_time, id`, goalID)
}

func (r *SQLiteTaskRepo) MarkCompleted(ctx context.Context, t *domain.ScheduledTask) error {
	attachments, err := encodeStrings(t.Attachments)
	if err != nil {
		return err
	}
	query := `UPDATE daily_tasks SET completed = 1, proof = ?, attachments = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Proof,
		attachments,
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		formatTimestamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	return rowsAffected(res, "task "+t.ID)
}

func (r *SQLiteTaskRepo) DeleteStale(ctx context.Context, date time.Time, keep []string) (int, error) {
	query := `DELETE FROM daily_tasks
		WHERE date = ? AND completed = 0 AND kind IN ('goal-step', 'weekly-factor')`
	args := []any{formatDate(date)}
	if len(keep) > 0 {
		query += ` AND id NOT IN (` + strings.TrimSuffix(strings.Repeat("?,", len(keep)), ",") + `)`
		for _, id := range keep {
			args = append(args, id)
		}
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting stale tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting stale tasks: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return rowsAffected(res, "task "+id)
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]*domain.ScheduledTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var out []*domain.ScheduledTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return out, nil
}

func scanTask(s scanner) (*domain.ScheduledTask, error) {
	var t domain.ScheduledTask
	var date, kind, attachments, createdAt, updatedAt string
	var completed int
	var goalID, completedAt sql.NullString
	var stepIndex sql.NullInt64
	var priority sql.NullFloat64

	err := s.Scan(
		&t.ID, &date, &t.Name, &t.StartTime, &t.EndTime, &t.DurationMin, &kind, &completed,
		&goalID, &stepIndex, &t.Sector, &priority, &t.Proof, &attachments, &completedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Kind = domain.TaskKind(kind)
	t.Completed = intToBool(completed)
	t.GoalID = goalID.String
	t.StepIndex = intPtr(stepIndex)
	t.Priority = floatPtr(priority)
	t.CompletedAt = parseNullableTime(completedAt, time.RFC3339)

	if t.Date, err = parseDate(date, "date"); err != nil {
		return nil, err
	}
	if t.Attachments, err = decodeStrings(attachments, "attachments"); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &t, nil
}
