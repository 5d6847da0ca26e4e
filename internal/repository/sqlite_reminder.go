package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
)

type SQLiteReminderRepo struct {
	db db.DBTX
}

func NewSQLiteReminderRepo(conn db.DBTX) *SQLiteReminderRepo {
	return &SQLiteReminderRepo{db: conn}
}

const reminderColumns = `id, task_id, task_name, duration_min, fire_at, kind, source, notification_id, created_at`

func (r *SQLiteReminderRepo) Create(ctx context.Context, rem *domain.TaskReminder) error {
	query := `INSERT INTO task_reminders (` + reminderColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rem.ID, rem.TaskID, rem.TaskName, rem.DurationMin,
		rem.FireAt.UTC().Format(time.RFC3339), string(rem.Kind), string(rem.Source),
		rem.NotificationID, formatTimestamp(rem.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting reminder: %w", err)
	}
	return nil
}

// List orders reminders by fire time.
func (r *SQLiteReminderRepo) List(ctx context.Context) ([]*domain.TaskReminder, error) {
	return r.query(ctx, `SELECT `+reminderColumns+` FROM task_reminders ORDER BY fire_at, kind, id`)
}

func (r *SQLiteReminderRepo) ListBySource(ctx context.Context, source domain.ReminderSource) ([]*domain.TaskReminder, error) {
	return r.query(ctx, `SELECT `+reminderColumns+` FROM task_reminders WHERE source = ? ORDER BY fire_at, kind, id`, string(source))
}

func (r *SQLiteReminderRepo) DeleteBySource(ctx context.Context, source domain.ReminderSource) (int, error) {
	return r.delete(ctx, `DELETE FROM task_reminders WHERE source = ?`, string(source))
}

func (r *SQLiteReminderRepo) DeleteAll(ctx context.Context) (int, error) {
	return r.delete(ctx, `DELETE FROM task_reminders`)
}

func (r *SQLiteReminderRepo) delete(ctx context.Context, query string, args ...any) (int, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting reminders: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting reminders: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteReminderRepo) query(ctx context.Context, query string, args ...any) ([]*domain.TaskReminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	defer rows.Close()

	var out []*domain.TaskReminder
	for rows.Next() {
		var rem domain.TaskReminder
		var fireAt, kind, source, createdAt string
		if err := rows.Scan(&rem.ID, &rem.TaskID, &rem.TaskName, &rem.DurationMin,
			&fireAt, &kind, &source, &rem.NotificationID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning reminder: %w", err)
		}
		rem.Kind = domain.ReminderKind(kind)
		rem.Source = domain.ReminderSource(source)
		if rem.FireAt, err = parseTimestamp(fireAt, "fire_at"); err != nil {
			return nil, err
		}
		if rem.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
			return nil, err
		}
		out = append(out, &rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminders: %w", err)
	}
	return out, nil
}
