package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

const profileID = "default"

func (r *SQLiteUserProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	query := `SELECT id, leisure_points, auto_schedule_reminders, initialized, updated_at
		FROM user_profile WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, profileID)

	var p domain.UserProfile
	var reminders, initialized int
	var updatedAt string
	if err := row.Scan(&p.ID, &p.LeisurePoints, &reminders, &initialized, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}
	p.AutoScheduleReminders = intToBool(reminders)
	p.Initialized = intToBool(initialized)
	if updatedAt != "" {
		t, err := parseTimestamp(updatedAt, "updated_at")
		if err != nil {
			return nil, err
		}
		p.UpdatedAt = t
	}
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	id := p.ID
	if id == "" {
		id = profileID
	}
	query := `INSERT OR REPLACE INTO user_profile (id, leisure_points, auto_schedule_reminders, initialized, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		id,
		p.LeisurePoints,
		boolToInt(p.AutoScheduleReminders),
		boolToInt(p.Initialized),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}

// AddPoints applies delta in a single statement. A delta that would take
// the balance below zero fails the CHECK constraint.
func (r *SQLiteUserProfileRepo) AddPoints(ctx context.Context, delta float64) (float64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_profile SET leisure_points = leisure_points + ?, updated_at = ? WHERE id = ?`,
		delta, formatTimestamp(time.Now()), profileID)
	if err != nil {
		return 0, fmt.Errorf("adjusting leisure points: %w", err)
	}
	if err := rowsAffected(res, "user profile"); err != nil {
		return 0, err
	}

	var balance float64
	if err := r.db.QueryRowContext(ctx, `SELECT leisure_points FROM user_profile WHERE id = ?`, profileID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("reading leisure points: %w", err)
	}
	return balance, nil
}
