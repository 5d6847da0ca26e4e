package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
)

// SQLiteGoalRepo stores goals in goals and their ordered steps in goal_steps.
type SQLiteGoalRepo struct {
	db db.DBTX
}

func NewSQLiteGoalRepo(conn db.DBTX) *SQLiteGoalRepo {
	return &SQLiteGoalRepo{db: conn}
}

const goalColumns = `id, description, sector, preferred_time, end_date, times_per_week,
	progress, daily_time_allocation, identity_statement, habit_tips, created_at, updated_at`

func (r *SQLiteGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	tips, err := encodeStrings(g.HabitTips)
	if err != nil {
		return err
	}
	query := `INSERT INTO goals (` + goalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		g.ID,
		g.Description,
		g.Sector,
		string(g.PreferredTime),
		formatDate(g.EndDate),
		g.TimesPerWeek,
		g.Progress,
		nullableIntToValue(g.DailyTimeAllocation),
		g.IdentityStatement,
		tips,
		formatTimestamp(g.CreatedAt),
		formatTimestamp(g.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return r.insertSteps(ctx, g)
}

func (r *SQLiteGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	steps, err := r.listSteps(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Steps = steps[id]
	return g, nil
}

// List returns goals in creation order, which is the order the scheduler
// places them in.
func (r *SQLiteGoalRepo) List(ctx context.Context) ([]*domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+goalColumns+` FROM goals ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	steps, err := r.listSteps(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		g.Steps = steps[g.ID]
	}
	return goals, nil
}

func (r *SQLiteGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	tips, err := encodeStrings(g.HabitTips)
	if err != nil {
		return err
	}
	query := `UPDATE goals SET description = ?, sector = ?, preferred_time = ?, end_date = ?,
		times_per_week = ?, progress = ?, daily_time_allocation = ?, identity_statement = ?,
		habit_tips = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		g.Description,
		g.Sector,
		string(g.PreferredTime),
		formatDate(g.EndDate),
		g.TimesPerWeek,
		g.Progress,
		nullableIntToValue(g.DailyTimeAllocation),
		g.IdentityStatement,
		tips,
		formatTimestamp(g.UpdatedAt),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	if err := rowsAffected(res, "goal "+g.ID); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM goal_steps WHERE goal_id = ?`, g.ID); err != nil {
		return fmt.Errorf("clearing goal steps: %w", err)
	}
	return r.insertSteps(ctx, g)
}

func (r *SQLiteGoalRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return rowsAffected(res, "goal "+id)
}

func (r *SQLiteGoalRepo) insertSteps(ctx context.Context, g *domain.Goal) error {
	query := `INSERT INTO goal_steps (goal_id, step_index, text, duration_min, completed, habit_type, cue_stacking_idea)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i, s := range g.Steps {
		_, err := r.db.ExecContext(ctx, query,
			g.ID, i, s.Text, s.DurationMin, boolToInt(s.Completed), string(s.HabitType), s.CueStackingIdea)
		if err != nil {
			return fmt.Errorf("inserting goal step %d: %w", i, err)
		}
	}
	return nil
}

// listSteps loads steps grouped by goal id. An empty goalID loads all goals.
func (r *SQLiteGoalRepo) listSteps(ctx context.Context, goalID string) (map[string][]domain.Step, error) {
	query := `SELECT goal_id, text, duration_min, completed, habit_type, cue_stacking_idea
		FROM goal_steps`
	var args []any
	if goalID != "" {
		query += ` WHERE goal_id = ?`
		args = append(args, goalID)
	}
	query += ` ORDER BY goal_id, step_index`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing goal steps: %w", err)
	}
	defer rows.Close()

	out := map[string][]domain.Step{}
	for rows.Next() {
		var id, habit string
		var s domain.Step
		var completed int
		if err := rows.Scan(&id, &s.Text, &s.DurationMin, &completed, &habit, &s.CueStackingIdea); err != nil {
			return nil, fmt.Errorf("scanning goal step: %w", err)
		}
		s.Completed = intToBool(completed)
		s.HabitType = domain.HabitType(habit)
		out[id] = append(out[id], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal steps: %w", err)
	}
	return out, nil
}

func scanGoal(s scanner) (*domain.Goal, error) {
	var g domain.Goal
	var preferred, endDate, tips, createdAt, updatedAt string
	var allocation sql.NullInt64

	err := s.Scan(
		&g.ID, &g.Description, &g.Sector, &preferred, &endDate, &g.TimesPerWeek,
		&g.Progress, &allocation, &g.IdentityStatement, &tips, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning goal: %w", err)
	}

	g.PreferredTime = domain.PreferredTime(preferred)
	g.DailyTimeAllocation = intPtr(allocation)
	if g.EndDate, err = parseDate(endDate, "end_date"); err != nil {
		return nil, err
	}
	if g.HabitTips, err = decodeStrings(tips, "habit_tips"); err != nil {
		return nil, err
	}
	if g.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if g.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &g, nil
}
