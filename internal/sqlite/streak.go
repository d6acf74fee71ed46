package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/rpggio/streakwatch/internal/repository"
)

// StreakRepository implements repository.StreakRepository for SQLite
type StreakRepository struct {
	db *DB
}

// NewStreakRepository creates a new StreakRepository
func NewStreakRepository(db *DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// Load reads the streak record, returning an empty record if none is stored
func (r *StreakRepository) Load(ctx context.Context) (*streak.Record, error) {
	rec := streak.NewRecord()

	var lastActivity sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT current_streak, longest_streak, last_activity_date
		FROM streak_state
		WHERE id = 1
	`).Scan(&rec.CurrentStreak, &rec.LongestStreak, &lastActivity)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load streak state: %w", err)
	}
	if lastActivity.Valid && lastActivity.String != "" {
		day, err := streak.ParseDate(lastActivity.String)
		if err != nil {
			return nil, fmt.Errorf("%w: last activity date: %v", repository.ErrCorrupt, err)
		}
		rec.LastActivity = day
	}

	days, err := r.loadDays(ctx, r.db)
	if err != nil {
		return nil, err
	}
	for _, day := range days {
		rec.History[day] = true
	}
	rec.TotalActiveDays = len(rec.History)

	return rec, nil
}

// Save writes the streak record and its activity days in one transaction
func (r *StreakRepository) Save(ctx context.Context, rec *streak.Record) error {
	if rec == nil {
		return repository.ErrInvalidInput
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lastActivity any
	if !rec.LastActivity.IsZero() {
		lastActivity = rec.LastActivity.String()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO streak_state (id, current_streak, longest_streak, last_activity_date, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_activity_date = excluded.last_activity_date,
			updated_at = excluded.updated_at
	`, rec.CurrentStreak, rec.LongestStreak, lastActivity, time.Now())
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
		}
		return fmt.Errorf("failed to save streak state: %w", err)
	}

	stored, err := r.loadDays(ctx, tx)
	if err != nil {
		return err
	}
	existing := make(map[streak.Date]bool, len(stored))
	for _, day := range stored {
		existing[day] = true
		if !rec.History[day] {
			if _, err := tx.ExecContext(ctx, `DELETE FROM activity_days WHERE day = ?`, day.String()); err != nil {
				return fmt.Errorf("failed to remove activity day: %w", err)
			}
		}
	}
	for _, day := range rec.ActiveDays() {
		if existing[day] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO activity_days (day) VALUES (?)`, day.String()); err != nil {
			return fmt.Errorf("failed to insert activity day: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit streak: %w", err)
	}

	rec.TotalActiveDays = len(rec.History)
	return nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *StreakRepository) loadDays(ctx context.Context, q queryer) ([]streak.Date, error) {
	rows, err := q.QueryContext(ctx, `SELECT day FROM activity_days ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity days: %w", err)
	}
	defer rows.Close()

	var days []streak.Date
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan activity day: %w", err)
		}
		day, err := streak.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: activity day: %v", repository.ErrCorrupt, err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity days: %w", err)
	}
	return days, nil
}
