package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/repository"
)

// CheckLogRepository implements repository.CheckLogRepository for SQLite
type CheckLogRepository struct {
	db *DB
}

// NewCheckLogRepository creates a new CheckLogRepository
func NewCheckLogRepository(db *DB) *CheckLogRepository {
	return &CheckLogRepository{db: db}
}

// Append inserts a new check log entry
func (r *CheckLogRepository) Append(ctx context.Context, entry *checklog.Entry) error {
	if entry == nil {
		return repository.ErrInvalidInput
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO check_log (run_id, kind, outcome, streak, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		entry.RunID,
		entry.Kind,
		entry.Outcome,
		entry.Streak,
		entry.Message,
		createdAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
		}
		return fmt.Errorf("failed to append check: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}
	entry.CreatedAt = createdAt

	return nil
}

// List returns check log entries matching the given filters, newest first
func (r *CheckLogRepository) List(ctx context.Context, opts checklog.ListOptions) ([]checklog.Entry, error) {
	query := `
		SELECT id, run_id, kind, outcome, streak, message, created_at
		FROM check_log
	`

	args := []any{}
	conditions := []string{}

	if opts.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, *opts.Kind)
	}
	if opts.Outcome != nil {
		conditions = append(conditions, "outcome = ?")
		args = append(args, *opts.Outcome)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	var entries []checklog.Entry
	for rows.Next() {
		var entry checklog.Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.RunID,
			&entry.Kind,
			&entry.Outcome,
			&entry.Streak,
			&entry.Message,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan check entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check rows: %w", err)
	}

	return entries, nil
}
