package repository

import (
	"context"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/streak"
)

// StreakRepository manages streak record persistence
type StreakRepository interface {
	Load(ctx context.Context) (*streak.Record, error)
	Save(ctx context.Context, rec *streak.Record) error
}

// CheckLogRepository manages check log persistence
type CheckLogRepository interface {
	Append(ctx context.Context, entry *checklog.Entry) error
	List(ctx context.Context, opts checklog.ListOptions) ([]checklog.Entry, error)
}
