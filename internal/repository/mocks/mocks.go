package mocks

import (
	"context"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/stretchr/testify/mock"
)

// StreakRepository is a mock for repository.StreakRepository.
type StreakRepository struct {
	mock.Mock
}

func (m *StreakRepository) Load(ctx context.Context) (*streak.Record, error) {
	args := m.Called(ctx)
	if rec, ok := args.Get(0).(*streak.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StreakRepository) Save(ctx context.Context, rec *streak.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// CheckLogRepository is a mock for repository.CheckLogRepository.
type CheckLogRepository struct {
	mock.Mock
}

func (m *CheckLogRepository) Append(ctx context.Context, entry *checklog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *CheckLogRepository) List(ctx context.Context, opts checklog.ListOptions) ([]checklog.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]checklog.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
