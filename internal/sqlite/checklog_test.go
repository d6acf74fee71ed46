package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/stretchr/testify/require"
)

func TestCheckLogRepository_AppendList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCheckLogRepository(db)

	base := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	entry1 := &checklog.Entry{
		RunID:     "run-1",
		Kind:      checklog.KindMorning,
		Outcome:   checklog.OutcomeAbsent,
		Streak:    4,
		Message:   "2024-01-06 - keep going",
		CreatedAt: base,
	}
	entry2 := &checklog.Entry{
		RunID:     "run-2",
		Kind:      checklog.KindEvening,
		Outcome:   checklog.OutcomeConfirmed,
		Streak:    5,
		CreatedAt: base.Add(11 * time.Hour),
	}

	require.NoError(t, repo.Append(ctx, entry1))
	require.NoError(t, repo.Append(ctx, entry2))
	require.NotZero(t, entry1.ID)

	entries, err := repo.List(ctx, checklog.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "run-2", entries[0].RunID)
	require.Equal(t, "run-1", entries[1].RunID)
	require.Equal(t, entry1.Message, entries[1].Message)
}

func TestCheckLogRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCheckLogRepository(db)

	base := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	outcomes := []checklog.Outcome{checklog.OutcomeAbsent, checklog.OutcomeUnknown, checklog.OutcomeAbsent, checklog.OutcomeConfirmed}
	for i, outcome := range outcomes {
		require.NoError(t, repo.Append(ctx, &checklog.Entry{
			RunID:     "run",
			Kind:      checklog.KindManual,
			Outcome:   outcome,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	absent := checklog.OutcomeAbsent
	entries, err := repo.List(ctx, checklog.ListOptions{Outcome: &absent})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = repo.List(ctx, checklog.ListOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, checklog.OutcomeAbsent, entries[0].Outcome)

	entries, err = repo.List(ctx, checklog.ListOptions{Offset: 3})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	evening := checklog.KindEvening
	entries, err = repo.List(ctx, checklog.ListOptions{Kind: &evening})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestCheckLogRepository_RejectsUnknownKind(t *testing.T) {
	db := NewTestDB(t)
	err := NewCheckLogRepository(db).Append(context.Background(), &checklog.Entry{
		RunID:   "run",
		Kind:    checklog.Kind("midnight"),
		Outcome: checklog.OutcomeAbsent,
	})
	require.Error(t, err)
}
