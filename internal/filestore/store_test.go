package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/rpggio/streakwatch/internal/filestore"
	"github.com/rpggio/streakwatch/internal/repository"
	"github.com/stretchr/testify/require"
)

const legacyDocument = `{
  "current_streak": 3,
  "longest_streak": 12,
  "last_commit_date": "2024-01-05",
  "total_days": 99,
  "commit_history": {
    "2024-01-03": true,
    "2024-01-04": true,
    "2024-01-05": true
  }
}`

func TestDecode_LegacyDocument(t *testing.T) {
	rec, err := filestore.Decode([]byte(legacyDocument))
	require.NoError(t, err)
	require.Equal(t, 3, rec.CurrentStreak)
	require.Equal(t, 12, rec.LongestStreak)
	require.Equal(t, streak.MustParseDate("2024-01-05"), rec.LastActivity)
	require.Equal(t, 3, rec.TotalActiveDays, "total is recomputed from history")
}

func TestDecode_NullLastCommit(t *testing.T) {
	rec, err := filestore.Decode([]byte(`{"current_streak":0,"longest_streak":0,"last_commit_date":null,"total_days":0,"commit_history":{}}`))
	require.NoError(t, err)
	require.True(t, rec.LastActivity.IsZero())
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := filestore.Decode([]byte(`{"current_streak": 3,`))
	require.ErrorIs(t, err, repository.ErrCorrupt)

	_, err = filestore.Decode([]byte(`{"commit_history": {"soon": true}}`))
	require.ErrorIs(t, err, repository.ErrCorrupt)
}

func TestEncode_UsesLegacyFieldNames(t *testing.T) {
	rec := streak.NewRecord()
	_, err := streak.Evaluate(rec, streak.MustParseDate("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)

	data, err := filestore.Encode(rec)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"current_streak": 1,
		"longest_streak": 1,
		"last_commit_date": "2024-01-01",
		"total_days": 1,
		"commit_history": {"2024-01-01": true}
	}`, string(data))

	data, err = filestore.Encode(streak.NewRecord())
	require.NoError(t, err)
	require.Contains(t, string(data), `"last_commit_date": null`)
}

func TestStreakStore_MissingFileIsEmpty(t *testing.T) {
	store := filestore.NewStreakStore(filepath.Join(t.TempDir(), "streak.json"))
	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, rec.CurrentStreak)
	require.Empty(t, rec.History)
}

func TestStreakStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "streak.json")
	store := filestore.NewStreakStore(path)

	rec := streak.NewRecord()
	for _, day := range []string{"2024-01-01", "2024-01-02"} {
		_, err := streak.Evaluate(rec, streak.MustParseDate(day), streak.ActivityConfirmed)
		require.NoError(t, err)
	}
	require.NoError(t, store.Save(ctx, rec))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.CurrentStreak)
	require.Equal(t, rec.ActiveDays(), loaded.ActiveDays())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestStreakStore_CorruptFileFailsLoudly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streak.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := filestore.NewStreakStore(path).Load(context.Background())
	require.ErrorIs(t, err, repository.ErrCorrupt)
}

func TestStreakStore_Remove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streak.json")
	store := filestore.NewStreakStore(path)
	require.NoError(t, store.Remove())
	require.NoError(t, store.Save(context.Background(), streak.NewRecord()))
	require.NoError(t, store.Remove())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
