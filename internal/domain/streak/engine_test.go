package streak_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/stretchr/testify/require"
)

var d = streak.MustParseDate

func recordCmp() cmp.Option {
	return cmp.AllowUnexported(streak.Date{})
}

func TestEvaluate_FirstConfirmation(t *testing.T) {
	rec := streak.NewRecord()

	out, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)
	require.True(t, out.Continued)
	require.Equal(t, 1, out.Streak)

	want := &streak.Record{
		CurrentStreak:   1,
		LongestStreak:   1,
		LastActivity:    d("2024-01-01"),
		TotalActiveDays: 1,
		History:         map[streak.Date]bool{d("2024-01-01"): true},
	}
	if diff := cmp.Diff(want, rec, recordCmp()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_ConsecutiveDaysIncrementByOne(t *testing.T) {
	rec := streak.NewRecord()
	day := d("2024-02-27")
	for i := 1; i <= 5; i++ {
		out, err := streak.Evaluate(rec, day, streak.ActivityConfirmed)
		require.NoError(t, err)
		require.Equal(t, i, out.Streak)
		require.GreaterOrEqual(t, rec.LongestStreak, rec.CurrentStreak)
		day = day.AddDays(1)
	}
	require.Equal(t, 5, rec.TotalActiveDays)
	require.Equal(t, d("2024-03-02"), rec.LastActivity)
}

func TestEvaluate_ConfirmTwiceSameDayIsIdempotent(t *testing.T) {
	rec := streak.NewRecord()
	_, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)
	before := rec.Clone()

	out, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)
	require.True(t, out.AlreadyLogged)
	require.False(t, out.Changed)
	require.Empty(t, cmp.Diff(before, rec, recordCmp()))
}

func TestEvaluate_AbsentAfterConfirmedTodayIsNoop(t *testing.T) {
	rec := streak.NewRecord()
	_, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)

	out, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityAbsent)
	require.NoError(t, err)
	require.True(t, out.AlreadyLogged)
	require.Equal(t, 1, rec.CurrentStreak)
}

func TestEvaluate_GracePeriodHoldsForOneMissedDay(t *testing.T) {
	rec := streak.NewRecord()
	_, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)

	out, err := streak.Evaluate(rec, d("2024-01-02"), streak.ActivityAbsent)
	require.NoError(t, err)
	require.False(t, out.Continued)
	require.False(t, out.Changed)
	require.Equal(t, 1, rec.CurrentStreak)

	out, err = streak.Evaluate(rec, d("2024-01-03"), streak.ActivityAbsent)
	require.NoError(t, err)
	require.True(t, out.Reset)
	require.Equal(t, 0, rec.CurrentStreak)
	require.Equal(t, 1, rec.LongestStreak)
}

func TestEvaluate_RecoveryAfterGraceDay(t *testing.T) {
	rec := streak.NewRecord()
	_, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)
	_, err = streak.Evaluate(rec, d("2024-01-02"), streak.ActivityConfirmed)
	require.NoError(t, err)
	_, err = streak.Evaluate(rec, d("2024-01-03"), streak.ActivityAbsent)
	require.NoError(t, err)
	require.Equal(t, 2, rec.CurrentStreak)

	out, err := streak.Evaluate(rec, d("2024-01-04"), streak.ActivityConfirmed)
	require.NoError(t, err)
	require.True(t, out.Continued)
	require.Equal(t, 3, rec.CurrentStreak)
	require.Equal(t, 3, rec.LongestStreak)
	require.Equal(t, 3, rec.TotalActiveDays)
	require.Equal(t, d("2024-01-04"), rec.LastActivity)
}

func TestEvaluate_ConfirmAfterResetStartsFresh(t *testing.T) {
	rec := streak.NewRecord()
	_, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)
	_, err = streak.Evaluate(rec, d("2024-01-02"), streak.ActivityAbsent)
	require.NoError(t, err)
	_, err = streak.Evaluate(rec, d("2024-01-03"), streak.ActivityAbsent)
	require.NoError(t, err)
	require.Equal(t, 0, rec.CurrentStreak)

	out, err := streak.Evaluate(rec, d("2024-01-03"), streak.ActivityConfirmed)
	require.NoError(t, err)
	require.Equal(t, 1, out.Streak)
}

func TestEvaluate_TwoMissedDaysStartsFresh(t *testing.T) {
	rec := streak.NewRecord()
	_, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)
	_, err = streak.Evaluate(rec, d("2024-01-02"), streak.ActivityConfirmed)
	require.NoError(t, err)

	out, err := streak.Evaluate(rec, d("2024-01-05"), streak.ActivityConfirmed)
	require.NoError(t, err)
	require.Equal(t, 1, out.Streak)
	require.Equal(t, 2, rec.LongestStreak)
}

func TestEvaluate_LateConfirmationSameDayKeepsStreak(t *testing.T) {
	rec := streak.NewRecord()
	_, err := streak.Evaluate(rec, d("2024-01-01"), streak.ActivityConfirmed)
	require.NoError(t, err)

	// Morning check finds nothing, evening check finds the commit.
	_, err = streak.Evaluate(rec, d("2024-01-02"), streak.ActivityAbsent)
	require.NoError(t, err)
	out, err := streak.Evaluate(rec, d("2024-01-02"), streak.ActivityConfirmed)
	require.NoError(t, err)
	require.Equal(t, 2, out.Streak)
}

func TestEvaluate_UnknownNeverMutates(t *testing.T) {
	records := map[string]*streak.Record{
		"empty": streak.NewRecord(),
		"alive": {
			CurrentStreak: 4, LongestStreak: 9, LastActivity: d("2024-01-05"), TotalActiveDays: 2,
			History: map[streak.Date]bool{d("2024-01-04"): true, d("2024-01-05"): true},
		},
		"broken": {
			CurrentStreak: 4, LongestStreak: 4, LastActivity: d("2023-12-01"), TotalActiveDays: 1,
			History: map[streak.Date]bool{d("2023-12-01"): true},
		},
	}
	for name, rec := range records {
		t.Run(name, func(t *testing.T) {
			before := rec.Clone()
			_, err := streak.Evaluate(rec, d("2024-01-06"), streak.ActivityUnknown)
			require.ErrorIs(t, err, streak.ErrActivityUnknown)
			require.Empty(t, cmp.Diff(before, rec, recordCmp()))
		})
	}
}

func TestEvaluate_AbsentTwoDaysAfterLastActivityResets(t *testing.T) {
	rec := &streak.Record{
		CurrentStreak: 5, LongestStreak: 5, LastActivity: d("2024-01-05"), TotalActiveDays: 1,
		History: map[streak.Date]bool{d("2024-01-05"): true},
	}
	out, err := streak.Evaluate(rec, d("2024-01-07"), streak.ActivityAbsent)
	require.NoError(t, err)
	require.True(t, out.Changed)
	require.Equal(t, 0, rec.CurrentStreak)
	require.Equal(t, 5, rec.LongestStreak)
}

func TestEvaluate_AbsentOneDayAfterLastActivityKeepsStreak(t *testing.T) {
	rec := &streak.Record{
		CurrentStreak: 5, LongestStreak: 5, LastActivity: d("2024-01-05"), TotalActiveDays: 1,
		History: map[streak.Date]bool{d("2024-01-05"): true},
	}
	out, err := streak.Evaluate(rec, d("2024-01-06"), streak.ActivityAbsent)
	require.NoError(t, err)
	require.False(t, out.Changed)
	require.Equal(t, 5, out.Streak)
	require.Equal(t, 5, rec.AtRisk(d("2024-01-06")))
}

func TestEvaluate_TotalMatchesDistinctDates(t *testing.T) {
	rec := streak.NewRecord()
	days := []string{"2024-01-01", "2024-01-02", "2024-01-02", "2024-01-05", "2024-01-06", "2024-01-06"}
	for _, day := range days {
		_, err := streak.Evaluate(rec, d(day), streak.ActivityConfirmed)
		require.NoError(t, err)
		require.Equal(t, len(rec.History), rec.TotalActiveDays)
	}
	require.Equal(t, 4, rec.TotalActiveDays)
	require.Equal(t, 2, rec.CurrentStreak)
}

func TestEvaluate_RejectsInvalidInput(t *testing.T) {
	_, err := streak.Evaluate(nil, d("2024-01-01"), streak.ActivityConfirmed)
	require.ErrorIs(t, err, streak.ErrInvalidInput)

	_, err = streak.Evaluate(streak.NewRecord(), streak.Date{}, streak.ActivityConfirmed)
	require.ErrorIs(t, err, streak.ErrInvalidInput)
}

func TestRecord_AtRisk(t *testing.T) {
	today := d("2024-03-10")
	cases := []struct {
		name string
		rec  streak.Record
		want int
	}{
		{"zero streak", streak.Record{CurrentStreak: 0, LastActivity: d("2024-03-09")}, 0},
		{"alive yesterday", streak.Record{CurrentStreak: 7, LastActivity: d("2024-03-09")}, 7},
		{"already today", streak.Record{CurrentStreak: 7, LastActivity: today}, 0},
		{"gap", streak.Record{CurrentStreak: 7, LastActivity: d("2024-03-07")}, 0},
		{"never", streak.Record{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.rec.AtRisk(today))
		})
	}
}
