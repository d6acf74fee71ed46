package streak_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/stretchr/testify/require"
)

func TestDate_ParseAndFormat(t *testing.T) {
	day, err := streak.ParseDate("2024-02-29")
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", day.String())
	require.Equal(t, "2024-03-01", day.AddDays(1).String())
	require.Equal(t, "2023-12-31", streak.MustParseDate("2024-01-01").AddDays(-1).String())

	_, err = streak.ParseDate("2024-13-01")
	require.ErrorIs(t, err, streak.ErrInvalidDate)
}

func TestDate_OfUsesLocation(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*3600)
	utc := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-01-01", streak.DateOf(utc.In(zone)).String())
	require.Equal(t, "2024-01-02", streak.DateOf(utc).String())
}

func TestDate_ZeroValue(t *testing.T) {
	var zero streak.Date
	require.True(t, zero.IsZero())
	require.Equal(t, "", zero.String())
	require.True(t, streak.MustParseDate("2024-01-01").Before(streak.MustParseDate("2024-01-02")))
}

func TestDate_JSONMapKeys(t *testing.T) {
	history := map[streak.Date]bool{streak.MustParseDate("2024-01-05"): true}
	data, err := json.Marshal(history)
	require.NoError(t, err)
	require.JSONEq(t, `{"2024-01-05":true}`, string(data))

	var decoded map[streak.Date]bool
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded[streak.MustParseDate("2024-01-05")])
}

func TestFixedClockOn(t *testing.T) {
	clock := streak.FixedClockOn(streak.MustParseDate("2024-02-29"))
	require.Equal(t, "2024-02-29", clock.Today().String())
	require.Equal(t, 12, clock.Now().Hour())
}

func TestSystemClock_UsesLocation(t *testing.T) {
	zone := time.FixedZone("UTC+14", 14*60*60)
	clock := streak.SystemClock{Location: zone}
	require.Equal(t, zone, clock.Now().Location())
	require.Equal(t, streak.DateOf(clock.Now()), clock.Today())
}
