package reminder_test

import (
	"strings"
	"testing"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/stretchr/testify/require"
)

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

type countingRand struct {
	calls []int
}

func (c *countingRand) IntN(n int) int {
	c.calls = append(c.calls, n)
	return n - 1
}

func TestParseMode(t *testing.T) {
	mode, err := reminder.ParseMode(" Strict ")
	require.NoError(t, err)
	require.Equal(t, reminder.ModeStrict, mode)

	_, err = reminder.ParseMode("gentle")
	require.ErrorIs(t, err, reminder.ErrInvalidMode)
}

func TestSelect_PrefixesDateAndFillsCount(t *testing.T) {
	policy := reminder.NewPolicy(fixedRand(0))
	today := streak.MustParseDate("2024-01-06")

	msg := policy.Select(5, reminder.ModeNormal, today)
	require.True(t, strings.HasPrefix(msg, "2024-01-06 - "))
	require.Contains(t, msg, "5 days")
	require.NotContains(t, msg, "{days}")
}

func TestSelect_SingularForOneDay(t *testing.T) {
	policy := reminder.NewPolicy(fixedRand(0))
	msg := policy.Select(1, reminder.ModeStrict, streak.MustParseDate("2024-01-06"))
	require.Contains(t, msg, "1 day")
	require.NotContains(t, msg, "1 days")
}

func TestSelect_DrawsOverWholeCatalogue(t *testing.T) {
	for _, mode := range []reminder.Mode{reminder.ModeNormal, reminder.ModeStrict} {
		for _, atRisk := range []int{0, 1, 12} {
			rng := &countingRand{}
			policy := reminder.NewPolicy(rng)
			policy.Select(atRisk, mode, streak.MustParseDate("2024-01-06"))
			require.Equal(t, []int{len(reminder.Templates(atRisk, mode))}, rng.calls)
		}
	}
}

func TestSelect_EveryTemplateReachable(t *testing.T) {
	seen := map[string]bool{}
	templates := reminder.Templates(3, reminder.ModeNormal)
	for i := range templates {
		msg := reminder.NewPolicy(fixedRand(i)).Select(3, reminder.ModeNormal, streak.MustParseDate("2024-01-06"))
		seen[msg] = true
	}
	require.Len(t, seen, len(templates))
}

func TestTemplates_ZeroUsesFreshStartCatalogue(t *testing.T) {
	for _, mode := range []reminder.Mode{reminder.ModeNormal, reminder.ModeStrict} {
		for _, tmpl := range reminder.Templates(0, mode) {
			require.NotContains(t, tmpl, "{days}")
		}
		for _, tmpl := range reminder.Templates(2, mode) {
			require.Contains(t, tmpl, "{days}")
		}
	}
}

func TestTemplates_StrictAlwaysCallsToAct(t *testing.T) {
	for _, atRisk := range []int{0, 1, 7} {
		for _, tmpl := range reminder.Templates(atRisk, reminder.ModeStrict) {
			require.Contains(t, tmpl, "NOW", tmpl)
		}
	}
	for _, atRisk := range []int{0, 1, 3, 7, 15, 25, 40, 100} {
		require.Contains(t, reminder.Headline(atRisk, reminder.ModeStrict), "NOW")
	}
}

func TestHeadline_Buckets(t *testing.T) {
	cases := []struct {
		atRisk int
		want   string
	}{
		{0, "Start your GitHub streak"},
		{1, "1 day streak!"},
		{2, "2 day streak!"},
		{4, "4 day streak!"},
		{5, "5 days! You're on fire"},
		{9, "9 days! You're on fire"},
		{10, "10 days! This is becoming a habit"},
		{19, "19 days! This is becoming a habit"},
		{20, "20 days! You're a GitHub legend"},
		{30, "30 DAYS! Incredible dedication"},
		{49, "49 DAYS! Incredible dedication"},
		{50, "50 DAYS! You're unstoppable"},
		{365, "365 DAYS! You're unstoppable"},
	}
	for _, tc := range cases {
		require.Contains(t, reminder.Headline(tc.atRisk, reminder.ModeNormal), tc.want, "at risk %d", tc.atRisk)
	}
	require.NotEqual(t, reminder.Headline(1, reminder.ModeStrict), reminder.Headline(2, reminder.ModeStrict))
}

func TestTitle(t *testing.T) {
	require.Contains(t, reminder.Title(reminder.ModeStrict, checklog.KindEvening), "URGENT")
	require.Equal(t, "GitHub Streak Reminder", reminder.Title(reminder.ModeStrict, checklog.KindMorning))
	require.Equal(t, "GitHub Streak Reminder", reminder.Title(reminder.ModeNormal, checklog.KindEvening))
}

func TestBuild(t *testing.T) {
	r := reminder.NewPolicy(fixedRand(2)).Build(6, reminder.ModeNormal, checklog.KindAfternoon, streak.MustParseDate("2024-01-06"))
	require.Equal(t, "GitHub Streak Reminder", r.Title)
	require.Contains(t, r.Headline, "6 days")
	require.True(t, strings.HasPrefix(r.Text, "2024-01-06 - "))
}
