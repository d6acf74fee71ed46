package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/rpggio/streakwatch/internal/tracker"
)

var (
	accent = lipgloss.Color("212")
	subtle = lipgloss.Color("241")
	warn   = lipgloss.Color("214")
	good   = lipgloss.Color("42")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle  = lipgloss.NewStyle().Width(19).Foreground(subtle)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
	warnStyle = lipgloss.NewStyle().Bold(true).Foreground(warn)
	goodStyle = lipgloss.NewStyle().Bold(true).Foreground(good)
	dimStyle  = lipgloss.NewStyle().Foreground(subtle)
)

// Stats renders the streak statistics panel.
func Stats(rec *streak.Record, mode reminder.Mode) string {
	last := "Never"
	if !rec.LastActivity.IsZero() {
		last = rec.LastActivity.String()
	}
	rows := []string{
		headerStyle.Render("📊 YOUR GITHUB STREAK STATS"),
		"",
		row("Current Streak:", fmt.Sprintf("%d days 🔥", rec.CurrentStreak)),
		row("Longest Streak:", fmt.Sprintf("%d days 🏆", rec.LongestStreak)),
		row("Total Active Days:", fmt.Sprintf("%d days", rec.TotalActiveDays)),
		row("Last Commit:", last),
		row("Reminder Mode:", strings.ToUpper(mode.String())),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// CheckHeader renders the banner printed before a check.
func CheckHeader(kind checklog.Kind, at time.Time) string {
	title := fmt.Sprintf("%s Check - %s", titleCase(string(kind)), at.Format("2006-01-02 15:04"))
	return headerStyle.Render(strings.Repeat("=", 50) + "\n" + title + "\n" + strings.Repeat("=", 50))
}

// Report renders the terminal summary of a finished check.
func Report(r tracker.Report) string {
	switch r.Outcome {
	case checklog.OutcomeConfirmed, checklog.OutcomeAlreadyLogged:
		return goodStyle.Render("✓ " + r.Message)
	case checklog.OutcomeUnknown:
		return warnStyle.Render("⚠️  " + r.Message)
	default:
		lines := []string{
			warnStyle.Render("⚠️  NO ACTIVITY TODAY"),
			fmt.Sprintf("Current streak: %d days", r.Streak),
		}
		if r.Headline != "" {
			lines = append(lines, valueStyle.Render(r.Headline))
		}
		lines = append(lines, "", r.Message)
		return strings.Join(lines, "\n")
	}
}

// History renders check log entries as a table, newest first.
func History(entries []checklog.Entry) string {
	if len(entries) == 0 {
		return dimStyle.Render("No checks recorded yet.")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-17s %-10s %-15s %6s", "WHEN", "KIND", "OUTCOME", "STREAK")))
	for _, e := range entries {
		b.WriteString("\n")
		line := fmt.Sprintf("%-17s %-10s %-15s %6d", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Kind, e.Outcome, e.Streak)
		switch e.Outcome {
		case checklog.OutcomeConfirmed, checklog.OutcomeAlreadyLogged:
			b.WriteString(goodStyle.Render(line))
		case checklog.OutcomeUnknown, checklog.OutcomeReset:
			b.WriteString(warnStyle.Render(line))
		default:
			b.WriteString(line)
		}
	}
	return b.String()
}

// Banner renders the scheduled-loop start-up text.
func Banner(mode reminder.Mode, checks []string) string {
	lines := []string{
		headerStyle.Render("🔥 GitHub Streak Tracker Running 🔥"),
		"Mode: " + strings.ToUpper(mode.String()),
		"",
		"Scheduled checks:",
	}
	for _, c := range checks {
		lines = append(lines, "  • "+c)
	}
	lines = append(lines, "", dimStyle.Render("Press Ctrl+C to stop"))
	return strings.Join(lines, "\n")
}

// Farewell is printed when the scheduled loop is interrupted.
func Farewell() string {
	return "👋 Streak tracker stopped. Don't forget to commit today!"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
