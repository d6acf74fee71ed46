package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/rpggio/streakwatch/internal/metrics"
	"github.com/rpggio/streakwatch/internal/notify"
)

const successTitle = "GitHub Streak"

// ActivitySource answers whether the user was active on the day of now.
type ActivitySource interface {
	HasActivityToday(ctx context.Context, username string, now time.Time) (streak.ActivityResult, error)
}

// Config wires a Tracker.
type Config struct {
	Streaks  *streak.Service
	Checks   *checklog.Service
	Source   ActivitySource
	Notifier notify.Notifier
	Policy   *reminder.Policy
	Clock    streak.Clock
	Metrics  *metrics.Metrics
	Username string
	Mode     reminder.Mode
	Logger   *slog.Logger
}

// Report describes the result of one check.
type Report struct {
	Kind     checklog.Kind
	Date     streak.Date
	Result   streak.ActivityResult
	Outcome  checklog.Outcome
	Streak   int
	Longest  int
	AtRisk   int
	Title    string
	Headline string
	Message  string
	Notified bool
}

// Tracker runs activity checks against the streak record.
type Tracker struct {
	streaks  *streak.Service
	checks   *checklog.Service
	source   ActivitySource
	notifier notify.Notifier
	policy   *reminder.Policy
	clock    streak.Clock
	metrics  *metrics.Metrics
	username string
	logger   *slog.Logger

	mu   sync.RWMutex
	mode reminder.Mode
}

// New creates a tracker from cfg.
func New(cfg Config) *Tracker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = streak.SystemClock{}
	}
	policy := cfg.Policy
	if policy == nil {
		policy = reminder.NewPolicy(nil)
	}
	mode := cfg.Mode
	if mode == "" {
		mode = reminder.ModeNormal
	}
	return &Tracker{
		streaks:  cfg.Streaks,
		checks:   cfg.Checks,
		source:   cfg.Source,
		notifier: cfg.Notifier,
		policy:   policy,
		clock:    clock,
		metrics:  cfg.Metrics,
		username: cfg.Username,
		logger:   logger,
		mode:     mode,
	}
}

// Mode returns the current reminder tone.
func (t *Tracker) Mode() reminder.Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// SetMode swaps the reminder tone used by later checks.
func (t *Tracker) SetMode(mode reminder.Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mode != mode {
		t.logger.Info("reminder mode changed", "from", t.mode, "to", mode)
	}
	t.mode = mode
}

// Check runs a single activity check. A transient source failure returns
// an error wrapping streak.ErrActivityUnknown and leaves the record alone.
func (t *Tracker) Check(ctx context.Context, kind checklog.Kind) (Report, error) {
	now := t.clock.Now()
	today := t.clock.Today()
	report := Report{Kind: kind, Date: today}

	rec, err := t.streaks.Record(ctx)
	if err != nil {
		return report, err
	}

	if rec.HasActivity(today) {
		report.Outcome = checklog.OutcomeAlreadyLogged
		report.Result = streak.ActivityConfirmed
		report.Streak = rec.CurrentStreak
		report.Longest = rec.LongestStreak
		report.Message = fmt.Sprintf("Already committed today! Streak: %s 🔥", dayCount(rec.CurrentStreak))
		t.logger.Info("activity already logged", "kind", kind, "streak", rec.CurrentStreak)
		t.finish(ctx, &report, now)
		return report, nil
	}

	result, srcErr := t.source.HasActivityToday(ctx, t.username, now)
	if srcErr != nil || result == streak.ActivityUnknown {
		report.Result = streak.ActivityUnknown
		report.Outcome = checklog.OutcomeUnknown
		report.Streak = rec.CurrentStreak
		report.Longest = rec.LongestStreak
		report.Message = "Could not check GitHub. Check your connection."
		t.logger.Warn("could not check activity", "kind", kind, "error", srcErr)
		t.finish(ctx, &report, now)
		if srcErr != nil {
			return report, fmt.Errorf("%w: %w", streak.ErrActivityUnknown, srcErr)
		}
		return report, streak.ErrActivityUnknown
	}

	out, rec, err := t.streaks.EvaluateDay(ctx, today, result)
	if err != nil {
		return report, err
	}
	report.Result = result
	report.Streak = out.Streak
	report.Longest = rec.LongestStreak

	if result == streak.ActivityConfirmed {
		report.Outcome = checklog.OutcomeConfirmed
		report.Title = successTitle
		report.Message = successMessage(kind, out.Streak)
		t.logger.Info("activity detected", "kind", kind, "streak", out.Streak)
	} else {
		report.Outcome = checklog.OutcomeAbsent
		if out.Reset {
			report.Outcome = checklog.OutcomeReset
		}
		report.AtRisk = rec.AtRisk(today)
		r := t.policy.Build(report.AtRisk, t.Mode(), kind, today)
		report.Title = r.Title
		report.Headline = r.Headline
		report.Message = r.Text
		t.logger.Info("no activity today", "kind", kind, "streak", out.Streak, "at_risk", report.AtRisk)
	}

	report.Notified = notify.Deliver(t.logger, t.notifier, report.Title, report.Message)
	if !report.Notified && t.notifier != nil {
		t.metrics.NotificationFailed()
	}
	t.finish(ctx, &report, now)
	return report, nil
}

// finish appends the check to the log and updates metrics. Log failures
// do not fail the check.
func (t *Tracker) finish(ctx context.Context, report *Report, now time.Time) {
	t.metrics.ObserveCheck(string(report.Kind), string(report.Outcome), report.Streak, report.Longest, now)
	if t.checks == nil {
		return
	}
	entry := &checklog.Entry{
		Kind:      report.Kind,
		Outcome:   report.Outcome,
		Streak:    report.Streak,
		Message:   report.Message,
		CreatedAt: now,
	}
	if err := t.checks.Record(ctx, entry); err != nil {
		t.logger.Warn("failed to record check", "kind", report.Kind, "error", err)
	}
}

func successMessage(kind checklog.Kind, streakDays int) string {
	if kind == checklog.KindEvening {
		return fmt.Sprintf("Last minute commit! Streak saved: %s 🔥", dayCount(streakDays))
	}
	return fmt.Sprintf("Activity detected! Current streak: %s 🔥", dayCount(streakDays))
}

func dayCount(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
