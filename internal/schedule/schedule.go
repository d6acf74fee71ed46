package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
)

// ErrNoChecks is returned when no check times are configured.
var ErrNoChecks = errors.New("no scheduled checks configured")

// RunFunc performs one check of the given kind.
type RunFunc func(ctx context.Context, kind checklog.Kind) error

// Check is a daily trigger at a local wall-clock time ("HH:MM").
type Check struct {
	At   string
	Kind checklog.Kind
}

// Options configures a Scheduler.
type Options struct {
	Checks     []Check
	RunOnStart bool
	Location   *time.Location
	Logger     *slog.Logger
}

// Scheduler fires checks at fixed times of day. Runs never overlap.
type Scheduler struct {
	run        RunFunc
	checks     []Check
	specs      []string
	runOnStart bool
	location   *time.Location
	logger     *slog.Logger

	mu sync.Mutex
}

// New validates the configured times and returns a Scheduler.
func New(run RunFunc, opts Options) (*Scheduler, error) {
	if len(opts.Checks) == 0 {
		return nil, ErrNoChecks
	}
	specs := make([]string, 0, len(opts.Checks))
	for _, c := range opts.Checks {
		spec, err := Spec(c.At)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	location := opts.Location
	if location == nil {
		location = time.Local
	}
	return &Scheduler{
		run:        run,
		checks:     opts.Checks,
		specs:      specs,
		runOnStart: opts.RunOnStart,
		location:   location,
		logger:     logger,
	}, nil
}

// Spec converts "HH:MM" into a daily cron expression.
func Spec(at string) (string, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return "", fmt.Errorf("invalid check time %q: %w", at, err)
	}
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// Run starts the cron loop and blocks until ctx is cancelled. A failing
// check is logged and the loop keeps going.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(cronLogger{s.logger}),
		cron.WithChain(cron.Recover(cronLogger{s.logger})),
	)
	for i, check := range s.checks {
		kind := check.Kind
		if _, err := c.AddFunc(s.specs[i], func() { s.RunOnce(ctx, kind) }); err != nil {
			return fmt.Errorf("scheduling %s check: %w", kind, err)
		}
		s.logger.Info("check scheduled", "at", check.At, "kind", kind)
	}

	c.Start()
	if s.runOnStart {
		s.RunOnce(ctx, checklog.KindMorning)
	}

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// RunOnce runs a single check under the scheduler lock and reports whether
// it succeeded.
func (s *Scheduler) RunOnce(ctx context.Context, kind checklog.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return false
	}
	if err := s.run(ctx, kind); err != nil {
		s.logger.Warn("scheduled check failed", "kind", kind, "error", err)
		return false
	}
	return true
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
