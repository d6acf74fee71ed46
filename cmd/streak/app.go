package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rpggio/streakwatch/internal/config"
	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/rpggio/streakwatch/internal/filestore"
	"github.com/rpggio/streakwatch/internal/github"
	"github.com/rpggio/streakwatch/internal/logging"
	"github.com/rpggio/streakwatch/internal/metrics"
	"github.com/rpggio/streakwatch/internal/notify"
	"github.com/rpggio/streakwatch/internal/setup"
	"github.com/rpggio/streakwatch/internal/sqlite"
	"github.com/rpggio/streakwatch/internal/tracker"
)

// skipsSetup lists commands that run without prompting for missing
// configuration. mcp owns stdio, so it cannot host the form.
var skipsSetup = map[string]bool{
	"setup":            true,
	"mcp":              true,
	"help":             true,
	"completion":       true,
	"__complete":       true,
	"__completeNoDesc": true,
}

// errQuiet marks failures that were already reported to the user.
var errQuiet = errors.New("already reported")

// app holds the services shared by every command.
type app struct {
	cfgPath       string
	cfg           config.Config
	hasConfigFile bool
	logger        *slog.Logger
	closeLog      func() error

	db      *sqlite.DB
	store   streak.Repository
	streaks *streak.Service
	checks  *checklog.Service
	metrics *metrics.Metrics
}

func (a *app) init(cmd *cobra.Command) error {
	a.cfgPath = config.Path()

	cfg, err := config.Load(a.cfgPath)
	notConfigured := errors.Is(err, config.ErrNotConfigured)
	if err != nil && !notConfigured {
		return fmt.Errorf("config error: %w", err)
	}
	a.cfg = cfg
	a.hasConfigFile = !notConfigured

	// Logs go to stderr so stdout stays clean for command output and MCP stdio.
	logger, closeLog, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		logger, closeLog, _ = logging.New(os.Stderr, cfg.Log.Level, "")
	}
	a.logger = logger
	a.closeLog = closeLog

	if err := a.openStores(); err != nil {
		return err
	}

	if skipsSetup[cmd.Name()] || a.cfg.Configured() {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "No configuration found. Starting setup.")
	if err := a.setup(cmd.Context(), cmd); err != nil {
		return err
	}
	if !a.cfg.Configured() {
		return errQuiet
	}
	return nil
}

func (a *app) openStores() error {
	if err := ensureDBDir(a.cfg.Store.DBPath); err != nil {
		return fmt.Errorf("failed to prepare database path: %w", err)
	}
	db, err := sqlite.New(a.cfg.Store.DBPath)
	if err != nil {
		return err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	a.db = db

	switch a.cfg.Store.Backend {
	case "json":
		a.store = filestore.NewStreakStore(a.cfg.Store.JSONPath)
	default:
		a.store = sqlite.NewStreakRepository(db)
	}
	a.streaks = streak.NewService(a.store, a.logger)
	a.checks = checklog.NewService(sqlite.NewCheckLogRepository(db), a.logger)
	a.metrics = metrics.New()
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	if a.closeLog != nil {
		errs = append(errs, a.closeLog())
		a.closeLog = nil
	}
	return errors.Join(errs...)
}

// fileConfig returns the configuration on disk without env overrides, or
// nil when there is no file yet.
func (a *app) fileConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(a.cfgPath)
	if errors.Is(err, config.ErrNotConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// save writes cfg and reloads the effective configuration so env
// overrides keep applying to this process.
func (a *app) save(cfg config.Config) error {
	if err := config.Save(a.cfgPath, cfg); err != nil {
		return err
	}
	a.hasConfigFile = true
	effective, err := config.Load(a.cfgPath)
	if err != nil {
		a.logger.Warn("reload after save failed", "path", a.cfgPath, "error", err)
		effective = cfg
	}
	a.cfg = effective
	return nil
}

// update merges u into the file configuration and saves it.
func (a *app) update(u config.Update) error {
	existing, err := a.fileConfig()
	if err != nil {
		return err
	}
	return a.save(config.Apply(existing, u))
}

// setup runs the interactive wizard over the file configuration and saves
// the result.
func (a *app) setup(ctx context.Context, cmd *cobra.Command) error {
	existing, err := a.fileConfig()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "🔥 GitHub Streak Tracker Setup 🔥")

	res, err := setup.Run(ctx, setup.Form{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}, existing)
	if errors.Is(err, setup.ErrAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Setup aborted. Existing configuration preserved.")
		if existing == nil {
			return errQuiet
		}
		return nil
	}
	if err != nil {
		return err
	}

	if res.ResetStreak {
		if doc, ok := a.store.(*filestore.StreakStore); ok {
			if err := doc.Remove(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Could not delete streak file: %v\n", err)
			}
		}
		if err := a.streaks.Reset(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not delete streak records: %v\n", err)
		}
	}
	if err := a.save(res.Config); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Setup complete!")
	return nil
}

func (a *app) newTracker(out io.Writer) (*tracker.Tracker, error) {
	source, err := github.NewSource(github.Options{
		Token:             a.cfg.GitHub.Token,
		BaseURL:           a.cfg.GitHub.BaseURL,
		Timeout:           a.cfg.GitHub.Timeout,
		RequestsPerMinute: a.cfg.GitHub.RequestsPerMinute,
		Logger:            a.logger,
	})
	if err != nil {
		return nil, err
	}

	return tracker.New(tracker.Config{
		Streaks:  a.streaks,
		Checks:   a.checks,
		Source:   source,
		Notifier: notify.ForConfig(a.cfg.Reminder.Desktop, "GitHub Streak", out),
		Policy:   reminder.NewPolicy(nil),
		Clock:    streak.SystemClock{},
		Metrics:  a.metrics,
		Username: a.cfg.GitHub.Username,
		Mode:     a.cfg.Reminder.Mode,
		Logger:   a.logger,
	}), nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
