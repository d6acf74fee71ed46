package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rpggio/streakwatch/internal/config"
	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/rpggio/streakwatch/internal/filestore"
	"github.com/rpggio/streakwatch/internal/mcp"
	"github.com/rpggio/streakwatch/internal/schedule"
	"github.com/rpggio/streakwatch/internal/ui"
)

func runCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the scheduled check loop (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE:  a.runLoop,
	}
}

func (a *app) runLoop(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	t, err := a.newTracker(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	checks := make([]schedule.Check, 0, len(a.cfg.Schedule.Checks))
	labels := make([]string, 0, len(a.cfg.Schedule.Checks))
	for _, c := range a.cfg.Schedule.Checks {
		kind := checklog.ParseKind(c.Kind)
		checks = append(checks, schedule.Check{At: c.At, Kind: kind})
		labels = append(labels, fmt.Sprintf("%s: %s", kind, c.At))
	}

	sched, err := schedule.New(func(ctx context.Context, kind checklog.Kind) error {
		fmt.Fprintln(out, ui.CheckHeader(kind, time.Now()))
		report, err := t.Check(ctx, kind)
		if report.Outcome != "" {
			fmt.Fprintln(out, ui.Report(report))
		}
		return err
	}, schedule.Options{
		Checks:     checks,
		RunOnStart: a.cfg.Schedule.RunOnStart,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, ui.Banner(t.Mode(), labels))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return sched.Run(ctx)
	})
	g.Go(sideTask(a.logger, "config watch", func() error {
		return config.Watch(ctx, a.cfgPath, a.logger, func(cfg config.Config) {
			t.SetMode(cfg.Reminder.Mode)
		})
	}))
	if addr := a.cfg.Metrics.Addr; addr != "" {
		g.Go(sideTask(a.logger, "metrics server", func() error {
			return a.metrics.Serve(ctx, addr, a.logger)
		}))
	}

	err = g.Wait()
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Farewell())
	return err
}

// sideTask wraps a helper goroutine of the run loop. Its failure is logged
// and never cancels the scheduler.
func sideTask(logger *slog.Logger, name string, fn func() error) func() error {
	return func() error {
		if err := fn(); err != nil {
			logger.Warn(name+" stopped", "error", err)
		}
		return nil
	}
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your streak statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.streaks.Record(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Stats(rec, a.cfg.Reminder.Mode))
			return nil
		},
	}
}

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check GitHub activity now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			t, err := a.newTracker(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.CheckHeader(checklog.KindManual, time.Now()))
			report, err := t.Check(cmd.Context(), checklog.KindManual)
			if report.Outcome != "" {
				fmt.Fprintln(out, ui.Report(report))
			}
			if errors.Is(err, streak.ErrActivityUnknown) {
				return nil
			}
			return err
		},
	}
}

func setupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Run setup again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.hasConfigFile {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration already exists.")
			}
			return a.setup(cmd.Context(), cmd)
		},
	}
}

func modeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "mode [normal|strict]",
		Short:     "Show or change the reminder mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(reminder.ModeNormal), string(reminder.ModeStrict)},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintf(out, "Current mode: %s\n", a.cfg.Reminder.Mode)
				return nil
			}
			mode, err := reminder.ParseMode(args[0])
			if err != nil {
				fmt.Fprintln(out, "Usage: streak mode [normal|strict]")
				return errQuiet
			}
			if err := a.update(config.Update{Mode: mode}); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Mode changed to: %s\n", mode)
			return nil
		},
	}
}

func historyCmd(a *app) *cobra.Command {
	var (
		limit   int
		kind    string
		outcome string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := checklog.ListOptions{Limit: limit}
			if kind != "" {
				k := checklog.Kind(kind)
				opts.Kind = &k
			}
			if outcome != "" {
				o := checklog.Outcome(outcome)
				opts.Outcome = &o
			}
			entries, err := a.checks.Recent(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.History(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (morning, afternoon, evening, manual)")
	cmd.Flags().StringVar(&outcome, "outcome", "", "Filter by outcome (confirmed, absent, unknown, already_logged, reset)")
	return cmd
}

func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [path]",
		Short: "Import a streak.json record from an earlier install",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.Dir(), "streak.json")
			if len(args) == 1 {
				path = args[0]
			}
			if a.cfg.Store.Backend == "json" && sameFile(path, a.cfg.Store.JSONPath) {
				fmt.Fprintln(cmd.OutOrStdout(), "Already using that file as the streak store.")
				return nil
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("import source: %w", err)
			}

			rec, err := filestore.NewStreakStore(path).Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.streaks.Import(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d active days (current streak %d, longest %d)\n",
				rec.TotalActiveDays, rec.CurrentStreak, rec.LongestStreak)
			return nil
		},
	}
}

func mcpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve read-only streak tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Info("starting stdio transport")
			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{
					Streaks: a.streaks,
					Checks:  a.checks,
					Policy:  reminder.NewPolicy(nil),
				},
				Mode:    a.cfg.Reminder.Mode,
				Clock:   streak.SystemClock{},
				Version: Version,
				Logger:  a.logger,
			})
			if err := mcp.Run(cmd.Context(), server); err != nil && cmd.Context().Err() == nil {
				return fmt.Errorf("stdio server error: %w", err)
			}
			return nil
		},
	}
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}
	return absA == absB
}
