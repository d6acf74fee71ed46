package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/streakwatch/internal/domain/checklog"
	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"github.com/rpggio/streakwatch/internal/domain/streak"
)

// handler answers tool calls from the domain services.
type handler struct {
	streaks StreakService
	checks  CheckLogService
	policy  *reminder.Policy
	mode    reminder.Mode
	clock   streak.Clock
}

func newHandler(cfg Config) *handler {
	clock := cfg.Clock
	if clock == nil {
		clock = streak.SystemClock{}
	}
	policy := cfg.Services.Policy
	if policy == nil {
		policy = reminder.NewPolicy(nil)
	}
	mode := cfg.Mode
	if mode == "" {
		mode = reminder.ModeNormal
	}
	return &handler{
		streaks: cfg.Services.Streaks,
		checks:  cfg.Services.Checks,
		policy:  policy,
		mode:    mode,
		clock:   clock,
	}
}

func registerTools(server *sdkmcp.Server, h *handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_streak_stats",
		Description: "Get the current GitHub streak: current, longest, total active days, last active date and the streak at risk today",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ GetStreakStatsParams) (*sdkmcp.CallToolResult, StreakStatsResponse, error) {
		resp, err := h.stats(ctx)
		return toolResult(resp, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_reminder",
		Description: "Render the reminder the tracker would send right now if no activity is found today",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetReminderParams) (*sdkmcp.CallToolResult, ReminderResponse, error) {
		resp, err := h.reminder(ctx, in)
		return toolResult(resp, err)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_recent_checks",
		Description: "List recent activity checks from the check log, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListRecentChecksParams) (*sdkmcp.CallToolResult, ListRecentChecksResponse, error) {
		resp, err := h.recentChecks(ctx, in)
		return toolResult(resp, err)
	})
}

func toolResult[T any](resp T, err error) (*sdkmcp.CallToolResult, T, error) {
	if err != nil {
		var zero T
		return nil, zero, MapError(err)
	}
	data, err := json.Marshal(resp)
	if err != nil {
		var zero T
		return nil, zero, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, resp, nil
}

func (h *handler) stats(ctx context.Context) (StreakStatsResponse, error) {
	rec, err := h.streaks.Record(ctx)
	if err != nil {
		return StreakStatsResponse{}, err
	}
	today := h.clock.Today()
	return StreakStatsResponse{
		CurrentStreak:   rec.CurrentStreak,
		LongestStreak:   rec.LongestStreak,
		TotalActiveDays: rec.TotalActiveDays,
		LastActivity:    rec.LastActivity.String(),
		LoggedToday:     rec.HasActivity(today),
		AtRisk:          rec.AtRisk(today),
		Mode:            h.mode.String(),
		Today:           today.String(),
	}, nil
}

func (h *handler) reminder(ctx context.Context, in GetReminderParams) (ReminderResponse, error) {
	mode := h.mode
	if strings.TrimSpace(in.Mode) != "" {
		parsed, err := reminder.ParseMode(in.Mode)
		if err != nil {
			return ReminderResponse{}, err
		}
		mode = parsed
	}
	rec, err := h.streaks.Record(ctx)
	if err != nil {
		return ReminderResponse{}, err
	}
	today := h.clock.Today()
	atRisk := rec.AtRisk(today)
	r := h.policy.Build(atRisk, mode, checklog.ParseKind(in.Kind), today)
	return ReminderResponse{
		Title:    r.Title,
		Headline: r.Headline,
		Message:  r.Text,
		AtRisk:   atRisk,
		Mode:     mode.String(),
	}, nil
}

func (h *handler) recentChecks(ctx context.Context, in ListRecentChecksParams) (ListRecentChecksResponse, error) {
	opts := checklog.ListOptions{Limit: in.Limit, Offset: in.Offset}
	if in.Kind != "" {
		kind := checklog.Kind(in.Kind)
		opts.Kind = &kind
	}
	if in.Outcome != "" {
		outcome := checklog.Outcome(in.Outcome)
		opts.Outcome = &outcome
	}
	entries, err := h.checks.Recent(ctx, opts)
	if err != nil {
		return ListRecentChecksResponse{}, err
	}
	resp := ListRecentChecksResponse{Checks: make([]CheckResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Checks = append(resp.Checks, CheckResponse{
			RunID:     e.RunID,
			Kind:      string(e.Kind),
			Outcome:   string(e.Outcome),
			Streak:    e.Streak,
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		})
	}
	return resp, nil
}
