package mcp

import "time"

type GetStreakStatsParams struct{}

type StreakStatsResponse struct {
	CurrentStreak   int    `json:"current_streak"`
	LongestStreak   int    `json:"longest_streak"`
	TotalActiveDays int    `json:"total_active_days"`
	LastActivity    string `json:"last_activity,omitempty"`
	LoggedToday     bool   `json:"logged_today"`
	AtRisk          int    `json:"at_risk"`
	Mode            string `json:"mode"`
	Today           string `json:"today"`
}

type GetReminderParams struct {
	Mode string `json:"mode,omitempty" jsonschema:"reminder tone: normal or strict (defaults to the configured mode)"`
	Kind string `json:"kind,omitempty" jsonschema:"check kind: morning, afternoon, evening or manual"`
}

type ReminderResponse struct {
	Title    string `json:"title"`
	Headline string `json:"headline"`
	Message  string `json:"message"`
	AtRisk   int    `json:"at_risk"`
	Mode     string `json:"mode"`
}

type ListRecentChecksParams struct {
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of entries (default 20)"`
	Offset  int    `json:"offset,omitempty" jsonschema:"offset for pagination"`
	Kind    string `json:"kind,omitempty" jsonschema:"filter by check kind"`
	Outcome string `json:"outcome,omitempty" jsonschema:"filter by outcome: confirmed, absent, unknown, already_logged or reset"`
}

type CheckResponse struct {
	RunID     string    `json:"run_id"`
	Kind      string    `json:"kind"`
	Outcome   string    `json:"outcome"`
	Streak    int       `json:"streak"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ListRecentChecksResponse struct {
	Checks []CheckResponse `json:"checks"`
}
