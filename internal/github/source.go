package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v66/github"
	"golang.org/x/time/rate"

	"github.com/rpggio/streakwatch/internal/domain/streak"
)

var (
	// ErrNoUsername is returned when no GitHub username is configured.
	ErrNoUsername = errors.New("github username is required")
)

// QualifyingEvents are the event types that count as a day's activity.
var QualifyingEvents = map[string]bool{
	"PushEvent":          true,
	"PullRequestEvent":   true,
	"IssuesEvent":        true,
	"CreateEvent":        true,
	"CommitCommentEvent": true,
}

const eventsPerPage = 100

// Options configures a Source.
type Options struct {
	Token             string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// Source answers whether a user was active on GitHub today.
type Source struct {
	client  *gogithub.Client
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

// NewSource builds a Source backed by the public events API.
func NewSource(opts Options) (*Source, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	client := gogithub.NewClient(httpClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		parsed, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing github base url: %w", err)
		}
		client.BaseURL = parsed
	}

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Source{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		timeout: opts.Timeout,
		logger:  logger,
	}, nil
}

// HasActivityToday reports whether username performed a qualifying event on
// the calendar day of now, in now's location. Any request failure yields
// ActivityUnknown together with the cause.
func (s *Source) HasActivityToday(ctx context.Context, username string, now time.Time) (streak.ActivityResult, error) {
	if strings.TrimSpace(username) == "" {
		return streak.ActivityUnknown, ErrNoUsername
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return streak.ActivityUnknown, fmt.Errorf("waiting for github rate limit: %w", err)
	}

	events, resp, err := s.client.Activity.ListEventsPerformedByUser(ctx, username, false, &gogithub.ListOptions{PerPage: eventsPerPage})
	if err != nil {
		s.logger.Warn("github events request failed", "user", username, "error", err)
		return streak.ActivityUnknown, fmt.Errorf("listing github events: %w", err)
	}
	if resp != nil && resp.Rate.Limit > 0 {
		s.logger.Debug("github rate limit", "remaining", resp.Rate.Remaining, "limit", resp.Rate.Limit)
	}

	today := streak.DateOf(now)
	for _, event := range events {
		created := event.GetCreatedAt()
		if created.IsZero() {
			continue
		}
		if streak.DateOf(created.In(now.Location())) != today {
			continue
		}
		if QualifyingEvents[event.GetType()] {
			return streak.ActivityConfirmed, nil
		}
	}
	return streak.ActivityAbsent, nil
}
