package checklog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const defaultListLimit = 20

// Service handles check log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new check log service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Record appends an entry, filling in the run ID and timestamp if missing.
func (s *Service) Record(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.Outcome == "" {
		return ErrInvalidInput
	}
	if entry.RunID == "" {
		entry.RunID = uuid.NewString()
	}
	if entry.Kind == "" {
		entry.Kind = KindManual
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("recording check: %w", err)
	}
	return nil
}

// Recent lists check entries, newest first.
func (s *Service) Recent(ctx context.Context, opts ListOptions) ([]Entry, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing checks: %w", err)
	}
	return entries, nil
}
