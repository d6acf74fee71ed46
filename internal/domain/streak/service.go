package streak

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Service is the persisting streak engine.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new streak service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record returns the current persisted record.
func (s *Service) Record(ctx context.Context) (*Record, error) {
	rec, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading streak: %w", err)
	}
	return rec, nil
}

// EvaluateDay loads the record, applies result for today and saves it
// when it changed. The returned record is the post-evaluation state.
func (s *Service) EvaluateDay(ctx context.Context, today Date, result ActivityResult) (Outcome, *Record, error) {
	rec, err := s.repo.Load(ctx)
	if err != nil {
		return Outcome{}, nil, fmt.Errorf("loading streak: %w", err)
	}

	out, err := Evaluate(rec, today, result)
	if err != nil {
		if errors.Is(err, ErrActivityUnknown) {
			s.warn("activity unknown, streak left unchanged", "date", today.String(), "streak", rec.CurrentStreak)
		}
		return out, rec, err
	}

	if out.Changed {
		if err := s.repo.Save(ctx, rec); err != nil {
			return Outcome{}, nil, fmt.Errorf("saving streak: %w", err)
		}
	}
	if out.Reset {
		s.info("streak reset after two missed days", "date", today.String())
	}
	return out, rec, nil
}

// Reset replaces the stored record with an empty one.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Save(ctx, NewRecord()); err != nil {
		return fmt.Errorf("resetting streak: %w", err)
	}
	return nil
}

// Import validates rec and stores it, replacing the current record.
func (s *Service) Import(ctx context.Context, rec *Record) error {
	if rec == nil {
		return ErrInvalidInput
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	rec.TotalActiveDays = len(rec.History)
	if err := s.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("importing streak: %w", err)
	}
	return nil
}

func (s *Service) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Service) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
