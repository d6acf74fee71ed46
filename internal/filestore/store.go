package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/rpggio/streakwatch/internal/repository"
)

// StreakStore keeps the streak record in a single JSON document.
type StreakStore struct {
	path string
}

// NewStreakStore creates a store backed by the document at path.
func NewStreakStore(path string) *StreakStore {
	return &StreakStore{path: path}
}

// Path returns the document location.
func (s *StreakStore) Path() string { return s.path }

// Load reads the document; a missing file yields an empty record.
func (s *StreakStore) Load(ctx context.Context) (*streak.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return streak.NewRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read streak file: %w", err)
	}
	rec, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return rec, nil
}

// Save replaces the document atomically: readers see either the old or the
// new file, never a partial one.
func (s *StreakStore) Save(ctx context.Context, rec *streak.Record) error {
	if rec == nil {
		return repository.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := Encode(rec)
	if err != nil {
		return fmt.Errorf("encode streak: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create streak dir: %w", err)
	}
	if err := renameio.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write streak file: %w", err)
	}
	rec.TotalActiveDays = len(rec.History)
	return nil
}

// Remove deletes the document if it exists.
func (s *StreakStore) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove streak file: %w", err)
	}
	return nil
}
