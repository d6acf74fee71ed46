package filestore

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rpggio/streakwatch/internal/domain/streak"
	"github.com/rpggio/streakwatch/internal/repository"
)

// document is the on-disk shape. Field names match the streak.json files
// written by earlier versions of the tracker.
type document struct {
	CurrentStreak int             `json:"current_streak"`
	LongestStreak int             `json:"longest_streak"`
	LastCommit    *string         `json:"last_commit_date"`
	TotalDays     int             `json:"total_days"`
	History       map[string]bool `json:"commit_history"`
}

// Encode renders rec as an indented streak document.
func Encode(rec *streak.Record) ([]byte, error) {
	doc := document{
		CurrentStreak: rec.CurrentStreak,
		LongestStreak: rec.LongestStreak,
		TotalDays:     len(rec.History),
		History:       make(map[string]bool, len(rec.History)),
	}
	if !rec.LastActivity.IsZero() {
		last := rec.LastActivity.String()
		doc.LastCommit = &last
	}
	for day := range rec.History {
		doc.History[day.String()] = true
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a streak document. Entries with a false value are dropped
// and total_days is recomputed from the history.
func Decode(data []byte) (*streak.Record, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}

	rec := streak.NewRecord()
	rec.CurrentStreak = doc.CurrentStreak
	rec.LongestStreak = doc.LongestStreak
	if doc.LastCommit != nil && *doc.LastCommit != "" {
		day, err := streak.ParseDate(*doc.LastCommit)
		if err != nil {
			return nil, fmt.Errorf("%w: last_commit_date: %v", repository.ErrCorrupt, err)
		}
		rec.LastActivity = day
	}

	keys := make([]string, 0, len(doc.History))
	for k, v := range doc.History {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		day, err := streak.ParseDate(k)
		if err != nil {
			return nil, fmt.Errorf("%w: commit_history: %v", repository.ErrCorrupt, err)
		}
		rec.History[day] = true
	}
	rec.TotalActiveDays = len(rec.History)

	if rec.LongestStreak < rec.CurrentStreak {
		rec.LongestStreak = rec.CurrentStreak
	}

	return rec, nil
}
