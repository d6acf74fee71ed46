package streak

import (
	"context"
	"time"
)

// Repository provides durable storage for the streak record.
// Load returns a zero record when nothing has been saved yet.
type Repository interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, rec *Record) error
}

// Clock supplies the current instant and the local calendar date.
type Clock interface {
	Now() time.Time
	Today() Date
}

// SystemClock reads the wall clock in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	now := time.Now()
	if c.Location != nil {
		now = now.In(c.Location)
	}
	return now
}

func (c SystemClock) Today() Date { return DateOf(c.Now()) }

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

// FixedClockOn returns a clock stopped at noon local time on d.
func FixedClockOn(d Date) FixedClock {
	return FixedClock{Time: time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.Local)}
}

func (c FixedClock) Now() time.Time { return c.Time }

func (c FixedClock) Today() Date { return DateOf(c.Time) }
