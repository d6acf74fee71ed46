package checklog

import "context"

// Repository provides persistence operations for check log entries.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
}
