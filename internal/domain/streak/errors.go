package streak

import "errors"

var (
	// ErrActivityUnknown indicates the activity source could not answer.
	// It is a soft failure: the record is left untouched.
	ErrActivityUnknown = errors.New("activity status unknown")
	// ErrInvalidDate indicates a date string that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidInput indicates a nil or malformed record.
	ErrInvalidInput = errors.New("invalid streak input")
)
