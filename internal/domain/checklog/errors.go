package checklog

import "errors"

// ErrInvalidInput indicates invalid check log input.
var ErrInvalidInput = errors.New("invalid check log input")
