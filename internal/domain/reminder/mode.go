package reminder

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the reminder tone.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeStrict Mode = "strict"
)

// ErrInvalidMode indicates a tone other than normal or strict.
var ErrInvalidMode = errors.New("invalid reminder mode")

// ParseMode parses a tone name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeNormal:
		return ModeNormal, nil
	case ModeStrict:
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("%w: %q (want normal or strict)", ErrInvalidMode, s)
	}
}

func (m Mode) String() string { return string(m) }
