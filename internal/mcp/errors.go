package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/streakwatch/internal/domain/reminder"
	"github.com/rpggio/streakwatch/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors pass
// through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, reminder.ErrInvalidMode):
		return &APIError{Code: "INVALID_MODE", Message: "unknown reminder mode", RecoveryHint: "Use normal or strict"}
	case errors.Is(err, repository.ErrCorrupt):
		return &APIError{Code: "STORE_CORRUPT", Message: "streak store is unreadable", RecoveryHint: "Run streak setup or restore a backup"}
	case errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid request"}
	default:
		return err
	}
}
