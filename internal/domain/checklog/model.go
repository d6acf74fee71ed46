package checklog

import "time"

// Kind identifies which trigger ran a check.
type Kind string

const (
	KindMorning   Kind = "morning"
	KindAfternoon Kind = "afternoon"
	KindEvening   Kind = "evening"
	KindManual    Kind = "manual"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMorning, KindAfternoon, KindEvening, KindManual:
		return true
	}
	return false
}

// ParseKind returns the Kind for s, defaulting to manual.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindMorning, KindAfternoon, KindEvening:
		return Kind(s)
	default:
		return KindManual
	}
}

// Outcome is the result of a check as recorded in the log.
type Outcome string

const (
	OutcomeConfirmed     Outcome = "confirmed"
	OutcomeAbsent        Outcome = "absent"
	OutcomeUnknown       Outcome = "unknown"
	OutcomeAlreadyLogged Outcome = "already_logged"
	OutcomeReset         Outcome = "reset"
)

// Entry represents one check in the log
type Entry struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Kind      Kind      `json:"kind"`
	Outcome   Outcome   `json:"outcome"`
	Streak    int       `json:"streak"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
