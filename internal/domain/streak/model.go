package streak

import "sort"

// ActivityResult is the tri-state answer of an activity source.
type ActivityResult int

const (
	ActivityUnknown ActivityResult = iota
	ActivityAbsent
	ActivityConfirmed
)

func (r ActivityResult) String() string {
	switch r {
	case ActivityConfirmed:
		return "confirmed"
	case ActivityAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Record is the persisted streak state.
type Record struct {
	CurrentStreak   int           `json:"current_streak"`
	LongestStreak   int           `json:"longest_streak"`
	LastActivity    Date          `json:"last_activity_date"`
	TotalActiveDays int           `json:"total_active_days"`
	History         map[Date]bool `json:"activity_log"`
}

// NewRecord returns the empty first-run record.
func NewRecord() *Record {
	return &Record{History: map[Date]bool{}}
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	out := *r
	out.History = make(map[Date]bool, len(r.History))
	for d := range r.History {
		out.History[d] = true
	}
	return &out
}

// HasActivity reports whether activity is already confirmed for day.
func (r *Record) HasActivity(day Date) bool {
	return r.History[day]
}

// ActiveDays returns the confirmed dates in ascending order.
func (r *Record) ActiveDays() []Date {
	days := make([]Date, 0, len(r.History))
	for d := range r.History {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// AtRisk returns the streak that still depends on today's activity: the
// current streak if it was alive yesterday, otherwise 0.
func (r *Record) AtRisk(today Date) int {
	if r.CurrentStreak > 0 && r.LastActivity == today.AddDays(-1) {
		return r.CurrentStreak
	}
	return 0
}

// Validate checks the structural invariants of a loaded record.
func (r *Record) Validate() error {
	switch {
	case r.CurrentStreak < 0 || r.LongestStreak < 0:
		return ErrInvalidInput
	case r.LongestStreak < r.CurrentStreak:
		return ErrInvalidInput
	case r.CurrentStreak > 0 && r.LastActivity.IsZero():
		return ErrInvalidInput
	}
	return nil
}

// Outcome describes the effect of one evaluation.
type Outcome struct {
	Continued     bool
	Streak        int
	AlreadyLogged bool
	Reset         bool
	Changed       bool
}
