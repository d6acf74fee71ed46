package streak

// Evaluate applies one activity result for today to rec in place.
//
// Confirmed activity extends the streak when the last active day was
// yesterday, or the day before if the streak survived the missed day, and
// starts a new one otherwise. Absent activity resets the streak only when
// yesterday was also missed; a single missed day leaves the streak alive
// but at risk. Unknown never mutates rec.
func Evaluate(rec *Record, today Date, result ActivityResult) (Outcome, error) {
	if rec == nil || today.IsZero() {
		return Outcome{}, ErrInvalidInput
	}
	if rec.History == nil {
		rec.History = map[Date]bool{}
	}

	if result == ActivityUnknown {
		return Outcome{Streak: rec.CurrentStreak}, ErrActivityUnknown
	}

	if rec.HasActivity(today) {
		return Outcome{Continued: true, Streak: rec.CurrentStreak, AlreadyLogged: true}, nil
	}

	yesterday := today.AddDays(-1)

	if result == ActivityConfirmed {
		rec.History[today] = true
		if continues(rec, yesterday) {
			rec.CurrentStreak++
		} else {
			rec.CurrentStreak = 1
		}
		rec.LastActivity = today
		if rec.CurrentStreak > rec.LongestStreak {
			rec.LongestStreak = rec.CurrentStreak
		}
		rec.TotalActiveDays = len(rec.History)
		return Outcome{Continued: true, Streak: rec.CurrentStreak, Changed: true}, nil
	}

	if rec.LastActivity != yesterday {
		changed := rec.CurrentStreak != 0
		rec.CurrentStreak = 0
		rec.TotalActiveDays = len(rec.History)
		return Outcome{Streak: 0, Reset: changed, Changed: true}, nil
	}

	return Outcome{Streak: rec.CurrentStreak}, nil
}

// continues reports whether a confirmation today extends the current run.
// A run whose last active day is two days back is still alive until an
// absent evaluation resets it.
func continues(rec *Record, yesterday Date) bool {
	if rec.LastActivity == yesterday {
		return true
	}
	return rec.CurrentStreak > 0 && rec.LastActivity == yesterday.AddDays(-1)
}
