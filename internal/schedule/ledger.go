// internal/schedule/ledger.go
package schedule

import (
	"alcyxob/workout-planner/internal/domain"
)

// Completion state lives on the series as a set of dates, never on an
// occurrence object. Marking one date never touches any other date.

// IsCompleted reports whether the owner's series was marked done on date.
func IsCompleted(st State, ownerID, id string, date domain.Date) (bool, error) {
	s, err := st.lookup(ownerID, id)
	if err != nil {
		return false, err
	}
	return s.IsCompleted(date), nil
}

// Toggle flips the completion of date. The returned bool is the new state.
func Toggle(st State, ownerID, id string, date domain.Date) (Commit, bool, error) {
	if !date.IsValid() {
		return Commit{}, false, domain.ErrInvalidDate
	}
	s, err := st.lookup(ownerID, id)
	if err != nil {
		return Commit{}, false, err
	}

	completed := !s.IsCompleted(date)
	if completed {
		s.CompletedDates = s.CompletedDates.With(date)
	} else {
		s.CompletedDates = s.CompletedDates.Without(date)
	}

	t := st.begin()
	t.put(s)
	return t.done(), completed, nil
}

// MarkComplete adds date to the completion set. Marking an already completed
// date is a no-op and yields an empty Commit; the bool reports whether
// anything changed.
func MarkComplete(st State, ownerID, id string, date domain.Date) (Commit, bool, error) {
	if !date.IsValid() {
		return Commit{}, false, domain.ErrInvalidDate
	}
	s, err := st.lookup(ownerID, id)
	if err != nil {
		return Commit{}, false, err
	}
	if s.IsCompleted(date) {
		return Commit{State: st}, false, nil
	}

	s.CompletedDates = s.CompletedDates.With(date)
	t := st.begin()
	t.put(s)
	return t.done(), true, nil
}
