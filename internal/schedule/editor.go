// internal/schedule/editor.go
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/workout-planner/internal/domain"
)

// Scope is the breadth of an edit or delete.
type Scope string

const (
	ScopeOne     Scope = "one"     // just this occurrence
	ScopeForward Scope = "forward" // this and all following occurrences
	ScopeAll     Scope = "all"     // every occurrence
)

var (
	ErrInvalidScope = errors.New("invalid edit scope")
	ErrNoOccurrence = errors.New("series has no occurrence on this date")
)

// ParseScope accepts "one", "forward" or "all" (case-insensitive).
func ParseScope(raw string) (Scope, error) {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(raw))); sc {
	case ScopeOne, ScopeForward, ScopeAll:
		return sc, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, raw)
	}
}

// NewSeriesRef names the series an edit creates when it has to split.
// Generated by the caller so that transitions stay deterministic.
type NewSeriesRef struct {
	ID  string
	Now time.Time
}

// DeleteOccurrence removes the occurrence of the owner's series on date, with
// the given scope.
func DeleteOccurrence(st State, ownerID, id string, date domain.Date, scope Scope) (Commit, error) {
	s, err := st.lookup(ownerID, id)
	if err != nil {
		return Commit{}, err
	}
	switch scope {
	case ScopeOne:
		return deleteOne(st, s, date)
	case ScopeForward:
		return deleteForward(st, s, date)
	case ScopeAll:
		return Delete(st, ownerID, id)
	default:
		return Commit{}, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
}

// EditOccurrence applies patch to the occurrence of the owner's series on
// date, with the given scope. ref is used only when the edit has to create a
// new series (scope one on a recurring series, scope forward). With scope one
// the patch may not set a recurring rule.
func EditOccurrence(st State, ownerID, id string, date domain.Date, scope Scope, patch domain.SeriesPatch, ref NewSeriesRef) (Commit, error) {
	if err := patch.Validate(); err != nil {
		return Commit{}, err
	}
	s, err := st.lookup(ownerID, id)
	if err != nil {
		return Commit{}, err
	}
	switch scope {
	case ScopeOne:
		return editOne(st, s, date, patch, ref)
	case ScopeForward:
		return editForward(st, s, date, patch, ref)
	case ScopeAll:
		return Update(st, ownerID, id, patch)
	default:
		return Commit{}, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
}

func deleteOne(st State, s domain.Series, date domain.Date) (Commit, error) {
	if !domain.OccursOn(s, date) {
		return Commit{}, ErrNoOccurrence
	}

	t := st.begin()
	if !s.Repeat.IsRecurring() && date == s.AnchorDate {
		// The only occurrence goes, so does the series.
		t.remove(s)
		return t.done(), nil
	}

	s.ExcludedDates = s.ExcludedDates.With(date)
	s.CompletedDates = s.CompletedDates.Without(date)
	t.put(s)
	return t.done(), nil
}

func editOne(st State, s domain.Series, date domain.Date, patch domain.SeriesPatch, ref NewSeriesRef) (Commit, error) {
	if !domain.OccursOn(s, date) {
		return Commit{}, ErrNoOccurrence
	}
	// A single occurrence never repeats; changing the rule needs scope all.
	if patch.Repeat != nil && patch.Repeat.Normalize().IsRecurring() {
		return Commit{}, fmt.Errorf("%w: a single occurrence cannot repeat", domain.ErrInvalidRepeat)
	}

	t := st.begin()
	if !s.Repeat.IsRecurring() {
		// A one-off series: its single occurrence is the whole series.
		patch.ApplyPayload(&s)
		t.put(s)
		return t.done(), nil
	}
	if ref.ID == "" {
		return Commit{}, ErrIDRequired
	}
	if _, taken := st.byOwner[s.OwnerID][ref.ID]; taken {
		return Commit{}, fmt.Errorf("split %q: %w", ref.ID, ErrDuplicateSeries)
	}

	wasCompleted := s.IsCompleted(date)

	oneOff := s.Clone()
	oneOff.ID = ref.ID
	oneOff.AnchorDate = date
	oneOff.Repeat = domain.Never()
	oneOff.Until = nil
	oneOff.ExcludedDates = domain.DateSet{}
	oneOff.CompletedDates = domain.DateSet{}
	if wasCompleted {
		oneOff.CompletedDates = domain.NewDateSet(date)
	}
	oneOff.CreatedAt = ref.Now
	patch.ApplyPayload(&oneOff)

	s.ExcludedDates = s.ExcludedDates.With(date)
	s.CompletedDates = s.CompletedDates.Without(date)

	t.put(s)
	t.put(oneOff)
	return t.done(), nil
}

func deleteForward(st State, s domain.Series, date domain.Date) (Commit, error) {
	if !date.IsValid() {
		return Commit{}, domain.ErrInvalidDate
	}
	if !s.Repeat.IsRecurring() || !date.After(s.AnchorDate) {
		return Delete(st, s.OwnerID, s.ID)
	}

	truncate(&s, date)
	t := st.begin()
	t.put(s)
	return t.done(), nil
}

func editForward(st State, s domain.Series, date domain.Date, patch domain.SeriesPatch, ref NewSeriesRef) (Commit, error) {
	if !domain.OccursOn(s, date) {
		return Commit{}, ErrNoOccurrence
	}
	if !s.Repeat.IsRecurring() || !date.After(s.AnchorDate) {
		return Update(st, s.OwnerID, s.ID, patch)
	}
	if ref.ID == "" {
		return Commit{}, ErrIDRequired
	}
	if _, taken := st.byOwner[s.OwnerID][ref.ID]; taken {
		return Commit{}, fmt.Errorf("split %q: %w", ref.ID, ErrDuplicateSeries)
	}

	tail := s.Clone()
	tail.ID = ref.ID
	tail.AnchorDate = date
	tail.ExcludedDates = domain.DateSet{}
	tail.CompletedDates = domain.DateSet{}
	tail.CreatedAt = ref.Now
	// tail.Until stays: an earlier forward delete still bounds the new series.
	patch.ApplyPayload(&tail)
	if patch.Repeat != nil {
		tail.Repeat = *patch.Repeat
	}

	truncate(&s, date)

	t := st.begin()
	t.put(s)
	t.put(tail)
	return t.done(), nil
}

// truncate ends s the day before date and drops history at or after date,
// which can no longer be reached.
func truncate(s *domain.Series, date domain.Date) {
	until := date.AddDays(-1)
	if s.Until == nil || until.Before(*s.Until) {
		s.Until = &until
	}
	s.ExcludedDates = before(s.ExcludedDates, date)
	s.CompletedDates = before(s.CompletedDates, date)
}

func before(set domain.DateSet, date domain.Date) domain.DateSet {
	out := make(domain.DateSet, len(set))
	for d := range set {
		if d.Before(date) {
			out[d] = struct{}{}
		}
	}
	return out
}
