package schedule

import (
	"fmt"

	"alcyxob/workout-planner/internal/domain"
)

// Create adds a new series. The caller assigns the id; ids are never taken
// from client input, and an id already used by the owner is rejected.
func Create(st State, s domain.Series) (Commit, error) {
	if s.OwnerID == "" {
		return Commit{}, ErrOwnerRequired
	}
	if s.ID == "" {
		return Commit{}, ErrIDRequired
	}
	if err := s.Validate(); err != nil {
		return Commit{}, err
	}
	if _, exists := st.byOwner[s.OwnerID][s.ID]; exists {
		return Commit{}, fmt.Errorf("create %q: %w", s.ID, ErrDuplicateSeries)
	}

	s = s.Clone()
	s.Until = nil // only forward splits bound a series
	t := st.begin()
	t.put(s)
	return t.done(), nil
}

// Update applies patch to the whole series in place. Completion and
// exclusion history is preserved; a new repeat rule keeps the anchor.
func Update(st State, ownerID, id string, patch domain.SeriesPatch) (Commit, error) {
	s, err := st.lookup(ownerID, id)
	if err != nil {
		return Commit{}, err
	}
	if err := patch.Validate(); err != nil {
		return Commit{}, err
	}

	patch.ApplyPayload(&s)
	if patch.Repeat != nil {
		s.Repeat = *patch.Repeat
	}

	t := st.begin()
	t.put(s)
	return t.done(), nil
}

// Delete removes the series and its history.
func Delete(st State, ownerID, id string) (Commit, error) {
	s, err := st.lookup(ownerID, id)
	if err != nil {
		return Commit{}, err
	}
	t := st.begin()
	t.remove(s)
	return t.done(), nil
}
