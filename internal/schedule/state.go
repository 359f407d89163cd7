// internal/schedule/state.go
package schedule

import (
	"errors"
	"fmt"
	"sort"

	"alcyxob/workout-planner/internal/domain"
)

var (
	ErrSeriesNotFound  = errors.New("series not found")
	ErrDuplicateSeries = errors.New("series with this id already exists")
	ErrOwnerRequired   = errors.New("owner id is required")
	ErrIDRequired      = errors.New("series id is required")
)

// State is an immutable snapshot of every owner's series. Transitions never
// modify a State in place; they return a Commit holding the next State and
// the series that have to be written to or removed from storage.
//
// A series is only reachable through (ownerID, id), so a lookup with the
// wrong owner is indistinguishable from a missing series.
type State struct {
	byOwner map[string]map[string]domain.Series
}

// NewState returns an empty State.
func NewState() State {
	return State{byOwner: map[string]map[string]domain.Series{}}
}

// Load builds a State from previously persisted series.
func Load(series []domain.Series) (State, error) {
	st := NewState()
	for _, s := range series {
		if s.OwnerID == "" {
			return State{}, fmt.Errorf("load series %q: %w", s.ID, ErrOwnerRequired)
		}
		if s.ID == "" {
			return State{}, ErrIDRequired
		}
		owned := st.byOwner[s.OwnerID]
		if owned == nil {
			owned = map[string]domain.Series{}
			st.byOwner[s.OwnerID] = owned
		}
		if _, dup := owned[s.ID]; dup {
			return State{}, fmt.Errorf("load series %q: %w", s.ID, ErrDuplicateSeries)
		}
		owned[s.ID] = normalized(s)
	}
	return st, nil
}

// Get returns a copy of the series, or false if the owner has no such series.
func (st State) Get(ownerID, id string) (domain.Series, bool) {
	s, ok := st.byOwner[ownerID][id]
	if !ok {
		return domain.Series{}, false
	}
	return s.Clone(), true
}

// ListForOwner returns copies of all of the owner's series ordered by
// anchor date, creation time and id.
func (st State) ListForOwner(ownerID string) []domain.Series {
	owned := st.byOwner[ownerID]
	out := make([]domain.Series, 0, len(owned))
	for _, s := range owned {
		out = append(out, s.Clone())
	}
	sortSeries(out)
	return out
}

// Count returns the number of series across all owners.
func (st State) Count() int {
	n := 0
	for _, owned := range st.byOwner {
		n += len(owned)
	}
	return n
}

// forEach visits the owner's series without copying them. fn must not
// retain or mutate the series.
func (st State) forEach(ownerID string, fn func(s domain.Series)) {
	for _, s := range st.byOwner[ownerID] {
		fn(s)
	}
}

func (st State) lookup(ownerID, id string) (domain.Series, error) {
	if ownerID == "" {
		return domain.Series{}, ErrOwnerRequired
	}
	s, ok := st.byOwner[ownerID][id]
	if !ok {
		return domain.Series{}, ErrSeriesNotFound
	}
	return s.Clone(), nil
}

// Commit is the outcome of a successful transition.
type Commit struct {
	State    State
	Upserted []domain.Series // to be written to storage, in order
	Deleted  []domain.Series // to be removed from storage
}

// IsEmpty reports whether the transition changed nothing.
func (c Commit) IsEmpty() bool {
	return len(c.Upserted) == 0 && len(c.Deleted) == 0
}

// tx accumulates changes on top of a base State. Only the maps of owners
// that are touched get copied.
type tx struct {
	base   State
	owners map[string]map[string]domain.Series
	commit Commit
}

func (st State) begin() *tx {
	return &tx{base: st, owners: map[string]map[string]domain.Series{}}
}

func (t *tx) ownerMap(ownerID string) map[string]domain.Series {
	if m, ok := t.owners[ownerID]; ok {
		return m
	}
	src := t.base.byOwner[ownerID]
	m := make(map[string]domain.Series, len(src)+1)
	for id, s := range src {
		m[id] = s
	}
	t.owners[ownerID] = m
	return m
}

func (t *tx) put(s domain.Series) {
	s = normalized(s)
	t.ownerMap(s.OwnerID)[s.ID] = s
	t.commit.Upserted = append(t.commit.Upserted, s.Clone())
}

func (t *tx) remove(s domain.Series) {
	delete(t.ownerMap(s.OwnerID), s.ID)
	t.commit.Deleted = append(t.commit.Deleted, s.Clone())
}

func (t *tx) done() Commit {
	next := State{byOwner: make(map[string]map[string]domain.Series, len(t.base.byOwner)+len(t.owners))}
	for ownerID, m := range t.base.byOwner {
		next.byOwner[ownerID] = m
	}
	for ownerID, m := range t.owners {
		if len(m) == 0 {
			delete(next.byOwner, ownerID)
			continue
		}
		next.byOwner[ownerID] = m
	}
	t.commit.State = next
	return t.commit
}

func normalized(s domain.Series) domain.Series {
	s.Repeat = s.Repeat.Normalize()
	if s.ExcludedDates == nil {
		s.ExcludedDates = domain.DateSet{}
	}
	if s.CompletedDates == nil {
		s.CompletedDates = domain.DateSet{}
	}
	return s
}

func sortSeries(list []domain.Series) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if c := a.AnchorDate.Compare(b.AnchorDate); c != 0 {
			return c < 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
