package domain

import "sort"

// DateSet is a set of calendar days. A nil DateSet is an empty, read-only set.
type DateSet map[Date]struct{}

func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

func (s DateSet) Len() int { return len(s) }

// With returns a copy of s that also contains d.
func (s DateSet) With(d Date) DateSet {
	out := s.Clone()
	out[d] = struct{}{}
	return out
}

// Without returns a copy of s that does not contain d.
func (s DateSet) Without(d Date) DateSet {
	out := s.Clone()
	delete(out, d)
	return out
}

func (s DateSet) Clone() DateSet {
	out := make(DateSet, len(s))
	for d := range s {
		out[d] = struct{}{}
	}
	return out
}

// Sorted lists the dates in ascending order.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
