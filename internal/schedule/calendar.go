// internal/schedule/calendar.go
package schedule

import (
	"fmt"
	"time"

	"alcyxob/workout-planner/internal/domain"
)

// maxUpcomingScan bounds NextOccurrences to one (leap) year of days.
const maxUpcomingScan = 366

// Occurrence is a computed instance of a series on one date. It is never stored.
type Occurrence struct {
	Date      domain.Date
	Series    domain.Series
	Completed bool
}

// OccurrencesOnDate returns the owner's occurrences on date, ordered like
// ListForOwner.
func OccurrencesOnDate(st State, ownerID string, date domain.Date) []Occurrence {
	var hits []domain.Series
	st.forEach(ownerID, func(s domain.Series) {
		if domain.OccursOn(s, date) {
			hits = append(hits, s)
		}
	})
	sortSeries(hits)

	out := make([]Occurrence, 0, len(hits))
	for _, s := range hits {
		out = append(out, Occurrence{Date: date, Series: s.Clone(), Completed: s.IsCompleted(date)})
	}
	return out
}

// OccurrencesInMonth evaluates every owner series against every day of the
// month, O(series x days). Days without occurrences are absent from the map.
func OccurrencesInMonth(st State, ownerID string, year int, month time.Month) (map[int][]Occurrence, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", domain.ErrInvalidDate, month)
	}
	out := make(map[int][]Occurrence)
	for day := 1; day <= domain.DaysIn(year, month); day++ {
		date := domain.Date{Year: year, Month: month, Day: day}
		if occ := OccurrencesOnDate(st, ownerID, date); len(occ) > 0 {
			out[day] = occ
		}
	}
	return out, nil
}

// NextOccurrences lists up to limit occurrences starting at from, scanning at
// most a year ahead. Used by the reminder feed.
func NextOccurrences(st State, ownerID string, from domain.Date, limit int) []Occurrence {
	if limit <= 0 || !from.IsValid() {
		return []Occurrence{}
	}
	out := make([]Occurrence, 0, limit)
	for i := 0; i < maxUpcomingScan && len(out) < limit; i++ {
		for _, occ := range OccurrencesOnDate(st, ownerID, from.AddDays(i)) {
			if len(out) == limit {
				break
			}
			out = append(out, occ)
		}
	}
	return out
}
