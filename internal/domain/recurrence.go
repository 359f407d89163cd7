// internal/domain/recurrence.go
package domain

// OccursOn decides whether series s produces an occurrence on date d.
//
// Rules, first match wins:
//  1. d is excluded -> false
//  2. d is after the series' until bound -> false
//  3. d is the anchor -> true
//  4. d is before the anchor -> false
//  5. otherwise dispatch on the repeat rule
//
// Monthly series fire on the anchor's day-of-month and skip months that do
// not have that day (an anchor on the 31st never fires in April).
func OccursOn(s Series, d Date) bool {
	if !d.IsValid() || !s.AnchorDate.IsValid() {
		return false
	}
	if s.ExcludedDates.Has(d) {
		return false
	}
	if s.Until != nil && d.After(*s.Until) {
		return false
	}
	if d == s.AnchorDate {
		return true
	}
	if d.Before(s.AnchorDate) {
		return false
	}

	days := DaysBetween(s.AnchorDate, d)
	switch s.Repeat.Type {
	case RepeatDaily:
		return true
	case RepeatWeekly:
		return days%7 == 0
	case RepeatBiweekly:
		return days%14 == 0
	case RepeatMonthly:
		return d.Day == s.AnchorDate.Day
	case RepeatCustom:
		return s.Repeat.hasWeekday(d.Weekday())
	case RepeatInterval:
		if s.Repeat.IntervalDays < 1 {
			return false
		}
		return days%s.Repeat.IntervalDays == 0
	default:
		// Never, and anything unrecognised.
		return false
	}
}

// OccursOnString is OccursOn for a raw "YYYY-MM-DD" string. A date that does
// not parse never has an occurrence.
func OccursOnString(s Series, date string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	return OccursOn(s, d)
}
