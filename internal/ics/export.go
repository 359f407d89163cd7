// Package ics renders an owner's workout series as an iCalendar feed, one
// VEVENT per series with RRULE/EXDATE, so any calendar app shows the same
// occurrences the planner computes.
package ics

import (
	"fmt"
	"strings"
	"time"

	"alcyxob/workout-planner/internal/domain"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

const (
	icsDateLayout      = "20060102"
	icsLocalTimeLayout = "20060102T150405"
	defaultProdID      = "-//alcyxob//workout-planner//EN"
)

type Options struct {
	ProdID string
	Name   string
	// Now is written as DTSTAMP. Zero means time.Now().
	Now time.Time
}

// Export builds the feed. Series are written in the given order.
//
// Dates are calendar days without a zone: events are all-day when the series
// has no time, floating local date-times otherwise. Completion history is not
// part of the feed.
func Export(series []domain.Series, opts Options) []byte {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	if opts.ProdID == "" {
		opts.ProdID = defaultProdID
	}
	cal.SetProductId(opts.ProdID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	for _, s := range series {
		for _, ev := range eventsFor(s) {
			addEvent(cal, s, ev, opts.Now.UTC())
		}
	}
	return []byte(cal.Serialize())
}

// event is one VEVENT to be written for a series.
type event struct {
	uid   string
	start domain.Date
	rule  *rrule.ROption // nil for a single occurrence
}

func eventsFor(s domain.Series) []event {
	if !s.AnchorDate.IsValid() {
		return nil
	}
	if !s.Repeat.IsRecurring() {
		if !domain.OccursOn(s, s.AnchorDate) {
			return nil
		}
		return []event{{uid: s.ID, start: s.AnchorDate}}
	}

	opt := ruleOption(s)
	if s.Repeat.Type != domain.RepeatCustom || containsWeekday(s.Repeat.Weekdays, s.AnchorDate.Weekday()) {
		return []event{{uid: s.ID, start: s.AnchorDate, rule: &opt}}
	}

	// The anchor always occurs, but a custom rule anchored off its weekdays
	// cannot express that: RRULE would not yield DTSTART consistently. Write
	// the anchor on its own and start the rule at its first matching day.
	var out []event
	if domain.OccursOn(s, s.AnchorDate) {
		out = append(out, event{uid: s.ID + "-anchor", start: s.AnchorDate})
	}
	first := s.AnchorDate.AddDays(1)
	for !containsWeekday(s.Repeat.Weekdays, first.Weekday()) {
		first = first.AddDays(1)
	}
	if s.Until == nil || !first.After(*s.Until) {
		out = append(out, event{uid: s.ID, start: first, rule: &opt})
	}
	return out
}

// ruleOption maps a repeat rule onto RFC 5545 terms. Monthly uses BYMONTHDAY,
// which skips months without that day, the same as the evaluator.
func ruleOption(s domain.Series) rrule.ROption {
	switch s.Repeat.Type {
	case domain.RepeatDaily:
		return rrule.ROption{Freq: rrule.DAILY}
	case domain.RepeatWeekly:
		return rrule.ROption{Freq: rrule.WEEKLY}
	case domain.RepeatBiweekly:
		return rrule.ROption{Freq: rrule.WEEKLY, Interval: 2}
	case domain.RepeatMonthly:
		return rrule.ROption{Freq: rrule.MONTHLY, Bymonthday: []int{s.AnchorDate.Day}}
	case domain.RepeatCustom:
		days := make([]rrule.Weekday, 0, len(s.Repeat.Weekdays))
		for _, wd := range s.Repeat.Weekdays {
			days = append(days, toRRuleWeekday(wd))
		}
		return rrule.ROption{Freq: rrule.WEEKLY, Byweekday: days}
	case domain.RepeatInterval:
		return rrule.ROption{Freq: rrule.DAILY, Interval: s.Repeat.IntervalDays}
	default:
		return rrule.ROption{}
	}
}

func toRRuleWeekday(wd time.Weekday) rrule.Weekday {
	return [...]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}[wd]
}

func containsWeekday(days []time.Weekday, wd time.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}

func addEvent(cal *ical.Calendar, s domain.Series, ev event, stamp time.Time) {
	ve := cal.AddEvent(ev.uid)
	ve.SetDtStampTime(stamp)
	if !s.CreatedAt.IsZero() {
		ve.SetCreatedTime(s.CreatedAt)
	}
	ve.SetSummary(s.Payload.Name)
	if desc := description(s.Payload); desc != "" {
		ve.SetDescription(desc)
	}
	if s.Payload.TagID != "" {
		ve.SetProperty(ical.ComponentPropertyCategories, s.Payload.TagID)
	}

	value, params := formatDate(s, ev.start)
	ve.SetProperty(ical.ComponentPropertyDtStart, value, params...)

	if ev.rule == nil {
		return
	}
	rule := ev.rule.RRuleString()
	if s.Until != nil {
		// UNTIL must have the same value type as DTSTART.
		until, _ := formatDate(s, *s.Until)
		if s.Time != nil {
			until = s.Until.Time().Add(24*time.Hour - time.Second).Format(icsLocalTimeLayout)
		}
		rule += ";UNTIL=" + until
	}
	ve.AddProperty(ical.ComponentPropertyRrule, rule)

	if excluded := s.ExcludedDates.Sorted(); len(excluded) > 0 {
		values := make([]string, 0, len(excluded))
		for _, d := range excluded {
			v, _ := formatDate(s, d)
			values = append(values, v)
		}
		ve.AddProperty(ical.ComponentPropertyExdate, strings.Join(values, ","), params...)
	}
}

// formatDate renders d as DTSTART would: a DATE, or a floating DATE-TIME at
// the series' time of day.
func formatDate(s domain.Series, d domain.Date) (string, []ical.PropertyParameter) {
	if s.Time == nil {
		return d.Time().Format(icsDateLayout), []ical.PropertyParameter{
			&ical.KeyValues{Key: string(ical.ParameterValue), Value: []string{"DATE"}},
		}
	}
	t := d.Time().Add(time.Duration(s.Time.Hour)*time.Hour + time.Duration(s.Time.Minute)*time.Minute)
	return t.Format(icsLocalTimeLayout), nil
}

func description(p domain.Payload) string {
	var parts []string
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.TemplateName != "" {
		parts = append(parts, fmt.Sprintf("Template: %s", p.TemplateName))
	}
	return strings.Join(parts, "\n")
}
