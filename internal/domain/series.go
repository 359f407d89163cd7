// internal/domain/series.go
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// RepeatType is the recurrence variant of a Series.
type RepeatType string

const (
	RepeatNever    RepeatType = "never"
	RepeatDaily    RepeatType = "daily"
	RepeatWeekly   RepeatType = "weekly"
	RepeatBiweekly RepeatType = "biweekly"
	RepeatMonthly  RepeatType = "monthly"
	RepeatCustom   RepeatType = "custom"   // fires on a set of weekdays
	RepeatInterval RepeatType = "interval" // fires every N days from the anchor
)

var (
	ErrInvalidRepeat = errors.New("invalid repeat rule")
	ErrInvalidTime   = errors.New("invalid time of day")
	ErrNameRequired  = errors.New("workout name is required")
)

func (rt RepeatType) IsValid() bool {
	switch rt {
	case RepeatNever, RepeatDaily, RepeatWeekly, RepeatBiweekly, RepeatMonthly, RepeatCustom, RepeatInterval:
		return true
	default:
		return false
	}
}

// Repeat is the recurrence rule. Only Custom (Weekdays) and Interval
// (IntervalDays) carry parameters; the other fields are ignored otherwise.
type Repeat struct {
	Type         RepeatType     `json:"type"`
	Weekdays     []time.Weekday `json:"customDays,omitempty"`
	IntervalDays int            `json:"intervalDays,omitempty"`
}

func Never() Repeat { return Repeat{Type: RepeatNever} }
func Daily() Repeat { return Repeat{Type: RepeatDaily} }
func Weekly() Repeat { return Repeat{Type: RepeatWeekly} }
func Biweekly() Repeat { return Repeat{Type: RepeatBiweekly} }
func Monthly() Repeat { return Repeat{Type: RepeatMonthly} }
func EveryNDays(n int) Repeat { return Repeat{Type: RepeatInterval, IntervalDays: n} }
func OnWeekdays(days ...time.Weekday) Repeat { return Repeat{Type: RepeatCustom, Weekdays: days} }

// IsRecurring is false only for Never.
func (r Repeat) IsRecurring() bool {
	return r.Type != RepeatNever
}

// Validate rejects rules a user should not be able to save. Persisted rules
// that fail validation are degraded by Normalize instead.
func (r Repeat) Validate() error {
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRepeat, r.Type)
	}
	switch r.Type {
	case RepeatCustom:
		if len(r.Weekdays) == 0 {
			return fmt.Errorf("%w: custom repeat needs at least one weekday", ErrInvalidRepeat)
		}
		seen := make(map[time.Weekday]bool, len(r.Weekdays))
		for _, wd := range r.Weekdays {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRepeat, wd)
			}
			if seen[wd] {
				return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidRepeat, wd)
			}
			seen[wd] = true
		}
	case RepeatInterval:
		if r.IntervalDays < 1 {
			return fmt.Errorf("%w: interval must be at least 1 day, got %d", ErrInvalidRepeat, r.IntervalDays)
		}
	}
	return nil
}

// Normalize returns the canonical form of r: parameters of other variants are
// cleared, weekdays are deduplicated and sorted, and anything malformed
// collapses to Never.
func (r Repeat) Normalize() Repeat {
	switch r.Type {
	case RepeatDaily, RepeatWeekly, RepeatBiweekly, RepeatMonthly, RepeatNever:
		return Repeat{Type: r.Type}
	case RepeatInterval:
		if r.IntervalDays < 1 {
			return Never()
		}
		return Repeat{Type: RepeatInterval, IntervalDays: r.IntervalDays}
	case RepeatCustom:
		seen := make(map[time.Weekday]bool, len(r.Weekdays))
		days := make([]time.Weekday, 0, len(r.Weekdays))
		for _, wd := range r.Weekdays {
			if wd < time.Sunday || wd > time.Saturday || seen[wd] {
				continue
			}
			seen[wd] = true
			days = append(days, wd)
		}
		if len(days) == 0 {
			return Never()
		}
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
		return Repeat{Type: RepeatCustom, Weekdays: days}
	default:
		return Never()
	}
}

func (r Repeat) hasWeekday(wd time.Weekday) bool {
	for _, d := range r.Weekdays {
		if d == wd {
			return true
		}
	}
	return false
}

// ClockTime is an optional time of day applied to every occurrence.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t ClockTime) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, t.Hour, t.Minute)
	}
	return nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Reminder settings are read by the external notification service only.
type Reminder struct {
	Enabled bool `json:"enabled"`
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
}

// Payload holds the display fields of a series. The evaluator never looks at it.
type Payload struct {
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	TagID        string    `json:"tagId"`
	TagColor     string    `json:"tagColor"`
	TemplateID   string    `json:"templateId,omitempty"`
	TemplateName string    `json:"templateName"`
	Reminder     *Reminder `json:"reminder,omitempty"`
	ImageKey     string    `json:"imageKey,omitempty"` // object key of an attached image, if any
}

// Series is the stored unit of scheduling. Occurrences are never stored;
// they are computed from (Series, Date) by OccursOn.
type Series struct {
	ID             string
	OwnerID        string
	AnchorDate     Date
	Time           *ClockTime
	Repeat         Repeat
	Until          *Date // last day the series may fire on, set by forward splits
	ExcludedDates  DateSet
	CompletedDates DateSet
	Payload        Payload
	CreatedAt      time.Time
}

// Clone returns a deep copy, so that mutating the copy never leaks into
// a state snapshot that still references the original.
func (s Series) Clone() Series {
	out := s
	if s.Time != nil {
		t := *s.Time
		out.Time = &t
	}
	if s.Until != nil {
		u := *s.Until
		out.Until = &u
	}
	out.Repeat.Weekdays = append([]time.Weekday(nil), s.Repeat.Weekdays...)
	out.ExcludedDates = s.ExcludedDates.Clone()
	out.CompletedDates = s.CompletedDates.Clone()
	if s.Payload.Reminder != nil {
		r := *s.Payload.Reminder
		out.Payload.Reminder = &r
	}
	return out
}

// IsCompleted reports whether the occurrence on d was marked done.
func (s Series) IsCompleted(d Date) bool {
	return s.CompletedDates.Has(d)
}

// Validate checks the fields a user controls when scheduling.
func (s Series) Validate() error {
	if strings.TrimSpace(s.Payload.Name) == "" {
		return ErrNameRequired
	}
	if !s.AnchorDate.IsValid() {
		return fmt.Errorf("%w: anchor date", ErrInvalidDate)
	}
	if s.Time != nil {
		if err := s.Time.Validate(); err != nil {
			return err
		}
	}
	return s.Repeat.Validate()
}

// SeriesPatch carries the fields an edit may change. Nil fields are left as is.
type SeriesPatch struct {
	Name          *string
	Description   *string
	TagID         *string
	TagColor      *string
	TemplateID    *string
	TemplateName  *string
	Reminder      *Reminder
	ClearReminder bool
	ImageKey      *string
	Time          *ClockTime
	ClearTime     bool
	Repeat        *Repeat
}

// IsEmpty reports whether applying p would change nothing.
func (p SeriesPatch) IsEmpty() bool {
	return p == SeriesPatch{}
}

// Validate checks the patched fields in isolation.
func (p SeriesPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrNameRequired
	}
	if p.Time != nil {
		if err := p.Time.Validate(); err != nil {
			return err
		}
	}
	if p.Repeat != nil {
		return p.Repeat.Validate()
	}
	return nil
}

// ApplyPayload merges the payload and time fields of p over s. The repeat
// rule is left alone; callers decide whether a rule change is allowed.
func (p SeriesPatch) ApplyPayload(s *Series) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.Payload.Name, p.Name)
	set(&s.Payload.Description, p.Description)
	set(&s.Payload.TagID, p.TagID)
	set(&s.Payload.TagColor, p.TagColor)
	set(&s.Payload.TemplateID, p.TemplateID)
	set(&s.Payload.TemplateName, p.TemplateName)
	set(&s.Payload.ImageKey, p.ImageKey)

	switch {
	case p.ClearReminder:
		s.Payload.Reminder = nil
	case p.Reminder != nil:
		r := *p.Reminder
		s.Payload.Reminder = &r
	}
	switch {
	case p.ClearTime:
		s.Time = nil
	case p.Time != nil:
		t := *p.Time
		s.Time = &t
	}
}
