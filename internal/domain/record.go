// internal/domain/record.go
package domain

import (
	"errors"
	"fmt"
	"time"
)

// RepeatRecord is the persisted form of a Repeat.
type RepeatRecord struct {
	Type         string `bson:"type" json:"type"`
	CustomDays   []int  `bson:"customDays,omitempty" json:"customDays,omitempty"` // 0 = Sunday
	IntervalDays int    `bson:"intervalDays,omitempty" json:"intervalDays,omitempty"`
}

// SeriesRecord is the persisted shape of a Series, one record per series.
// Dates are plain "YYYY-MM-DD" strings with no timezone.
type SeriesRecord struct {
	ID             string       `bson:"_id" json:"id"`
	OwnerID        string       `bson:"ownerId" json:"ownerId"`
	Name           string       `bson:"name" json:"name"`
	Description    string       `bson:"description,omitempty" json:"description,omitempty"`
	TagID          string       `bson:"tagId" json:"tagId"`
	TagColor       string       `bson:"tagColor" json:"tagColor"`
	Date           string       `bson:"date" json:"date"`
	Time           *ClockTime   `bson:"time,omitempty" json:"time,omitempty"`
	Repeat         RepeatRecord `bson:"repeat" json:"repeat"`
	Reminder       *Reminder    `bson:"reminder,omitempty" json:"reminder,omitempty"`
	TemplateID     string       `bson:"templateId,omitempty" json:"templateId,omitempty"`
	TemplateName   string       `bson:"templateName" json:"templateName"`
	ImageKey       string       `bson:"imageKey,omitempty" json:"imageKey,omitempty"`
	CompletedDates []string     `bson:"completedDates" json:"completedDates"`
	ExcludedDates  []string     `bson:"excludedDates" json:"excludedDates"`
	UntilDate      string       `bson:"untilDate,omitempty" json:"untilDate,omitempty"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
}

// ToRecord converts a Series into its persisted shape.
func ToRecord(s Series) SeriesRecord {
	rec := SeriesRecord{
		ID:             s.ID,
		OwnerID:        s.OwnerID,
		Name:           s.Payload.Name,
		Description:    s.Payload.Description,
		TagID:          s.Payload.TagID,
		TagColor:       s.Payload.TagColor,
		Date:           s.AnchorDate.String(),
		Repeat:         RepeatRecord{Type: string(s.Repeat.Type)},
		TemplateID:     s.Payload.TemplateID,
		TemplateName:   s.Payload.TemplateName,
		ImageKey:       s.Payload.ImageKey,
		CompletedDates: datesToStrings(s.CompletedDates),
		ExcludedDates:  datesToStrings(s.ExcludedDates),
		CreatedAt:      s.CreatedAt,
	}
	if s.Time != nil {
		t := *s.Time
		rec.Time = &t
	}
	if s.Payload.Reminder != nil {
		r := *s.Payload.Reminder
		rec.Reminder = &r
	}
	if s.Until != nil {
		rec.UntilDate = s.Until.String()
	}
	switch s.Repeat.Type {
	case RepeatCustom:
		for _, wd := range s.Repeat.Weekdays {
			rec.Repeat.CustomDays = append(rec.Repeat.CustomDays, int(wd))
		}
	case RepeatInterval:
		rec.Repeat.IntervalDays = s.Repeat.IntervalDays
	}
	return rec
}

// FromRecord converts a persisted record back into a Series. It never fails
// outright: corrupt fields are degraded so that one bad record cannot break a
// calendar query, and every degradation is reported in the returned error.
//
//   - unknown or malformed repeat -> Never
//   - unparseable anchor date     -> zero date, the series never occurs
//   - unparseable until date      -> until = anchor (nothing after the anchor)
//   - unparseable set entries     -> dropped
func FromRecord(rec SeriesRecord) (Series, error) {
	var problems []error

	s := Series{
		ID:      rec.ID,
		OwnerID: rec.OwnerID,
		Payload: Payload{
			Name:         rec.Name,
			Description:  rec.Description,
			TagID:        rec.TagID,
			TagColor:     rec.TagColor,
			TemplateID:   rec.TemplateID,
			TemplateName: rec.TemplateName,
			ImageKey:     rec.ImageKey,
		},
		CreatedAt: rec.CreatedAt,
	}
	if rec.Time != nil {
		if err := rec.Time.Validate(); err != nil {
			problems = append(problems, err)
		} else {
			t := *rec.Time
			s.Time = &t
		}
	}
	if rec.Reminder != nil {
		r := *rec.Reminder
		s.Payload.Reminder = &r
	}

	anchor, err := ParseDate(rec.Date)
	if err != nil {
		problems = append(problems, fmt.Errorf("anchor: %w", err))
	} else {
		s.AnchorDate = anchor
	}

	repeat := Repeat{Type: RepeatType(rec.Repeat.Type), IntervalDays: rec.Repeat.IntervalDays}
	for _, wd := range rec.Repeat.CustomDays {
		repeat.Weekdays = append(repeat.Weekdays, time.Weekday(wd))
	}
	if err := repeat.Validate(); err != nil {
		problems = append(problems, err)
	}
	s.Repeat = repeat.Normalize()

	if rec.UntilDate != "" {
		until, err := ParseDate(rec.UntilDate)
		if err != nil {
			problems = append(problems, fmt.Errorf("until: %w", err))
			until = s.AnchorDate
		}
		s.Until = &until
	}

	var setErrs []error
	s.CompletedDates, setErrs = stringsToDates(rec.CompletedDates)
	problems = append(problems, setErrs...)
	s.ExcludedDates, setErrs = stringsToDates(rec.ExcludedDates)
	problems = append(problems, setErrs...)

	if len(problems) > 0 {
		return s, fmt.Errorf("series %s: %w", rec.ID, errors.Join(problems...))
	}
	return s, nil
}

func datesToStrings(set DateSet) []string {
	out := make([]string, 0, set.Len())
	for _, d := range set.Sorted() {
		out = append(out, d.String())
	}
	return out
}

func stringsToDates(in []string) (DateSet, []error) {
	set := make(DateSet, len(in))
	var errs []error
	for _, raw := range in {
		d, err := ParseDate(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set[d] = struct{}{}
	}
	return set, errs
}
