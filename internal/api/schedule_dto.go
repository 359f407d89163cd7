package api

import (
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/schedule"
	"alcyxob/workout-planner/internal/service"
)

// RepeatDTO is the wire form of a repeat rule. customDays uses 0 = Sunday.
type RepeatDTO struct {
	Type         string `json:"type"`
	CustomDays   []int  `json:"customDays,omitempty"`
	IntervalDays int    `json:"intervalDays,omitempty"`
}

func (r RepeatDTO) toDomain() domain.Repeat {
	repeat := domain.Repeat{Type: domain.RepeatType(r.Type), IntervalDays: r.IntervalDays}
	if r.Type == "" {
		repeat.Type = domain.RepeatNever
	}
	for _, d := range r.CustomDays {
		repeat.Weekdays = append(repeat.Weekdays, time.Weekday(d))
	}
	return repeat
}

type CreateSeriesRequest struct {
	Date         string            `json:"date" binding:"required"` // YYYY-MM-DD
	Time         *domain.ClockTime `json:"time"`
	Repeat       RepeatDTO         `json:"repeat"`
	Name         string            `json:"name" binding:"required"`
	Description  string            `json:"description"`
	TagID        string            `json:"tagId"`
	TagColor     string            `json:"tagColor"`
	TemplateID   string            `json:"templateId"`
	TemplateName string            `json:"templateName"`
	Reminder     *domain.Reminder  `json:"reminder"`
}

// PatchSeriesRequest leaves absent fields untouched. clearTime and
// clearReminder remove the optional values.
type PatchSeriesRequest struct {
	Name          *string           `json:"name"`
	Description   *string           `json:"description"`
	TagID         *string           `json:"tagId"`
	TagColor      *string           `json:"tagColor"`
	TemplateID    *string           `json:"templateId"`
	TemplateName  *string           `json:"templateName"`
	Reminder      *domain.Reminder  `json:"reminder"`
	ClearReminder bool              `json:"clearReminder"`
	Time          *domain.ClockTime `json:"time"`
	ClearTime     bool              `json:"clearTime"`
	Repeat        *RepeatDTO        `json:"repeat"`
}

func (p PatchSeriesRequest) toDomain() domain.SeriesPatch {
	patch := domain.SeriesPatch{
		Name:          p.Name,
		Description:   p.Description,
		TagID:         p.TagID,
		TagColor:      p.TagColor,
		TemplateID:    p.TemplateID,
		TemplateName:  p.TemplateName,
		Reminder:      p.Reminder,
		ClearReminder: p.ClearReminder,
		Time:          p.Time,
		ClearTime:     p.ClearTime,
	}
	if p.Repeat != nil {
		r := p.Repeat.toDomain()
		patch.Repeat = &r
	}
	return patch
}

type SeriesResponse struct {
	ID             string            `json:"id"`
	Date           string            `json:"date"`
	Time           *domain.ClockTime `json:"time,omitempty"`
	Repeat         RepeatDTO         `json:"repeat"`
	UntilDate      string            `json:"untilDate,omitempty"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	TagID          string            `json:"tagId"`
	TagColor       string            `json:"tagColor"`
	TemplateID     string            `json:"templateId,omitempty"`
	TemplateName   string            `json:"templateName"`
	Reminder       *domain.Reminder  `json:"reminder,omitempty"`
	HasImage       bool              `json:"hasImage"`
	CompletedDates []string          `json:"completedDates"`
	ExcludedDates  []string          `json:"excludedDates"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// MapSeriesToResponse converts a series through its persisted shape, so the
// API and storage agree on field formats.
func MapSeriesToResponse(s domain.Series) SeriesResponse {
	rec := domain.ToRecord(s)
	return SeriesResponse{
		ID:   rec.ID,
		Date: rec.Date,
		Time: rec.Time,
		Repeat: RepeatDTO{
			Type:         rec.Repeat.Type,
			CustomDays:   rec.Repeat.CustomDays,
			IntervalDays: rec.Repeat.IntervalDays,
		},
		UntilDate:      rec.UntilDate,
		Name:           rec.Name,
		Description:    rec.Description,
		TagID:          rec.TagID,
		TagColor:       rec.TagColor,
		TemplateID:     rec.TemplateID,
		TemplateName:   rec.TemplateName,
		Reminder:       rec.Reminder,
		HasImage:       rec.ImageKey != "",
		CompletedDates: rec.CompletedDates,
		ExcludedDates:  rec.ExcludedDates,
		CreatedAt:      rec.CreatedAt,
	}
}

func MapSeriesListToResponse(list []domain.Series) []SeriesResponse {
	out := make([]SeriesResponse, len(list))
	for i, s := range list {
		out[i] = MapSeriesToResponse(s)
	}
	return out
}

// OccurrenceResponse is one computed occurrence of a series.
type OccurrenceResponse struct {
	Date         string            `json:"date"`
	SeriesID     string            `json:"seriesId"`
	Completed    bool              `json:"completed"`
	Time         *domain.ClockTime `json:"time,omitempty"`
	Name         string            `json:"name"`
	TagID        string            `json:"tagId"`
	TagColor     string            `json:"tagColor"`
	TemplateID   string            `json:"templateId,omitempty"`
	TemplateName string            `json:"templateName"`
	Recurring    bool              `json:"recurring"`
}

func MapOccurrencesToResponse(occs []schedule.Occurrence) []OccurrenceResponse {
	out := make([]OccurrenceResponse, len(occs))
	for i, o := range occs {
		out[i] = OccurrenceResponse{
			Date:         o.Date.String(),
			SeriesID:     o.Series.ID,
			Completed:    o.Completed,
			Time:         o.Series.Time,
			Name:         o.Series.Payload.Name,
			TagID:        o.Series.Payload.TagID,
			TagColor:     o.Series.Payload.TagColor,
			TemplateID:   o.Series.Payload.TemplateID,
			TemplateName: o.Series.Payload.TemplateName,
			Recurring:    o.Series.Repeat.IsRecurring(),
		}
	}
	return out
}

type EditResultResponse struct {
	Updated    []SeriesResponse `json:"updated"`
	DeletedIDs []string         `json:"deletedIds"`
}

func mapEditResult(res service.EditResult) EditResultResponse {
	deleted := res.DeletedIDs
	if deleted == nil {
		deleted = []string{}
	}
	return EditResultResponse{Updated: MapSeriesListToResponse(res.Updated), DeletedIDs: deleted}
}

type CompletionResponse struct {
	SeriesID  string `json:"seriesId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type MatchRequest struct {
	Date       string `json:"date" binding:"required"`
	TemplateID string `json:"templateId"`
	Name       string `json:"name"`
}

type MatchResponse struct {
	Matched        bool   `json:"matched"`
	SeriesID       string `json:"seriesId,omitempty"`
	Reason         string `json:"reason,omitempty"`
	NewlyCompleted bool   `json:"newlyCompleted"`
}

type ImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ImageURLResponse struct {
	URL string `json:"url"`
}
