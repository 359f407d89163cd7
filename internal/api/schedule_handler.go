package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/schedule"
	"alcyxob/workout-planner/internal/service"
	"alcyxob/workout-planner/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const defaultUpcomingLimit = 20

type ScheduleHandler struct {
	scheduleService service.ScheduleService
	today           func() domain.Date
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		today:           domain.Today,
	}
}

// handleServiceError maps service errors to HTTP status codes.
func handleServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, schedule.ErrSeriesNotFound), errors.Is(err, service.ErrNoImage):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, schedule.ErrDuplicateSeries):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidRepeat),
		errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, schedule.ErrNoOccurrence),
		errors.Is(err, schedule.ErrInvalidScope),
		errors.Is(err, storage.ErrUnsupportedContentType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrStorageDisabled), errors.Is(err, service.ErrServiceClosed):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		_ = c.Error(err)
		log.WithError(err).Errorf("failed to %s", action)
		abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to %s.", action))
	}
}

// ownerAndSeries reads the owner from the token and the series id from the path.
func ownerAndSeries(c *gin.Context) (ownerID, seriesID string, ok bool) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return "", "", false
	}
	return ownerID, c.Param("id"), true
}

func dateParam(c *gin.Context) (domain.Date, bool) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date in URL path, expected YYYY-MM-DD.")
		return domain.Date{}, false
	}
	return date, true
}

// ListSeries godoc
// @Summary List the user's workout series
// @Tags Series
// @Produce json
// @Security BearerAuth
// @Success 200 {array} SeriesResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /series [get]
func (h *ScheduleHandler) ListSeries(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	list, err := h.scheduleService.ListSeries(c.Request.Context(), ownerID)
	if err != nil {
		handleServiceError(c, err, "list series")
		return
	}
	c.JSON(http.StatusOK, MapSeriesListToResponse(list))
}

// CreateSeries godoc
// @Summary Schedule a workout, optionally recurring
// @Tags Series
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param series body CreateSeriesRequest true "Series details"
// @Success 201 {object} SeriesResponse
// @Failure 400 {object} gin.H "Invalid input (validation error, bad repeat rule)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /series [post]
func (h *ScheduleHandler) CreateSeries(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	anchor, err := domain.ParseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.scheduleService.CreateSeries(c.Request.Context(), ownerID, service.NewSeriesInput{
		AnchorDate: anchor,
		Time:       req.Time,
		Repeat:     req.Repeat.toDomain(),
		Payload: domain.Payload{
			Name:         req.Name,
			Description:  req.Description,
			TagID:        req.TagID,
			TagColor:     req.TagColor,
			TemplateID:   req.TemplateID,
			TemplateName: req.TemplateName,
			Reminder:     req.Reminder,
		},
	})
	if err != nil {
		handleServiceError(c, err, "create series")
		return
	}
	c.JSON(http.StatusCreated, MapSeriesToResponse(created))
}

// GetSeries godoc
// @Summary Get one workout series
// @Tags Series
// @Produce json
// @Security BearerAuth
// @Param id path string true "Series ID"
// @Success 200 {object} SeriesResponse
// @Failure 404 {object} gin.H "Series not found"
// @Router /series/{id} [get]
func (h *ScheduleHandler) GetSeries(c *gin.Context) {
	ownerID, id, ok := ownerAndSeries(c)
	if !ok {
		return
	}
	s, err := h.scheduleService.GetSeries(c.Request.Context(), ownerID, id)
	if err != nil {
		handleServiceError(c, err, "get series")
		return
	}
	c.JSON(http.StatusOK, MapSeriesToResponse(s))
}

// UpdateSeries godoc
// @Summary Edit every occurrence of a series
// @Description Completion and exclusion history is kept.
// @Tags Series
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Series ID"
// @Param patch body PatchSeriesRequest true "Fields to change"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Series not found"
// @Router /series/{id} [patch]
func (h *ScheduleHandler) UpdateSeries(c *gin.Context) {
	ownerID, id, ok := ownerAndSeries(c)
	if !ok {
		return
	}
	var req PatchSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	updated, err := h.scheduleService.UpdateSeries(c.Request.Context(), ownerID, id, req.toDomain())
	if err != nil {
		handleServiceError(c, err, "update series")
		return
	}
	c.JSON(http.StatusOK, MapSeriesToResponse(updated))
}

// DeleteSeries godoc
// @Summary Delete a series with all of its occurrences
// @Tags Series
// @Security BearerAuth
// @Param id path string true "Series ID"
// @Success 204
// @Failure 404 {object} gin.H "Series not found"
// @Router /series/{id} [delete]
func (h *ScheduleHandler) DeleteSeries(c *gin.Context) {
	ownerID, id, ok := ownerAndSeries(c)
	if !ok {
		return
	}
	if err := h.scheduleService.DeleteSeries(c.Request.Context(), ownerID, id); err != nil {
		handleServiceError(c, err, "delete series")
		return
	}
	c.Status(http.StatusNoContent)
}

// EditOccurrence godoc
// @Summary Edit one occurrence, it and all following ones, or the whole series
// @Tags Occurrences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Series ID"
// @Param date path string true "Occurrence date (YYYY-MM-DD)"
// @Param scope query string false "one, forward or all" default(one)
// @Param patch body PatchSeriesRequest true "Fields to change"
// @Success 200 {object} EditResultResponse
// @Failure 400 {object} gin.H "Invalid input, scope, or no occurrence on that date"
// @Failure 404 {object} gin.H "Series not found"
// @Router /series/{id}/occurrences/{date} [patch]
func (h *ScheduleHandler) EditOccurrence(c *gin.Context) {
	ownerID, id, ok := ownerAndSeries(c)
	if !ok {
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}
	scope, err := schedule.ParseScope(c.DefaultQuery("scope", string(schedule.ScopeOne)))
	if err != nil {
		handleServiceError(c, err, "parse scope")
		return
	}
	var req PatchSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	res, err := h.scheduleService.EditOccurrence(c.Request.Context(), ownerID, id, date, scope, req.toDomain())
	if err != nil {
		handleServiceError(c, err, "edit occurrence")
		return
	}
	c.JSON(http.StatusOK, mapEditResult(res))
}

// DeleteOccurrence godoc
// @Summary Delete one occurrence, it and all following ones, or the whole series
// @Tags Occurrences
// @Produce json
// @Security BearerAuth
// @Param id path string true "Series ID"
// @Param date path string true "Occurrence date (YYYY-MM-DD)"
// @Param scope query string false "one, forward or all" default(one)
// @Success 200 {object} EditResultResponse
// @Failure 400 {object} gin.H "Invalid scope, or no occurrence on that date"
// @Failure 404 {object} gin.H "Series not found"
// @Router /series/{id}/occurrences/{date} [delete]
func (h *ScheduleHandler) DeleteOccurrence(c *gin.Context) {
	ownerID, id, ok := ownerAndSeries(c)
	if !ok {
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}
	scope, err := schedule.ParseScope(c.DefaultQuery("scope", string(schedule.ScopeOne)))
	if err != nil {
		handleServiceError(c, err, "parse scope")
		return
	}

	res, err := h.scheduleService.DeleteOccurrence(c.Request.Context(), ownerID, id, date, scope)
	if err != nil {
		handleServiceError(c, err, "delete occurrence")
		return
	}
	c.JSON(http.StatusOK, mapEditResult(res))
}

// ToggleCompletion godoc
// @Summary Flip the completion state of a date
// @Description The date is not checked against the series' occurrences.
// @Tags Completions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Series ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} CompletionResponse
// @Failure 400 {object} gin.H "Malformed date"
// @Failure 404 {object} gin.H "Series not found"
// @Router /series/{id}/completions/{date}/toggle [post]
func (h *ScheduleHandler) ToggleCompletion(c *gin.Context) {
	ownerID, id, ok := ownerAndSeries(c)
	if !ok {
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}
	completed, err := h.scheduleService.ToggleCompletion(c.Request.Context(), ownerID, id, date)
	if err != nil {
		handleServiceError(c, err, "toggle completion")
		return
	}
	c.JSON(http.StatusOK, CompletionResponse{SeriesID: id, Date: date.String(), Completed: completed})
}

// GetCompletion godoc
// @Summary Read the completion state of one occurrence
// @Tags Completions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Series ID"
// @Param date path string true "Occurrence date (YYYY-MM-DD)"
// @Success 200 {object} CompletionResponse
// @Failure 404 {object} gin.H "Series not found"
// @Router /series/{id}/completions/{date} [get]
func (h *ScheduleHandler) GetCompletion(c *gin.Context) {
	ownerID, id, ok := ownerAndSeries(c)
	if !ok {
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}
	completed, err := h.scheduleService.IsCompleted(c.Request.Context(), ownerID, id, date)
	if err != nil {
		handleServiceError(c, err, "read completion")
		return
	}
	c.JSON(http.StatusOK, CompletionResponse{SeriesID: id, Date: date.String(), Completed: completed})
}

// MatchAndComplete godoc
// @Summary Attribute a performed workout to a scheduled occurrence
// @Description Matches by template id, then by name, then the day's only workout.
// @Tags Completions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body MatchRequest true "Performed workout"
// @Success 200 {object} MatchResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /completions/match [post]
func (h *ScheduleHandler) MatchAndComplete(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.scheduleService.MatchAndComplete(c.Request.Context(), ownerID, schedule.PerformedWorkout{
		Date:       date,
		TemplateID: req.TemplateID,
		Name:       req.Name,
	})
	if err != nil {
		handleServiceError(c, err, "match workout")
		return
	}
	c.JSON(http.StatusOK, MatchResponse{
		Matched:        res.Matched(),
		SeriesID:       res.SeriesID,
		Reason:         string(res.Reason),
		NewlyCompleted: res.NewlyCompleted,
	})
}

// GetMonth godoc
// @Summary Occurrences in a calendar month, keyed by day of month
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} map[string][]OccurrenceResponse
// @Failure 400 {object} gin.H "Invalid year or month"
// @Router /calendar/{year}/{month} [get]
func (h *ScheduleHandler) GetMonth(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	year, yearErr := strconv.Atoi(c.Param("year"))
	month, monthErr := strconv.Atoi(c.Param("month"))
	if yearErr != nil || monthErr != nil || year < 1 || month < 1 || month > 12 {
		abortWithError(c, http.StatusBadRequest, "Invalid year or month in URL path.")
		return
	}

	byDay, err := h.scheduleService.OccurrencesInMonth(c.Request.Context(), ownerID, year, time.Month(month))
	if err != nil {
		handleServiceError(c, err, "load month")
		return
	}
	out := make(map[int][]OccurrenceResponse, len(byDay))
	for day, occs := range byDay {
		out[day] = MapOccurrencesToResponse(occs)
	}
	c.JSON(http.StatusOK, out)
}

// GetDay godoc
// @Summary Occurrences on one date
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {array} OccurrenceResponse
// @Failure 400 {object} gin.H "Invalid date"
// @Router /calendar/days/{date} [get]
func (h *ScheduleHandler) GetDay(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}
	occs, err := h.scheduleService.OccurrencesOnDate(c.Request.Context(), ownerID, date)
	if err != nil {
		handleServiceError(c, err, "load day")
		return
	}
	c.JSON(http.StatusOK, MapOccurrencesToResponse(occs))
}

// GetUpcoming godoc
// @Summary The next occurrences from a date, for reminder scheduling
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param from query string false "First date (YYYY-MM-DD), defaults to today"
// @Param limit query int false "Maximum occurrences (1-100)" default(20)
// @Success 200 {array} OccurrenceResponse
// @Failure 400 {object} gin.H "Invalid date or limit"
// @Router /occurrences/upcoming [get]
func (h *ScheduleHandler) GetUpcoming(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	from := h.today()
	if raw := c.Query("from"); raw != "" {
		if from, err = domain.ParseDate(raw); err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	limit := defaultUpcomingLimit
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 1 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}

	occs, err := h.scheduleService.UpcomingOccurrences(c.Request.Context(), ownerID, from, limit)
	if err != nil {
		handleServiceError(c, err, "load upcoming occurrences")
		return
	}
	c.JSON(http.StatusOK, MapOccurrencesToResponse(occs))
}

// ExportICS godoc
// @Summary The user's schedule as an iCalendar feed
// @Tags Calendar
// @Produce text/calendar
// @Security BearerAuth
// @Success 200 {string} string "iCalendar document"
// @Router /calendar.ics [get]
func (h *ScheduleHandler) ExportICS(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	feed, err := h.scheduleService.ExportICS(c.Request.Context(), ownerID)
	if err != nil {
		handleServiceError(c, err, "export calendar")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="workouts.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", feed)
}

// RequestImageUploadURL godoc
// @Summary Get a presigned URL to upload a series image
// @Description Replaces any image already attached to the series.
// @Tags Series
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Series ID"
// @Param request body ImageUploadRequest true "Image content type"
// @Success 200 {object} service.ImageUploadURL
// @Failure 400 {object} gin.H "Unsupported content type"
// @Failure 404 {object} gin.H "Series not found"
// @Failure 503 {object} gin.H "Image storage is not configured"
// @Router /series/{id}/image/upload-url [post]
func (h *ScheduleHandler) RequestImageUploadURL(c *gin.Context) {
	ownerID, id, ok := ownerAndSeries(c)
	if !ok {
		return
	}
	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	res, err := h.scheduleService.RequestImageUploadURL(c.Request.Context(), ownerID, id, req.ContentType)
	if err != nil {
		handleServiceError(c, err, "generate upload URL")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetImageURL godoc
// @Summary Get a presigned URL to download the series image
// @Tags Series
// @Produce json
// @Security BearerAuth
// @Param id path string true "Series ID"
// @Success 200 {object} ImageURLResponse
// @Failure 404 {object} gin.H "Series not found or has no image"
// @Failure 503 {object} gin.H "Image storage is not configured"
// @Router /series/{id}/image/url [get]
func (h *ScheduleHandler) GetImageURL(c *gin.Context) {
	ownerID, id, ok := ownerAndSeries(c)
	if !ok {
		return
	}
	url, err := h.scheduleService.ImageDownloadURL(c.Request.Context(), ownerID, id)
	if err != nil {
		handleServiceError(c, err, "generate download URL")
		return
	}
	c.JSON(http.StatusOK, ImageURLResponse{URL: url})
}
