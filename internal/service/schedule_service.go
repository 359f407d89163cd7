package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/ics"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/repository"
	"alcyxob/workout-planner/internal/schedule"
	"alcyxob/workout-planner/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrServiceClosed    = errors.New("schedule service is shut down")
	ErrStorageDisabled  = errors.New("image storage is not configured")
	ErrNoImage          = errors.New("series has no image attached")
	ErrUploadURLError   = errors.New("failed to generate upload URL")
	ErrDownloadURLError = errors.New("failed to generate download URL")
)

const (
	MaxUpcomingLimit = 100
	calendarName     = "Workouts"
)

// NewSeriesInput is what a client supplies to schedule a workout. The id,
// owner and creation time are assigned by the service.
type NewSeriesInput struct {
	AnchorDate domain.Date
	Time       *domain.ClockTime
	Repeat     domain.Repeat
	Payload    domain.Payload
}

// EditResult lists the series an occurrence edit or delete touched.
type EditResult struct {
	Updated    []domain.Series
	DeletedIDs []string
}

// ImageUploadURL is returned when a client asks to attach an image.
type ImageUploadURL struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

//go:generate mockgen -source=$GOFILE -destination=../api/schedule_service_mocks_test.go -package=api_test

// ScheduleService is the planner's entry point. Every method is scoped by
// the owner id taken from the caller's token.
type ScheduleService interface {
	CreateSeries(ctx context.Context, ownerID string, in NewSeriesInput) (domain.Series, error)
	GetSeries(ctx context.Context, ownerID, id string) (domain.Series, error)
	ListSeries(ctx context.Context, ownerID string) ([]domain.Series, error)
	UpdateSeries(ctx context.Context, ownerID, id string, patch domain.SeriesPatch) (domain.Series, error)
	DeleteSeries(ctx context.Context, ownerID, id string) error

	EditOccurrence(ctx context.Context, ownerID, id string, date domain.Date, scope schedule.Scope, patch domain.SeriesPatch) (EditResult, error)
	DeleteOccurrence(ctx context.Context, ownerID, id string, date domain.Date, scope schedule.Scope) (EditResult, error)

	ToggleCompletion(ctx context.Context, ownerID, id string, date domain.Date) (completed bool, err error)
	IsCompleted(ctx context.Context, ownerID, id string, date domain.Date) (bool, error)
	MatchAndComplete(ctx context.Context, ownerID string, w schedule.PerformedWorkout) (schedule.MatchResult, error)

	OccurrencesOnDate(ctx context.Context, ownerID string, date domain.Date) ([]schedule.Occurrence, error)
	OccurrencesInMonth(ctx context.Context, ownerID string, year int, month time.Month) (map[int][]schedule.Occurrence, error)
	UpcomingOccurrences(ctx context.Context, ownerID string, from domain.Date, limit int) ([]schedule.Occurrence, error)
	ExportICS(ctx context.Context, ownerID string) ([]byte, error)

	RequestImageUploadURL(ctx context.Context, ownerID, id, contentType string) (*ImageUploadURL, error)
	ImageDownloadURL(ctx context.Context, ownerID, id string) (string, error)

	// Close stops accepting writes and waits for queued writes to reach the
	// database, or for ctx to end.
	Close(ctx context.Context) error
}

type ScheduleOptions struct {
	QueueSize    int // backlog of unwritten changes that is logged as a warning
	WriteTimeout time.Duration
	Now          func() time.Time
	NewID        func() string
}

// scheduleService keeps every owner's series in memory as an immutable
// schedule.State. Writers are serialised by mu and swap in the next state;
// readers take the current snapshot and never touch the database. Changes
// reach the database through a FIFO queue drained by a single worker; pushing
// to it never blocks, so no operation waits on database I/O.
type scheduleService struct {
	mu     sync.RWMutex
	state  schedule.State
	closed bool

	repo    repository.SeriesRepository
	files   storage.FileStorage // nil when image storage is disabled
	metrics *metrics.Manager

	queue        *persistQueue
	workerDone   chan struct{}
	writeTimeout time.Duration
	now          func() time.Time
	newID        func() string
}

// NewScheduleService loads every stored series and starts the persistence
// worker. files may be nil.
func NewScheduleService(ctx context.Context, repo repository.SeriesRepository, files storage.FileStorage, m *metrics.Manager, opts ScheduleOptions) (ScheduleService, error) {
	if opts.QueueSize < 1 {
		opts.QueueSize = 1024
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	state, err := loadState(ctx, repo)
	if err != nil {
		return nil, err
	}
	m.GaugeSeries.Set(float64(state.Count()))

	s := &scheduleService{
		state:        state,
		repo:         repo,
		files:        files,
		metrics:      m,
		queue:        newPersistQueue(opts.QueueSize),
		workerDone:   make(chan struct{}),
		writeTimeout: opts.WriteTimeout,
		now:          opts.Now,
		newID:        opts.NewID,
	}
	go s.runPersistWorker()
	return s, nil
}

// loadState reads all records. Corrupt fields are degraded and logged rather
// than failing startup; records without an id or owner cannot be addressed
// and are skipped.
func loadState(ctx context.Context, repo repository.SeriesRepository) (schedule.State, error) {
	records, err := repo.ListAll(ctx)
	if err != nil {
		return schedule.State{}, fmt.Errorf("load series: %w", err)
	}

	series := make([]domain.Series, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		logger := log.WithFields(log.Fields{"series": rec.ID, "owner": rec.OwnerID})
		if rec.ID == "" || rec.OwnerID == "" {
			logger.Warn("skipping stored series without id or owner")
			continue
		}
		key := rec.OwnerID + "/" + rec.ID
		if seen[key] {
			logger.Warn("skipping duplicate stored series")
			continue
		}
		seen[key] = true

		s, err := domain.FromRecord(rec)
		if err != nil {
			logger.WithError(err).Warn("stored series is corrupt, loaded in degraded form")
		}
		series = append(series, s)
	}

	state, err := schedule.Load(series)
	if err != nil {
		return schedule.State{}, fmt.Errorf("load series: %w", err)
	}
	log.WithField("count", state.Count()).Info("loaded workout series")
	return state, nil
}

func (s *scheduleService) snapshot() schedule.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// apply runs a transition against the current state and, if it changed
// anything, publishes the next state and queues its writes.
func (s *scheduleService) apply(op string, transition func(st schedule.State) (schedule.Commit, error)) (schedule.Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return schedule.Commit{}, ErrServiceClosed
	}
	prev := s.state
	c, err := transition(prev)
	if err != nil {
		return schedule.Commit{}, err
	}
	if c.IsEmpty() {
		return c, nil
	}

	s.state = c.State
	s.metrics.CounterSeriesMutations.WithLabelValues(op).Inc()
	s.metrics.GaugeSeries.Set(float64(c.State.Count()))

	// Pushed under the lock so writes reach the worker in commit order.
	for _, u := range c.Upserted {
		s.enqueue(persistOp{kind: opUpsert, record: domain.ToRecord(u)})
	}
	for _, d := range c.Deleted {
		s.enqueue(persistOp{kind: opDelete, ownerID: d.OwnerID, seriesID: d.ID})
	}
	if s.files != nil {
		for _, key := range orphanedImages(prev, c) {
			s.enqueue(persistOp{kind: opDeleteObject, objectKey: key})
		}
	}
	return c, nil
}

// orphanedImages lists image keys that series in c used to reference and
// that no series of the same owner references any more. Splits copy the key,
// so an image is only removed with its last user.
func orphanedImages(prev schedule.State, c schedule.Commit) []string {
	candidates := map[string]string{} // key -> owner
	for _, changed := range append(append([]domain.Series{}, c.Upserted...), c.Deleted...) {
		if old, ok := prev.Get(changed.OwnerID, changed.ID); ok && old.Payload.ImageKey != "" {
			candidates[old.Payload.ImageKey] = old.OwnerID
		}
	}
	var out []string
	for key, owner := range candidates {
		inUse := false
		for _, s := range c.State.ListForOwner(owner) {
			if s.Payload.ImageKey == key {
				inUse = true
				break
			}
		}
		if !inUse {
			out = append(out, key)
		}
	}
	return out
}

func (s *scheduleService) CreateSeries(ctx context.Context, ownerID string, in NewSeriesInput) (domain.Series, error) {
	series := domain.Series{
		ID:         s.newID(),
		OwnerID:    ownerID,
		AnchorDate: in.AnchorDate,
		Time:       in.Time,
		Repeat:     in.Repeat,
		Payload:    in.Payload,
		CreatedAt:  s.now(),
	}
	// Images are attached through RequestImageUploadURL only.
	series.Payload.ImageKey = ""

	c, err := s.apply("create", func(st schedule.State) (schedule.Commit, error) {
		return schedule.Create(st, series)
	})
	if err != nil {
		return domain.Series{}, err
	}
	return c.Upserted[0], nil
}

func (s *scheduleService) GetSeries(ctx context.Context, ownerID, id string) (domain.Series, error) {
	series, ok := s.snapshot().Get(ownerID, id)
	if !ok {
		return domain.Series{}, schedule.ErrSeriesNotFound
	}
	return series, nil
}

func (s *scheduleService) ListSeries(ctx context.Context, ownerID string) ([]domain.Series, error) {
	return s.snapshot().ListForOwner(ownerID), nil
}

func (s *scheduleService) UpdateSeries(ctx context.Context, ownerID, id string, patch domain.SeriesPatch) (domain.Series, error) {
	patch.ImageKey = nil
	c, err := s.apply("update", func(st schedule.State) (schedule.Commit, error) {
		return schedule.Update(st, ownerID, id, patch)
	})
	if err != nil {
		return domain.Series{}, err
	}
	return c.Upserted[0], nil
}

func (s *scheduleService) DeleteSeries(ctx context.Context, ownerID, id string) error {
	_, err := s.apply("delete", func(st schedule.State) (schedule.Commit, error) {
		return schedule.Delete(st, ownerID, id)
	})
	return err
}

func (s *scheduleService) EditOccurrence(ctx context.Context, ownerID, id string, date domain.Date, scope schedule.Scope, patch domain.SeriesPatch) (EditResult, error) {
	patch.ImageKey = nil
	ref := schedule.NewSeriesRef{ID: s.newID(), Now: s.now()}
	c, err := s.apply("edit_"+string(scope), func(st schedule.State) (schedule.Commit, error) {
		return schedule.EditOccurrence(st, ownerID, id, date, scope, patch, ref)
	})
	if err != nil {
		return EditResult{}, err
	}
	return editResult(c), nil
}

func (s *scheduleService) DeleteOccurrence(ctx context.Context, ownerID, id string, date domain.Date, scope schedule.Scope) (EditResult, error) {
	c, err := s.apply("delete_"+string(scope), func(st schedule.State) (schedule.Commit, error) {
		return schedule.DeleteOccurrence(st, ownerID, id, date, scope)
	})
	if err != nil {
		return EditResult{}, err
	}
	return editResult(c), nil
}

func editResult(c schedule.Commit) EditResult {
	res := EditResult{Updated: c.Upserted, DeletedIDs: make([]string, 0, len(c.Deleted))}
	if res.Updated == nil {
		res.Updated = []domain.Series{}
	}
	for _, d := range c.Deleted {
		res.DeletedIDs = append(res.DeletedIDs, d.ID)
	}
	return res
}

func (s *scheduleService) ToggleCompletion(ctx context.Context, ownerID, id string, date domain.Date) (bool, error) {
	var completed bool
	_, err := s.apply("toggle", func(st schedule.State) (schedule.Commit, error) {
		c, done, err := schedule.Toggle(st, ownerID, id, date)
		completed = done
		return c, err
	})
	if err != nil {
		return false, err
	}
	if completed {
		s.metrics.CounterCompletions.WithLabelValues(metrics.SourceToggle).Inc()
	}
	return completed, nil
}

func (s *scheduleService) IsCompleted(ctx context.Context, ownerID, id string, date domain.Date) (bool, error) {
	return schedule.IsCompleted(s.snapshot(), ownerID, id, date)
}

func (s *scheduleService) MatchAndComplete(ctx context.Context, ownerID string, w schedule.PerformedWorkout) (schedule.MatchResult, error) {
	var res schedule.MatchResult
	_, err := s.apply("match", func(st schedule.State) (schedule.Commit, error) {
		c, r, err := schedule.MatchAndComplete(st, ownerID, w)
		res = r
		return c, err
	})
	if err != nil {
		return schedule.MatchResult{}, err
	}

	logger := log.WithFields(log.Fields{"owner": ownerID, "date": w.Date.String()})
	if !res.Matched() {
		logger.Debug("performed workout matched no scheduled occurrence")
		return res, nil
	}
	if res.NewlyCompleted {
		s.metrics.CounterCompletions.WithLabelValues(metrics.SourceMatch).Inc()
	}
	logger.WithFields(log.Fields{"series": res.SeriesID, "reason": res.Reason}).Debug("performed workout matched")
	return res, nil
}

func (s *scheduleService) OccurrencesOnDate(ctx context.Context, ownerID string, date domain.Date) ([]schedule.Occurrence, error) {
	if !date.IsValid() {
		return nil, domain.ErrInvalidDate
	}
	return schedule.OccurrencesOnDate(s.snapshot(), ownerID, date), nil
}

func (s *scheduleService) OccurrencesInMonth(ctx context.Context, ownerID string, year int, month time.Month) (map[int][]schedule.Occurrence, error) {
	return schedule.OccurrencesInMonth(s.snapshot(), ownerID, year, month)
}

func (s *scheduleService) UpcomingOccurrences(ctx context.Context, ownerID string, from domain.Date, limit int) ([]schedule.Occurrence, error) {
	if !from.IsValid() {
		return nil, domain.ErrInvalidDate
	}
	if limit > MaxUpcomingLimit {
		limit = MaxUpcomingLimit
	}
	return schedule.NextOccurrences(s.snapshot(), ownerID, from, limit), nil
}

func (s *scheduleService) ExportICS(ctx context.Context, ownerID string) ([]byte, error) {
	series := s.snapshot().ListForOwner(ownerID)
	return ics.Export(series, ics.Options{Name: calendarName, Now: s.now()}), nil
}

func (s *scheduleService) RequestImageUploadURL(ctx context.Context, ownerID, id, contentType string) (*ImageUploadURL, error) {
	if s.files == nil {
		return nil, ErrStorageDisabled
	}
	if _, err := s.GetSeries(ctx, ownerID, id); err != nil {
		return nil, err
	}

	key, err := storage.SeriesImageKey(ownerID, id, contentType)
	if err != nil {
		return nil, err
	}
	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	_, err = s.apply("attach_image", func(st schedule.State) (schedule.Commit, error) {
		return schedule.Update(st, ownerID, id, domain.SeriesPatch{ImageKey: &key})
	})
	if err != nil {
		return nil, err
	}
	return &ImageUploadURL{UploadURL: uploadURL, ObjectKey: key}, nil
}

func (s *scheduleService) ImageDownloadURL(ctx context.Context, ownerID, id string) (string, error) {
	if s.files == nil {
		return "", ErrStorageDisabled
	}
	series, err := s.GetSeries(ctx, ownerID, id)
	if err != nil {
		return "", err
	}
	if series.Payload.ImageKey == "" {
		return "", ErrNoImage
	}
	url, err := s.files.GeneratePresignedDownloadURL(ctx, series.Payload.ImageKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return url, nil
}

func (s *scheduleService) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue.stop)
	}
	s.mu.Unlock()

	select {
	case <-s.workerDone:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain persistence queue: %w", ctx.Err())
	}
}
