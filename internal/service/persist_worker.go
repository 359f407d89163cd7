package service

import (
	"context"
	"errors"
	"sync"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"

	log "github.com/sirupsen/logrus"
)

type persistKind int

const (
	opUpsert persistKind = iota
	opDelete
	opDeleteObject
)

// persistOp is one queued write. Writes are applied in the order they were
// committed in memory.
type persistOp struct {
	kind      persistKind
	record    domain.SeriesRecord // opUpsert
	ownerID   string              // opDelete
	seriesID  string              // opDelete
	objectKey string              // opDeleteObject
}

// persistQueue is an unbounded FIFO between committed transitions and the
// worker. push never blocks, so a slow database cannot hold up s.mu.
type persistQueue struct {
	mu      sync.Mutex
	pending []persistOp
	wake    chan struct{} // 1-buffered, coalesces wake-ups
	stop    chan struct{} // closed once no more ops will be pushed
	warnAt  int           // backlog size that gets logged
}

func newPersistQueue(warnAt int) *persistQueue {
	return &persistQueue{
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		warnAt: warnAt,
	}
}

// push appends op and returns the backlog length.
func (q *persistQueue) push(op persistOp) int {
	q.mu.Lock()
	q.pending = append(q.pending, op)
	n := len(q.pending)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return n
}

// take hands the whole backlog to the caller.
func (q *persistQueue) take() []persistOp {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.pending
	q.pending = nil
	return batch
}

// enqueue must be called with s.mu held so that ops are pushed in commit
// order. It never blocks.
func (s *scheduleService) enqueue(op persistOp) {
	s.metrics.GaugePersistQueued.Inc()
	if n := s.queue.push(op); n == s.queue.warnAt {
		log.WithField("queued", n).Warn("database writes are falling behind")
	}
}

// runPersistWorker drains the queue until it is stopped and empty. Failures
// are logged and counted; the in-memory state is not rolled back.
func (s *scheduleService) runPersistWorker() {
	defer close(s.workerDone)
	for {
		stopping := false
		select {
		case <-s.queue.wake:
		case <-s.queue.stop:
			stopping = true
		}
		for batch := s.queue.take(); len(batch) > 0; batch = s.queue.take() {
			for _, op := range batch {
				s.metrics.GaugePersistQueued.Dec()
				s.persist(op)
			}
		}
		if stopping {
			return
		}
	}
}

func (s *scheduleService) persist(op persistOp) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	var (
		err    error
		logger *log.Entry
	)
	switch op.kind {
	case opUpsert:
		logger = log.WithFields(log.Fields{"series": op.record.ID, "owner": op.record.OwnerID})
		err = s.repo.Upsert(ctx, op.record)
	case opDelete:
		logger = log.WithFields(log.Fields{"series": op.seriesID, "owner": op.ownerID})
		err = s.repo.Delete(ctx, op.ownerID, op.seriesID)
		if errors.Is(err, repository.ErrNotFound) {
			// Never written, or already gone.
			logger.Debug("series to delete was not stored")
			err = nil
		}
	case opDeleteObject:
		logger = log.WithField("key", op.objectKey)
		err = s.files.DeleteObject(ctx, op.objectKey)
	}

	if err != nil {
		s.metrics.CounterPersistFailures.Inc()
		logger.WithError(err).Error("background write failed")
	}
}
