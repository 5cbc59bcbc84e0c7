package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/mentormatch/connect-api/internal/api/metrics"
	"github.com/mentormatch/connect-api/internal/core/domain"
	"github.com/mentormatch/connect-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recorder writes request lifecycle events to the audit trail asynchronously.
// Events are routed to a fixed set of workers by consistent hashing on the
// pair key, so the audit trail preserves per-pair ordering. Recording is
// best-effort: when a worker channel is full the event is dropped rather than
// blocking the ledger mutation that produced it.
type Recorder struct {
	workers []chan domain.SignalEvent
	repo    ports.EventRepository
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, repo ports.EventRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.SignalEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.SignalEvent, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event for its pair's worker without blocking.
func (r *Recorder) Record(event domain.SignalEvent) {
	idx := r.shardIndex(event.PairKey)
	select {
	case r.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(r.workers[idx])))
	default:
		metrics.EventsDroppedTotal.Inc()
		r.log.Warn().Str("pair", event.PairKey).Str("kind", event.Kind).Msg("audit event dropped, recorder backlogged")
	}
}

// shardIndex maps a pair key deterministically to a worker index.
func (r *Recorder) shardIndex(pairKey string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(pairKey))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.SignalEvent) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.EventsQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := r.repo.InsertEvent(ctx, &event); err != nil {
				r.log.Error().Err(err).
					Str("request_id", event.RequestID).
					Int("worker_id", id).
					Msg("audit event write failed")
			}
		}
	}
}
