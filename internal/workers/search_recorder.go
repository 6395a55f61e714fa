// Package workers runs the background work that follows a search.
package workers

import (
	"context"
	"sync"
	"time"

	"aerosense/estimator/internal/events"
	"aerosense/estimator/internal/logging"
	"aerosense/estimator/internal/metrics"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/providers"
)

// SearchJob carries what a finished search leaves behind: live offers to keep
// as fare history and the search event.
type SearchJob struct {
	Query  providers.LiveFareQuery
	Offers []models.FlightCandidate
	Event  events.SearchEvent
}

// SearchRecorder drains a bounded queue of SearchJobs. Jobs are dropped when the
// queue is full so a slow store never backs up into request handling.
type SearchRecorder struct {
	queue     chan SearchJob
	recorder  providers.FareRecorder
	publisher events.Publisher
	metrics   *metrics.MetricsRegistry
	timeout   time.Duration
}

// NewSearchRecorder builds the worker. recorder may be nil when there is no fare
// history store; publisher must not be nil.
func NewSearchRecorder(
	recorder providers.FareRecorder,
	publisher events.Publisher,
	m *metrics.MetricsRegistry,
	queueSize int,
	timeout time.Duration,
) *SearchRecorder {
	return &SearchRecorder{
		queue:     make(chan SearchJob, max(1, queueSize)),
		recorder:  recorder,
		publisher: publisher,
		metrics:   m,
		timeout:   timeout,
	}
}

// Enqueue reports whether the job was accepted.
func (w *SearchRecorder) Enqueue(job SearchJob) bool {
	select {
	case w.queue <- job:
		return true
	default:
		logging.Warn("Search recorder queue full, dropping job",
			"origin", job.Query.Origin, "destination", job.Query.Destination)
		return false
	}
}

// Start runs numWorkers goroutines and blocks until ctx is cancelled and all of
// them have returned.
func (w *SearchRecorder) Start(ctx context.Context, numWorkers int) {
	logging.Info("Starting search recorder", "workers", numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < max(1, numWorkers); i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.run(ctx, id)
		}(i)
	}
	wg.Wait()
	logging.Info("Search recorder stopped")
}

func (w *SearchRecorder) run(ctx context.Context, id int) {
	processed := 0
	for {
		select {
		case <-ctx.Done():
			logging.Debug("Search recorder worker shutting down", "worker", id, "processed", processed)
			return
		case job := <-w.queue:
			w.process(ctx, job)
			processed++
		}
	}
}

func (w *SearchRecorder) process(ctx context.Context, job SearchJob) {
	if w.recorder != nil && len(job.Offers) > 0 {
		rctx, cancel := context.WithTimeout(ctx, w.timeout)
		err := w.recorder.RecordOffers(rctx, job.Query, job.Offers)
		cancel()
		if err != nil {
			logging.Warn("Failed to record fare history",
				"origin", job.Query.Origin, "destination", job.Query.Destination, "error", err)
		} else {
			w.metrics.FareSamplesRecorded.Add(float64(len(job.Offers)))
		}
	}

	pctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.publisher.PublishSearch(pctx, job.Event); err != nil {
		w.metrics.EventsPublished.WithLabelValues("error").Inc()
		logging.Warn("Failed to publish search event", "key", job.Event.Key(), "error", err)
		return
	}
	w.metrics.EventsPublished.WithLabelValues("ok").Inc()
}
