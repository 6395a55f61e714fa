package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"aerosense/estimator/internal/events"
	"aerosense/estimator/internal/logging"
	"aerosense/estimator/internal/metrics"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logging.SetLogger(zap.NewNop().Sugar())
	m.Run()
}

type mockRecorder struct {
	recordOffersFunc func(ctx context.Context, query providers.LiveFareQuery, offers []models.FlightCandidate) error
}

func (m *mockRecorder) RecordOffers(ctx context.Context, query providers.LiveFareQuery, offers []models.FlightCandidate) error {
	return m.recordOffersFunc(ctx, query, offers)
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.SearchEvent
	err    error
}

func (m *mockPublisher) PublishSearch(ctx context.Context, event events.SearchEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func liveJob() SearchJob {
	return SearchJob{
		Query:  providers.LiveFareQuery{Origin: "BOM", Destination: "DEL", Date: "2025-03-09"},
		Offers: []models.FlightCandidate{{Price: 4100}, {Price: 5200}},
		Event:  events.SearchEvent{OriginCode: "BOM", DestinationCode: "DEL", IsRealTime: true},
	}
}

func TestSearchRecorder_Process(t *testing.T) {
	var recorded []models.FlightCandidate
	rec := &mockRecorder{recordOffersFunc: func(ctx context.Context, query providers.LiveFareQuery, offers []models.FlightCandidate) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		recorded = offers
		return nil
	}}
	pub := &mockPublisher{}
	m := metrics.NewMetricsRegistry()
	w := NewSearchRecorder(rec, pub, m, 4, time.Second)

	w.process(context.Background(), liveJob())

	assert.Len(t, recorded, 2)
	assert.Equal(t, 1, pub.count())
}

func TestSearchRecorder_RecorderFailureStillPublishes(t *testing.T) {
	rec := &mockRecorder{recordOffersFunc: func(ctx context.Context, query providers.LiveFareQuery, offers []models.FlightCandidate) error {
		return errors.New("db down")
	}}
	pub := &mockPublisher{}
	w := NewSearchRecorder(rec, pub, metrics.NewMetricsRegistry(), 4, time.Second)

	w.process(context.Background(), liveJob())
	assert.Equal(t, 1, pub.count())
}

func TestSearchRecorder_NoRecorder(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker gone")}
	w := NewSearchRecorder(nil, pub, metrics.NewMetricsRegistry(), 4, time.Second)

	assert.NotPanics(t, func() { w.process(context.Background(), liveJob()) })
}

func TestSearchRecorder_EnqueueDropsWhenFull(t *testing.T) {
	w := NewSearchRecorder(nil, &mockPublisher{}, metrics.NewMetricsRegistry(), 1, time.Second)

	assert.True(t, w.Enqueue(liveJob()))
	assert.False(t, w.Enqueue(liveJob()))
}

func TestSearchRecorder_Start(t *testing.T) {
	pub := &mockPublisher{}
	w := NewSearchRecorder(nil, pub, metrics.NewMetricsRegistry(), 8, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Start(ctx, 2)
	}()

	for i := 0; i < 5; i++ {
		require.True(t, w.Enqueue(liveJob()))
	}
	assert.Eventually(t, func() bool { return pub.count() == 5 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop")
	}
}
