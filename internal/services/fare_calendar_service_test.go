package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"aerosense/estimator/internal/metrics"
	"aerosense/estimator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalendarService(t *testing.T, samples *mockSampleProvider) (*FareCalendarService, *metrics.MetricsRegistry) {
	t.Helper()
	m := metrics.NewMetricsRegistry()
	opts := FareCalendarOptions{CalendarTTL: time.Minute, SamplesTTL: time.Minute, HistoryTimeout: time.Second, Now: fixedClock}
	if samples == nil {
		return NewFareCalendarService(newLocations(t, m), nil, newCache(), m, FixedRandSource(3, 5), opts), m
	}
	return NewFareCalendarService(newLocations(t, m), samples, newCache(), m, FixedRandSource(3, 5), opts), m
}

func TestFareCalendarService_BlendsHistory(t *testing.T) {
	samples := &mockSampleProvider{
		fareSamplesFunc: func(ctx context.Context, origin, destination string) ([]models.FareSample, error) {
			assert.Equal(t, "BOM", origin)
			assert.Equal(t, "DEL", destination)
			return []models.FareSample{
				{Date: "2025-03-04", Price: 4000},
				{Date: "2025-03-04", Price: 5001},
			}, nil
		},
	}
	svc, _ := newCalendarService(t, samples)

	resp, err := svc.Calendar(context.Background(), "Mumbai", "Delhi")
	require.NoError(t, err)
	assert.Equal(t, "BOM", resp.FromAirport.Code)
	assert.Equal(t, "DEL", resp.ToAirport.Code)
	require.Len(t, resp.Days, 30)
	assert.Equal(t, "2025-03-01", resp.Days[0].Date)
	assert.Equal(t, "2025-03-30", resp.Days[29].Date)

	day := resp.Days[3]
	assert.Equal(t, "2025-03-04", day.Date)
	assert.Equal(t, models.FareSourceHistorical, day.Source)
	assert.Equal(t, 4501, day.Price)
	assert.Equal(t, models.FareSourceEstimated, resp.Days[4].Source)
}

func TestFareCalendarService_HistoryErrorEstimates(t *testing.T) {
	samples := &mockSampleProvider{
		fareSamplesFunc: func(ctx context.Context, origin, destination string) ([]models.FareSample, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc, m := newCalendarService(t, samples)

	resp, err := svc.Calendar(context.Background(), "BOM", "DEL")
	require.NoError(t, err)
	require.Len(t, resp.Days, 30)
	for _, d := range resp.Days {
		assert.Equal(t, models.FareSourceEstimated, d.Source)
		assert.Positive(t, d.Price)
	}
	assert.Equal(t, 1.0, counterValue(t, m, "estimator_provider_fallbacks_total", "provider", "fare_history"))
}

func TestFareCalendarService_WithoutHistoryProvider(t *testing.T) {
	svc, _ := newCalendarService(t, nil)

	resp, err := svc.Calendar(context.Background(), "BOM", "DEL")
	require.NoError(t, err)
	assert.Len(t, resp.Days, 30)
	assert.Nil(t, svc.Samples(context.Background(), "BOM", "DEL"))
}

func TestFareCalendarService_CachesPerRoute(t *testing.T) {
	samples := &mockSampleProvider{
		fareSamplesFunc: func(ctx context.Context, origin, destination string) ([]models.FareSample, error) {
			return nil, nil
		},
	}
	svc, m := newCalendarService(t, samples)

	first, err := svc.Calendar(context.Background(), "BOM", "DEL")
	require.NoError(t, err)
	second, err := svc.Calendar(context.Background(), "Mumbai", "del")
	require.NoError(t, err)

	assert.Equal(t, first.Days, second.Days)
	assert.Equal(t, 1, samples.callCount())
	assert.Equal(t, 1.0, counterValue(t, m, "estimator_cache_hits_total", "cache_key_pattern", "CALENDAR:"))
}

func TestFareCalendarService_CollapsesConcurrentLoads(t *testing.T) {
	release := make(chan struct{})
	samples := &mockSampleProvider{
		fareSamplesFunc: func(ctx context.Context, origin, destination string) ([]models.FareSample, error) {
			<-release
			return []models.FareSample{{Date: "2025-03-02", Price: 3000}}, nil
		},
	}
	svc, _ := newCalendarService(t, samples)

	var wg sync.WaitGroup
	results := make([][]models.FareSample, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Samples(context.Background(), "BOM", "DEL")
		}(i)
	}
	// Let the goroutines pile up behind the first load.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, samples.callCount(), 2)
	for _, r := range results {
		require.Len(t, r, 1)
		assert.Equal(t, 3000.0, r[0].Price)
	}
}
