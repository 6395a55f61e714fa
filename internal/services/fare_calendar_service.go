package services

import (
	"context"
	"errors"
	"time"

	"aerosense/estimator/internal/common"
	"aerosense/estimator/internal/constants"
	"aerosense/estimator/internal/fares"
	"aerosense/estimator/internal/logging"
	"aerosense/estimator/internal/metrics"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/models/dtos"
	"aerosense/estimator/internal/providers"

	"golang.org/x/sync/singleflight"
)

// FareCalendarService builds 30-day fare trends. Samples come from the fare
// history provider when one is configured; any failure there means "no history".
type FareCalendarService struct {
	locations *LocationService
	samples   providers.FareSampleProvider
	cache     common.CacheInterface
	metrics   *metrics.MetricsRegistry
	rand      RandSource
	now       func() time.Time

	calendarTTL    time.Duration
	samplesTTL     time.Duration
	historyTimeout time.Duration

	group singleflight.Group
}

type FareCalendarOptions struct {
	CalendarTTL    time.Duration
	SamplesTTL     time.Duration
	HistoryTimeout time.Duration
	Now            func() time.Time
}

// NewFareCalendarService accepts a nil samples provider.
func NewFareCalendarService(
	locations *LocationService,
	samples providers.FareSampleProvider,
	cache common.CacheInterface,
	m *metrics.MetricsRegistry,
	rand RandSource,
	opts FareCalendarOptions,
) *FareCalendarService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &FareCalendarService{
		locations:      locations,
		samples:        samples,
		cache:          cache,
		metrics:        m,
		rand:           rand,
		now:            opts.Now,
		calendarTTL:    opts.CalendarTTL,
		samplesTTL:     opts.SamplesTTL,
		historyTimeout: opts.HistoryTimeout,
	}
}

// Calendar resolves both ends (falling back to the default airports) and returns
// the trend starting today. Results are cached per route and day.
func (s *FareCalendarService) Calendar(ctx context.Context, from, to string) (*dtos.FareCalendarResponse, error) {
	origin, _ := s.locations.ResolveOrigin(from)
	destination, _ := s.locations.ResolveDestination(to)
	today := s.now()

	key := common.CacheKey(constants.CachePrefixCalendar, origin.Code, destination.Code, today.Format(models.DateLayout))
	var cached dtos.FareCalendarResponse
	if s.cache.Get(key, &cached) {
		s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixCalendar)).Inc()
		return &cached, nil
	}
	s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixCalendar)).Inc()

	samples := s.Samples(ctx, origin.Code, destination.Code)
	days := fares.Calendar(fares.CalendarInput{
		Origin:      origin,
		Destination: destination,
		Today:       today,
	}, samples, s.rand())

	resp := &dtos.FareCalendarResponse{
		FromAirport: origin,
		ToAirport:   destination,
		Days:        days,
	}
	s.cache.Set(key, resp, s.calendarTTL)
	return resp, nil
}

// Samples returns the route's fare history, or nil when there is none or the
// store is unavailable. Concurrent loads of one route share a single query.
func (s *FareCalendarService) Samples(ctx context.Context, origin, destination string) []models.FareSample {
	if s.samples == nil {
		return nil
	}

	key := common.CacheKey(constants.CachePrefixFareSamples, origin, destination)
	var cached []models.FareSample
	if s.cache.Get(key, &cached) {
		s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixFareSamples)).Inc()
		return cached
	}
	s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixFareSamples)).Inc()

	v, err, _ := s.group.Do(key, func() (any, error) {
		// Detached so one caller's cancellation does not fail the others.
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.historyTimeout)
		defer cancel()

		start := time.Now()
		samples, err := s.samples.FareSamples(qctx, origin, destination)
		s.metrics.ProviderCallDuration.WithLabelValues(constants.ProviderFareHistory).Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.ProviderCallsTotal.WithLabelValues(constants.ProviderFareHistory, "error").Inc()
			return nil, err
		}
		s.metrics.ProviderCallsTotal.WithLabelValues(constants.ProviderFareHistory, "ok").Inc()
		s.cache.Set(key, samples, s.samplesTTL)
		return samples, nil
	})
	if err != nil {
		s.metrics.ProviderFallbacksTotal.WithLabelValues(constants.ProviderFareHistory).Inc()
		var pe *providers.ProviderError
		if errors.As(err, &pe) {
			logging.Warn("Fare history unavailable, estimating", "code", pe.Code, "error", pe.Error())
		} else {
			logging.Warn("Fare history unavailable, estimating", "error", err)
		}
		return nil
	}
	return v.([]models.FareSample)
}
