package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aerosense/estimator/internal/common"
	"aerosense/estimator/internal/constants"
	"aerosense/estimator/internal/events"
	"aerosense/estimator/internal/itinerary"
	"aerosense/estimator/internal/logging"
	"aerosense/estimator/internal/metrics"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/models/dtos"
	"aerosense/estimator/internal/providers"
	"aerosense/estimator/internal/workers"

	"golang.org/x/sync/errgroup"
)

// SampleLoader warms the fare history for a route while a search runs.
type SampleLoader interface {
	Samples(ctx context.Context, origin, destination string) []models.FareSample
}

// JobQueue takes the background work left by a search.
type JobQueue interface {
	Enqueue(job workers.SearchJob) bool
}

type FlightSearchOptions struct {
	CacheTTL time.Duration
	// FallbackCacheTTL applies to estimates served because the live provider
	// failed, so live offers are retried sooner. Zero means CacheTTL.
	FallbackCacheTTL time.Duration
	LiveTimeout      time.Duration
	Now              func() time.Time
}

// FlightSearchService answers searches with live offers when the live provider
// has them and with synthesized candidates otherwise. It never fails because a
// provider did.
type FlightSearchService struct {
	locations *LocationService
	validator *RequestValidator
	live      providers.LiveFareProvider
	samples   SampleLoader
	jobs      JobQueue
	cache     common.CacheInterface
	metrics   *metrics.MetricsRegistry
	rand      RandSource
	now       func() time.Time

	cacheTTL         time.Duration
	fallbackCacheTTL time.Duration
	liveTimeout      time.Duration
}

// NewFlightSearchService accepts nil live, samples and jobs.
func NewFlightSearchService(
	locations *LocationService,
	validator *RequestValidator,
	live providers.LiveFareProvider,
	samples SampleLoader,
	jobs JobQueue,
	cache common.CacheInterface,
	m *metrics.MetricsRegistry,
	rand RandSource,
	opts FlightSearchOptions,
) *FlightSearchService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FallbackCacheTTL <= 0 {
		opts.FallbackCacheTTL = opts.CacheTTL
	}
	return &FlightSearchService{
		locations:        locations,
		validator:        validator,
		live:             live,
		samples:          samples,
		jobs:             jobs,
		cache:            cache,
		metrics:          m,
		rand:             rand,
		now:              opts.Now,
		cacheTTL:         opts.CacheTTL,
		fallbackCacheTTL: opts.FallbackCacheTTL,
		liveTimeout:      opts.LiveTimeout,
	}
}

// Search validates the request and returns candidates sorted by price. Only
// validation problems are returned as errors, as ValidationErrors.
func (s *FlightSearchService) Search(ctx context.Context, req dtos.SearchFlightsRequest) (*dtos.SearchFlightsResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	cabin, err := models.ParseCabinClass(req.Cabin)
	if err != nil {
		return nil, ValidationErrors{{Field: "cabin_class", Message: err.Error()}}
	}

	passengers := req.PassengerCount()
	now := s.now()
	date, err := time.ParseInLocation(models.DateLayout, req.Date, now.Location())
	if err != nil {
		return nil, ValidationErrors{{Field: "date", Message: "date must be a date in YYYY-MM-DD format"}}
	}

	origin, fromNearest := s.locations.ResolveOrigin(req.From)
	destination, toNearest := s.locations.ResolveDestination(req.To)

	key := common.CacheKey(constants.CachePrefixSearch,
		origin.Code, destination.Code, req.Date, string(cabin), fmt.Sprint(passengers))
	var cached dtos.SearchFlightsResponse
	if s.cache.Get(key, &cached) {
		s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixSearch)).Inc()
		cached.FromNearest, cached.ToNearest = fromNearest, toNearest
		return &cached, nil
	}
	s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixSearch)).Inc()

	query := providers.LiveFareQuery{
		Origin:      origin.Code,
		Destination: destination.Code,
		Date:        req.Date,
		Passengers:  passengers,
		Cabin:       cabin,
	}

	var (
		offers  []models.FlightCandidate
		liveErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	if s.live != nil {
		g.Go(func() error {
			offers, liveErr = s.searchLive(gctx, query)
			return nil
		})
	}
	if s.samples != nil {
		g.Go(func() error {
			s.samples.Samples(gctx, origin.Code, destination.Code)
			return nil
		})
	}
	_ = g.Wait()

	resp := &dtos.SearchFlightsResponse{
		FromAirport: origin,
		ToAirport:   destination,
		FromNearest: fromNearest,
		ToNearest:   toNearest,
	}

	ttl := s.cacheTTL
	switch {
	case len(offers) > 0:
		resp.Flights = offers
		resp.IsRealTime = true
		resp.Message = fmt.Sprintf(constants.MsgRealTimeFlights, len(offers))
		s.metrics.SearchesTotal.WithLabelValues(constants.SearchSourceLive).Inc()
	default:
		resp.Flights = itinerary.Synthesize(itinerary.SynthesisInput{
			Origin:      origin,
			Destination: destination,
			Date:        date,
			Now:         now,
			Cabin:       cabin,
			Passengers:  passengers,
		}, s.rand())
		resp.Message = constants.MsgEstimatedFares
		if liveErr != nil && !isNotConfigured(liveErr) {
			resp.Message = constants.MsgProviderUnavailable
			ttl = s.fallbackCacheTTL
		}
		s.metrics.SearchesTotal.WithLabelValues(constants.SearchSourceEstimated).Inc()
	}

	s.cache.Set(key, resp, ttl)
	s.enqueue(req, query, resp, now)
	return resp, nil
}

func (s *FlightSearchService) searchLive(ctx context.Context, query providers.LiveFareQuery) ([]models.FlightCandidate, error) {
	provider := s.live.GetProviderType()
	ctx, cancel := context.WithTimeout(ctx, s.liveTimeout)
	defer cancel()

	start := time.Now()
	offers, err := s.live.SearchOffers(ctx, query)
	s.metrics.ProviderCallDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.ProviderCallsTotal.WithLabelValues(provider, "error").Inc()
		if !isNotConfigured(err) {
			s.metrics.ProviderFallbacksTotal.WithLabelValues(provider).Inc()
		}
		var pe *providers.ProviderError
		if errors.As(err, &pe) {
			logging.Warn("Live fares unavailable, falling back to estimates",
				"provider", provider, "code", pe.Code, "error", pe.Error())
		} else {
			logging.Warn("Live fares unavailable, falling back to estimates", "provider", provider, "error", err)
		}
		return nil, err
	}
	s.metrics.ProviderCallsTotal.WithLabelValues(provider, "ok").Inc()
	return offers, nil
}

func isNotConfigured(err error) bool {
	var pe *providers.ProviderError
	return errors.As(err, &pe) && pe.Code == constants.ErrCodeProviderNotConfigured
}

func (s *FlightSearchService) enqueue(req dtos.SearchFlightsRequest, query providers.LiveFareQuery, resp *dtos.SearchFlightsResponse, now time.Time) {
	if s.jobs == nil {
		return
	}

	lowest := 0
	if len(resp.Flights) > 0 {
		lowest = resp.Flights[0].Price
	}
	job := workers.SearchJob{
		Query: query,
		Event: events.SearchEvent{
			OriginText:      strings.TrimSpace(req.From),
			DestinationText: strings.TrimSpace(req.To),
			OriginCode:      query.Origin,
			DestinationCode: query.Destination,
			Date:            query.Date,
			Passengers:      query.Passengers,
			Cabin:           string(query.Cabin),
			LowestFare:      lowest,
			IsRealTime:      resp.IsRealTime,
			SearchedAt:      now.UTC(),
		},
	}
	if resp.IsRealTime {
		job.Offers = resp.Flights
	}
	s.jobs.Enqueue(job)
}
