package services

import (
	"fmt"
	"strings"

	"aerosense/estimator/internal/airports"
	"aerosense/estimator/internal/config"
	"aerosense/estimator/internal/metrics"
	"aerosense/estimator/internal/models"
)

const (
	resolutionExact   = "exact"
	resolutionNearest = "nearest"
	resolutionMiss    = "miss"
)

// LocationService resolves free text against the airport directory and knows
// which airports stand in when a search side cannot be resolved.
type LocationService struct {
	directory          *airports.Directory
	metrics            *metrics.MetricsRegistry
	defaultOrigin      models.Airport
	defaultDestination models.Airport
}

// NewLocationService picks the fallback airports: the configured codes when set,
// otherwise the first two directory entries.
func NewLocationService(dir *airports.Directory, cfg config.AirportsConfig, m *metrics.MetricsRegistry) (*LocationService, error) {
	if dir.Len() < 2 {
		return nil, fmt.Errorf("airport directory needs at least two airports, has %d", dir.Len())
	}

	origin, err := pickDefault(dir, cfg.DefaultOrigin, 0)
	if err != nil {
		return nil, fmt.Errorf("default origin: %w", err)
	}
	destination, err := pickDefault(dir, cfg.DefaultDestination, 1)
	if err != nil {
		return nil, fmt.Errorf("default destination: %w", err)
	}

	return &LocationService{
		directory:          dir,
		metrics:            m,
		defaultOrigin:      origin,
		defaultDestination: destination,
	}, nil
}

func pickDefault(dir *airports.Directory, code string, index int) (models.Airport, error) {
	if strings.TrimSpace(code) == "" {
		return dir.At(index), nil
	}
	a, ok := dir.ByCode(code)
	if !ok {
		return models.Airport{}, fmt.Errorf("unknown airport code %q", code)
	}
	return a, nil
}

func (s *LocationService) Resolve(text string) (models.LocationResolution, bool) {
	res, ok := s.directory.Resolve(text)
	switch {
	case !ok:
		s.metrics.ResolutionsTotal.WithLabelValues(resolutionMiss).Inc()
	case res.IsExactMatch:
		s.metrics.ResolutionsTotal.WithLabelValues(resolutionExact).Inc()
	default:
		s.metrics.ResolutionsTotal.WithLabelValues(resolutionNearest).Inc()
	}
	return res, ok
}

func (s *LocationService) Suggest(query string) []models.Airport {
	return s.directory.Suggest(query)
}

// ResolveOrigin never fails: a miss yields the default origin.
func (s *LocationService) ResolveOrigin(text string) (models.Airport, *models.NearestInfo) {
	return s.resolveOr(text, s.defaultOrigin)
}

// ResolveDestination never fails: a miss yields the default destination.
func (s *LocationService) ResolveDestination(text string) (models.Airport, *models.NearestInfo) {
	return s.resolveOr(text, s.defaultDestination)
}

func (s *LocationService) resolveOr(text string, fallback models.Airport) (models.Airport, *models.NearestInfo) {
	res, ok := s.Resolve(text)
	if !ok {
		return fallback, nil
	}
	if res.IsExactMatch {
		return res.Airport, nil
	}
	return res.Airport, &models.NearestInfo{
		OriginalText: strings.TrimSpace(text),
		DistanceKm:   res.DistanceKm,
	}
}

// Defaults returns the airports that stand in for unresolvable search text.
func (s *LocationService) Defaults() (origin, destination models.Airport) {
	return s.defaultOrigin, s.defaultDestination
}

func (s *LocationService) AirportCount() int {
	return s.directory.Len()
}
