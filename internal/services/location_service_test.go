package services

import (
	"testing"

	"aerosense/estimator/internal/airports"
	"aerosense/estimator/internal/config"
	"aerosense/estimator/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationService_Resolve(t *testing.T) {
	m := metrics.NewMetricsRegistry()
	svc := newLocations(t, m)

	res, ok := svc.Resolve("Mumbai")
	require.True(t, ok)
	assert.Equal(t, "BOM", res.Airport.Code)

	res, ok = svc.Resolve("Agra")
	require.True(t, ok)
	assert.Equal(t, "DEL", res.Airport.Code)
	assert.False(t, res.IsExactMatch)

	_, ok = svc.Resolve("Zzzzqx")
	assert.False(t, ok)

	assert.Equal(t, 1.0, counterValue(t, m, "estimator_location_resolutions_total", "outcome", "exact"))
	assert.Equal(t, 1.0, counterValue(t, m, "estimator_location_resolutions_total", "outcome", "nearest"))
	assert.Equal(t, 1.0, counterValue(t, m, "estimator_location_resolutions_total", "outcome", "miss"))
}

func TestLocationService_FallbackDefaults(t *testing.T) {
	svc := newLocations(t, metrics.NewMetricsRegistry())

	origin, note := svc.ResolveOrigin("Zzzzqx")
	assert.Equal(t, "JFK", origin.Code)
	assert.Nil(t, note)

	dest, note := svc.ResolveDestination("")
	assert.Equal(t, "LGA", dest.Code)
	assert.Nil(t, note)

	near, note := svc.ResolveOrigin("  Agra ")
	assert.Equal(t, "DEL", near.Code)
	require.NotNil(t, note)
	assert.Equal(t, "Agra", note.OriginalText)
	assert.Greater(t, note.DistanceKm, 100)
}

func TestLocationService_ConfiguredDefaults(t *testing.T) {
	dir, err := airports.LoadDefault()
	require.NoError(t, err)

	svc, err := NewLocationService(dir, config.AirportsConfig{DefaultOrigin: "bom", DefaultDestination: "DEL"}, metrics.NewMetricsRegistry())
	require.NoError(t, err)
	origin, dest := svc.Defaults()
	assert.Equal(t, "BOM", origin.Code)
	assert.Equal(t, "DEL", dest.Code)

	_, err = NewLocationService(dir, config.AirportsConfig{DefaultOrigin: "QQQ"}, metrics.NewMetricsRegistry())
	assert.Error(t, err)
}

func TestLocationService_Suggest(t *testing.T) {
	svc := newLocations(t, metrics.NewMetricsRegistry())

	assert.Empty(t, svc.Suggest("d"))
	got := svc.Suggest("del")
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 10)
	assert.Equal(t, 122, svc.AirportCount())
}
