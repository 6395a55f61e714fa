package airports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDirectory(t *testing.T) *Directory {
	t.Helper()
	dir, err := LoadDefault()
	require.NoError(t, err)
	return dir
}

func TestResolve_CodeAndCityAgree(t *testing.T) {
	dir := loadDirectory(t)

	byCode, ok := dir.Resolve("BOM")
	require.True(t, ok)
	byCity, ok := dir.Resolve("Mumbai")
	require.True(t, ok)

	assert.Equal(t, byCode.Airport, byCity.Airport)
	assert.Equal(t, "BOM", byCity.Airport.Code)
	assert.True(t, byCode.IsExactMatch)
	assert.True(t, byCity.IsExactMatch)
	assert.Zero(t, byCity.DistanceKm)
}

func TestResolve_ExactCodeBeatsCitySubstring(t *testing.T) {
	dir := loadDirectory(t)

	res, ok := dir.Resolve("DEL")
	require.True(t, ok)
	assert.Equal(t, "DEL", res.Airport.Code, "Philadelphia contains 'del' but DEL is an exact code")
}

func TestResolve_NormalizesInput(t *testing.T) {
	dir := loadDirectory(t)

	res, ok := dir.Resolve("  LONDON ")
	require.True(t, ok)
	assert.Equal(t, "LHR", res.Airport.Code)

	res, ok = dir.Resolve("New York City")
	require.True(t, ok)
	assert.Equal(t, "JFK", res.Airport.Code, "input containing a city name matches the first airport of that city")
}

func TestResolve_NearestAirportForLocationWithoutOne(t *testing.T) {
	dir := loadDirectory(t)

	tests := []struct {
		query    string
		wantCode string
		minKm    int
		maxKm    int
	}{
		{"Agra", "DEL", 150, 200},
		{"Kyoto", "KIX", 60, 100},
		{"Manhattan", "LGA", 1, 20},
		{"mysore", "BLR", 130, 170},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, ok := dir.Resolve(tt.query)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, res.Airport.Code)
			assert.False(t, res.IsExactMatch)
			assert.GreaterOrEqual(t, res.DistanceKm, tt.minKm)
			assert.LessOrEqual(t, res.DistanceKm, tt.maxKm)
		})
	}
}

func TestResolve_FuzzyWordMatch(t *testing.T) {
	dir := loadDirectory(t)

	res, ok := dir.Resolve("xx york")
	require.True(t, ok)
	assert.Equal(t, "JFK", res.Airport.Code)
	assert.True(t, res.IsExactMatch)
	assert.Zero(t, res.DistanceKm)
}

func TestResolve_Miss(t *testing.T) {
	dir := loadDirectory(t)

	for _, q := range []string{"Zzzzqx", "", "   ", "Port Louis"} {
		_, ok := dir.Resolve(q)
		assert.False(t, ok, "query %q", q)
	}
}

func TestSuggest(t *testing.T) {
	dir := loadDirectory(t)

	got := dir.Suggest("lon")
	codes := make([]string, 0, len(got))
	for _, a := range got {
		codes = append(codes, a.Code)
	}
	assert.Equal(t, []string{"LHR", "LGW", "STN", "BCN"}, codes)

	assert.Len(t, dir.Suggest("usa"), 10)
	assert.Empty(t, dir.Suggest("l"))

	for _, a := range dir.Suggest("INDIA") {
		assert.Equal(t, "india", strings.ToLower(a.Country))
	}
}
