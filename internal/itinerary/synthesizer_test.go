package itinerary

import (
	"math/rand/v2"
	"testing"
	"time"

	"aerosense/estimator/internal/airports"
	"aerosense/estimator/internal/geo"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func mustAirport(t *testing.T, dir *airports.Directory, code string) models.Airport {
	t.Helper()
	a, ok := dir.ByCode(code)
	require.True(t, ok, code)
	return a
}

func TestSynthesize_MumbaiToDelhi(t *testing.T) {
	dir, err := airports.LoadDefault()
	require.NoError(t, err)

	from, ok := dir.Resolve("Mumbai")
	require.True(t, ok)
	to, ok := dir.Resolve("DEL")
	require.True(t, ok)
	require.Equal(t, "BOM", from.Airport.Code)
	require.Equal(t, "DEL", to.Airport.Code)

	distance := geo.Distance(from.Airport, to.Airport)
	assert.InDelta(t, 1150, distance, 30)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	in := SynthesisInput{
		Origin:      from.Airport,
		Destination: to.Airport,
		Date:        now.AddDate(0, 0, 45),
		Now:         now,
		Cabin:       models.CabinEconomy,
		Passengers:  1,
	}

	base := pricing.DefaultTable.Base(distance)
	for seed := uint64(0); seed < 50; seed++ {
		flights := Synthesize(in, newRand(seed))
		require.GreaterOrEqual(t, len(flights), 4)

		cheapest := float64(flights[0].Price)
		assert.GreaterOrEqual(t, cheapest, base*0.9*0.9-1)
		assert.LessOrEqual(t, cheapest, base*0.9*1.1+1)
	}
}

func TestSynthesize_Invariants(t *testing.T) {
	dir, err := airports.LoadDefault()
	require.NoError(t, err)

	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	pairs := [][2]string{{"BOM", "DEL"}, {"JFK", "LHR"}, {"DEL", "SYD"}, {"BLR", "MAA"}, {"LHR", "SIN"}}
	cabins := []models.CabinClass{models.CabinEconomy, models.CabinBusiness, models.CabinFirst}

	seed := uint64(7)
	for _, p := range pairs {
		for _, cabin := range cabins {
			seed++
			from, to := mustAirport(t, dir, p[0]), mustAirport(t, dir, p[1])
			flights := Synthesize(SynthesisInput{
				Origin:      from,
				Destination: to,
				Date:        now.AddDate(0, 0, 5),
				Now:         now,
				Cabin:       cabin,
				Passengers:  2,
			}, newRand(seed))

			require.GreaterOrEqual(t, len(flights), 4)
			require.LessOrEqual(t, len(flights), 9)

			ids := map[string]bool{}
			for i, f := range flights {
				if i > 0 {
					assert.LessOrEqual(t, flights[i-1].Price, f.Price)
				}
				assert.Positive(t, f.Price)
				assert.Equal(t, from.Code, f.FromCode)
				assert.Equal(t, to.Code, f.ToCode)
				assert.Equal(t, cabin, f.CabinClass)
				assert.Contains(t, f.FlightNumber, f.AirlineCode)
				assert.GreaterOrEqual(t, f.SeatsAvailable, 10)
				assert.LessOrEqual(t, f.SeatsAvailable, 59)
				assert.Zero(t, f.DepartureTime.Minute()%5)
				assert.Equal(t, models.DelayRiskFor(f.DepartureTime.Hour(), f.Stops), f.DelayRisk)
				assert.Equal(t, Duration(geo.Distance(from, to), f.Stops), f.DurationMinutes)
				assert.Equal(t, geo.ArrivalTime(f.DepartureTime, f.DurationMinutes, from, to), f.ArrivalTime)
				_, err := uuid.Parse(f.ID)
				assert.NoError(t, err)
				assert.False(t, ids[f.ID], "duplicate id %s", f.ID)
				ids[f.ID] = true
			}
		}
	}
}

func TestSynthesize_EveryDirectoryPair(t *testing.T) {
	dir, err := airports.LoadDefault()
	require.NoError(t, err)

	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	rng := newRand(42)
	for i := 0; i < dir.Len(); i++ {
		for j := 0; j < dir.Len(); j++ {
			if i == j {
				continue
			}
			from, to := dir.At(i), dir.At(j)
			flights := Synthesize(SynthesisInput{
				Origin:      from,
				Destination: to,
				Date:        now.AddDate(0, 0, 20),
				Now:         now,
				Cabin:       models.CabinEconomy,
				Passengers:  1,
			}, rng)

			require.GreaterOrEqual(t, len(flights), 4, "%s-%s", from.Code, to.Code)
			require.LessOrEqual(t, len(flights), 9, "%s-%s", from.Code, to.Code)
			for i := 1; i < len(flights); i++ {
				require.LessOrEqual(t, flights[i-1].Price, flights[i].Price, "%s-%s", from.Code, to.Code)
			}
		}
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	dir, err := airports.LoadDefault()
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := SynthesisInput{
		Origin:      mustAirport(t, dir, "JFK"),
		Destination: mustAirport(t, dir, "LAX"),
		Date:        now.AddDate(0, 0, 10),
		Now:         now,
		Cabin:       models.CabinBusiness,
		Passengers:  1,
	}
	assert.Equal(t, Synthesize(in, newRand(99)), Synthesize(in, newRand(99)))
}

func TestSynthesize_ShortHaulWindowAndStops(t *testing.T) {
	dir, err := airports.LoadDefault()
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := SynthesisInput{
		Origin:      mustAirport(t, dir, "BLR"),
		Destination: mustAirport(t, dir, "MAA"),
		Date:        now.AddDate(0, 0, 3),
		Now:         now,
		Cabin:       models.CabinEconomy,
		Passengers:  1,
	}
	for seed := uint64(0); seed < 30; seed++ {
		for _, f := range Synthesize(in, newRand(seed)) {
			assert.Zero(t, f.Stops)
			assert.GreaterOrEqual(t, f.DepartureTime.Hour(), 5)
			assert.LessOrEqual(t, f.DepartureTime.Hour(), 21)
		}
	}
}

func TestStopsFor_UltraLongHaul(t *testing.T) {
	rng := newRand(5)
	seen := map[int]int{}
	for i := 0; i < 1000; i++ {
		seen[stopsFor(9000, rng)]++
	}
	assert.Zero(t, seen[0])
	assert.Greater(t, seen[1], seen[2])
	assert.Positive(t, seen[2])
}

func TestDuration_IncreasesWithDistanceAndStops(t *testing.T) {
	assert.Equal(t, 30, Duration(0, 0))
	assert.Equal(t, 111, Duration(1150, 0))
	assert.Equal(t, 201, Duration(1150, 1))
	assert.Less(t, Duration(1000, 0), Duration(2000, 0))
	assert.Less(t, Duration(2000, 1), Duration(2000, 2))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 5, 1, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"past", now.AddDate(0, 0, -3), 0},
		{"same instant", now, 0},
		{"later today", now.Add(2 * time.Hour), 1},
		{"tomorrow midnight", time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), 1},
		{"45 days", now.AddDate(0, 0, 45), 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.date, now))
		})
	}
}

func TestSortByPrice_Stable(t *testing.T) {
	flights := []models.FlightCandidate{
		{ID: "a", Price: 300},
		{ID: "b", Price: 100},
		{ID: "c", Price: 300},
		{ID: "d", Price: 100},
	}
	SortByPrice(flights)
	got := []string{}
	for _, f := range flights {
		got = append(got, f.ID)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, got)
}

func TestAirlineName(t *testing.T) {
	name, ok := AirlineName("6E")
	assert.True(t, ok)
	assert.Equal(t, "IndiGo", name)
	_, ok = AirlineName("ZZ")
	assert.False(t, ok)
}
