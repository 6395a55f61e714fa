// Package itinerary synthesizes plausible priced flight candidates between two airports.
package itinerary

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"aerosense/estimator/internal/geo"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/pricing"

	"github.com/google/uuid"
)

const (
	minCandidates = 4
	maxCandidates = 9

	cruiseSpeedKmh       = 850.0
	groundOverheadHours  = 0.5
	layoverMinutes       = 90
	shortHaulMaxKm       = 3000.0
	earliestShortHaulDep = 5
	latestShortHaulDep   = 21

	minSeats = 10
	maxSeats = 59
)

// SynthesisInput describes one search. Date and Now are compared as instants;
// callers pass the departure date at local midnight.
type SynthesisInput struct {
	Origin      models.Airport
	Destination models.Airport
	Date        time.Time
	Now         time.Time
	Cabin       models.CabinClass
	Passengers  int
}

// Synthesize returns between four and nine candidates sorted ascending by price.
// Equal prices keep generation order. All randomness comes from rng.
func Synthesize(in SynthesisInput, rng *rand.Rand) []models.FlightCandidate {
	distance := geo.Distance(in.Origin, in.Destination)
	days := DaysUntil(in.Date, in.Now)
	ids := randReader{rng: rng}

	n := minCandidates + rng.IntN(maxCandidates-minCandidates+1)
	out := make([]models.FlightCandidate, 0, n)
	for i := 0; i < n; i++ {
		carrier := airlines[rng.IntN(len(airlines))]
		stops := stopsFor(distance, rng)
		dep := departureFor(distance, rng)
		duration := Duration(distance, stops)

		out = append(out, models.FlightCandidate{
			ID:              newID(ids),
			Airline:         carrier.Name,
			AirlineCode:     carrier.Code,
			FlightNumber:    fmt.Sprintf("%s%d", carrier.Code, 1000+rng.IntN(9000)),
			FromCode:        in.Origin.Code,
			ToCode:          in.Destination.Code,
			DepartureTime:   dep,
			ArrivalTime:     geo.ArrivalTime(dep, duration, in.Origin, in.Destination),
			DurationMinutes: duration,
			Stops:           stops,
			Price:           pricing.Price(in.Cabin, days, distance, rng),
			CabinClass:      in.Cabin,
			DelayRisk:       models.DelayRiskFor(dep.Hour(), stops),
			SeatsAvailable:  minSeats + rng.IntN(maxSeats-minSeats+1),
			Aircraft:        aircraftPool[rng.IntN(len(aircraftPool))],
		})
	}

	SortByPrice(out)
	return out
}

// SortByPrice orders candidates ascending by price, keeping the order of equal prices.
func SortByPrice(flights []models.FlightCandidate) {
	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Price < flights[j].Price
	})
}

// DaysUntil is max(0, ceil((date - now) / 24h)).
func DaysUntil(date, now time.Time) int {
	days := math.Ceil(date.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// Duration is the block time in minutes for a route of distanceKm with the given stops.
func Duration(distanceKm float64, stops int) int {
	return int(math.Round((distanceKm/cruiseSpeedKmh+groundOverheadHours)*60)) + stops*layoverMinutes
}

func stopsFor(distanceKm float64, rng *rand.Rand) int {
	switch {
	case distanceKm < 1000:
		return 0
	case distanceKm < 3000:
		return nonstopWithProbability(0.7, rng)
	case distanceKm < 6000:
		return nonstopWithProbability(0.6, rng)
	default:
		if rng.Float64() < 0.7 {
			return 1
		}
		return 2
	}
}

func nonstopWithProbability(p float64, rng *rand.Rand) int {
	if rng.Float64() < p {
		return 0
	}
	return 1
}

func departureFor(distanceKm float64, rng *rand.Rand) models.ClockTime {
	var hour int
	if distanceKm <= shortHaulMaxKm {
		hour = earliestShortHaulDep + rng.IntN(latestShortHaulDep-earliestShortHaulDep+1)
	} else {
		hour = rng.IntN(24)
	}
	minute := rng.IntN(12) * 5
	return models.NewClockTime(hour*60 + minute)
}

// randReader lets uuid draw its bytes from the injected generator.
type randReader struct {
	rng *rand.Rand
}

func (r randReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

func newID(r randReader) string {
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		// randReader never fails
		panic(err)
	}
	return id.String()
}
