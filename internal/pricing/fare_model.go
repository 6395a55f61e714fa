// Package pricing is the fare heuristic shared by flight synthesis and the fare calendar.
package pricing

import (
	"math"
	"math/rand/v2"

	"aerosense/estimator/internal/models"
)

// DemandBand applies Multiplier when days-until-departure is below MaxDays.
type DemandBand struct {
	MaxDays    float64
	Multiplier float64
}

// Table is the canonical set of pricing constants. Prices are whole INR.
type Table struct {
	MinimumFare      float64
	PerKmRate        float64
	CabinMultipliers map[models.CabinClass]float64
	// Bands are checked in order; FarOutMultiplier applies past the last one.
	Bands            []DemandBand
	FarOutMultiplier float64
	// Jitter is the half-width of the uniform multiplicative noise, e.g. 0.1 for ±10%.
	Jitter float64
}

var DefaultTable = Table{
	MinimumFare: 2500,
	PerKmRate:   6.5,
	CabinMultipliers: map[models.CabinClass]float64{
		models.CabinEconomy:  1,
		models.CabinBusiness: 3.5,
		models.CabinFirst:    7,
	},
	Bands: []DemandBand{
		{MaxDays: 1, Multiplier: 2.8},
		{MaxDays: 3, Multiplier: 2.2},
		{MaxDays: 7, Multiplier: 1.7},
		{MaxDays: 14, Multiplier: 1.35},
		{MaxDays: 30, Multiplier: 1.1},
	},
	FarOutMultiplier: 0.9,
	Jitter:           0.1,
}

// Base is the distance fare before cabin, demand and jitter.
func (t Table) Base(distanceKm float64) float64 {
	return math.Max(t.MinimumFare, distanceKm*t.PerKmRate)
}

// CabinMultiplier returns 1 for a cabin missing from the table.
func (t Table) CabinMultiplier(cabin models.CabinClass) float64 {
	if m, ok := t.CabinMultipliers[cabin]; ok {
		return m
	}
	return 1
}

// DemandMultiplier never increases as the horizon grows.
func (t Table) DemandMultiplier(daysUntilDeparture int) float64 {
	days := float64(daysUntilDeparture)
	for _, b := range t.Bands {
		if days < b.MaxDays {
			return b.Multiplier
		}
	}
	return t.FarOutMultiplier
}

// Price computes a fare for one passenger. It always returns at least 1.
func (t Table) Price(cabin models.CabinClass, daysUntilDeparture int, distanceKm float64, rng *rand.Rand) int {
	price := t.Base(distanceKm) * t.CabinMultiplier(cabin) * t.DemandMultiplier(daysUntilDeparture)
	price *= 1 + (rng.Float64()*2-1)*t.Jitter
	return max(1, int(math.Round(price)))
}

// Price uses DefaultTable.
func Price(cabin models.CabinClass, daysUntilDeparture int, distanceKm float64, rng *rand.Rand) int {
	return DefaultTable.Price(cabin, daysUntilDeparture, distanceKm, rng)
}
