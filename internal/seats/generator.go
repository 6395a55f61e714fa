// Package seats builds the seat map for one cabin of a flight.
package seats

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"aerosense/estimator/internal/models"
)

const (
	bookedProbability  = 0.3
	emergencySurcharge = 1000
	premiumSurcharge   = 1500
	premiumRowsEconomy = 5
)

var columns = []string{"A", "B", "C", "D", "E", "F"}

type layout struct {
	rows          int
	emergencyRows [2]int
}

var layouts = map[models.CabinClass]layout{
	models.CabinFirst:    {rows: 4, emergencyRows: [2]int{2, 3}},
	models.CabinBusiness: {rows: 8, emergencyRows: [2]int{4, 5}},
	models.CabinEconomy:  {rows: 30, emergencyRows: [2]int{14, 15}},
}

// Rows returns the number of rows in a cabin, or 0 for an unknown cabin.
func Rows(cabin models.CabinClass) int {
	return layouts[cabin].rows
}

// Generate returns rows*6 seats in row-major order. Each cabin has exactly two
// emergency rows; the first five economy rows are premium.
func Generate(flightID string, cabin models.CabinClass, rng *rand.Rand) ([]models.SeatRecord, error) {
	l, ok := layouts[cabin]
	if !ok {
		return nil, fmt.Errorf("unknown cabin class %q", cabin)
	}

	out := make([]models.SeatRecord, 0, l.rows*len(columns))
	for row := 1; row <= l.rows; row++ {
		emergency := row == l.emergencyRows[0] || row == l.emergencyRows[1]
		premium := cabin == models.CabinEconomy && row <= premiumRowsEconomy

		for _, col := range columns {
			seat := models.SeatRecord{
				ID:       fmt.Sprintf("%s-%d%s", flightID, row, col),
				Row:      row,
				Column:   col,
				Tier:     models.SeatTierStandard,
				Status:   models.SeatAvailable,
				Legroom:  models.LegroomStandard,
				IsWindow: col == "A" || col == "F",
				IsAisle:  col == "C" || col == "D",
			}
			switch {
			case emergency:
				seat.Tier = models.SeatTierEmergency
				seat.PriceDelta = emergencySurcharge
			case premium:
				seat.Tier = models.SeatTierPremium
				seat.PriceDelta = premiumSurcharge
			}
			if emergency || row == 1 {
				seat.Legroom = models.LegroomExtra
			}
			if rng.Float64() < bookedProbability {
				seat.Status = models.SeatBooked
			}
			out = append(out, seat)
		}
	}
	return out, nil
}

// SeedFor derives a stable generator seed from a flight id so repeated requests
// for the same flight see the same seat map.
func SeedFor(flightID string, cabin models.CabinClass) (uint64, uint64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(flightID))
	a := h.Sum64()
	_, _ = h.Write([]byte(cabin))
	return a, h.Sum64()
}
