// Package fares blends observed fare samples with estimates into a 30-day trend.
package fares

import (
	"math"
	"math/rand/v2"
	"time"

	"aerosense/estimator/internal/geo"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/pricing"
)

// Days is the length of every calendar.
const Days = 30

const (
	weekendSurcharge  = 1.25
	referenceMarkup   = 1.15
	lowThreshold      = 0.9
	highThreshold     = 1.3
	noiseHalfWidthINR = 500.0
)

// CalendarInput names the route. Today is reduced to its civil date in its own location.
type CalendarInput struct {
	Origin      models.Airport
	Destination models.Airport
	Today       time.Time
}

// Calendar returns one FareDay per day for 30 days starting today. Days with at
// least one sample use the rounded mean of those samples; the rest are estimated.
// Samples outside the window or with non-positive prices are ignored.
func Calendar(in CalendarInput, samples []models.FareSample, rng *rand.Rand) []models.FareDay {
	return DefaultBlender.Calendar(in, samples, rng)
}

// Blender holds the pricing table the estimates are derived from.
type Blender struct {
	Table pricing.Table
}

var DefaultBlender = Blender{Table: pricing.DefaultTable}

func (b Blender) Calendar(in CalendarInput, samples []models.FareSample, rng *rand.Rand) []models.FareDay {
	base := b.Table.Base(geo.Distance(in.Origin, in.Destination))
	reference := base * referenceMarkup
	observed := meanByDate(samples)

	y, m, d := in.Today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, in.Today.Location())

	out := make([]models.FareDay, 0, Days)
	for i := 0; i < Days; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(models.DateLayout)

		fd := models.FareDay{Date: date}
		if mean, ok := observed[date]; ok {
			fd.Price = max(1, int(math.Round(mean)))
			fd.Source = models.FareSourceHistorical
		} else {
			fd.Price = estimate(base, day, i, rng)
			fd.Source = models.FareSourceEstimated
		}
		fd.Level = Level(float64(fd.Price), reference)
		out = append(out, fd)
	}
	return out
}

// Level classifies a price against the route's reference fare.
func Level(price, reference float64) models.FareLevel {
	switch {
	case price < reference*lowThreshold:
		return models.FareLevelLow
	case price > reference*highThreshold:
		return models.FareLevelHigh
	default:
		return models.FareLevelMedium
	}
}

func estimate(base float64, day time.Time, offset int, rng *rand.Rand) int {
	price := base
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		price *= weekendSurcharge
	}
	price *= offsetMultiplier(offset)
	price += (rng.Float64()*2 - 1) * noiseHalfWidthINR
	return max(1, int(math.Round(price)))
}

// offsetMultiplier is the compressed demand curve used for calendar estimates.
func offsetMultiplier(offset int) float64 {
	switch {
	case offset < 7:
		return 1.5
	case offset < 14:
		return 1.2
	case offset > 21:
		return 0.9
	default:
		return 1
	}
}

func meanByDate(samples []models.FareSample) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, s := range samples {
		if s.Price <= 0 {
			continue
		}
		sums[s.Date] += s.Price
		counts[s.Date]++
	}
	means := make(map[string]float64, len(sums))
	for date, sum := range sums {
		means[date] = sum / float64(counts[date])
	}
	return means
}
