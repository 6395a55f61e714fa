package geo

import (
	"math"

	"aerosense/estimator/internal/models"
)

// TimezoneOffsetHours approximates a UTC offset as one hour per 15 degrees of longitude.
func TimezoneOffsetHours(lng float64) int {
	return int(math.Round(lng / 15))
}

// ArrivalTime returns the local arrival clock time at the destination.
// Calendar-day rollover is not tracked.
func ArrivalTime(departure models.ClockTime, durationMinutes int, from, to models.Airport) models.ClockTime {
	tzDiff := (TimezoneOffsetHours(to.Lng) - TimezoneOffsetHours(from.Lng)) * 60
	return models.NewClockTime(int(departure) + durationMinutes + tzDiff)
}
