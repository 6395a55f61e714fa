package airports

import (
	"math"
	"strings"

	"aerosense/estimator/internal/geo"
	"aerosense/estimator/internal/models"
)

const (
	maxSuggestions   = 10
	minSuggestLength = 2
)

// Resolve maps free text to an airport. The boolean is false when nothing matched;
// the caller picks its own fallback in that case.
//
// Matching runs in priority order: exact code, city name (equal or substring in
// either direction), nearest airport to a well-known location, word-level fuzzy
// match on city names. Within each step the first airport in directory order wins.
func (d *Directory) Resolve(text string) (models.LocationResolution, bool) {
	input := normalize(text)
	if input == "" {
		return models.LocationResolution{}, false
	}

	if a, ok := d.matchAirport(input); ok {
		return models.LocationResolution{Airport: a, IsExactMatch: true}, true
	}

	if loc, ok := d.matchLocation(input); ok {
		if a, dist, ok := d.Nearest(loc.Lat, loc.Lng); ok {
			return models.LocationResolution{
				Airport:    a,
				DistanceKm: int(math.Round(dist)),
			}, true
		}
	}

	if a, ok := d.fuzzyMatch(input); ok {
		return models.LocationResolution{Airport: a, IsExactMatch: true}, true
	}

	return models.LocationResolution{}, false
}

// matchAirport checks codes first so a code such as "DEL" is not captured by a
// city that merely contains it ("Philadelphia").
func (d *Directory) matchAirport(input string) (models.Airport, bool) {
	for _, a := range d.airports {
		if strings.ToLower(a.Code) == input {
			return a, true
		}
	}
	for _, a := range d.airports {
		if containsEitherWay(strings.ToLower(a.City), input) {
			return a, true
		}
	}
	return models.Airport{}, false
}

func (d *Directory) matchLocation(input string) (models.Location, bool) {
	for _, loc := range d.locations {
		if containsEitherWay(strings.ToLower(loc.Name), input) {
			return loc, true
		}
	}
	return models.Location{}, false
}

func (d *Directory) fuzzyMatch(input string) (models.Airport, bool) {
	inputWords := strings.Fields(input)
	for _, a := range d.airports {
		for _, w := range strings.Fields(strings.ToLower(a.City)) {
			for _, iw := range inputWords {
				if containsEitherWay(w, iw) {
					return a, true
				}
			}
		}
	}
	return models.Airport{}, false
}

// Nearest scans every airport and returns the closest one to the point.
func (d *Directory) Nearest(lat, lng float64) (models.Airport, float64, bool) {
	var (
		nearest models.Airport
		best    = math.Inf(1)
		found   bool
	)
	for _, a := range d.airports {
		dist := geo.Haversine(lat, lng, a.Lat, a.Lng)
		if dist < best {
			best = dist
			nearest = a
			found = true
		}
	}
	return nearest, best, found
}

// Suggest returns up to ten airports whose code, city, name or country contains
// the query. Queries shorter than two characters return nothing.
func (d *Directory) Suggest(query string) []models.Airport {
	input := normalize(query)
	if len([]rune(input)) < minSuggestLength {
		return []models.Airport{}
	}

	out := make([]models.Airport, 0, maxSuggestions)
	for _, a := range d.airports {
		if strings.Contains(strings.ToLower(a.City), input) ||
			strings.Contains(strings.ToLower(a.Code), input) ||
			strings.Contains(strings.ToLower(a.Name), input) ||
			strings.Contains(strings.ToLower(a.Country), input) {
			out = append(out, a)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsEitherWay(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
