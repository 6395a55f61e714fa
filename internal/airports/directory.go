// Package airports holds the static airport directory and the free-text location resolver.
package airports

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"aerosense/estimator/internal/models"
)

//go:embed data/airports.json
var embeddedAirports []byte

//go:embed data/locations.json
var embeddedLocations []byte

// Directory is the read-only airport table plus the auxiliary table of well-known
// locations that have no airport of their own. It is safe for concurrent use
// because nothing mutates it after Load returns.
type Directory struct {
	airports  []models.Airport
	locations []models.Location
}

// rawAirport mirrors one JSON record before normalization.
type rawAirport struct {
	City    string  `json:"city"`
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// LoadDefault builds the directory from the tables compiled into the binary.
func LoadDefault() (*Directory, error) {
	return Load(bytes.NewReader(embeddedAirports), bytes.NewReader(embeddedLocations))
}

// Load parses an airport table and a location table, both JSON arrays.
// Directory order is the order of the airport table.
func Load(airportsJSON, locationsJSON io.Reader) (*Directory, error) {
	var rawAirports []rawAirport
	if err := json.NewDecoder(airportsJSON).Decode(&rawAirports); err != nil {
		return nil, fmt.Errorf("failed to decode airports: %w", err)
	}
	if len(rawAirports) == 0 {
		return nil, fmt.Errorf("no airport data found")
	}

	airports := make([]models.Airport, 0, len(rawAirports))
	seen := make(map[string]struct{}, len(rawAirports))
	for i, raw := range rawAirports {
		a := models.Airport{
			City:    strings.TrimSpace(raw.City),
			Code:    strings.ToUpper(strings.TrimSpace(raw.Code)),
			Name:    strings.TrimSpace(raw.Name),
			Country: strings.TrimSpace(raw.Country),
			Lat:     raw.Lat,
			Lng:     raw.Lng,
		}
		if err := validateAirport(a); err != nil {
			return nil, fmt.Errorf("airport #%d: %w", i, err)
		}
		if _, dup := seen[a.Code]; dup {
			return nil, fmt.Errorf("airport #%d: duplicate code %s", i, a.Code)
		}
		seen[a.Code] = struct{}{}
		airports = append(airports, a)
	}

	var locations []models.Location
	if locationsJSON != nil {
		if err := json.NewDecoder(locationsJSON).Decode(&locations); err != nil {
			return nil, fmt.Errorf("failed to decode locations: %w", err)
		}
	}
	for i := range locations {
		locations[i].Name = strings.TrimSpace(locations[i].Name)
		if locations[i].Name == "" || !validCoordinates(locations[i].Lat, locations[i].Lng) {
			return nil, fmt.Errorf("location #%d is invalid", i)
		}
	}

	return &Directory{airports: airports, locations: locations}, nil
}

func validateAirport(a models.Airport) error {
	if len(a.Code) != 3 {
		return fmt.Errorf("code %q must be 3 letters", a.Code)
	}
	if a.City == "" {
		return fmt.Errorf("%s has no city", a.Code)
	}
	if !validCoordinates(a.Lat, a.Lng) {
		return fmt.Errorf("%s has coordinates out of range", a.Code)
	}
	return nil
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Len returns the number of airports.
func (d *Directory) Len() int { return len(d.airports) }

// At returns the airport at directory position i.
func (d *Directory) At(i int) models.Airport { return d.airports[i] }

// ByCode looks an airport up by its exact IATA code, ignoring case.
func (d *Directory) ByCode(code string) (models.Airport, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, a := range d.airports {
		if a.Code == code {
			return a, true
		}
	}
	return models.Airport{}, false
}
