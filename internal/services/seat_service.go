package services

import (
	"math/rand/v2"
	"strings"

	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/models/dtos"
	"aerosense/estimator/internal/seats"
)

// SeatService builds seat maps. A flight's map is seeded from its id and cabin,
// so the same flight shows the same map on every request.
type SeatService struct{}

func NewSeatService() *SeatService {
	return &SeatService{}
}

// SeatMap parses cabin (empty means economy) and generates the map.
func (s *SeatService) SeatMap(flightID, cabin string) (*dtos.SeatMapResponse, error) {
	flightID = strings.TrimSpace(flightID)
	if flightID == "" {
		return nil, ValidationErrors{{Field: "flight_id", Message: "flight_id is required"}}
	}

	class := models.CabinEconomy
	if strings.TrimSpace(cabin) != "" {
		c, err := models.ParseCabinClass(cabin)
		if err != nil {
			return nil, ValidationErrors{{Field: "cabin", Message: "cabin must be one of: economy business first"}}
		}
		class = c
	}

	rng := rand.New(rand.NewPCG(seats.SeedFor(flightID, class)))
	records, err := seats.Generate(flightID, class, rng)
	if err != nil {
		return nil, err
	}

	return &dtos.SeatMapResponse{
		FlightID: flightID,
		Cabin:    class,
		Rows:     seats.Rows(class),
		Seats:    records,
	}, nil
}
