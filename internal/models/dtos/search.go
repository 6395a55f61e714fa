package dtos

import "aerosense/estimator/internal/models"

// SearchFlightsRequest is the body of POST /api/v1/flights/search.
type SearchFlightsRequest struct {
	From       string `json:"from" validate:"required,max=100"`
	To         string `json:"to" validate:"required,max=100"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Passengers *int   `json:"passengers,omitempty" validate:"omitempty,min=1,max=9"`
	Cabin      string `json:"cabin_class" validate:"required,cabin"`
}

// PassengerCount is the requested party size; an omitted count means one.
// Call it only after validation.
func (r SearchFlightsRequest) PassengerCount() int {
	if r.Passengers == nil {
		return 1
	}
	return *r.Passengers
}

type SearchFlightsResponse struct {
	Flights     []models.FlightCandidate `json:"flights"`
	FromAirport models.Airport           `json:"from_airport"`
	ToAirport   models.Airport           `json:"to_airport"`
	FromNearest *models.NearestInfo      `json:"from_nearest,omitempty"`
	ToNearest   *models.NearestInfo      `json:"to_nearest,omitempty"`
	IsRealTime  bool                     `json:"is_real_time"`
	Message     string                   `json:"message"`
}

type FareCalendarResponse struct {
	FromAirport models.Airport   `json:"from_airport"`
	ToAirport   models.Airport   `json:"to_airport"`
	Days        []models.FareDay `json:"days"`
}

type SeatMapResponse struct {
	FlightID string              `json:"flight_id"`
	Cabin    models.CabinClass   `json:"cabin_class"`
	Rows     int                 `json:"rows"`
	Seats    []models.SeatRecord `json:"seats"`
}

type SuggestAirportsResponse struct {
	Query    string           `json:"query"`
	Airports []models.Airport `json:"airports"`
}
