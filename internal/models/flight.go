package models

type DelayRisk string

const (
	DelayRiskLow    DelayRisk = "low"
	DelayRiskMedium DelayRisk = "medium"
	DelayRiskHigh   DelayRisk = "high"
)

// FlightCandidate is one priced itinerary returned by a search. It is never persisted.
type FlightCandidate struct {
	ID              string     `json:"id"`
	Airline         string     `json:"airline"`
	AirlineCode     string     `json:"airline_code"`
	FlightNumber    string     `json:"flight_number"`
	FromCode        string     `json:"from_code"`
	ToCode          string     `json:"to_code"`
	DepartureTime   ClockTime  `json:"departure_time"`
	ArrivalTime     ClockTime  `json:"arrival_time"`
	DurationMinutes int        `json:"duration_minutes"`
	Stops           int        `json:"stops"`
	Price           int        `json:"price"`
	CabinClass      CabinClass `json:"cabin_class"`
	DelayRisk       DelayRisk  `json:"delay_risk"`
	SeatsAvailable  int        `json:"seats_available"`
	Aircraft        string     `json:"aircraft"`
}

// DelayRiskFor classifies a departure by local hour and number of stops.
func DelayRiskFor(departureHour, stops int) DelayRisk {
	switch {
	case departureHour < 9 && stops == 0:
		return DelayRiskLow
	case departureHour > 18 || stops > 1:
		return DelayRiskHigh
	default:
		return DelayRiskMedium
	}
}
