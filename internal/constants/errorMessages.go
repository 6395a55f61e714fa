package constants

const (
	MsgLocationResolved   = "Location resolved"
	MsgLocationNotFound   = "No airport found for the given location"
	MsgSuggestions        = "Airport suggestions"
	MsgFlightsFound       = "Flights found"
	MsgFareCalendar       = "Fare calendar"
	MsgSeatMap            = "Seat map"
	MsgInvalidRequestBody = "Invalid request body"
	MsgValidationFailed   = "Validation failed"
	MsgMissingQuery       = "Query parameter q is required"
	MsgMissingRoute       = "Query parameters from and to are required"

	// Search result messages; MsgRealTimeFlights takes the flight count.
	MsgRealTimeFlights     = "Found %d real-time flights"
	MsgEstimatedFares      = "Using estimated fares based on historical trends"
	MsgProviderUnavailable = "Using estimated fares (API temporarily unavailable)"
)
