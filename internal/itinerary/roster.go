package itinerary

type airline struct {
	Name string
	Code string
}

var airlines = []airline{
	{Name: "Air India", Code: "AI"},
	{Name: "IndiGo", Code: "6E"},
	{Name: "SpiceJet", Code: "SG"},
	{Name: "Vistara", Code: "UK"},
	{Name: "Akasa Air", Code: "QP"},
	{Name: "AirAsia India", Code: "I5"},
	{Name: "Emirates", Code: "EK"},
	{Name: "Qatar Airways", Code: "QR"},
	{Name: "Singapore Airlines", Code: "SQ"},
	{Name: "Lufthansa", Code: "LH"},
	{Name: "British Airways", Code: "BA"},
	{Name: "Air France", Code: "AF"},
	{Name: "Etihad Airways", Code: "EY"},
	{Name: "Thai Airways", Code: "TG"},
}

var aircraftPool = []string{
	"Boeing 737-800",
	"Airbus A320neo",
	"Boeing 787-9",
	"Airbus A350-900",
	"Boeing 777-300ER",
	"Airbus A380-800",
}

// AirlineName returns the display name for a carrier code in the roster.
func AirlineName(code string) (string, bool) {
	for _, a := range airlines {
		if a.Code == code {
			return a.Name, true
		}
	}
	return "", false
}
