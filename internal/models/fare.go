package models

type (
	FareLevel  string
	FareSource string
)

const (
	FareLevelLow    FareLevel = "low"
	FareLevelMedium FareLevel = "medium"
	FareLevelHigh   FareLevel = "high"

	FareSourceHistorical FareSource = "historical"
	FareSourceEstimated  FareSource = "estimated"
)

// DateLayout is the civil date format used for fare days and samples.
const DateLayout = "2006-01-02"

// FareDay is one day of the 30-day fare trend.
type FareDay struct {
	Date   string     `json:"date"`
	Price  int        `json:"price"`
	Level  FareLevel  `json:"level"`
	Source FareSource `json:"source"`
}

// FareSample is one observed price for a route on a departure date.
type FareSample struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}
