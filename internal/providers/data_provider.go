package providers

import (
	"context"
	"fmt"

	"aerosense/estimator/internal/models"
)

// FareSampleProvider supplies observed fares for a route. An empty result means
// no history; callers treat errors the same way.
type FareSampleProvider interface {
	FareSamples(ctx context.Context, origin, destination string) ([]models.FareSample, error)
}

// FareRecorder stores realized offers so later calendars can use them.
type FareRecorder interface {
	RecordOffers(ctx context.Context, query LiveFareQuery, offers []models.FlightCandidate) error
}

// LiveFareProvider searches a real-time fare source.
type LiveFareProvider interface {
	SearchOffers(ctx context.Context, query LiveFareQuery) ([]models.FlightCandidate, error)

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

// LiveFareQuery identifies one search by airport codes. Date is YYYY-MM-DD.
type LiveFareQuery struct {
	Origin      string
	Destination string
	Date        string
	Passengers  int
	Cabin       models.CabinClass
}

// ProviderError is returned by every provider for failures of the external source.
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
