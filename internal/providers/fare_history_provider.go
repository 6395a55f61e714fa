package providers

import (
	"context"
	"strings"
	"time"

	"aerosense/estimator/internal/constants"
	"aerosense/estimator/internal/fares"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/models/gorm"
)

// FareHistoryStore is the slice of the fare history repository the provider needs.
type FareHistoryStore interface {
	SamplesForRoute(ctx context.Context, origin, destination, fromDate, toDate string) ([]models.FareSample, error)
	BatchInsert(ctx context.Context, records []gorm.FareHistory) error
}

// FareHistoryProvider serves fare samples for the calendar window and records
// live offers as new samples.
type FareHistoryProvider struct {
	store FareHistoryStore
	now   func() time.Time
}

var (
	_ FareSampleProvider = (*FareHistoryProvider)(nil)
	_ FareRecorder       = (*FareHistoryProvider)(nil)
)

func NewFareHistoryProvider(store FareHistoryStore, now func() time.Time) *FareHistoryProvider {
	if now == nil {
		now = time.Now
	}
	return &FareHistoryProvider{store: store, now: now}
}

// FareSamples returns samples for the 30 days starting today.
func (p *FareHistoryProvider) FareSamples(ctx context.Context, origin, destination string) ([]models.FareSample, error) {
	today := p.now()
	from := today.Format(models.DateLayout)
	to := today.AddDate(0, 0, fares.Days-1).Format(models.DateLayout)

	samples, err := p.store.SamplesForRoute(ctx, strings.ToUpper(origin), strings.ToUpper(destination), from, to)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeStorageError,
			Message: constants.GetErrorMessage(constants.ErrCodeStorageError),
			Err:     err,
		}
	}
	return samples, nil
}

// RecordOffers stores one row per offer under the searched route and date.
func (p *FareHistoryProvider) RecordOffers(ctx context.Context, query LiveFareQuery, offers []models.FlightCandidate) error {
	if len(offers) == 0 {
		return nil
	}

	recordedAt := p.now().UTC()
	records := make([]gorm.FareHistory, 0, len(offers))
	for _, o := range offers {
		if o.Price <= 0 {
			continue
		}
		records = append(records, gorm.FareHistory{
			OriginCode:      strings.ToUpper(query.Origin),
			DestinationCode: strings.ToUpper(query.Destination),
			DepartureDate:   query.Date,
			Price:           float64(o.Price),
			Airline:         o.Airline,
			FlightNumber:    o.FlightNumber,
			CabinClass:      strings.ToUpper(string(o.CabinClass)),
			Stops:           o.Stops,
			DurationMinutes: o.DurationMinutes,
			Source:          constants.ProviderAmadeus,
			RecordedAt:      recordedAt,
		})
	}

	if err := p.store.BatchInsert(ctx, records); err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeStorageError,
			Message: "Failed to record fare history",
			Err:     err,
		}
	}
	return nil
}
