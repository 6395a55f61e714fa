package repositories

import (
	"context"
	"fmt"

	"aerosense/estimator/internal/constants"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	gormlib "gorm.io/gorm"
)

// FareHistoryRepository writes observed fares through GORM and reads samples
// back with sqlx. Both handles point at the same database.
type FareHistoryRepository struct {
	orm *gormlib.DB
	db  *sqlx.DB
}

func NewFareHistoryRepository(orm *gormlib.DB, db *sqlx.DB) *FareHistoryRepository {
	return &FareHistoryRepository{orm: orm, db: db}
}

// Migrate creates or updates the fare_history table.
func (r *FareHistoryRepository) Migrate(ctx context.Context) error {
	return r.orm.WithContext(ctx).AutoMigrate(&gorm.FareHistory{})
}

// BatchInsert inserts fare records in batches of 100
func (r *FareHistoryRepository) BatchInsert(ctx context.Context, records []gorm.FareHistory) error {
	if len(records) == 0 {
		return nil
	}
	return r.orm.WithContext(ctx).CreateInBatches(&records, 100).Error
}

type fareSampleRow struct {
	DepartureDate string  `db:"departure_date"`
	Price         float64 `db:"price"`
}

// SamplesForRoute returns samples for departure dates in [fromDate, toDate], both YYYY-MM-DD.
func (r *FareHistoryRepository) SamplesForRoute(ctx context.Context, origin, destination, fromDate, toDate string) ([]models.FareSample, error) {
	var rows []fareSampleRow
	query := r.db.Rebind(constants.GetFareSamplesForRoute)
	if err := r.db.SelectContext(ctx, &rows, query, origin, destination, fromDate, toDate); err != nil {
		return nil, fmt.Errorf("failed to query fare samples: %w", err)
	}

	samples := make([]models.FareSample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, models.FareSample{Date: row.DepartureDate, Price: row.Price})
	}
	return samples, nil
}

// CountForRoute returns how many samples exist for a route across all dates
func (r *FareHistoryRepository) CountForRoute(ctx context.Context, origin, destination string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, r.db.Rebind(constants.CountFareSamplesForRoute), origin, destination)
	return count, err
}

// Ping checks the read connection, for health checks.
func (r *FareHistoryRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
