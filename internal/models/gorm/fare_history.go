package gorm

import (
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// FareHistory is one observed fare for a route and departure date.
type FareHistory struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid"`
	OriginCode      string    `gorm:"column:origin_code;type:varchar(3);not null;index:idx_fare_history_route,priority:1"`
	DestinationCode string    `gorm:"column:destination_code;type:varchar(3);not null;index:idx_fare_history_route,priority:2"`
	DepartureDate   string    `gorm:"column:departure_date;type:varchar(10);not null;index:idx_fare_history_route,priority:3"`
	Price           float64   `gorm:"column:price;type:numeric(12,2);not null"`
	Airline         string    `gorm:"column:airline;type:varchar(100)"`
	FlightNumber    string    `gorm:"column:flight_number;type:varchar(16)"`
	CabinClass      string    `gorm:"column:cabin_class;type:varchar(16)"`
	Stops           int       `gorm:"column:stops;not null;default:0"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null;default:0"`
	Source          string    `gorm:"column:source;type:varchar(32)"`
	RecordedAt      time.Time `gorm:"column:recorded_at;not null"`
}

// TableName specifies the table name for GORM
func (FareHistory) TableName() string {
	return "fare_history"
}

// BeforeCreate fills the id and timestamp so inserts work on any dialect.
func (f *FareHistory) BeforeCreate(tx *gormlib.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.RecordedAt.IsZero() {
		f.RecordedAt = time.Now().UTC()
	}
	return nil
}
