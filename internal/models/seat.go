package models

type (
	SeatTier    string
	SeatStatus  string
	LegroomKind string
)

const (
	SeatTierStandard  SeatTier = "standard"
	SeatTierPremium   SeatTier = "premium"
	SeatTierEmergency SeatTier = "emergency"

	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"

	LegroomStandard LegroomKind = "standard"
	LegroomExtra    LegroomKind = "extra"
)

type SeatRecord struct {
	ID         string      `json:"id"`
	Row        int         `json:"row"`
	Column     string      `json:"column"`
	Tier       SeatTier    `json:"tier"`
	Status     SeatStatus  `json:"status"`
	PriceDelta int         `json:"price_delta"`
	Legroom    LegroomKind `json:"legroom"`
	IsWindow   bool        `json:"is_window"`
	IsAisle    bool        `json:"is_aisle"`
}
