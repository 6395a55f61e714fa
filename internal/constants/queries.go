package constants

const (
	// Bind variables are written as ? and rebound for the driver with sqlx.Rebind.
	GetFareSamplesForRoute = `
	SELECT departure_date, price
	FROM fare_history
	WHERE origin_code = ? AND destination_code = ?
	  AND departure_date >= ? AND departure_date <= ?
	ORDER BY departure_date, recorded_at
	`

	CountFareSamplesForRoute = `
	SELECT COUNT(*) FROM fare_history WHERE origin_code = ? AND destination_code = ?
	`
)
