package models

// Airport is one entry of the static airport directory.
type Airport struct {
	City    string  `json:"city"`
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Location is a well-known place without its own airport.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// LocationResolution is the resolver's answer for one free-text query.
// DistanceKm is 0 when IsExactMatch is true.
type LocationResolution struct {
	Airport      Airport `json:"airport"`
	DistanceKm   int     `json:"distance_km"`
	IsExactMatch bool    `json:"is_exact_match"`
}

// NearestInfo tells the caller that a query was answered with the nearest airport.
type NearestInfo struct {
	OriginalText string `json:"original_text"`
	DistanceKm   int    `json:"distance_km"`
}
