package constants

type (
	APIStatus   string
	CachePrefix string
	FareSource  string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSearch      CachePrefix = "SEARCH:"
	CachePrefixCalendar    CachePrefix = "CALENDAR:"
	CachePrefixFareSamples CachePrefix = "FARE_SAMPLES:"

	// Labels for estimator_searches_total and search events.
	SearchSourceLive      = "live"
	SearchSourceEstimated = "estimated"

	ProviderAmadeus     = "amadeus"
	ProviderFareHistory = "fare_history"
)
