package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"aerosense/estimator/internal/config"
	"aerosense/estimator/internal/constants"
	"aerosense/estimator/internal/itinerary"
	"aerosense/estimator/internal/logging"
	"aerosense/estimator/internal/models"
)

const (
	amadeusTokenPath  = "/v1/security/oauth2/token"
	amadeusOffersPath = "/v2/shopping/flight-offers"
	amadeusIDPrefix   = "amadeus-"
	// Tokens are refreshed this long before Amadeus says they expire.
	tokenExpirySlack = 30 * time.Second
)

// AmadeusProvider implements LiveFareProvider against the Amadeus Self-Service
// flight offers API using OAuth2 client credentials.
type AmadeusProvider struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	MaxOffers    int
	Client       *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	now         func() time.Time
}

var _ LiveFareProvider = (*AmadeusProvider)(nil)

func NewAmadeusProvider(cfg config.AmadeusConfig) *AmadeusProvider {
	return &AmadeusProvider{
		BaseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		MaxOffers:    cfg.MaxOffers,
		Client: &http.Client{
			Timeout: cfg.Timeout,
		},
		now: time.Now,
	}
}

// GetProviderType returns the provider type identifier
func (p *AmadeusProvider) GetProviderType() string {
	return constants.ProviderAmadeus
}

// SearchOffers fetches flight offers priced in INR and maps them to candidates.
// Offers that cannot be parsed are skipped.
func (p *AmadeusProvider) SearchOffers(ctx context.Context, query LiveFareQuery) ([]models.FlightCandidate, error) {
	if query.Origin == "" || query.Destination == "" || query.Date == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Origin, destination and date are required",
		}
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.Date)
	params.Set("adults", strconv.Itoa(max(1, query.Passengers)))
	params.Set("currencyCode", "INR")
	params.Set("max", strconv.Itoa(max(1, p.MaxOffers)))
	if query.Cabin != "" && query.Cabin != models.CabinEconomy {
		params.Set("travelClass", strings.ToUpper(string(query.Cabin)))
	}

	var resp amadeusOffersResponse
	if _, err := p.doGET(ctx, amadeusOffersPath+"?"+params.Encode(), token, &resp); err != nil {
		return nil, err
	}

	flights := make([]models.FlightCandidate, 0, len(resp.Data))
	for _, offer := range resp.Data {
		f, err := mapOffer(offer, resp.Dictionaries, query.Cabin)
		if err != nil {
			logging.Debug("Skipping unparseable Amadeus offer", "offer_id", offer.ID, "error", err)
			continue
		}
		flights = append(flights, f)
	}
	itinerary.SortByPrice(flights)
	return flights, nil
}

// accessToken returns a cached token or requests a new one.
func (p *AmadeusProvider) accessToken(ctx context.Context) (string, error) {
	if p.ClientID == "" || p.ClientSecret == "" {
		return "", &ProviderError{
			Code:    constants.ErrCodeProviderNotConfigured,
			Message: "AMADEUS_API_KEY and AMADEUS_API_SECRET are not set",
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Before(p.tokenExpiry) {
		return p.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.ClientID)
	form.Set("client_secret", p.ClientSecret)

	var tok amadeusTokenResponse
	status, err := p.doPostForm(ctx, amadeusTokenPath, form, &tok)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) && (status == http.StatusUnauthorized || status == http.StatusBadRequest) {
			pe.Code = constants.ErrCodeAuthenticationFailed
		}
		return "", err
	}
	if tok.AccessToken == "" {
		return "", &ProviderError{
			Code:    constants.ErrCodeAuthenticationFailed,
			Message: "Token response did not contain an access token",
		}
	}

	p.token = tok.AccessToken
	p.tokenExpiry = p.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpirySlack)
	return p.token, nil
}

// ============================================================================
// HTTP Helper Methods
// ============================================================================

// doGET performs an authenticated GET request
func (p *AmadeusProvider) doGET(ctx context.Context, endpoint, token string, result interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+endpoint, nil)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	return p.do(req, endpoint, result)
}

// doPostForm performs a form-encoded POST request
func (p *AmadeusProvider) doPostForm(ctx context.Context, endpoint string, form url.Values, result interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return p.do(req, endpoint, result)
}

func (p *AmadeusProvider) do(req *http.Request, endpoint string, result interface{}) (int, error) {
	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to read response body",
			Err:     readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, p.buildHTTPError(resp.StatusCode, endpoint, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: "Failed to decode response",
			Details: string(bodyBytes),
			Err:     err,
		}
	}
	return resp.StatusCode, nil
}

// buildHTTPError creates appropriate error based on status code
func (p *AmadeusProvider) buildHTTPError(statusCode int, endpoint string, body string) error {
	// Query strings are dropped so logs do not carry search parameters.
	path, _, _ := strings.Cut(endpoint, "?")
	switch statusCode {
	case http.StatusUnauthorized:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: fmt.Sprintf("Authentication failed for endpoint %s", path),
			Details: body,
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeResourceNotFound,
			Message: fmt.Sprintf("Resource not found: %s", path),
			Details: body,
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	case http.StatusBadRequest:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidDataFormat,
			Message: fmt.Sprintf("Bad request to %s", path),
			Details: body,
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from %s", statusCode, path),
			Details: body,
		}
	}
}

// ============================================================================
// Offer mapping
// ============================================================================

type amadeusTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type amadeusOffersResponse struct {
	Data         []amadeusOffer      `json:"data"`
	Dictionaries amadeusDictionaries `json:"dictionaries"`
}

type amadeusDictionaries struct {
	Carriers map[string]string `json:"carriers"`
	Aircraft map[string]string `json:"aircraft"`
}

type amadeusOffer struct {
	ID                    string `json:"id"`
	NumberOfBookableSeats int    `json:"numberOfBookableSeats"`
	Itineraries           []struct {
		Duration string           `json:"duration"`
		Segments []amadeusSegment `json:"segments"`
	} `json:"itineraries"`
	Price struct {
		Total string `json:"total"`
	} `json:"price"`
	TravelerPricings []struct {
		FareDetailsBySegment []struct {
			Cabin string `json:"cabin"`
		} `json:"fareDetailsBySegment"`
	} `json:"travelerPricings"`
}

type amadeusSegment struct {
	Departure   amadeusEndpoint `json:"departure"`
	Arrival     amadeusEndpoint `json:"arrival"`
	CarrierCode string          `json:"carrierCode"`
	Number      string          `json:"number"`
	Duration    string          `json:"duration"`
	Aircraft    struct {
		Code string `json:"code"`
	} `json:"aircraft"`
}

type amadeusEndpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// carrierNames covers carriers outside the synthesizer roster.
var carrierNames = map[string]string{
	"G8": "Go First",
	"DL": "Delta Airlines",
	"UA": "United Airlines",
	"AA": "American Airlines",
	"MH": "Malaysia Airlines",
	"CX": "Cathay Pacific",
	"JL": "Japan Airlines",
	"NH": "All Nippon Airways",
	"KE": "Korean Air",
	"OZ": "Asiana Airlines",
	"ET": "Ethiopian Airlines",
	"WY": "Oman Air",
	"GF": "Gulf Air",
	"MS": "EgyptAir",
	"TK": "Turkish Airlines",
	"FZ": "flydubai",
	"WS": "WestJet",
	"AC": "Air Canada",
	"KL": "KLM",
	"LX": "Swiss International",
	"OS": "Austrian Airlines",
	"AY": "Finnair",
	"SK": "SAS",
	"IB": "Iberia",
	"VY": "Vueling",
	"FR": "Ryanair",
	"U2": "easyJet",
}

func carrierName(code string, dict map[string]string) string {
	if name, ok := itinerary.AirlineName(code); ok {
		return name
	}
	if name, ok := carrierNames[code]; ok {
		return name
	}
	if name, ok := dict[code]; ok && name != "" {
		return name
	}
	return code
}

func mapOffer(offer amadeusOffer, dict amadeusDictionaries, requested models.CabinClass) (models.FlightCandidate, error) {
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return models.FlightCandidate{}, fmt.Errorf("offer has no segments")
	}
	itin := offer.Itineraries[0]
	first := itin.Segments[0]
	last := itin.Segments[len(itin.Segments)-1]

	dep, err := clockFromTimestamp(first.Departure.At)
	if err != nil {
		return models.FlightCandidate{}, fmt.Errorf("departure: %w", err)
	}
	arr, err := clockFromTimestamp(last.Arrival.At)
	if err != nil {
		return models.FlightCandidate{}, fmt.Errorf("arrival: %w", err)
	}

	total, err := strconv.ParseFloat(offer.Price.Total, 64)
	if err != nil || total <= 0 {
		return models.FlightCandidate{}, fmt.Errorf("invalid price %q", offer.Price.Total)
	}

	duration, err := ParseISODuration(itin.Duration)
	if err != nil {
		duration = 0
		for _, s := range itin.Segments {
			d, segErr := ParseISODuration(s.Duration)
			if segErr != nil {
				return models.FlightCandidate{}, fmt.Errorf("duration: %w", segErr)
			}
			duration += d
		}
	}

	cabin := requested
	if len(offer.TravelerPricings) > 0 && len(offer.TravelerPricings[0].FareDetailsBySegment) > 0 {
		if c, err := models.ParseCabinClass(offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin); err == nil {
			cabin = c
		}
	}
	if cabin == "" {
		cabin = models.CabinEconomy
	}

	aircraft := dict.Aircraft[first.Aircraft.Code]
	if aircraft == "" {
		aircraft = first.Aircraft.Code
	}
	if aircraft == "" {
		aircraft = "Aircraft"
	}

	stops := len(itin.Segments) - 1
	return models.FlightCandidate{
		ID:              amadeusIDPrefix + offer.ID,
		Airline:         carrierName(first.CarrierCode, dict.Carriers),
		AirlineCode:     first.CarrierCode,
		FlightNumber:    first.CarrierCode + first.Number,
		FromCode:        first.Departure.IATACode,
		ToCode:          last.Arrival.IATACode,
		DepartureTime:   dep,
		ArrivalTime:     arr,
		DurationMinutes: duration,
		Stops:           stops,
		Price:           max(1, int(math.Round(total))),
		CabinClass:      cabin,
		DelayRisk:       models.DelayRiskFor(dep.Hour(), stops),
		SeatsAvailable:  offer.NumberOfBookableSeats,
		Aircraft:        aircraft,
	}, nil
}

// clockFromTimestamp reads the local wall-clock time from "2025-03-01T06:10:00".
func clockFromTimestamp(ts string) (models.ClockTime, error) {
	_, clock, ok := strings.Cut(ts, "T")
	if !ok || len(clock) < 5 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}
	return models.ParseClockTime(clock[:5])
}

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?T(?:(\d+)H)?(?:(\d+)M)?$`)

// ParseISODuration converts an ISO 8601 duration such as "PT2H30M" or "P1DT3H" to minutes.
func ParseISODuration(s string) (int, error) {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}
	part := func(v string) int {
		n, _ := strconv.Atoi(v)
		return n
	}
	return part(m[1])*24*60 + part(m[2])*60 + part(m[3]), nil
}
