package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"aerosense/estimator/internal/common"
	"aerosense/estimator/internal/constants"
	"aerosense/estimator/internal/logging"
	"aerosense/estimator/internal/models"
	"aerosense/estimator/internal/models/dtos"
	"aerosense/estimator/internal/services"

	"github.com/go-chi/chi/v5"
)

// Locator resolves and suggests airports.
type Locator interface {
	Resolve(text string) (models.LocationResolution, bool)
	Suggest(query string) []models.Airport
}

type FlightSearcher interface {
	Search(ctx context.Context, req dtos.SearchFlightsRequest) (*dtos.SearchFlightsResponse, error)
}

type CalendarBuilder interface {
	Calendar(ctx context.Context, from, to string) (*dtos.FareCalendarResponse, error)
}

type SeatMapper interface {
	SeatMap(flightID, cabin string) (*dtos.SeatMapResponse, error)
}

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

func (h *Handlers) ResolveLocation() http.HandlerFunc {
	return ResolveLocationHandler(h.deps.Services.Locations)
}

func (h *Handlers) SuggestAirports() http.HandlerFunc {
	return SuggestAirportsHandler(h.deps.Services.Locations)
}

func (h *Handlers) SearchFlights() http.HandlerFunc {
	return SearchFlightsHandler(h.deps.Services.Search)
}

func (h *Handlers) FareCalendar() http.HandlerFunc {
	return FareCalendarHandler(h.deps.Services.Calendar)
}

func (h *Handlers) SeatMap() http.HandlerFunc {
	return SeatMapHandler(h.deps.Services.Seats)
}

// ResolveLocationHandler handles GET /api/v1/locations/resolve?q=
func ResolveLocationHandler(svc Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			common.RespondError(w, initTime, nil, constants.MsgMissingQuery, http.StatusBadRequest)
			return
		}

		res, ok := svc.Resolve(q)
		if !ok {
			common.RespondError(w, initTime, nil, constants.MsgLocationNotFound, http.StatusNotFound)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgLocationResolved, res)
	}
}

// SuggestAirportsHandler handles GET /api/v1/airports/suggest?q=
func SuggestAirportsHandler(svc Locator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		q := r.URL.Query().Get("q")
		common.RespondSuccess(w, initTime, constants.MsgSuggestions, dtos.SuggestAirportsResponse{
			Query:    q,
			Airports: svc.Suggest(q),
		})
	}
}

// SearchFlightsHandler handles POST /api/v1/flights/search
func SearchFlightsHandler(svc FlightSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SearchFlightsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, constants.MsgInvalidRequestBody, http.StatusBadRequest)
			return
		}

		resp, err := svc.Search(r.Context(), req)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgFlightsFound, resp)
	}
}

// FareCalendarHandler handles GET /api/v1/fares/calendar?from=&to=
func FareCalendarHandler(svc CalendarBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		from := strings.TrimSpace(r.URL.Query().Get("from"))
		to := strings.TrimSpace(r.URL.Query().Get("to"))
		if from == "" || to == "" {
			common.RespondError(w, initTime, nil, constants.MsgMissingRoute, http.StatusBadRequest)
			return
		}

		resp, err := svc.Calendar(r.Context(), from, to)
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgFareCalendar, resp)
	}
}

// SeatMapHandler handles GET /api/v1/flights/{flight_id}/seats?cabin=
func SeatMapHandler(svc SeatMapper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		resp, err := svc.SeatMap(chi.URLParam(r, "flight_id"), r.URL.Query().Get("cabin"))
		if err != nil {
			respondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgSeatMap, resp)
	}
}

func respondServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		common.RespondErrorWithData(w, initTime, nil, constants.MsgValidationFailed, verrs, http.StatusBadRequest)
		return
	}
	logging.Error("Request failed", "error", err)
	common.RespondError(w, initTime, nil, "Internal server error", http.StatusInternalServerError)
}
