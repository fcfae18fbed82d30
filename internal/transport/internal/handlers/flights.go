package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	apperrors "github.com/vgupta/flight-booking-mcp/internal/errors"
	"github.com/vgupta/flight-booking-mcp/internal/flight"
	"github.com/vgupta/flight-booking-mcp/internal/transport/transportcore"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// FlightService is the slice of the flight service the REST handlers use.
type FlightService interface {
	Airports() []flight.Airport
	SearchFlights(origin, destination, date string) (*flight.SearchResult, error)
	CreateBooking(flightID, passengerName, email string) (*flight.Booking, error)
	Bookings(email string) []flight.Booking
	HandleDisruption(originalFlight, reason string) *flight.Disruption
}

// FlightHandler serves the OAuth-protected flight REST API.
type FlightHandler struct {
	service   FlightService
	responder transportcore.ErrorResponder
}

// NewFlightHandler creates the flight API handler.
func NewFlightHandler(service FlightService, responder transportcore.ErrorResponder) *FlightHandler {
	if service == nil {
		panic("service cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &FlightHandler{
		service:   service,
		responder: responder,
	}
}

// Airports handles GET /api/airports.
func (h *FlightHandler) Airports(w http.ResponseWriter, r *http.Request) {
	writeBody(w, http.StatusOK, map[string]any{
		"airports": h.service.Airports(),
	})
}

// SearchFlights handles GET /api/flights/search.
func (h *FlightHandler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	origin := query.Get("origin")
	destination := query.Get("destination")
	if origin == "" || destination == "" {
		h.responder.BadRequest(w, fmt.Errorf("origin and destination are required"))
		return
	}

	result, err := h.service.SearchFlights(origin, destination, query.Get("date"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeBody(w, http.StatusOK, result)
}

// bookingRequest is the JSON body for booking creation.
type bookingRequest struct {
	FlightID      string `json:"flight_id"`
	PassengerName string `json:"passenger_name"`
	Email         string `json:"email,omitempty"`
}

// CreateBooking handles POST /api/bookings.
func (h *FlightHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.BadRequest(w, fmt.Errorf("malformed booking request: %w", err))
		return
	}

	booking, err := h.service.CreateBooking(req.FlightID, req.PassengerName, req.Email)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if claims, ok := transportcore.ClaimsFromContext(r.Context()); ok {
		slog.Info("booking created",
			"booking_id", booking.BookingID,
			"flight_id", booking.FlightID,
			"subject", claims.Subject,
		)
	}

	writeBody(w, http.StatusCreated, booking)
}

// Bookings handles GET /api/bookings. An email query parameter narrows the
// result to one passenger.
func (h *FlightHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	bookings := h.service.Bookings(r.URL.Query().Get("email"))
	writeBody(w, http.StatusOK, map[string]any{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// disruptionRequest is the JSON body for disruption reporting.
type disruptionRequest struct {
	OriginalFlight string `json:"original_flight"`
	Reason         string `json:"reason"`
}

// HandleDisruption handles POST /api/disruptions.
func (h *FlightHandler) HandleDisruption(w http.ResponseWriter, r *http.Request) {
	var req disruptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.BadRequest(w, fmt.Errorf("malformed disruption request: %w", err))
		return
	}
	if req.OriginalFlight == "" {
		h.responder.BadRequest(w, fmt.Errorf("original_flight is required"))
		return
	}

	writeBody(w, http.StatusOK, h.service.HandleDisruption(req.OriginalFlight, req.Reason))
}

// writeServiceError maps flight service errors onto HTTP responses.
func (h *FlightHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		h.responder.NotFound(w, detailFromError(err))
	case errors.Is(err, apperrors.ErrBadRequest):
		h.responder.BadRequest(w, detailFromError(err))
	default:
		h.responder.InternalError(w, err)
	}
}

// detailFromError extracts the client-safe inner message from a domain
// error, falling back to the full error.
func detailFromError(err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) && domainErr.Err != nil {
		return domainErr.Err
	}
	return err
}

// writeBody encodes v as the JSON response body with the given status.
func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
