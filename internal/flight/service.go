// Package flight implements the flight booking business logic behind the
// OAuth-protected API and the MCP tools. All state is in memory and scoped
// to the process lifetime.
package flight

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/vgupta/flight-booking-mcp/internal/errors"
)

// flightIDPrefix marks flight ids issued by this system. Bookings are only
// accepted for flights carrying the prefix.
const flightIDPrefix = "FB"

// Price bounds for the simulated fare generator, in rupees.
const (
	minPrice = 3000
	maxPrice = 5000
)

// defaultTravelDate is used when a search omits the date.
const defaultTravelDate = "2024-12-01"

// Flight is one result row from a flight search.
type Flight struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Price       int    `json:"price"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	Airline     string `json:"airline"`
	Duration    string `json:"duration"`
}

// SearchCriteria echoes the parameters a search was run with.
type SearchCriteria struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

// SearchResult is the full response of a flight search.
type SearchResult struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Flights        []Flight       `json:"flights"`
}

// Passenger identifies who a booking is for.
type Passenger struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Booking is a confirmed flight reservation.
type Booking struct {
	BookingID        string    `json:"booking_id"`
	FlightID         string    `json:"flight_id"`
	Passenger        Passenger `json:"passenger"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	ConfirmationCode string    `json:"confirmation_code"`
}

// Alternative is a rebooking option offered after a disruption.
type Alternative struct {
	FlightID     string `json:"flight_id"`
	Departure    string `json:"departure"`
	Compensation string `json:"compensation"`
}

// Disruption describes a disrupted flight and the offered alternatives.
type Disruption struct {
	OriginalFlight   string        `json:"original_flight"`
	DisruptionReason string        `json:"disruption_reason"`
	Status           string        `json:"status"`
	Alternatives     []Alternative `json:"alternatives"`
	SupportContact   string        `json:"support_contact"`
}

// schedule is one canned departure slot the search generator fills in.
type schedule struct {
	id        string
	departure string
	arrival   string
	duration  string
}

// Service holds the airport table and the in-memory booking store.
// Bookings are keyed by passenger email behind a mutex; everything else is
// read-only after construction.
type Service struct {
	airports map[string]Airport
	airlines []string

	mu       sync.Mutex
	bookings map[string][]Booking

	now     func() time.Time
	priceFn func() int
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPriceFn injects the fare generator, for tests.
func WithPriceFn(fn func() int) Option {
	return func(s *Service) { s.priceFn = fn }
}

// NewService creates the flight service with the built-in airport table.
func NewService(opts ...Option) *Service {
	s := &Service{
		airports: defaultAirports(),
		airlines: []string{"SkyConnect", "AirFlow", "Premium Airways"},
		bookings: make(map[string][]Booking),
		now:      time.Now,
		priceFn: func() int {
			return minPrice + rand.IntN(maxPrice-minPrice+1)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Airports returns the airport table sorted by code.
func (s *Service) Airports() []Airport {
	airports := make([]Airport, 0, len(s.airports))
	for _, airport := range s.airports {
		airports = append(airports, airport)
	}
	sort.Slice(airports, func(i, j int) bool {
		return airports[i].Code < airports[j].Code
	})
	return airports
}

// Airport looks up a single airport by code.
func (s *Service) Airport(code string) (Airport, error) {
	airport, ok := s.airports[code]
	if !ok {
		return Airport{}, apperrors.New("flight", "Airport", apperrors.ErrNotFound,
			fmt.Errorf("unknown airport %q", code)).WithContext("code", code)
	}
	return airport, nil
}

// SearchFlights returns the canned flight schedule between two known
// airports with freshly generated fares. Unknown airports are rejected.
func (s *Service) SearchFlights(origin, destination, date string) (*SearchResult, error) {
	if _, ok := s.airports[origin]; !ok {
		return nil, apperrors.New("flight", "SearchFlights", apperrors.ErrNotFound,
			fmt.Errorf("origin airport %q not found", origin)).WithContext("origin", origin)
	}
	if _, ok := s.airports[destination]; !ok {
		return nil, apperrors.New("flight", "SearchFlights", apperrors.ErrNotFound,
			fmt.Errorf("destination airport %q not found", destination)).WithContext("destination", destination)
	}
	if date == "" {
		date = defaultTravelDate
	}

	schedules := []schedule{
		{id: flightIDPrefix + "123", departure: "08:00", arrival: "11:30", duration: "3h 30m"},
		{id: flightIDPrefix + "456", departure: "14:15", arrival: "17:45", duration: "3h 30m"},
		{id: flightIDPrefix + "789", departure: "20:30", arrival: "23:55", duration: "3h 25m"},
	}

	flights := make([]Flight, 0, len(schedules))
	for i, sched := range schedules {
		flights = append(flights, Flight{
			ID:          sched.id,
			Origin:      origin,
			Destination: destination,
			Price:       s.priceFn(),
			Departure:   sched.departure,
			Arrival:     sched.arrival,
			Airline:     s.airlines[i%len(s.airlines)],
			Duration:    sched.duration,
		})
	}

	return &SearchResult{
		SearchCriteria: SearchCriteria{
			Origin:      origin,
			Destination: destination,
			Date:        date,
		},
		Flights: flights,
	}, nil
}

// CreateBooking records a confirmed booking for a flight from this system.
func (s *Service) CreateBooking(flightID, passengerName, email string) (*Booking, error) {
	if !strings.HasPrefix(flightID, flightIDPrefix) {
		return nil, apperrors.New("flight", "CreateBooking", apperrors.ErrBadRequest,
			fmt.Errorf("invalid flight id format: %q", flightID)).WithContext("flight_id", flightID)
	}
	if passengerName == "" {
		return nil, apperrors.New("flight", "CreateBooking", apperrors.ErrBadRequest,
			fmt.Errorf("passenger name is required"))
	}
	if email == "" {
		email = "passenger@example.com"
	}

	baseID := strings.ToUpper(uuid.NewString()[:6])
	bookingID := flightIDPrefix + baseID

	booking := Booking{
		BookingID: bookingID,
		FlightID:  flightID,
		Passenger: Passenger{
			Name:  passengerName,
			Email: email,
		},
		Status:           "confirmed",
		CreatedAt:        s.now(),
		ConfirmationCode: "CONF" + bookingID,
	}

	s.mu.Lock()
	s.bookings[email] = append(s.bookings[email], booking)
	s.mu.Unlock()

	return &booking, nil
}

// Bookings returns the bookings for one passenger email, or every booking
// when email is empty.
func (s *Service) Bookings(email string) []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	if email != "" {
		return append([]Booking(nil), s.bookings[email]...)
	}

	var all []Booking
	for _, userBookings := range s.bookings {
		all = append(all, userBookings...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].BookingID < all[j].BookingID
	})
	return all
}

// HandleDisruption reports a disrupted flight and suggests canned
// alternatives.
func (s *Service) HandleDisruption(originalFlight, reason string) *Disruption {
	return &Disruption{
		OriginalFlight:   originalFlight,
		DisruptionReason: reason,
		Status:           "disrupted",
		Alternatives: []Alternative{
			{FlightID: "FL999", Departure: "16:00", Compensation: "voucher"},
			{FlightID: "FL888", Departure: "19:30", Compensation: "upgrade"},
		},
		SupportContact: "support@airline.com",
	}
}
