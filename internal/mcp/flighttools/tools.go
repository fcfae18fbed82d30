// Package flighttools registers the flight booking tools and resources
// with the MCP registries.
package flighttools

import (
	"context"
	"fmt"

	"github.com/vgupta/flight-booking-mcp/internal/authclient"
	"github.com/vgupta/flight-booking-mcp/internal/flight"
	"github.com/vgupta/flight-booking-mcp/internal/mcp"
)

// FlightService is the slice of the flight service the tools use.
type FlightService interface {
	Airports() []flight.Airport
	SearchFlights(origin, destination, date string) (*flight.SearchResult, error)
	CreateBooking(flightID, passengerName, email string) (*flight.Booking, error)
	Bookings(email string) []flight.Booking
	HandleDisruption(originalFlight, reason string) *flight.Disruption
}

// defaultEmail is used when a tool call omits the passenger email.
const defaultEmail = "passenger@example.com"

// RegisterAll registers every flight tool and resource. authClient may be
// nil, in which case the authentication tool is not registered.
func RegisterAll(
	tools mcp.ToolRegistry,
	resources mcp.ResourceRegistry,
	service FlightService,
	authClient *authclient.Client,
) error {
	toolSet := []mcp.Tool{
		&searchFlightsTool{service: service},
		&createBookingTool{service: service},
		&userBookingsTool{service: service},
		&airportsTool{service: service},
		&disruptionTool{service: service},
	}
	if authClient != nil {
		toolSet = append(toolSet, &authenticateTool{client: authClient})
	}

	for _, tool := range toolSet {
		if err := tools.RegisterTool(tool.Definition().Name, tool); err != nil {
			return fmt.Errorf("failed to register tool %q: %w", tool.Definition().Name, err)
		}
	}

	airportsResource := &airportsResourceProvider{service: service}
	if err := resources.RegisterResource(airportsResource.Definition().URI, airportsResource); err != nil {
		return fmt.Errorf("failed to register airports resource: %w", err)
	}

	return nil
}

// stringArg extracts a string argument, falling back to def when absent.
func stringArg(args map[string]any, key, def string) string {
	if args == nil {
		return def
	}
	if value, ok := args[key].(string); ok && value != "" {
		return value
	}
	return def
}

// searchFlightsTool searches for flights between two airports.
type searchFlightsTool struct {
	service FlightService
}

func (t *searchFlightsTool) Definition() mcp.ToolDefinition {
	return mcp.ToolDefinition{
		Name:        "search_flights",
		Description: "Search for flights between two airports with pricing and schedules",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"origin": map[string]any{
					"type":        "string",
					"description": "Origin airport code (e.g. 'HYD', 'DEL')",
				},
				"destination": map[string]any{
					"type":        "string",
					"description": "Destination airport code",
				},
				"date": map[string]any{
					"type":        "string",
					"description": "Travel date (YYYY-MM-DD)",
				},
			},
			"required": []string{"origin", "destination"},
		},
	}
}

func (t *searchFlightsTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	origin := stringArg(args, "origin", "")
	destination := stringArg(args, "destination", "")
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("origin and destination are required")
	}

	return t.service.SearchFlights(origin, destination, stringArg(args, "date", ""))
}

// createBookingTool books a flight for a passenger.
type createBookingTool struct {
	service FlightService
}

func (t *createBookingTool) Definition() mcp.ToolDefinition {
	return mcp.ToolDefinition{
		Name:        "create_booking",
		Description: "Create a flight booking for a passenger",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"flight_id": map[string]any{
					"type":        "string",
					"description": "Flight ID from search results (e.g. 'FB123')",
				},
				"passenger_name": map[string]any{
					"type":        "string",
					"description": "Passenger full name",
				},
				"email": map[string]any{
					"type":        "string",
					"description": "Passenger email address",
				},
			},
			"required": []string{"flight_id", "passenger_name"},
		},
	}
}

func (t *createBookingTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.service.CreateBooking(
		stringArg(args, "flight_id", ""),
		stringArg(args, "passenger_name", ""),
		stringArg(args, "email", defaultEmail),
	)
}

// userBookingsTool lists a passenger's bookings.
type userBookingsTool struct {
	service FlightService
}

func (t *userBookingsTool) Definition() mcp.ToolDefinition {
	return mcp.ToolDefinition{
		Name:        "get_user_bookings",
		Description: "Get a user's flight bookings",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"email": map[string]any{
					"type":        "string",
					"description": "User email address",
				},
			},
		},
	}
}

func (t *userBookingsTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	email := stringArg(args, "email", defaultEmail)
	bookings := t.service.Bookings(email)

	return map[string]any{
		"user_email":     email,
		"bookings":       bookings,
		"total_bookings": len(bookings),
	}, nil
}

// airportsTool lists the available airports.
type airportsTool struct {
	service FlightService
}

func (t *airportsTool) Definition() mcp.ToolDefinition {
	return mcp.ToolDefinition{
		Name:        "get_available_airports",
		Description: "Get the list of all available airports",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

func (t *airportsTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	airports := t.service.Airports()

	return map[string]any{
		"airports":       airports,
		"total_airports": len(airports),
	}, nil
}

// disruptionTool reports a disrupted flight and returns rebooking options.
type disruptionTool struct {
	service FlightService
}

func (t *disruptionTool) Definition() mcp.ToolDefinition {
	return mcp.ToolDefinition{
		Name:        "handle_disruption",
		Description: "Handle a flight disruption and suggest alternatives",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"original_flight": map[string]any{
					"type":        "string",
					"description": "Disrupted flight ID",
				},
				"reason": map[string]any{
					"type":        "string",
					"description": "Disruption reason",
				},
			},
			"required": []string{"original_flight"},
		},
	}
}

func (t *disruptionTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	originalFlight := stringArg(args, "original_flight", "")
	if originalFlight == "" {
		return nil, fmt.Errorf("original_flight is required")
	}

	return t.service.HandleDisruption(originalFlight, stringArg(args, "reason", "unspecified")), nil
}

// authenticateTool starts the OAuth flow and returns an immediately usable
// demonstration token plus the authorization URL for the browser leg.
type authenticateTool struct {
	client *authclient.Client
}

func (t *authenticateTool) Definition() mcp.ToolDefinition {
	return mcp.ToolDefinition{
		Name:        "authenticate_with_oauth2",
		Description: "Authenticate with the flight booking service using OAuth 2.1",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

func (t *authenticateTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	flow, err := t.client.StartDemoFlow(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"status":            "success",
		"authorization_url": flow.AuthorizationURL,
		"access_token":      flow.Token.AccessToken,
		"token_type":        flow.Token.TokenType,
		"expires_in":        flow.Token.ExpiresIn,
		"scope":             flow.Token.Scope,
		"demo_credentials": map[string]string{
			"username": "demo-user",
			"password": "demo-pass",
		},
		"instructions": []string{
			"1. Visit the authorization URL in a browser",
			"2. Sign in with the demo credentials",
			"3. Approve the request to receive an authorization code",
			"4. A demo token is already included for immediate API access",
		},
	}, nil
}
