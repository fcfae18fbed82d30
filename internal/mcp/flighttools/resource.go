package flighttools

import (
	"context"
	"fmt"
	"strings"

	"github.com/vgupta/flight-booking-mcp/internal/mcp"
)

// airportsResourceProvider serves the airport table as a readable markdown
// document at file://airports.
type airportsResourceProvider struct {
	service FlightService
}

func (p *airportsResourceProvider) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "file://airports",
		Name:        "Airport Database",
		Description: "List of available airports with details",
		MimeType:    "text/markdown",
	}
}

func (p *airportsResourceProvider) Read(ctx context.Context) (*mcp.Resource, error) {
	airports := p.service.Airports()

	var b strings.Builder
	b.WriteString("# Airport Information Database\n\n")
	for _, airport := range airports {
		fmt.Fprintf(&b, "## %s - %s\n", airport.Code, airport.Name)
		fmt.Fprintf(&b, "**Location**: %s, %s\n", airport.City, airport.Country)
		if airport.Timezone != "" {
			fmt.Fprintf(&b, "**Timezone**: %s\n", airport.Timezone)
		}
		b.WriteString("\n---\n\n")
	}
	fmt.Fprintf(&b, "**Total Airports**: %d\n", len(airports))

	return &mcp.Resource{
		URI:      "file://airports",
		MimeType: "text/markdown",
		Text:     b.String(),
	}, nil
}
