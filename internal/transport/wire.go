package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/mcp"
	"github.com/vgupta/flight-booking-mcp/internal/oauth"
	"github.com/vgupta/flight-booking-mcp/internal/transport/internal/handlers"
	transporthttp "github.com/vgupta/flight-booking-mcp/internal/transport/internal/http"
	"github.com/vgupta/flight-booking-mcp/internal/transport/internal/middleware"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// Timeouts holds the HTTP server timeouts.
type Timeouts = transporthttp.Timeouts

// NewServer creates a configured HTTP server bound to addr.
func NewServer(addr string, timeouts Timeouts, handler http.Handler) Server {
	return transporthttp.NewServer(addr, timeouts, handler)
}

// NewRouter creates a new HTTP router backed by http.ServeMux.
func NewRouter() Router {
	return transporthttp.NewRouter()
}

// NewAuthMiddleware creates OAuth authentication middleware. The metadataURL
// is included in WWW-Authenticate headers for client discovery.
func NewAuthMiddleware(
	validator oauth.TokenValidator,
	responder ErrorResponder,
	metadataURL string,
) AuthMiddleware {
	defaultScopes := []string{pkgoauth.ScopeRead}
	return middleware.NewAuthMiddleware(validator, responder, metadataURL, defaultScopes)
}

// NewErrorResponder creates an error responder with the given metadata URL.
func NewErrorResponder(metadataURL string) ErrorResponder {
	return transporthttp.NewErrorResponder(metadataURL)
}

// NewMetadataHandler creates the OAuth protected resource metadata handler
// served at /.well-known/oauth-protected-resource per RFC 9728.
func NewMetadataHandler(service oauth.MetadataService, responder ErrorResponder) http.Handler {
	return handlers.NewMetadataHandler(service, responder)
}

// NewMCPHandler creates the MCP protocol handler for JSON-RPC requests.
func NewMCPHandler(handler mcp.Handler, responder ErrorResponder) http.Handler {
	return handlers.NewMCPHandler(handler, responder)
}

// NewHealthHandler creates the health check handler.
func NewHealthHandler(responder ErrorResponder) http.Handler {
	return handlers.NewHealthHandler(responder)
}

// NewFlightHandler creates the flight REST API handler set.
func NewFlightHandler(service handlers.FlightService, responder ErrorResponder) *handlers.FlightHandler {
	return handlers.NewFlightHandler(service, responder)
}

// NewLoggingMiddleware creates request logging middleware. If logger is
// nil, it uses the default slog logger.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return middleware.NewLoggingMiddleware(logger)
}

// NewRecoveryMiddleware creates panic recovery middleware. If logger is
// nil, it uses the default slog logger.
func NewRecoveryMiddleware(responder ErrorResponder, logger *slog.Logger) Middleware {
	return middleware.NewRecoveryMiddleware(responder, logger)
}

// Config holds the configuration needed for the transport layer.
type Config struct {
	// Addr is the bind address of the protected server.
	Addr string

	// ReadTimeout, WriteTimeout, and IdleTimeout configure the HTTP
	// server.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// OAuthValidator validates access tokens.
	OAuthValidator oauth.TokenValidator

	// MetadataService provides protected resource metadata.
	MetadataService oauth.MetadataService

	// MCPHandler processes MCP protocol requests.
	MCPHandler mcp.Handler

	// FlightService backs the flight REST endpoints.
	FlightService handlers.FlightService

	// Logger receives request logs; nil means slog.Default.
	Logger *slog.Logger
}

// NewTransportServices wires up the complete HTTP transport layer with
// routing, middleware, and handlers for the protected server process.
func NewTransportServices(cfg *Config) (Server, Router, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.OAuthValidator == nil {
		return nil, nil, fmt.Errorf("oauth validator cannot be nil")
	}
	if cfg.MetadataService == nil {
		return nil, nil, fmt.Errorf("metadata service cannot be nil")
	}
	if cfg.MCPHandler == nil {
		return nil, nil, fmt.Errorf("mcp handler cannot be nil")
	}
	if cfg.FlightService == nil {
		return nil, nil, fmt.Errorf("flight service cannot be nil")
	}

	metadataURL := cfg.MetadataService.GetMetadataURL()
	responder := NewErrorResponder(metadataURL)

	recoveryMiddleware := NewRecoveryMiddleware(responder, cfg.Logger)
	loggingMiddleware := NewLoggingMiddleware(cfg.Logger)
	authMiddleware := NewAuthMiddleware(cfg.OAuthValidator, responder, metadataURL)

	metadataHandler := NewMetadataHandler(cfg.MetadataService, responder)
	mcpHandler := NewMCPHandler(cfg.MCPHandler, responder)
	healthHandler := NewHealthHandler(responder)
	flightHandler := NewFlightHandler(cfg.FlightService, responder)

	router := NewRouter()
	router.Use(recoveryMiddleware, loggingMiddleware)

	// Public endpoints.
	router.Handle("GET /.well-known/oauth-protected-resource", metadataHandler)
	router.Handle("GET /health", healthHandler)

	// Protected endpoints. Authentication first, then per-route scopes.
	authenticate := authMiddleware.Authenticate()
	readScope := authMiddleware.RequireScopes(pkgoauth.ScopeRead)
	writeScope := authMiddleware.RequireScopes(pkgoauth.ScopeWrite)

	protect := func(scope Middleware, h http.Handler) http.Handler {
		return authenticate(scope(h))
	}

	router.Handle("POST /mcp", protect(readScope, mcpHandler))
	router.Handle("GET /api/airports", protect(readScope, http.HandlerFunc(flightHandler.Airports)))
	router.Handle("GET /api/flights/search", protect(readScope, http.HandlerFunc(flightHandler.SearchFlights)))
	router.Handle("GET /api/bookings", protect(readScope, http.HandlerFunc(flightHandler.Bookings)))
	router.Handle("POST /api/bookings", protect(writeScope, http.HandlerFunc(flightHandler.CreateBooking)))
	router.Handle("POST /api/disruptions", protect(writeScope, http.HandlerFunc(flightHandler.HandleDisruption)))

	server := NewServer(cfg.Addr, Timeouts{
		Read:  cfg.ReadTimeout,
		Write: cfg.WriteTimeout,
		Idle:  cfg.IdleTimeout,
	}, router)

	return server, router, nil
}
