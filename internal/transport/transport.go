package transport

import (
	"github.com/vgupta/flight-booking-mcp/internal/transport/transportcore"
)

// Re-export types from transportcore so external packages can import
// transport without creating cycles.

// Middleware is a function that wraps an http.Handler.
type Middleware = transportcore.Middleware

// Server manages the HTTP server lifecycle. Implementations must support
// graceful shutdown and provide access to the bound address after startup.
type Server = transportcore.Server

// Router handles HTTP request routing and middleware composition.
type Router = transportcore.Router

// AuthMiddleware provides OAuth token validation middleware per OAuth 2.1
// and RFC 6750.
type AuthMiddleware = transportcore.AuthMiddleware

// ErrorResponder formats error responses with the shared detail body shape
// and RFC 6750 WWW-Authenticate headers.
type ErrorResponder = transportcore.ErrorResponder
