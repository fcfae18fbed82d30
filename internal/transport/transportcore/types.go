// Package transportcore provides core types, interfaces, and primitives for
// the transport layer. This package exists to break import cycles between
// the transport package and its internal subpackages.
package transportcore

import (
	"context"
	"net/http"
)

// Middleware is a function that wraps an http.Handler. It can modify the
// request, response, or perform additional logic before or after calling
// the next handler in the chain.
type Middleware func(http.Handler) http.Handler

// Server manages the HTTP server lifecycle. Implementations must support
// graceful shutdown and provide access to the bound address after startup.
type Server interface {
	// Start begins serving HTTP requests on the configured address.
	// This is a blocking call that returns when the server stops
	// or encounters an error during startup.
	Start() error

	// Shutdown gracefully shuts down the server without interrupting
	// active connections. It waits for active connections to close
	// or the context to be cancelled/expired.
	Shutdown(ctx context.Context) error

	// Addr returns the address the server is listening on. Useful when
	// the server is bound to a random port.
	Addr() string
}

// Router handles HTTP request routing and middleware composition.
// It extends http.Handler with pattern-based routing and middleware support.
type Router interface {
	http.Handler

	// Handle registers a handler for the given pattern.
	// The pattern syntax follows http.ServeMux conventions.
	Handle(pattern string, handler http.Handler)

	// HandleFunc registers a handler function for the given pattern.
	HandleFunc(pattern string, handler http.HandlerFunc)

	// Use applies middleware to all subsequent route registrations.
	// Middleware is applied in the order registered.
	Use(middlewares ...Middleware)
}

// AuthMiddleware provides OAuth token validation middleware for the flight
// API and MCP endpoints, per OAuth 2.1 and RFC 6750.
type AuthMiddleware interface {
	// Authenticate validates the Bearer token and adds claims to context.
	//
	// Returns 401 Unauthorized with a WWW-Authenticate header if
	// validation fails.
	Authenticate() Middleware

	// RequireScopes checks that the token has all required scopes.
	// It must run after Authenticate() in the chain.
	//
	// Returns 403 Forbidden with a WWW-Authenticate header if scopes
	// are insufficient.
	RequireScopes(scopes ...string) Middleware
}

// ErrorResponder formats error responses. Bodies use the JSON detail shape
// shared with the authorization server; authentication failures carry
// WWW-Authenticate headers per RFC 6750 and RFC 9728.
type ErrorResponder interface {
	// Unauthorized sends a 401 response with a WWW-Authenticate header
	// pointing at the protected resource metadata.
	Unauthorized(w http.ResponseWriter, scope string, err error)

	// Forbidden sends a 403 response with an insufficient_scope
	// WWW-Authenticate header per RFC 6750 Section 3.1.
	Forbidden(w http.ResponseWriter, requiredScopes []string, err error)

	// InternalError sends a 500 response.
	InternalError(w http.ResponseWriter, err error)

	// BadRequest sends a 400 response carrying the error message.
	BadRequest(w http.ResponseWriter, err error)

	// NotFound sends a 404 response.
	NotFound(w http.ResponseWriter, err error)
}
