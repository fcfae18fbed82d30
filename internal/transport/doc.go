// Package transport provides the HTTP transport layer for the flight
// booking demo's protected server process.
//
// # Architecture
//
// The transport package implements the HTTP layer that connects OAuth 2.1
// token validation with the flight REST API and MCP protocol handling. It
// follows the adapter pattern to bridge the internal OAuth, flight, and MCP
// verticals with HTTP.
//
// Package structure:
//
//	internal/transport/
//	├── transport.go              # Public interfaces
//	├── errors.go                 # Transport domain errors
//	├── context.go                # Context keys and helpers
//	├── wire.go                   # Factory functions
//	├── internal/
//	│   ├── http/
//	│   │   ├── server.go         # HTTP server with graceful shutdown
//	│   │   ├── router.go         # HTTP routing
//	│   │   └── response.go       # Error responder with WWW-Authenticate
//	│   ├── middleware/
//	│   │   ├── auth.go           # Authentication middleware
//	│   │   ├── logging.go        # Request logging
//	│   │   └── recovery.go       # Panic recovery
//	│   └── handlers/
//	│       ├── metadata.go       # /.well-known/oauth-protected-resource
//	│       ├── flights.go        # Flight REST API endpoints
//	│       ├── mcp.go            # MCP protocol endpoint
//	│       └── health.go         # Health check endpoint
//
// # OAuth 2.1 Compliance
//
// The transport layer enforces OAuth 2.1 requirements:
//
//   - Bearer tokens MUST be in the Authorization header only (never query strings)
//   - 401 responses include a WWW-Authenticate header with the resource_metadata parameter
//   - 403 responses use error="insufficient_scope" with the required scopes
//   - Protected Resource Metadata is served at /.well-known/oauth-protected-resource
//
// # Middleware Chain
//
// The middleware chain is applied in this order:
//
//  1. Recovery - catches panics and returns 500 errors
//  2. Logging - logs request details
//  3. Authentication - validates the Bearer token (protected routes only)
//  4. Scope checking - validates required scopes per route
//
// # Endpoints
//
// Public endpoints (no authentication):
//   - GET /.well-known/oauth-protected-resource - Protected Resource Metadata (RFC 9728)
//   - GET /health - Health check
//
// Protected endpoints (authentication required):
//   - POST /mcp - MCP protocol (JSON-RPC 2.0), scope "read"
//   - GET /api/airports - airport table, scope "read"
//   - GET /api/flights/search - flight search, scope "read"
//   - GET /api/bookings - booking listing, scope "read"
//   - POST /api/bookings - booking creation, scope "write"
//   - POST /api/disruptions - disruption handling, scope "write"
//
// # Context Values
//
// The authentication middleware stores validated OAuth claims in the
// request context:
//
//	claims, ok := transport.ClaimsFromContext(r.Context())
//	if !ok {
//		// Not authenticated
//	}
//	subject := claims.Subject
//	scopes := claims.Scopes
package transport
