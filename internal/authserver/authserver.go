// Package authserver implements the demo OAuth 2.1 authorization server:
// the authorization endpoint with PKCE, the token endpoint for the
// authorization_code and client_credentials grants, token introspection,
// and the discovery documents.
//
// State is held in memory and scoped to the process lifetime. The server
// authenticates a single hard-coded demo user and signs tokens with one
// shared symmetric secret.
package authserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/authserver/authcore"
)

// Config holds everything needed to construct the authorization server.
type Config struct {
	// BaseURL is the externally reachable base URL, used to build the
	// endpoint URLs in discovery documents.
	BaseURL string

	// Issuer is the iss claim stamped on issued tokens.
	Issuer string

	// Audience is the aud claim stamped on issued tokens.
	Audience string

	// Secret is the symmetric JWT signing secret.
	Secret string

	// Resource is the protected API URL stamped into the resource claim.
	Resource string

	// Subject is the sub claim for tokens issued through the
	// authorization code flow.
	Subject string

	// DemoUsername and DemoPassword are the credentials accepted at the
	// approval step.
	DemoUsername string
	DemoPassword string

	// Clients is the static registered client set.
	Clients []authcore.Client

	// CodeTTL is the authorization code lifetime.
	CodeTTL time.Duration

	// TokenTTL is the access token lifetime.
	TokenTTL time.Duration

	// ClockSkew is the leeway applied when introspecting tokens.
	ClockSkew time.Duration

	// Logger receives request and lifecycle logs; nil means slog.Default.
	Logger *slog.Logger

	// Now is an injectable clock for tests; nil means time.Now.
	Now func() time.Time
}

// recoverMiddleware converts handler panics into a 500 response so one bad
// request cannot take the process down.
func recoverMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("handler panic", "panic", rec, "path", r.URL.Path)
				http.Error(w, `{"detail":"Internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// logMiddleware logs each request after it completes.
func logMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start))
	})
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
