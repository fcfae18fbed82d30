// Package handlers provides the HTTP endpoints of the authorization server.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/authserver/authcore"
	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/codes"
	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/metadata"
	"github.com/vgupta/flight-booking-mcp/internal/oauth"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// ClientRegistry resolves and verifies registered OAuth clients.
// Defined here to avoid importing the parent authserver package.
type ClientRegistry interface {
	Lookup(clientID string) (*authcore.Client, error)
	Verify(clientID, clientSecret string) bool
	ClientIDs() []string
}

// CodeStore issues and redeems one-time authorization codes.
type CodeStore interface {
	Issue(req codes.IssueRequest) (string, error)
	Redeem(req codes.RedeemRequest) (*authcore.AuthorizationCode, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(claims map[string]any, ttl time.Duration) (string, error)
	TTL() time.Duration
}

// TokenVerifier validates tokens for the introspection endpoint.
type TokenVerifier interface {
	ValidateToken(ctx context.Context, token string) (*oauth.TokenClaims, error)
}

// DiscoveryService builds the discovery documents.
type DiscoveryService interface {
	Metadata() *metadata.ServerMetadata
	Keys() *metadata.JWKS
}

// writeJSON encodes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError sends a JSON error body with a detail message, matching the
// error shape the demo clients expect.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, pkgoauth.ErrorResponse{Detail: detail})
}
