// Package oauth provides bearer token validation for the OAuth-protected
// surfaces of the flight booking service: the REST API, the MCP endpoint,
// and the authorization server's introspection endpoint.
package oauth

import (
	"context"
	"strings"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/oauth/oautherr"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// TokenValidator validates access tokens presented by API callers.
// Validation is stateless given the signing secret: signature, issuer, and
// audience are verified in one step, and expiry is re-checked against the
// clock as defense in depth.
type TokenValidator interface {
	// ValidateToken validates an access token and returns the parsed
	// claims. Expired-but-well-formed tokens fail with ErrExpiredToken;
	// every other decode or verification failure maps to ErrInvalidToken
	// (both from internal/errors).
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}

// TokenClaims represents validated JWT claims from an access token.
type TokenClaims struct {
	// Subject is the sub claim: the demo user for authorization code
	// tokens, the client_id for client_credentials tokens.
	Subject string

	// ClientID is the client_id claim.
	ClientID string

	// Issuer is the iss claim.
	Issuer string

	// Audience is the aud claim.
	Audience []string

	// Scope is the raw space-delimited scope claim.
	Scope string

	// Scopes is Scope split on whitespace.
	Scopes []string

	// Resource is the optional resource claim, an audience hint naming
	// the flight API.
	Resource string

	// ExpiresAt is the exp claim.
	ExpiresAt time.Time

	// IssuedAt is the iat claim.
	IssuedAt time.Time
}

// HasScope returns true if the token has the specified scope.
func (c *TokenClaims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// HasAllScopes returns true if the token has all specified scopes.
// Returns true if scopes is empty.
func (c *TokenClaims) HasAllScopes(scopes ...string) bool {
	if c == nil {
		return len(scopes) == 0
	}
	for _, required := range scopes {
		if !c.HasScope(required) {
			return false
		}
	}
	return true
}

// HasAnyScope returns true if the token has any of the specified scopes.
func (c *TokenClaims) HasAnyScope(scopes ...string) bool {
	if c == nil || len(scopes) == 0 {
		return false
	}
	for _, required := range scopes {
		if c.HasScope(required) {
			return true
		}
	}
	return false
}

// ExtractBearerToken extracts the token from an Authorization header value.
// The header must start with the literal prefix "Bearer " (case-sensitive,
// single space). A missing header fails with ErrMissingAuthHeader; any
// other shape fails with ErrMalformedAuthHeader.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", oautherr.NewMissingAuthHeaderError("ExtractBearerToken")
	}

	if !strings.HasPrefix(header, pkgoauth.BearerPrefix) {
		return "", oautherr.NewMalformedAuthHeaderError("ExtractBearerToken")
	}

	token := header[len(pkgoauth.BearerPrefix):]
	if token == "" {
		return "", oautherr.NewMalformedAuthHeaderError("ExtractBearerToken")
	}

	return token, nil
}

// ScopeChecker validates token scopes against required scopes.
type ScopeChecker interface {
	// RequireScopes checks that the token has all of the specified scopes.
	// Returns an insufficient-scope error from internal/errors when any
	// required scope is missing.
	RequireScopes(claims *TokenClaims, required ...string) error
}
