package errors

import (
	"errors"
	"fmt"
	"strings"
)

// OAuth protocol error sentinels. These cover every failure mode the
// authorization server and the protected API can surface to a client.
var (
	// ErrInvalidClient indicates an unknown client or a bad client secret.
	ErrInvalidClient = errors.New("invalid client credentials")

	// ErrInvalidGrant indicates a bad, expired, or used authorization code,
	// a PKCE mismatch, or a client/redirect binding mismatch.
	ErrInvalidGrant = errors.New("invalid grant")

	// ErrUnsupportedGrantType indicates an unrecognized grant_type value.
	ErrUnsupportedGrantType = errors.New("unsupported grant type")

	// ErrMissingAuthHeader indicates the Authorization header is absent.
	ErrMissingAuthHeader = errors.New("missing authorization header")

	// ErrMalformedAuthHeader indicates the Authorization header does not
	// carry a Bearer token.
	ErrMalformedAuthHeader = errors.New("malformed authorization header")

	// ErrExpiredToken indicates a well-formed token past its expiry.
	ErrExpiredToken = errors.New("token expired")

	// ErrInvalidToken indicates a token that fails signature, issuer,
	// audience, or structural validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInsufficientScope indicates the token lacks required scope(s).
	ErrInsufficientScope = errors.New("insufficient scope")
)

// OAuth error codes as defined in RFC 6749 Section 5.2 and RFC 6750.
const (
	// CodeInvalidClient is returned for client authentication failures.
	CodeInvalidClient = "invalid_client"

	// CodeInvalidGrant is returned for authorization code failures.
	CodeInvalidGrant = "invalid_grant"

	// CodeUnsupportedGrantType is returned for unknown grant types.
	CodeUnsupportedGrantType = "unsupported_grant_type"

	// CodeInvalidToken is returned when a presented bearer token fails
	// validation.
	CodeInvalidToken = "invalid_token"

	// CodeInsufficientScope is returned when a token lacks required scopes.
	CodeInsufficientScope = "insufficient_scope"

	// CodeInvalidRequest is returned for malformed requests.
	CodeInvalidRequest = "invalid_request"
)

// OAuthError represents an RFC 6749 compliant OAuth error.
// It formats error responses and WWW-Authenticate header values.
type OAuthError struct {
	// ErrorCode is the OAuth error code (e.g., "invalid_token").
	ErrorCode string

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string

	// Scope is the space-separated list of required scopes for the
	// WWW-Authenticate header.
	Scope string

	// Realm is the protection space for the WWW-Authenticate header.
	Realm string
}

// NewOAuthError creates a new OAuthError with the given code and description.
func NewOAuthError(errorCode, errorDescription string) *OAuthError {
	return &OAuthError{
		ErrorCode:        errorCode,
		ErrorDescription: errorDescription,
	}
}

// Error implements the error interface.
func (e *OAuthError) Error() string {
	if e.ErrorDescription != "" {
		return fmt.Sprintf("%s: %s", e.ErrorCode, e.ErrorDescription)
	}
	return e.ErrorCode
}

// WithScope sets the scope field and returns the error for chaining.
func (e *OAuthError) WithScope(scope string) *OAuthError {
	e.Scope = scope
	return e
}

// WWWAuthenticate formats the error as a WWW-Authenticate header value per
// RFC 6750 Section 3.
//
// Example output:
//
//	Bearer realm="flight-api", error="invalid_token", error_description="Token expired"
func (e *OAuthError) WWWAuthenticate() string {
	var parts []string

	if e.Realm != "" {
		parts = append(parts, fmt.Sprintf(`realm="%s"`, escapeQuotes(e.Realm)))
	}
	if e.ErrorCode != "" {
		parts = append(parts, fmt.Sprintf(`error="%s"`, escapeQuotes(e.ErrorCode)))
	}
	if e.ErrorDescription != "" {
		parts = append(parts, fmt.Sprintf(`error_description="%s"`, escapeQuotes(e.ErrorDescription)))
	}
	if e.Scope != "" {
		parts = append(parts, fmt.Sprintf(`scope="%s"`, escapeQuotes(e.Scope)))
	}

	if len(parts) == 0 {
		return "Bearer"
	}
	return "Bearer " + strings.Join(parts, ", ")
}

// escapeQuotes escapes double quotes in strings for use in header values.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
