// Package oauth provides shared OAuth 2.1 types and constants for the
// flight booking demo.
package oauth

// OAuth scope constants used by the flight booking service.
const (
	// ScopeRead allows read access (flight search, airport listing).
	ScopeRead = "read"

	// ScopeWrite allows write access (booking creation).
	ScopeWrite = "write"

	// ScopeFlightRead allows reading flight data.
	ScopeFlightRead = "flight:read"

	// ScopeFlightWrite allows modifying flight data.
	ScopeFlightWrite = "flight:write"

	// ScopeBookingManage allows managing bookings.
	ScopeBookingManage = "booking:manage"
)

// DefaultScope is the scope granted when an authorize request omits one,
// and the scope pair granted to client_credentials requests without a scope.
const (
	DefaultScope                  = "read"
	DefaultClientCredentialsScope = "read write"
)

// Token type constants as defined in RFC 6750.
const (
	// BearerToken is the OAuth 2.1 Bearer token type.
	BearerToken = "Bearer"

	// BearerPrefix is the literal Authorization header prefix for bearer
	// tokens. Matching is case-sensitive with exactly one space.
	BearerPrefix = "Bearer "
)

// Grant types supported by the authorization server.
const (
	// GrantTypeAuthorizationCode is the authorization code grant type.
	GrantTypeAuthorizationCode = "authorization_code"

	// GrantTypeRefreshToken is the refresh token grant type.
	GrantTypeRefreshToken = "refresh_token"

	// GrantTypeClientCredentials is the client credentials grant type.
	GrantTypeClientCredentials = "client_credentials"
)

// Response types as defined in OAuth 2.1.
const (
	// ResponseTypeCode is the authorization code response type.
	// OAuth 2.1 only supports the code response type.
	ResponseTypeCode = "code"
)

// PKCE code challenge methods as defined in RFC 7636.
// The demo server accepts both; real deployments should require S256.
const (
	// CodeChallengeMethodS256 is the SHA-256 code challenge method.
	CodeChallengeMethodS256 = "S256"

	// CodeChallengeMethodPlain is the plain code challenge method.
	CodeChallengeMethodPlain = "plain"
)

// RedirectURIOutOfBand is the out-of-band redirect sentinel. When a client
// registers it, the authorization server displays the code instead of
// redirecting.
const RedirectURIOutOfBand = "urn:ietf:wg:oauth:2.0:oob"

// HTTP header names.
const (
	// HeaderAuthorization is the Authorization HTTP header name.
	HeaderAuthorization = "Authorization"

	// HeaderWWWAuthenticate is the WWW-Authenticate HTTP header name.
	HeaderWWWAuthenticate = "WWW-Authenticate"

	// HeaderContentType is the Content-Type HTTP header name.
	HeaderContentType = "Content-Type"
)

// Content type constants.
const (
	// ContentTypeJSON is the application/json content type.
	ContentTypeJSON = "application/json"

	// ContentTypeForm is the application/x-www-form-urlencoded content type.
	ContentTypeForm = "application/x-www-form-urlencoded"

	// ContentTypeHTML is the text/html content type.
	ContentTypeHTML = "text/html; charset=utf-8"
)

// TokenResponse is the JSON body returned by the token endpoint on success.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// ErrorResponse is the JSON error body used by the authorization server and
// the protected API. The detail message is safe to show to clients.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// IntrospectionResponse is the JSON body returned by the introspection
// endpoint per RFC 7662. Only Active is set for inactive tokens.
type IntrospectionResponse struct {
	Active   bool   `json:"active"`
	ClientID string `json:"client_id,omitempty"`
	Scope    string `json:"scope,omitempty"`
	Subject  string `json:"sub,omitempty"`
	Expiry   int64  `json:"exp,omitempty"`
	IssuedAt int64  `json:"iat,omitempty"`
}
