// Package authcore provides core types and primitives for the authorization
// server. This package exists to break import cycles between the authserver
// package and its internal subpackages.
package authcore

import (
	"time"
)

// Client identifies a registered OAuth client application.
// Clients are created from static configuration at process start and are
// immutable thereafter.
type Client struct {
	// ClientID uniquely identifies the client.
	ClientID string

	// ClientSecret is the confidential secret. It must never appear in
	// any response body or log line.
	ClientSecret string

	// RedirectURIs is the exact-match set of allowed redirect URIs.
	RedirectURIs []string

	// GrantTypes lists the grants this client may use.
	GrantTypes []string

	// Scopes lists the scopes this client may request.
	Scopes []string
}

// AllowsRedirectURI reports whether uri exactly matches a registered
// redirect URI.
func (c *Client) AllowsRedirectURI(uri string) bool {
	for _, registered := range c.RedirectURIs {
		if registered == uri {
			return true
		}
	}
	return false
}

// AllowsGrantType reports whether the client may use the given grant type.
func (c *Client) AllowsGrantType(grantType string) bool {
	for _, allowed := range c.GrantTypes {
		if allowed == grantType {
			return true
		}
	}
	return false
}

// AuthorizationCode is a one-time credential proving the user approved a
// specific authorize request. Codes live in memory for the process lifetime;
// abandoned entries are never swept (acceptable for the demo scope).
type AuthorizationCode struct {
	// Code is the opaque random value handed to the client.
	Code string

	// ClientID is the client the code was issued to.
	ClientID string

	// RedirectURI is the redirect URI bound at issuance. Redemption must
	// present the exact same value.
	RedirectURI string

	// Scope is the space-delimited scope string bound at issuance.
	Scope string

	// CodeChallenge is the PKCE challenge bound at issuance, if any.
	CodeChallenge string

	// CodeChallengeMethod is "S256" or "plain" when CodeChallenge is set.
	CodeChallengeMethod string

	// IssuedAt is when the code was minted.
	IssuedAt time.Time

	// ExpiresAt is IssuedAt plus the configured code TTL.
	ExpiresAt time.Time

	// Used transitions false to true exactly once, never back.
	Used bool
}
