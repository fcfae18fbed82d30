// Package metadata provides the authorization server's discovery documents:
// the RFC 8414 server metadata and the JWKS document.
package metadata

import (
	"encoding/base64"
	"strings"
)

// ServerMetadata represents the OAuth 2.0 Authorization Server Metadata as
// defined in RFC 8414.
type ServerMetadata struct {
	Issuer                            string   `json:"issuer"`
	AuthorizationEndpoint             string   `json:"authorization_endpoint"`
	TokenEndpoint                     string   `json:"token_endpoint"`
	IntrospectionEndpoint             string   `json:"introspection_endpoint"`
	JWKSURI                           string   `json:"jwks_uri"`
	ResponseTypesSupported            []string `json:"response_types_supported"`
	GrantTypesSupported               []string `json:"grant_types_supported"`
	CodeChallengeMethodsSupported     []string `json:"code_challenge_methods_supported"`
	ScopesSupported                   []string `json:"scopes_supported"`
	TokenEndpointAuthMethodsSupported []string `json:"token_endpoint_auth_methods_supported"`
	SubjectTypesSupported             []string `json:"subject_types_supported"`
}

// JWKS represents a JSON Web Key Set document.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a single key in the set.
type JWK struct {
	KeyType   string `json:"kty"`
	Use       string `json:"use"`
	Algorithm string `json:"alg"`
	Key       string `json:"k"`
	KeyID     string `json:"kid"`
}

// Service builds the discovery documents from the server identity.
type Service struct {
	baseURL string
	issuer  string
	secret  string
	scopes  []string
}

// NewService creates a discovery document service.
//
// Parameters:
//   - baseURL: the externally reachable base URL of the authorization server
//   - issuer: the iss value stamped on issued tokens
//   - secret: the symmetric signing secret, published in the JWKS document
//   - scopes: the scopes advertised in the metadata document
func NewService(baseURL, issuer, secret string, scopes []string) *Service {
	return &Service{
		baseURL: strings.TrimRight(baseURL, "/"),
		issuer:  issuer,
		secret:  secret,
		scopes:  scopes,
	}
}

// Metadata returns the RFC 8414 authorization server metadata document.
func (s *Service) Metadata() *ServerMetadata {
	return &ServerMetadata{
		Issuer:                        s.issuer,
		AuthorizationEndpoint:         s.baseURL + "/oauth/authorize",
		TokenEndpoint:                 s.baseURL + "/oauth/token",
		IntrospectionEndpoint:         s.baseURL + "/oauth/introspect",
		JWKSURI:                       s.baseURL + "/.well-known/jwks.json",
		ResponseTypesSupported:        []string{"code"},
		GrantTypesSupported:           []string{"authorization_code", "client_credentials", "refresh_token"},
		CodeChallengeMethodsSupported: []string{"S256", "plain"},
		ScopesSupported:               s.scopes,
		TokenEndpointAuthMethodsSupported: []string{
			"client_secret_basic",
			"client_secret_post",
		},
		SubjectTypesSupported: []string{"public"},
	}
}

// Keys returns the JWKS document. The symmetric signing key is exposed
// base64url-encoded under key id "1" for demo client compatibility only;
// publishing a symmetric key is a security anti-pattern for any non-demo
// use.
func (s *Service) Keys() *JWKS {
	return &JWKS{
		Keys: []JWK{
			{
				KeyType:   "oct",
				Use:       "sig",
				Algorithm: "HS256",
				Key:       base64.RawURLEncoding.EncodeToString([]byte(s.secret)),
				KeyID:     "1",
			},
		},
	}
}
