package metadata

import (
	"context"
	"strings"
)

// ProtectedResourceMetadata represents the OAuth 2.0 Protected Resource
// Metadata as defined in RFC 9728, served by the flight API to point
// clients at the demo authorization server.
type ProtectedResourceMetadata struct {
	Resource               string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers"`
	ScopesSupported        []string `json:"scopes_supported,omitempty"`
	BearerMethodsSupported []string `json:"bearer_methods_supported,omitempty"`
}

// Service provides Protected Resource Metadata per RFC 9728.
type Service struct {
	resource             string
	authorizationServers []string
	scopesSupported      []string
	metadataURL          string
}

// NewService creates a metadata service for the flight API.
func NewService(baseURL string, authorizationServers []string, scopesSupported []string) *Service {
	resource := strings.TrimRight(baseURL, "/")
	return &Service{
		resource:             resource,
		authorizationServers: authorizationServers,
		scopesSupported:      scopesSupported,
		metadataURL:          resource + "/.well-known/oauth-protected-resource",
	}
}

// GetMetadata returns the protected resource metadata document.
func (s *Service) GetMetadata(ctx context.Context) (*ProtectedResourceMetadata, error) {
	return &ProtectedResourceMetadata{
		Resource:             s.resource,
		AuthorizationServers: s.authorizationServers,
		ScopesSupported:      s.scopesSupported,
		// Bearer tokens are accepted in the Authorization header only.
		BearerMethodsSupported: []string{"header"},
	}, nil
}

// GetMetadataURL returns the canonical URL where this metadata is served.
func (s *Service) GetMetadataURL() string {
	return s.metadataURL
}
