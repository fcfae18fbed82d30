package oauth

import (
	"context"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/oauth/internal/metadata"
	"github.com/vgupta/flight-booking-mcp/internal/oauth/internal/token"
)

// Config holds the configuration needed to construct OAuth services.
type Config struct {
	// Secret is the shared symmetric signing secret.
	Secret string

	// Issuer is the expected iss claim.
	Issuer string

	// Audience is the expected aud claim.
	Audience string

	// ResourceURL is the canonical base URL of the flight API, used for
	// protected resource metadata.
	ResourceURL string

	// AuthorizationServers lists the trusted authorization server URLs
	// for the metadata document.
	AuthorizationServers []string

	// ScopesSupported is the scope list advertised in metadata.
	ScopesSupported []string

	// ClockSkew is the allowed clock skew for expiry validation.
	ClockSkew time.Duration

	// Now is an injectable clock for tests; nil means time.Now.
	Now func() time.Time
}

// MetadataService provides Protected Resource Metadata per RFC 9728.
type MetadataService interface {
	// GetMetadata returns the protected resource metadata document.
	GetMetadata(ctx context.Context) (*ProtectedResourceMetadata, error)

	// GetMetadataURL returns the canonical URL where the metadata is
	// served.
	GetMetadataURL() string
}

// ProtectedResourceMetadata represents the OAuth 2.0 Protected Resource
// Metadata as defined in RFC 9728.
type ProtectedResourceMetadata struct {
	Resource               string   `json:"resource"`
	AuthorizationServers   []string `json:"authorization_servers"`
	ScopesSupported        []string `json:"scopes_supported,omitempty"`
	BearerMethodsSupported []string `json:"bearer_methods_supported,omitempty"`
}

// tokenValidatorAdapter adapts token.Validator to the TokenValidator
// interface.
type tokenValidatorAdapter struct {
	validator *token.Validator
}

func (a *tokenValidatorAdapter) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims, err := a.validator.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return convertClaims(claims), nil
}

// scopeCheckerAdapter adapts token.ScopeChecker to the ScopeChecker
// interface.
type scopeCheckerAdapter struct {
	checker *token.ScopeChecker
}

func (a *scopeCheckerAdapter) RequireScopes(claims *TokenClaims, required ...string) error {
	var inner *token.TokenClaims
	if claims != nil {
		inner = &token.TokenClaims{
			Subject:   claims.Subject,
			ClientID:  claims.ClientID,
			Issuer:    claims.Issuer,
			Audience:  claims.Audience,
			Scope:     claims.Scope,
			Scopes:    claims.Scopes,
			Resource:  claims.Resource,
			ExpiresAt: claims.ExpiresAt,
			IssuedAt:  claims.IssuedAt,
		}
	}
	return a.checker.RequireScopes(inner, required...)
}

// metadataServiceAdapter adapts metadata.Service to the MetadataService
// interface.
type metadataServiceAdapter struct {
	service *metadata.Service
}

func (a *metadataServiceAdapter) GetMetadata(ctx context.Context) (*ProtectedResourceMetadata, error) {
	meta, err := a.service.GetMetadata(ctx)
	if err != nil {
		return nil, err
	}
	return &ProtectedResourceMetadata{
		Resource:               meta.Resource,
		AuthorizationServers:   meta.AuthorizationServers,
		ScopesSupported:        meta.ScopesSupported,
		BearerMethodsSupported: meta.BearerMethodsSupported,
	}, nil
}

func (a *metadataServiceAdapter) GetMetadataURL() string {
	return a.service.GetMetadataURL()
}

func convertClaims(claims *token.TokenClaims) *TokenClaims {
	return &TokenClaims{
		Subject:   claims.Subject,
		ClientID:  claims.ClientID,
		Issuer:    claims.Issuer,
		Audience:  claims.Audience,
		Scope:     claims.Scope,
		Scopes:    claims.Scopes,
		Resource:  claims.Resource,
		ExpiresAt: claims.ExpiresAt,
		IssuedAt:  claims.IssuedAt,
	}
}

// NewTokenValidator creates a token validator from the configuration.
func NewTokenValidator(cfg *Config) TokenValidator {
	validator := token.NewValidator([]byte(cfg.Secret), cfg.Issuer, cfg.Audience, cfg.ClockSkew, cfg.Now)
	return &tokenValidatorAdapter{validator: validator}
}

// NewScopeChecker creates a scope checker.
func NewScopeChecker() ScopeChecker {
	return &scopeCheckerAdapter{checker: token.NewScopeChecker()}
}

// NewMetadataService creates a protected resource metadata service.
func NewMetadataService(cfg *Config) MetadataService {
	service := metadata.NewService(cfg.ResourceURL, cfg.AuthorizationServers, cfg.ScopesSupported)
	return &metadataServiceAdapter{service: service}
}

// NewOAuthServices creates all OAuth services from the configuration.
// This is a convenience function for dependency injection.
func NewOAuthServices(cfg *Config) (TokenValidator, ScopeChecker, MetadataService) {
	return NewTokenValidator(cfg), NewScopeChecker(), NewMetadataService(cfg)
}
