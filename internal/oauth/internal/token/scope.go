package token

import (
	"github.com/vgupta/flight-booking-mcp/internal/oauth/oautherr"
)

// ScopeChecker validates token scopes against required scopes.
type ScopeChecker struct{}

// NewScopeChecker creates a new scope checker.
func NewScopeChecker() *ScopeChecker {
	return &ScopeChecker{}
}

// RequireScopes checks that every required scope is present in the token's
// whitespace-split scope claim.
func (s *ScopeChecker) RequireScopes(claims *TokenClaims, required ...string) error {
	if claims == nil {
		return oautherr.NewInsufficientScopeError("RequireScopes", required)
	}

	have := make(map[string]bool, len(claims.Scopes))
	for _, scope := range claims.Scopes {
		have[scope] = true
	}

	for _, scope := range required {
		if !have[scope] {
			return oautherr.NewInsufficientScopeError("RequireScopes", required)
		}
	}

	return nil
}
