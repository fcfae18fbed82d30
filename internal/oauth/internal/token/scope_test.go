package token

import (
	"errors"
	"testing"

	ierrors "github.com/vgupta/flight-booking-mcp/internal/errors"
)

func TestScopeChecker_RequireScopes(t *testing.T) {
	t.Parallel()

	checker := NewScopeChecker()
	claims := &TokenClaims{Scopes: []string{"read", "write"}}

	tests := []struct {
		name     string
		claims   *TokenClaims
		required []string
		wantErr  bool
	}{
		{name: "all present", claims: claims, required: []string{"read", "write"}, wantErr: false},
		{name: "subset present", claims: claims, required: []string{"read"}, wantErr: false},
		{name: "none required", claims: claims, required: nil, wantErr: false},
		{name: "missing scope", claims: claims, required: []string{"admin"}, wantErr: true},
		{name: "nil claims", claims: nil, required: []string{"read"}, wantErr: true},
		{name: "empty scopes", claims: &TokenClaims{}, required: []string{"read"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checker.RequireScopes(tt.claims, tt.required...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequireScopes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ierrors.ErrInsufficientScope) {
				t.Errorf("RequireScopes() error = %v, want ErrInsufficientScope", err)
			}
		})
	}
}
