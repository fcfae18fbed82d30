package transport

import (
	"context"
	"testing"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/oauth"
)

func demoClaims() *oauth.TokenClaims {
	return &oauth.TokenClaims{
		Subject:   "demo-user",
		ClientID:  "web-client",
		Issuer:    "http://localhost:9000",
		Audience:  []string{"flight-booking-api"},
		Scopes:    []string{"read", "write"},
		ExpiresAt: time.Now().Add(time.Hour),
		IssuedAt:  time.Now(),
	}
}

func TestClaimsRoundTrip(t *testing.T) {
	t.Parallel()

	claims := demoClaims()
	ctx := ContextWithClaims(context.Background(), claims)

	got, ok := ClaimsFromContext(ctx)
	if !ok {
		t.Fatal("ClaimsFromContext() ok = false after ContextWithClaims")
	}
	if got.Subject != "demo-user" {
		t.Errorf("Subject = %q, want demo-user", got.Subject)
	}
	if got.ClientID != "web-client" {
		t.Errorf("ClientID = %q, want web-client", got.ClientID)
	}
	if len(got.Scopes) != 2 {
		t.Errorf("Scopes = %v, want read and write", got.Scopes)
	}
}

func TestClaimsFromContext_Absent(t *testing.T) {
	t.Parallel()

	type otherKey string

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{name: "empty context", ctx: context.Background()},
		{name: "unrelated value", ctx: context.WithValue(context.Background(), otherKey("trace"), "abc")},
		{name: "nil context", ctx: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, ok := ClaimsFromContext(tt.ctx)
			if ok || claims != nil {
				t.Errorf("ClaimsFromContext() = %v, %v, want nil, false", claims, ok)
			}
		})
	}
}

func TestContextWithClaims_DoesNotTouchParent(t *testing.T) {
	t.Parallel()

	parent := context.Background()
	child := ContextWithClaims(parent, demoClaims())

	if _, ok := ClaimsFromContext(parent); ok {
		t.Error("parent context should not carry claims")
	}
	if _, ok := ClaimsFromContext(child); !ok {
		t.Error("child context should carry claims")
	}
}

func TestContextWithClaims_NilInputs(t *testing.T) {
	t.Parallel()

	// A nil parent still yields a usable context.
	ctx := ContextWithClaims(nil, demoClaims()) //nolint:staticcheck
	if _, ok := ClaimsFromContext(ctx); !ok {
		t.Error("claims should survive a nil parent context")
	}

	// Nil claims store as nil; the typed assertion still reports ok.
	ctx = ContextWithClaims(context.Background(), nil)
	if ctx == nil {
		t.Fatal("ContextWithClaims() returned nil context")
	}
}
