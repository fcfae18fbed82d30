// Package middleware provides HTTP middleware for the transport layer.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/oauth"
	"github.com/vgupta/flight-booking-mcp/internal/transport/transportcore"
)

const testResourceMetadataURL = "http://localhost:8080/.well-known/oauth-protected-resource"

// mockTokenValidator implements oauth.TokenValidator for testing.
type mockTokenValidator struct {
	validateFunc func(ctx context.Context, token string) (*oauth.TokenClaims, error)
}

func (m *mockTokenValidator) ValidateToken(ctx context.Context, token string) (*oauth.TokenClaims, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, token)
	}
	return nil, errors.New("not implemented")
}

// mockErrorResponder captures error responses for testing.
type mockErrorResponder struct {
	unauthorizedCalled bool
	unauthorizedScope  string
	forbiddenCalled    bool
	forbiddenScopes    []string
	metadataURL        string
}

func (m *mockErrorResponder) Unauthorized(w http.ResponseWriter, scope string, err error) {
	m.unauthorizedCalled = true
	m.unauthorizedScope = scope
	w.Header().Set("WWW-Authenticate", `Bearer resource_metadata="`+m.metadataURL+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}

func (m *mockErrorResponder) Forbidden(w http.ResponseWriter, requiredScopes []string, err error) {
	m.forbiddenCalled = true
	m.forbiddenScopes = requiredScopes
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(requiredScopes, " ")+`"`)
	w.WriteHeader(http.StatusForbidden)
}

func (m *mockErrorResponder) InternalError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
}

func (m *mockErrorResponder) BadRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
}

func (m *mockErrorResponder) NotFound(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusNotFound)
}

func readOnlyClaims() *oauth.TokenClaims {
	return &oauth.TokenClaims{
		Subject:   "demo-user",
		ClientID:  "web-client",
		Issuer:    "http://localhost:9000",
		Audience:  []string{"flight-booking-api"},
		Scopes:    []string{"read"},
		ExpiresAt: time.Now().Add(time.Hour),
		IssuedAt:  time.Now(),
	}
}

func newAuthMiddleware(validator *mockTokenValidator, responder *mockErrorResponder) transportcore.AuthMiddleware {
	responder.metadataURL = testResourceMetadataURL
	return NewAuthMiddleware(validator, responder, testResourceMetadataURL, []string{"read"})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		authHeader      string
		validate        func(ctx context.Context, token string) (*oauth.TokenClaims, error)
		wantStatus      int
		wantNextCalled  bool
		wantClaimsInCtx bool
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer flight-token-1",
			validate: func(ctx context.Context, token string) (*oauth.TokenClaims, error) {
				if token != "flight-token-1" {
					return nil, errors.New("unexpected token")
				}
				return readOnlyClaims(), nil
			},
			wantStatus:      http.StatusOK,
			wantNextCalled:  true,
			wantClaimsInCtx: true,
		},
		{
			name:       "missing authorization header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "basic scheme rejected",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "bearer with no token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "lowercase scheme rejected",
			authHeader: "bearer flight-token-1",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "validator rejects token",
			authHeader: "Bearer expired-token",
			validate: func(ctx context.Context, token string) (*oauth.TokenClaims, error) {
				return nil, errors.New("token has expired")
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			responder := &mockErrorResponder{}
			authMw := newAuthMiddleware(&mockTokenValidator{validateFunc: tt.validate}, responder)

			nextCalled := false
			var ctxFromNext context.Context
			handler := authMw.Authenticate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				ctxFromNext = r.Context()
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/flights/search", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNextCalled {
				t.Errorf("next called = %v, want %v", nextCalled, tt.wantNextCalled)
			}
			if tt.wantClaimsInCtx {
				claims, ok := transportcore.ClaimsFromContext(ctxFromNext)
				if !ok || claims == nil {
					t.Error("validated claims missing from request context")
				} else if claims.Subject != "demo-user" {
					t.Errorf("Subject = %q, want demo-user", claims.Subject)
				}
			}
			if w.Code == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") == "" {
				t.Error("401 response missing WWW-Authenticate header")
			}
		})
	}
}

func TestAuthenticate_DefaultScopeInChallenge(t *testing.T) {
	t.Parallel()

	responder := &mockErrorResponder{}
	authMw := newAuthMiddleware(&mockTokenValidator{}, responder)
	handler := authMw.Authenticate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !responder.unauthorizedCalled {
		t.Fatal("Unauthorized was not called")
	}
	if responder.unauthorizedScope != "read" {
		t.Errorf("challenge scope = %q, want the default read scope", responder.unauthorizedScope)
	}
}

func TestRequireScopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		tokenScopes    []string
		requiredScopes []string
		wantStatus     int
	}{
		{
			name:           "read token searches flights",
			tokenScopes:    []string{"read"},
			requiredScopes: []string{"read"},
			wantStatus:     http.StatusOK,
		},
		{
			name:           "read token cannot book",
			tokenScopes:    []string{"read"},
			requiredScopes: []string{"write"},
			wantStatus:     http.StatusForbidden,
		},
		{
			name:           "read and write token books",
			tokenScopes:    []string{"read", "write"},
			requiredScopes: []string{"write"},
			wantStatus:     http.StatusOK,
		},
		{
			name:           "missing one of multiple required",
			tokenScopes:    []string{"read"},
			requiredScopes: []string{"read", "write"},
			wantStatus:     http.StatusForbidden,
		},
		{
			name:           "no scopes required",
			tokenScopes:    []string{},
			requiredScopes: []string{},
			wantStatus:     http.StatusOK,
		},
		{
			name:           "scopeless token rejected",
			tokenScopes:    []string{},
			requiredScopes: []string{"read"},
			wantStatus:     http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			responder := &mockErrorResponder{}
			authMw := newAuthMiddleware(&mockTokenValidator{}, responder)

			nextCalled := false
			handler := authMw.RequireScopes(tt.requiredScopes...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			}))

			claims := readOnlyClaims()
			claims.Scopes = tt.tokenScopes
			req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
			req = req.WithContext(transportcore.ContextWithClaims(req.Context(), claims))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if nextCalled != (tt.wantStatus == http.StatusOK) {
				t.Errorf("next called = %v with status %d", nextCalled, w.Code)
			}
			if w.Code == http.StatusForbidden {
				header := w.Header().Get("WWW-Authenticate")
				if !strings.Contains(header, "insufficient_scope") {
					t.Errorf("WWW-Authenticate = %q, missing insufficient_scope", header)
				}
				if len(responder.forbiddenScopes) != len(tt.requiredScopes) {
					t.Errorf("forbidden scopes = %v, want %v", responder.forbiddenScopes, tt.requiredScopes)
				}
			}
		})
	}
}

func TestRequireScopes_MissingClaims(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  func(base context.Context) context.Context
	}{
		{
			name: "no claims in context",
			ctx:  func(base context.Context) context.Context { return base },
		},
		{
			name: "nil claims stored",
			ctx: func(base context.Context) context.Context {
				return transportcore.ContextWithClaims(base, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			responder := &mockErrorResponder{}
			authMw := newAuthMiddleware(&mockTokenValidator{}, responder)

			nextCalled := false
			handler := authMw.RequireScopes("read")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			req = req.WithContext(tt.ctx(req.Context()))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			// Missing authentication beats missing scope.
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
			if nextCalled {
				t.Error("next should not run without claims")
			}
		})
	}
}

func TestMiddlewareChain_AuthThenScopes(t *testing.T) {
	t.Parallel()

	validator := &mockTokenValidator{
		validateFunc: func(ctx context.Context, token string) (*oauth.TokenClaims, error) {
			if token == "booking-token" {
				claims := readOnlyClaims()
				claims.Scopes = []string{"read", "write"}
				return claims, nil
			}
			return nil, errors.New("invalid token")
		},
	}

	responder := &mockErrorResponder{}
	authMw := newAuthMiddleware(validator, responder)

	nextCalled := false
	handler := authMw.Authenticate()(authMw.RequireScopes("write")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusCreated)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer booking-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusCreated || !nextCalled {
		t.Errorf("status = %d, next called = %v, want 201 and true", w.Code, nextCalled)
	}

	// A rejected token never reaches the scope check.
	nextCalled = false
	req = httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set("Authorization", "Bearer stolen-token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if nextCalled || responder.forbiddenCalled {
		t.Error("handler and scope check should not run for a rejected token")
	}
}
