package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/issuer"
	"github.com/vgupta/flight-booking-mcp/internal/oauth"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

type introspectFixture struct {
	handler *IntrospectHandler
	issuer  *issuer.Issuer
}

func newIntrospectFixture(now func() time.Time) *introspectFixture {
	iss := issuer.New(tokenTestSecret, "http://localhost:8081", "flight-api", time.Hour, now)
	verifier := oauth.NewTokenValidator(&oauth.Config{
		Secret:   tokenTestSecret,
		Issuer:   "http://localhost:8081",
		Audience: "flight-api",
		Now:      now,
	})
	return &introspectFixture{
		handler: NewIntrospectHandler(verifier, nil),
		issuer:  iss,
	}
}

func postIntrospect(handler *IntrospectHandler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/oauth/introspect", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.Introspect(w, req)
	return w
}

func decodeIntrospection(t *testing.T, body string) pkgoauth.IntrospectionResponse {
	t.Helper()

	var resp pkgoauth.IntrospectionResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Introspection response is not JSON: %v (body %q)", err, body)
	}
	return resp
}

func TestIntrospectHandler_ActiveToken(t *testing.T) {
	t.Parallel()

	fix := newIntrospectFixture(nil)
	token, err := fix.issuer.Issue(map[string]any{
		"sub":       "demo-user",
		"client_id": "web-client",
		"scope":     "read write",
	}, 0)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	w := postIntrospect(fix.handler, url.Values{"token": {token}})

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	resp := decodeIntrospection(t, w.Body.String())
	if !resp.Active {
		t.Fatal("Active = false, want true for a freshly issued token")
	}
	if resp.Subject != "demo-user" {
		t.Errorf("Subject = %q, want demo-user", resp.Subject)
	}
	if resp.ClientID != "web-client" {
		t.Errorf("ClientID = %q, want web-client", resp.ClientID)
	}
	if resp.Scope != "read write" {
		t.Errorf("Scope = %q, want read write", resp.Scope)
	}
	if resp.Expiry == 0 || resp.IssuedAt == 0 {
		t.Errorf("Expiry/IssuedAt = %d/%d, want non-zero timestamps", resp.Expiry, resp.IssuedAt)
	}
}

func TestIntrospectHandler_InactiveTokens(t *testing.T) {
	t.Parallel()

	fix := newIntrospectFixture(nil)

	otherIssuer := issuer.New("some-other-secret", "http://localhost:8081", "flight-api", time.Hour, nil)
	forged, err := otherIssuer.Issue(map[string]any{"sub": "demo-user"}, 0)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong signature", token: forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := postIntrospect(fix.handler, url.Values{"token": {tt.token}})

			// Inactive tokens still get a 200; the body says active false
			// and nothing else.
			if w.Code != http.StatusOK {
				t.Errorf("Status = %d, want 200", w.Code)
			}
			resp := decodeIntrospection(t, w.Body.String())
			if resp.Active {
				t.Error("Active = true, want false")
			}
			if resp.Subject != "" || resp.ClientID != "" || resp.Scope != "" {
				t.Error("Inactive response should not carry claim fields")
			}
		})
	}
}

func TestIntrospectHandler_ExpiredToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	current := issued
	clock := func() time.Time { return current }

	fix := newIntrospectFixture(clock)
	token, err := fix.issuer.Issue(map[string]any{"sub": "demo-user"}, time.Minute)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	current = issued.Add(2 * time.Minute)

	w := postIntrospect(fix.handler, url.Values{"token": {token}})

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", w.Code)
	}
	if resp := decodeIntrospection(t, w.Body.String()); resp.Active {
		t.Error("Active = true for an expired token, want false")
	}
}

func TestIntrospectHandler_MissingToken(t *testing.T) {
	t.Parallel()

	fix := newIntrospectFixture(nil)
	w := postIntrospect(fix.handler, url.Values{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", w.Code)
	}
	if got := errorDetail(t, w.Body.String()); got != "Missing token" {
		t.Errorf("Detail = %q, want Missing token", got)
	}
}

func TestIntrospectHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	fix := newIntrospectFixture(nil)
	req := httptest.NewRequest(http.MethodGet, "/oauth/introspect", nil)
	w := httptest.NewRecorder()

	fix.handler.Introspect(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status = %d, want 405", w.Code)
	}
}
