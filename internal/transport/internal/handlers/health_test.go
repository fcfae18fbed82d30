package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vgupta/flight-booking-mcp/internal/transport/internal/mocks"
)

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	handler := NewHealthHandler(&mocks.ErrorResponder{})

	// No Authorization header; the endpoint sits outside the protected
	// routes so monitors can reach it.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler := NewHealthHandler(&mocks.ErrorResponder{})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(method, "/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Status = %d, want 405", w.Code)
			}
		})
	}
}

func TestNewHealthHandler_NilResponder(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("NewHealthHandler(nil) should panic")
		}
	}()
	NewHealthHandler(nil)
}
