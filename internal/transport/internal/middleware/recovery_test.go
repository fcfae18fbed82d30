package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRecovery_PanicReturns500(t *testing.T) {
	t.Parallel()

	capture := &captureLogHandler{}
	middleware := NewRecoveryMiddleware(&mockErrorResponder{}, slog.New(capture))

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("booking store corrupted")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/bookings", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}

	entry := capture.last(t)
	if entry["level"] != slog.LevelError.String() {
		t.Errorf("level = %v, panics should log at ERROR", entry["level"])
	}
	if entry["path"] != "/api/bookings" {
		t.Errorf("path = %v, want /api/bookings", entry["path"])
	}
	if stack, ok := entry["stack"].(string); !ok || stack == "" {
		t.Error("entry should include a stack trace")
	}
}

func TestRecovery_PanicValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
	}{
		{name: "string", value: "unexpected state"},
		{name: "error", value: errors.New("flight lookup failed")},
		{name: "int", value: 42},
		{name: "struct", value: struct{ Code int }{Code: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			middleware := NewRecoveryMiddleware(&mockErrorResponder{}, slog.New(&captureLogHandler{}))
			handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.value)
			}))

			w := httptest.NewRecorder()

			defer func() {
				if recovered := recover(); recovered != nil {
					t.Errorf("panic escaped the middleware: %v", recovered)
				}
			}()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/airports", nil))

			if w.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", w.Code)
			}
		})
	}
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	t.Parallel()

	middleware := NewRecoveryMiddleware(&mockErrorResponder{}, slog.New(&captureLogHandler{}))

	body := `{"flights":[]}`
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/flights/search", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != body {
		t.Errorf("body = %q, want %q", w.Body.String(), body)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Error("headers should pass through unchanged")
	}
}

func TestRecovery_HandlerSurvivesRepeatedPanics(t *testing.T) {
	t.Parallel()

	middleware := NewRecoveryMiddleware(&mockErrorResponder{}, slog.New(&captureLogHandler{}))

	calls := 0
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		panic("disruption handler failure")
	}))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/disruptions", nil))
		if w.Code != http.StatusInternalServerError {
			t.Errorf("request %d status = %d, want 500", i+1, w.Code)
		}
	}
	if calls != 2 {
		t.Errorf("handler calls = %d, want 2", calls)
	}
}

func TestNewRecoveryMiddleware_NilResponder(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("NewRecoveryMiddleware(nil, ...) should panic")
		}
	}()
	NewRecoveryMiddleware(nil, nil)
}
