package handlers

import (
	"net/http"
)

// StatusHandler serves the service description and health endpoints.
type StatusHandler struct {
	registry ClientRegistry
	baseURL  string
}

// NewStatusHandler creates the status endpoints handler.
func NewStatusHandler(registry ClientRegistry, baseURL string) *StatusHandler {
	return &StatusHandler{registry: registry, baseURL: baseURL}
}

// statusResponse describes the running server for anyone poking at the root.
type statusResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Clients   []string          `json:"registered_clients"`
}

// Root handles GET /.
func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Service: "flight-booking-auth-server",
		Version: "1.0.0",
		Endpoints: map[string]string{
			"authorization": h.baseURL + "/oauth/authorize",
			"token":         h.baseURL + "/oauth/token",
			"introspection": h.baseURL + "/oauth/introspect",
			"metadata":      h.baseURL + "/.well-known/oauth-authorization-server",
			"jwks":          h.baseURL + "/.well-known/jwks.json",
		},
		Clients: h.registry.ClientIDs(),
	})
}

// Health handles GET /health.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
