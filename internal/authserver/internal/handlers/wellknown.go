package handlers

import (
	"net/http"
)

// WellKnownHandler serves the discovery documents.
type WellKnownHandler struct {
	discovery DiscoveryService
}

// NewWellKnownHandler creates the discovery endpoints handler.
func NewWellKnownHandler(discovery DiscoveryService) *WellKnownHandler {
	return &WellKnownHandler{discovery: discovery}
}

// Metadata handles GET /.well-known/oauth-authorization-server.
func (h *WellKnownHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.discovery.Metadata())
}

// Keys handles GET /.well-known/jwks.json.
func (h *WellKnownHandler) Keys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.discovery.Keys())
}
