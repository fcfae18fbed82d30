package handlers

import (
	"log/slog"
	"net/http"

	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// IntrospectHandler serves RFC 7662 token introspection. A token that fails
// validation for any reason yields an active:false body with status 200;
// introspection never reveals why a token is inactive.
type IntrospectHandler struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

// NewIntrospectHandler creates the introspection endpoint handler.
func NewIntrospectHandler(verifier TokenVerifier, logger *slog.Logger) *IntrospectHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IntrospectHandler{verifier: verifier, logger: logger}
}

// Introspect handles POST /oauth/introspect.
func (h *IntrospectHandler) Introspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed form body")
		return
	}

	token := r.PostFormValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Missing token")
		return
	}

	claims, err := h.verifier.ValidateToken(r.Context(), token)
	if err != nil {
		h.logger.Debug("introspected token inactive", "error", err)
		writeJSON(w, http.StatusOK, pkgoauth.IntrospectionResponse{Active: false})
		return
	}

	writeJSON(w, http.StatusOK, pkgoauth.IntrospectionResponse{
		Active:   true,
		ClientID: claims.ClientID,
		Scope:    claims.Scope,
		Subject:  claims.Subject,
		Expiry:   claims.ExpiresAt.Unix(),
		IssuedAt: claims.IssuedAt.Unix(),
	})
}
