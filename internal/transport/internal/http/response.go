package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vgupta/flight-booking-mcp/internal/transport/transportcore"
	"github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// errorResponder implements transportcore.ErrorResponder. Error bodies use
// the same detail shape as the authorization server so clients parse one
// error format across both processes.
type errorResponder struct {
	metadataURL string
}

// NewErrorResponder creates an error responder. The metadata URL is
// included in WWW-Authenticate headers per RFC 9728.
func NewErrorResponder(metadataURL string) transportcore.ErrorResponder {
	return &errorResponder{
		metadataURL: metadataURL,
	}
}

// Unauthorized sends a 401 response. The WWW-Authenticate header follows
// RFC 6750 Section 3 and carries the resource_metadata parameter per
// RFC 9728 for client discovery.
func (e *errorResponder) Unauthorized(w http.ResponseWriter, scope string, err error) {
	authHeader := e.buildAuthHeader("", scope)

	w.Header().Set(oauth.HeaderWWWAuthenticate, authHeader)

	slog.Warn("unauthorized request",
		"error", err,
		"scope", scope,
	)

	writeDetail(w, http.StatusUnauthorized, "Invalid token")
}

// Forbidden sends a 403 response with an insufficient_scope
// WWW-Authenticate header per RFC 6750 Section 3.1.
func (e *errorResponder) Forbidden(w http.ResponseWriter, requiredScopes []string, err error) {
	scopeStr := strings.Join(requiredScopes, " ")
	authHeader := e.buildAuthHeader("insufficient_scope", scopeStr)

	w.Header().Set(oauth.HeaderWWWAuthenticate, authHeader)

	slog.Warn("forbidden request",
		"error", err,
		"required_scopes", requiredScopes,
	)

	writeDetail(w, http.StatusForbidden, fmt.Sprintf("Insufficient scope, required: %s", scopeStr))
}

// InternalError sends a 500 response.
func (e *errorResponder) InternalError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}

// BadRequest sends a 400 response carrying the error message.
func (e *errorResponder) BadRequest(w http.ResponseWriter, err error) {
	slog.Warn("bad request", "error", err)

	detail := "Invalid request"
	if err != nil {
		detail = err.Error()
	}
	writeDetail(w, http.StatusBadRequest, detail)
}

// NotFound sends a 404 response.
func (e *errorResponder) NotFound(w http.ResponseWriter, err error) {
	detail := "Not found"
	if err != nil {
		detail = err.Error()
	}
	writeDetail(w, http.StatusNotFound, detail)
}

// buildAuthHeader builds the WWW-Authenticate header value per RFC 6750.
// The error parameter is included when errorCode is non-empty; scope and
// resource_metadata are included when available.
func (e *errorResponder) buildAuthHeader(errorCode, scope string) string {
	parts := []string{"Bearer"}

	if errorCode != "" {
		parts = append(parts, fmt.Sprintf(`error="%s"`, errorCode))
	}
	if scope != "" {
		parts = append(parts, fmt.Sprintf(`scope="%s"`, scope))
	}
	if e.metadataURL != "" {
		parts = append(parts, fmt.Sprintf(`resource_metadata="%s"`, e.metadataURL))
	}

	return strings.Join(parts, " ")
}

// writeDetail writes a JSON detail body with the given status.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set(oauth.HeaderContentType, oauth.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(oauth.ErrorResponse{Detail: detail}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
