package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vgupta/flight-booking-mcp/internal/authserver/authcore"
	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/codes"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// TokenHandler serves the token endpoint for the authorization_code and
// client_credentials grants.
type TokenHandler struct {
	registry ClientRegistry
	store    CodeStore
	issuer   TokenIssuer
	subject  string
	resource string
	logger   *slog.Logger
}

// NewTokenHandler creates the token endpoint handler. subject is the sub
// claim stamped on authorization-code tokens; resource is the protected
// API URL stamped on every token.
func NewTokenHandler(registry ClientRegistry, store CodeStore, issuer TokenIssuer, subject, resource string, logger *slog.Logger) *TokenHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenHandler{
		registry: registry,
		store:    store,
		issuer:   issuer,
		subject:  subject,
		resource: resource,
		logger:   logger,
	}
}

// Token handles POST /oauth/token.
func (h *TokenHandler) Token(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed form body")
		return
	}

	// The token endpoint always requires the secret. Existence-only
	// verification is reserved for the authorize endpoint, where no
	// secret is presented.
	clientID, clientSecret := clientCredentials(r)
	if clientID == "" || clientSecret == "" || !h.registry.Verify(clientID, clientSecret) {
		writeError(w, http.StatusUnauthorized, "Invalid client credentials")
		return
	}

	client, err := h.registry.Lookup(clientID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid client credentials")
		return
	}

	grantType := r.PostFormValue("grant_type")
	switch grantType {
	case pkgoauth.GrantTypeAuthorizationCode, pkgoauth.GrantTypeClientCredentials:
	default:
		writeError(w, http.StatusBadRequest, "Unsupported grant_type: "+grantType)
		return
	}
	if !client.AllowsGrantType(grantType) {
		writeError(w, http.StatusBadRequest, "Client not authorized for grant_type: "+grantType)
		return
	}

	switch grantType {
	case pkgoauth.GrantTypeAuthorizationCode:
		h.authorizationCodeGrant(w, r, clientID)
	case pkgoauth.GrantTypeClientCredentials:
		h.clientCredentialsGrant(w, r, clientID)
	}
}

// authorizationCodeGrant redeems a one-time code and exchanges it for an
// access token carrying the scope the code was approved with.
func (h *TokenHandler) authorizationCodeGrant(w http.ResponseWriter, r *http.Request, clientID string) {
	code := r.PostFormValue("code")
	redirectURI := r.PostFormValue("redirect_uri")
	if code == "" || redirectURI == "" {
		writeError(w, http.StatusBadRequest, "Missing code or redirect_uri")
		return
	}

	record, err := h.store.Redeem(codes.RedeemRequest{
		Code:         code,
		ClientID:     clientID,
		RedirectURI:  redirectURI,
		CodeVerifier: r.PostFormValue("code_verifier"),
	})
	if err != nil {
		h.logger.Warn("authorization code redemption rejected", "client_id", clientID, "error", err)
		writeError(w, http.StatusBadRequest, redeemErrorDetail(err))
		return
	}

	h.respondWithToken(w, map[string]any{
		"sub":       h.subject,
		"client_id": clientID,
		"scope":     record.Scope,
		"resource":  h.resource,
	}, record.Scope, clientID)
}

// clientCredentialsGrant issues a machine-to-machine token with the client
// itself as the subject.
func (h *TokenHandler) clientCredentialsGrant(w http.ResponseWriter, r *http.Request, clientID string) {
	scope := r.PostFormValue("scope")
	if scope == "" {
		scope = pkgoauth.DefaultClientCredentialsScope
	}

	h.respondWithToken(w, map[string]any{
		"sub":       clientID,
		"client_id": clientID,
		"scope":     scope,
		"resource":  h.resource,
	}, scope, clientID)
}

// respondWithToken signs the claims and writes the token response.
func (h *TokenHandler) respondWithToken(w http.ResponseWriter, claims map[string]any, scope, clientID string) {
	token, err := h.issuer.Issue(claims, h.issuer.TTL())
	if err != nil {
		h.logger.Error("failed to sign access token", "client_id", clientID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	h.logger.Info("access token issued", "client_id", clientID, "scope", scope)

	writeJSON(w, http.StatusOK, pkgoauth.TokenResponse{
		AccessToken: token,
		TokenType:   pkgoauth.BearerToken,
		ExpiresIn:   int(h.issuer.TTL().Seconds()),
		Scope:       scope,
	})
}

// redeemErrorDetail maps code store sentinels to client-safe messages.
func redeemErrorDetail(err error) string {
	switch {
	case errors.Is(err, authcore.ErrCodeNotFound):
		return "Invalid authorization code"
	case errors.Is(err, authcore.ErrCodeExpiredOrUsed):
		return "Authorization code expired or already used"
	case errors.Is(err, authcore.ErrCodeBindingMismatch):
		return "Authorization code was issued to a different client or redirect URI"
	case errors.Is(err, authcore.ErrVerifierRequired):
		return "Missing code_verifier"
	case errors.Is(err, authcore.ErrVerifierMismatch):
		return "Invalid code_verifier"
	default:
		return "Invalid authorization code"
	}
}

// clientCredentials extracts the client id and secret from HTTP Basic auth
// or from the form body, in that order.
func clientCredentials(r *http.Request) (string, string) {
	if id, secret, ok := r.BasicAuth(); ok {
		return id, secret
	}
	return r.PostFormValue("client_id"), r.PostFormValue("client_secret")
}
