package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/codes"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// loginPage is the demo consent form. It carries the authorize request
// parameters through as hidden fields so the approval step can re-validate
// them.
var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Flight Booking - Sign In</title></head>
<body>
<h1>Flight Booking Demo</h1>
<p>Client <strong>{{.ClientID}}</strong> is requesting access with scope <strong>{{.Scope}}</strong>.</p>
<form method="post" action="/oauth/authorize/approve">
  <input type="hidden" name="client_id" value="{{.ClientID}}">
  <input type="hidden" name="redirect_uri" value="{{.RedirectURI}}">
  <input type="hidden" name="scope" value="{{.Scope}}">
  <input type="hidden" name="state" value="{{.State}}">
  <input type="hidden" name="code_challenge" value="{{.CodeChallenge}}">
  <input type="hidden" name="code_challenge_method" value="{{.CodeChallengeMethod}}">
  <label>Username <input type="text" name="username"></label><br>
  <label>Password <input type="password" name="password"></label><br>
  <button type="submit">Approve</button>
</form>
</body>
</html>
`))

// oobPage displays the authorization code when the client registered the
// out-of-band redirect sentinel instead of a callback URL.
var oobPage = template.Must(template.New("oob").Parse(`<!DOCTYPE html>
<html>
<head><title>Authorization Code</title></head>
<body>
<h1>Authorization Approved</h1>
<p>Copy this code into your client:</p>
<pre>{{.Code}}</pre>
</body>
</html>
`))

// authorizeRequest holds the validated parameters of an authorize request.
type authorizeRequest struct {
	ClientID            string
	RedirectURI         string
	Scope               string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
}

// AuthorizeHandler serves the authorization endpoint: the GET consent form
// and the POST approval step that mints the authorization code.
type AuthorizeHandler struct {
	registry ClientRegistry
	store    CodeStore
	username string
	password string
	logger   *slog.Logger
}

// NewAuthorizeHandler creates the authorization endpoint handler. username
// and password are the demo credentials accepted at the approval step.
func NewAuthorizeHandler(registry ClientRegistry, store CodeStore, username, password string, logger *slog.Logger) *AuthorizeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorizeHandler{
		registry: registry,
		store:    store,
		username: username,
		password: password,
		logger:   logger,
	}
}

// Authorize handles GET /oauth/authorize. It validates the request against
// the client registration and renders the consent form.
func (h *AuthorizeHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := r.URL.Query()
	req := authorizeRequest{
		ClientID:            query.Get("client_id"),
		RedirectURI:         query.Get("redirect_uri"),
		Scope:               query.Get("scope"),
		State:               query.Get("state"),
		CodeChallenge:       query.Get("code_challenge"),
		CodeChallengeMethod: query.Get("code_challenge_method"),
	}

	if responseType := query.Get("response_type"); responseType != pkgoauth.ResponseTypeCode {
		writeError(w, http.StatusBadRequest, "Unsupported response_type")
		return
	}
	if req.Scope == "" {
		req.Scope = pkgoauth.DefaultScope
	}

	if status, detail := h.validateRequest(&req); detail != "" {
		writeError(w, status, detail)
		return
	}

	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeHTML)
	if err := loginPage.Execute(w, req); err != nil {
		h.logger.Error("failed to render login page", "error", err)
	}
}

// Approve handles POST /oauth/authorize/approve. It checks the demo
// credentials, mints a one-time code bound to the request, and delivers it
// by redirect or by the out-of-band page.
func (h *AuthorizeHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed form body")
		return
	}

	req := authorizeRequest{
		ClientID:            r.PostFormValue("client_id"),
		RedirectURI:         r.PostFormValue("redirect_uri"),
		Scope:               r.PostFormValue("scope"),
		State:               r.PostFormValue("state"),
		CodeChallenge:       r.PostFormValue("code_challenge"),
		CodeChallengeMethod: r.PostFormValue("code_challenge_method"),
	}
	if req.Scope == "" {
		req.Scope = pkgoauth.DefaultScope
	}

	// The hidden form fields are attacker-controlled, so the approval step
	// re-runs the same validation as the GET request.
	if status, detail := h.validateRequest(&req); detail != "" {
		writeError(w, status, detail)
		return
	}

	if r.PostFormValue("username") != h.username || r.PostFormValue("password") != h.password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	code, err := h.store.Issue(codes.IssueRequest{
		ClientID:            req.ClientID,
		RedirectURI:         req.RedirectURI,
		Scope:               req.Scope,
		CodeChallenge:       req.CodeChallenge,
		CodeChallengeMethod: req.CodeChallengeMethod,
	})
	if err != nil {
		h.logger.Error("failed to issue authorization code", "client_id", req.ClientID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to issue authorization code")
		return
	}

	h.logger.Info("authorization code issued",
		"client_id", req.ClientID,
		"scope", req.Scope,
		"pkce", req.CodeChallenge != "")

	if req.RedirectURI == pkgoauth.RedirectURIOutOfBand {
		w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeHTML)
		if err := oobPage.Execute(w, struct{ Code string }{Code: code}); err != nil {
			h.logger.Error("failed to render code page", "error", err)
		}
		return
	}

	location, err := url.Parse(req.RedirectURI)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid redirect URI")
		return
	}
	params := location.Query()
	params.Set("code", code)
	if req.State != "" {
		params.Set("state", req.State)
	}
	location.RawQuery = params.Encode()

	http.Redirect(w, r, location.String(), http.StatusFound)
}

// validateRequest checks the client registration, redirect binding, and
// PKCE method. It returns a zero detail when the request is acceptable.
func (h *AuthorizeHandler) validateRequest(req *authorizeRequest) (int, string) {
	if req.ClientID == "" {
		return http.StatusBadRequest, "Missing client_id"
	}
	if req.RedirectURI == "" {
		return http.StatusBadRequest, "Missing redirect_uri"
	}

	client, err := h.registry.Lookup(req.ClientID)
	if err != nil {
		return http.StatusBadRequest, "Invalid client"
	}

	// Unregistered redirect URIs are rejected outright rather than echoed
	// back, to keep the endpoint from acting as an open redirector.
	if !client.AllowsRedirectURI(req.RedirectURI) {
		return http.StatusBadRequest, "Unregistered redirect URI"
	}

	switch req.CodeChallengeMethod {
	case "", pkgoauth.CodeChallengeMethodS256, pkgoauth.CodeChallengeMethodPlain:
	default:
		return http.StatusBadRequest, "Unsupported code_challenge_method"
	}
	if req.CodeChallengeMethod != "" && req.CodeChallenge == "" {
		return http.StatusBadRequest, "Missing code_challenge"
	}

	return 0, ""
}
