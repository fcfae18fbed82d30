// Package authclient implements the client side of the demo OAuth flow:
// PKCE material generation, authorization URL construction, and fetching a
// demonstration token through the client_credentials grant.
package authclient

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/vgupta/flight-booking-mcp/internal/errors"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// defaultTimeout bounds the token request so an unreachable authorization
// server fails fast instead of hanging the tool call.
const defaultTimeout = 10 * time.Second

// PKCEPair holds a PKCE verifier and its S256 challenge.
type PKCEPair struct {
	Verifier  string
	Challenge string
}

// GeneratePKCE creates a fresh PKCE pair: a 32-byte random verifier,
// base64url-encoded, and its SHA-256 challenge.
func GeneratePKCE() (PKCEPair, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return PKCEPair{}, fmt.Errorf("failed to generate code verifier: %w", err)
	}
	verifier := base64.RawURLEncoding.EncodeToString(buf)

	sum := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(sum[:])

	return PKCEPair{Verifier: verifier, Challenge: challenge}, nil
}

// GenerateState creates a random state value for CSRF protection.
func GenerateState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Config holds the OAuth client settings.
type Config struct {
	// AuthServerURL is the base URL of the authorization server.
	AuthServerURL string

	// CallbackURL is the registered redirect URI.
	CallbackURL string

	// ClientID and ClientSecret identify the registered client.
	ClientID     string
	ClientSecret string

	// Scope is the space-delimited scope to request.
	Scope string

	// HTTPClient is the client used for token requests; nil means a
	// client with the default timeout.
	HTTPClient *http.Client

	// Logger receives flow logs; nil means slog.Default.
	Logger *slog.Logger
}

// Client drives the demo OAuth flow against the authorization server.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates an OAuth client from the configuration.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// AuthorizationURL builds the authorize URL carrying the PKCE challenge and
// state for the browser leg of the flow.
func (c *Client) AuthorizationURL(state string, pkce PKCEPair) string {
	params := url.Values{}
	params.Set("response_type", pkgoauth.ResponseTypeCode)
	params.Set("client_id", c.cfg.ClientID)
	params.Set("redirect_uri", c.cfg.CallbackURL)
	params.Set("scope", c.cfg.Scope)
	params.Set("state", state)
	params.Set("code_challenge", pkce.Challenge)
	params.Set("code_challenge_method", pkgoauth.CodeChallengeMethodS256)

	return strings.TrimRight(c.cfg.AuthServerURL, "/") + "/oauth/authorize?" + params.Encode()
}

// FetchDemoToken obtains an access token through the client_credentials
// grant. An unreachable or failing server yields an ErrUnavailable domain
// error.
func (c *Client) FetchDemoToken(ctx context.Context) (*pkgoauth.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", pkgoauth.GrantTypeClientCredentials)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("scope", c.cfg.Scope)

	tokenURL := strings.TrimRight(c.cfg.AuthServerURL, "/") + "/oauth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.New("authclient", "FetchDemoToken", apperrors.ErrInternal, err)
	}
	req.Header.Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeForm)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.New("authclient", "FetchDemoToken", apperrors.ErrUnavailable,
			fmt.Errorf("authentication service unavailable: %w", err))
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.New("authclient", "FetchDemoToken", apperrors.ErrInternal, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New("authclient", "FetchDemoToken", apperrors.ErrUnavailable,
			fmt.Errorf("token request failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))).
			WithContext("status", resp.StatusCode)
	}

	var token pkgoauth.TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, apperrors.New("authclient", "FetchDemoToken", apperrors.ErrInternal,
			fmt.Errorf("malformed token response: %w", err))
	}

	c.logger.Info("demo token obtained", "client_id", c.cfg.ClientID, "scope", token.Scope)
	return &token, nil
}

// Flow describes a started authentication flow: the URL for the browser
// leg plus an immediately usable demonstration token.
type Flow struct {
	AuthorizationURL string
	State            string
	PKCE             PKCEPair
	Token            *pkgoauth.TokenResponse
}

// StartDemoFlow generates PKCE material, builds the authorization URL, and
// fetches a client_credentials token so tools work without completing the
// browser leg.
func (c *Client) StartDemoFlow(ctx context.Context) (*Flow, error) {
	pkce, err := GeneratePKCE()
	if err != nil {
		return nil, apperrors.New("authclient", "StartDemoFlow", apperrors.ErrInternal, err)
	}
	state, err := GenerateState()
	if err != nil {
		return nil, apperrors.New("authclient", "StartDemoFlow", apperrors.ErrInternal, err)
	}

	token, err := c.FetchDemoToken(ctx)
	if err != nil {
		return nil, err
	}

	return &Flow{
		AuthorizationURL: c.AuthorizationURL(state, pkce),
		State:            state,
		PKCE:             pkce,
		Token:            token,
	}, nil
}
