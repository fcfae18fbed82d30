package authserver

import (
	"log/slog"
	"net/http"

	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/clients"
	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/codes"
	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/handlers"
	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/issuer"
	"github.com/vgupta/flight-booking-mcp/internal/authserver/internal/metadata"
	"github.com/vgupta/flight-booking-mcp/internal/oauth"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// Server is the assembled authorization server.
type Server struct {
	handler http.Handler
}

// New wires the registry, code store, token issuer, discovery service, and
// endpoint handlers into a single HTTP handler.
func New(cfg *Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := clients.NewRegistry(cfg.Clients)
	store := codes.NewStore(cfg.CodeTTL, cfg.Now)
	tokenIssuer := issuer.New(cfg.Secret, cfg.Issuer, cfg.Audience, cfg.TokenTTL, cfg.Now)
	discovery := metadata.NewService(cfg.BaseURL, cfg.Issuer, cfg.Secret, supportedScopes())

	// Introspection reuses the resource-side validator so the two ends of
	// the system can never disagree about what a valid token is.
	verifier := oauth.NewTokenValidator(&oauth.Config{
		Secret:    cfg.Secret,
		Issuer:    cfg.Issuer,
		Audience:  cfg.Audience,
		ClockSkew: cfg.ClockSkew,
		Now:       cfg.Now,
	})

	authorize := handlers.NewAuthorizeHandler(registry, store, cfg.DemoUsername, cfg.DemoPassword, logger)
	token := handlers.NewTokenHandler(registry, store, tokenIssuer, cfg.Subject, cfg.Resource, logger)
	introspect := handlers.NewIntrospectHandler(verifier, logger)
	wellKnown := handlers.NewWellKnownHandler(discovery)
	status := handlers.NewStatusHandler(registry, cfg.BaseURL)

	mux := http.NewServeMux()
	mux.HandleFunc("/", status.Root)
	mux.HandleFunc("/health", status.Health)
	mux.HandleFunc("/oauth/authorize", authorize.Authorize)
	mux.HandleFunc("/oauth/authorize/approve", authorize.Approve)
	mux.HandleFunc("/oauth/token", token.Token)
	mux.HandleFunc("/oauth/introspect", introspect.Introspect)
	mux.HandleFunc("/.well-known/oauth-authorization-server", wellKnown.Metadata)
	mux.HandleFunc("/.well-known/jwks.json", wellKnown.Keys)

	handler := recoverMiddleware(logger, logMiddleware(logger, mux))

	return &Server{handler: handler}
}

// Handler returns the HTTP handler serving all authorization server routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// supportedScopes lists the scopes advertised in the metadata document.
func supportedScopes() []string {
	return []string{
		pkgoauth.ScopeRead,
		pkgoauth.ScopeWrite,
		pkgoauth.ScopeFlightRead,
		pkgoauth.ScopeFlightWrite,
		pkgoauth.ScopeBookingManage,
	}
}
