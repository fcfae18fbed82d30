// Package main provides the entry point for the OAuth-protected flight
// booking server: the flight REST API plus the MCP endpoint. It wires
// together all components using dependency injection and manages the
// server lifecycle with graceful shutdown.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/authclient"
	"github.com/vgupta/flight-booking-mcp/internal/config"
	"github.com/vgupta/flight-booking-mcp/internal/flight"
	"github.com/vgupta/flight-booking-mcp/internal/mcp"
	"github.com/vgupta/flight-booking-mcp/internal/mcp/flighttools"
	"github.com/vgupta/flight-booking-mcp/internal/oauth"
	"github.com/vgupta/flight-booking-mcp/internal/transport"
	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.Info("server configuration loaded",
		"addr", cfg.APIAddr,
		"resource_url", cfg.ResourceServerURL,
		"auth_server", cfg.AuthServerURL,
	)

	// Wire OAuth components.
	oauthCfg := &oauth.Config{
		Secret:               cfg.JWTSecret,
		Issuer:               cfg.Issuer,
		Audience:             cfg.Audience,
		ResourceURL:          cfg.ResourceServerURL,
		AuthorizationServers: []string{cfg.AuthServerURL},
		ScopesSupported:      []string{pkgoauth.ScopeRead, pkgoauth.ScopeWrite},
		ClockSkew:            cfg.ClockSkew,
	}

	tokenValidator, scopeChecker, metadataService := oauth.NewOAuthServices(oauthCfg)
	_ = scopeChecker // Scope checks run inside the transport middleware.

	slog.Info("oauth services initialized",
		"issuer", cfg.Issuer,
		"clock_skew", cfg.ClockSkew,
	)

	// Wire the flight domain and MCP components.
	flightService := flight.NewService()

	mcpCfg := &mcp.Config{
		ServerName:    "flight-booking-mcp",
		ServerVersion: "1.0.0",
	}
	mcpHandler, toolRegistry, resourceRegistry := mcp.NewMCPServices(mcpCfg)

	oauthClient := authclient.New(authclient.Config{
		AuthServerURL: cfg.AuthServerURL,
		CallbackURL:   cfg.CallbackURL,
		ClientID:      firstClientID(cfg, "mcp-client"),
		ClientSecret:  firstClientSecret(cfg, "mcp-client"),
		Scope:         pkgoauth.DefaultClientCredentialsScope,
		Logger:        logger,
	})

	if err := flighttools.RegisterAll(toolRegistry, resourceRegistry, flightService, oauthClient); err != nil {
		log.Fatalf("failed to register flight tools: %v", err)
	}

	slog.Info("mcp services initialized",
		"server_name", mcpCfg.ServerName,
		"tools", len(toolRegistry.ListTools()),
		"resources", len(resourceRegistry.ListResources()),
	)

	// Wire the transport layer.
	transportCfg := &transport.Config{
		Addr:            cfg.APIAddr,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		IdleTimeout:     cfg.IdleTimeout,
		OAuthValidator:  tokenValidator,
		MetadataService: metadataService,
		MCPHandler:      mcpHandler,
		FlightService:   flightService,
		Logger:          logger,
	}

	server, router, err := transport.NewTransportServices(transportCfg)
	if err != nil {
		log.Fatalf("failed to create transport services: %v", err)
	}
	_ = router // Router is used internally by the server.

	slog.Info("transport services initialized",
		"metadata_url", metadataService.GetMetadataURL(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.APIAddr)
		if err := server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping server gracefully...")
	case err := <-serverErrCh:
		slog.Error("server error", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped successfully")
}

// firstClientID returns the configured id for the named demo client,
// falling back to the name itself.
func firstClientID(cfg *config.Config, name string) string {
	for _, client := range cfg.Clients {
		if client.ClientID == name {
			return client.ClientID
		}
	}
	if len(cfg.Clients) > 0 {
		return cfg.Clients[0].ClientID
	}
	return name
}

// firstClientSecret returns the secret for the named demo client.
func firstClientSecret(cfg *config.Config, name string) string {
	for _, client := range cfg.Clients {
		if client.ClientID == name {
			return client.ClientSecret
		}
	}
	if len(cfg.Clients) > 0 {
		return cfg.Clients[0].ClientSecret
	}
	return ""
}
