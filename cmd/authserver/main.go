// Package main provides the entry point for the demo OAuth 2.1
// authorization server. It wires the client registry, code store, token
// issuer, and discovery services behind an HTTP server with graceful
// shutdown.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vgupta/flight-booking-mcp/internal/authserver"
	"github.com/vgupta/flight-booking-mcp/internal/authserver/authcore"
	"github.com/vgupta/flight-booking-mcp/internal/config"
	"github.com/vgupta/flight-booking-mcp/internal/transport"
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

	slog.Info("authorization server configuration loaded",
		"addr", cfg.AuthAddr,
		"issuer", cfg.Issuer,
		"code_ttl", cfg.CodeTTL,
		"token_ttl", cfg.TokenTTL,
	)

	srv := authserver.New(&authserver.Config{
		BaseURL:      cfg.AuthServerURL,
		Issuer:       cfg.Issuer,
		Audience:     cfg.Audience,
		Secret:       cfg.JWTSecret,
		Resource:     cfg.ResourceServerURL,
		Subject:      config.DemoSubject,
		DemoUsername: config.DemoUsername,
		DemoPassword: config.DemoPassword,
		Clients:      registryClients(cfg),
		CodeTTL:      cfg.CodeTTL,
		TokenTTL:     cfg.TokenTTL,
		ClockSkew:    cfg.ClockSkew,
		Logger:       logger,
	})

	server := transport.NewServer(cfg.AuthAddr, transport.Timeouts{
		Read:  cfg.ReadTimeout,
		Write: cfg.WriteTimeout,
		Idle:  cfg.IdleTimeout,
	}, srv.Handler())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting authorization server", "addr", cfg.AuthAddr)
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

	slog.Info("authorization server stopped successfully")
}

// registryClients converts the configured client set into registry records.
func registryClients(cfg *config.Config) []authcore.Client {
	clients := make([]authcore.Client, 0, len(cfg.Clients))
	for _, c := range cfg.Clients {
		clients = append(clients, authcore.Client{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURIs: c.RedirectURIs,
			GrantTypes:   c.GrantTypes,
			Scopes:       c.Scopes,
		})
	}
	return clients
}
