package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	pkgoauth "github.com/vgupta/flight-booking-mcp/pkg/oauth"
)

// Client describes one registered OAuth client application.
type Client struct {
	// ClientID uniquely identifies the client.
	ClientID string `yaml:"client_id"`

	// ClientSecret is the confidential client secret. Never exposed in
	// any response.
	ClientSecret string `yaml:"client_secret"`

	// RedirectURIs is the exact-match set of allowed redirect URIs.
	RedirectURIs []string `yaml:"redirect_uris"`

	// GrantTypes lists the grants this client may use.
	GrantTypes []string `yaml:"grant_types"`

	// Scopes lists the scopes this client may request.
	Scopes []string `yaml:"scopes"`
}

// clientsFile is the YAML shape of an optional CLIENTS_FILE document.
type clientsFile struct {
	Clients []Client `yaml:"clients"`
}

// loadClients builds the static client set: the two built-in demo clients
// from environment secrets, plus any clients declared in CLIENTS_FILE.
func loadClients(callbackURL string) ([]Client, error) {
	mcpSecret := os.Getenv("MCP_CLIENT_SECRET")
	if mcpSecret == "" {
		return nil, fmt.Errorf("MCP_CLIENT_SECRET is required")
	}

	desktopSecret := os.Getenv("DESKTOP_CLIENT_SECRET")
	if desktopSecret == "" {
		return nil, fmt.Errorf("DESKTOP_CLIENT_SECRET is required")
	}

	defaultGrants := []string{
		pkgoauth.GrantTypeAuthorizationCode,
		pkgoauth.GrantTypeRefreshToken,
		pkgoauth.GrantTypeClientCredentials,
	}

	clients := []Client{
		{
			ClientID:     getEnvWithDefault("MCP_CLIENT_ID", "mcp-client"),
			ClientSecret: mcpSecret,
			RedirectURIs: []string{callbackURL, pkgoauth.RedirectURIOutOfBand},
			GrantTypes:   defaultGrants,
			Scopes:       []string{pkgoauth.ScopeRead, pkgoauth.ScopeWrite},
		},
		{
			ClientID:     getEnvWithDefault("DESKTOP_CLIENT_ID", "desktop-client"),
			ClientSecret: desktopSecret,
			RedirectURIs: []string{callbackURL, pkgoauth.RedirectURIOutOfBand},
			GrantTypes:   defaultGrants,
			Scopes: []string{
				pkgoauth.ScopeFlightRead,
				pkgoauth.ScopeFlightWrite,
				pkgoauth.ScopeBookingManage,
			},
		},
	}

	path := os.Getenv("CLIENTS_FILE")
	if path == "" {
		return clients, nil
	}

	extra, err := parseClientsFile(path)
	if err != nil {
		return nil, err
	}
	return append(clients, extra...), nil
}

// parseClientsFile reads additional client declarations from a YAML file.
func parseClientsFile(path string) ([]Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read CLIENTS_FILE %q: %w", path, err)
	}

	var file clientsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse CLIENTS_FILE %q: %w", path, err)
	}

	for i, client := range file.Clients {
		if client.ClientID == "" {
			return nil, fmt.Errorf("CLIENTS_FILE %q: clients[%d] missing client_id", path, i)
		}
		if client.ClientSecret == "" {
			return nil, fmt.Errorf("CLIENTS_FILE %q: client %q missing client_secret", path, client.ClientID)
		}
	}

	return file.Clients, nil
}
