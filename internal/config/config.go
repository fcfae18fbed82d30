// Package config provides configuration management for the flight booking
// demo. Configuration is loaded from environment variables with sensible
// defaults; secrets have no defaults and fail startup loudly when absent.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Demo credential pair accepted by the authorization server's approval step.
// Real deployments must replace this with genuine authentication.
const (
	DemoUsername = "demo-user"
	DemoPassword = "demo-pass"

	// DemoSubject is the subject claim placed in tokens issued through the
	// authorization code flow.
	DemoSubject = "demo-user"
)

// Config holds the complete configuration for both server processes in a
// flat structure.
type Config struct {
	// AuthAddr is the bind address of the authorization server (e.g. ":9000").
	AuthAddr string

	// APIAddr is the bind address of the protected flight API (e.g. ":8000").
	APIAddr string

	// AuthServerURL is the externally reachable base URL of the
	// authorization server, used in metadata documents and authorize URLs.
	AuthServerURL string

	// ResourceServerURL is the canonical URL of the protected flight API.
	// It is placed in the "resource" claim of issued tokens.
	ResourceServerURL string

	// CallbackURL is the base redirect URL registered for the demo clients
	// (e.g. "http://localhost:3000/callback").
	CallbackURL string

	// Issuer is the iss claim stamped on every issued token and verified
	// by the token validator.
	Issuer string

	// Audience is the aud claim stamped on every issued token and verified
	// by the token validator.
	Audience string

	// JWTSecret is the symmetric signing secret. Required; startup fails
	// if it is not supplied.
	JWTSecret string

	// CodeTTL is the lifetime of an authorization code.
	CodeTTL time.Duration

	// TokenTTL is the lifetime of an issued access token.
	TokenTTL time.Duration

	// ClockSkew is the allowed clock skew for token expiry validation.
	ClockSkew time.Duration

	// ReadTimeout is the maximum duration for reading an entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out a response.
	WriteTimeout time.Duration

	// IdleTimeout is the keep-alive idle timeout.
	IdleTimeout time.Duration

	// Clients is the static OAuth client set loaded at startup.
	Clients []Client
}

// Load reads configuration from environment variables and returns a Config.
// It merges the built-in demo clients with any clients declared in the
// optional CLIENTS_FILE, then validates the result.
func Load() (*Config, error) {
	codeTTL, err := parseDurationWithDefault("OAUTH_CODE_TTL", "10m")
	if err != nil {
		return nil, fmt.Errorf("invalid OAUTH_CODE_TTL: %w", err)
	}

	tokenTTL, err := parseDurationWithDefault("OAUTH_TOKEN_TTL", "1h")
	if err != nil {
		return nil, fmt.Errorf("invalid OAUTH_TOKEN_TTL: %w", err)
	}

	clockSkew, err := parseDurationWithDefault("OAUTH_CLOCK_SKEW", "1m")
	if err != nil {
		return nil, fmt.Errorf("invalid OAUTH_CLOCK_SKEW: %w", err)
	}

	readTimeout, err := parseDurationWithDefault("SERVER_READ_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := parseDurationWithDefault("SERVER_WRITE_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := parseDurationWithDefault("SERVER_IDLE_TIMEOUT", "120s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_IDLE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		AuthAddr:          getEnvWithDefault("AUTH_ADDR", ":9000"),
		APIAddr:           getEnvWithDefault("API_ADDR", ":8000"),
		AuthServerURL:     getEnvWithDefault("OAUTH_AUTH_SERVER", "http://localhost:9000"),
		ResourceServerURL: getEnvWithDefault("RESOURCE_SERVER", "http://localhost:8000"),
		CallbackURL:       getEnvWithDefault("CALLBACK_URL", "http://localhost:3000/callback"),
		Issuer:            getEnvWithDefault("OAUTH_ISSUER", "https://auth.example.com"),
		Audience:          getEnvWithDefault("OAUTH_AUDIENCE", "https://mcp.example.com"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CodeTTL:           codeTTL,
		TokenTTL:          tokenTTL,
		ClockSkew:         clockSkew,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	clients, err := loadClients(cfg.CallbackURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	cfg.Clients = clients

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvWithDefault returns the environment variable value or the default
// if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDurationWithDefault parses a duration from an environment variable,
// falling back to the default when the variable is not set.
func parseDurationWithDefault(key, defaultValue string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse duration %q: %w", value, err)
	}
	return duration, nil
}

// String returns a string representation of the configuration for debugging.
// Secrets are redacted.
func (c *Config) String() string {
	ids := make([]string, 0, len(c.Clients))
	for _, client := range c.Clients {
		ids = append(ids, client.ClientID)
	}
	return fmt.Sprintf(
		"Config{AuthAddr: %s, APIAddr: %s, AuthServerURL: %s, ResourceServerURL: %s, Issuer: %s, Audience: %s, JWTSecret: [redacted], CodeTTL: %v, TokenTTL: %v, Clients: %v}",
		c.AuthAddr, c.APIAddr, c.AuthServerURL, c.ResourceServerURL,
		c.Issuer, c.Audience, c.CodeTTL, c.TokenTTL, strings.Join(ids, ","),
	)
}
