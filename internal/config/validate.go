package config

import (
	"fmt"
	"net/url"
)

// Validate checks that the configuration is valid and complete.
// It returns an error if required fields are missing or values are invalid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateServer(cfg); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if err := validateOAuth(cfg); err != nil {
		return fmt.Errorf("invalid oauth config: %w", err)
	}

	if err := validateClients(cfg); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}

	return nil
}

// validateServer validates addresses, URLs, and timeouts.
func validateServer(cfg *Config) error {
	if cfg.AuthAddr == "" {
		return fmt.Errorf("AUTH_ADDR is required")
	}
	if cfg.APIAddr == "" {
		return fmt.Errorf("API_ADDR is required")
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"OAUTH_AUTH_SERVER", cfg.AuthServerURL},
		{"RESOURCE_SERVER", cfg.ResourceServerURL},
		{"CALLBACK_URL", cfg.CallbackURL},
	} {
		parsed, err := url.Parse(field.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", field.name, err)
		}
		if !parsed.IsAbs() {
			return fmt.Errorf("%s must be an absolute URL", field.name)
		}
		if parsed.Scheme != "https" && parsed.Scheme != "http" {
			return fmt.Errorf("%s must use http or https scheme", field.name)
		}
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.IdleTimeout < 0 {
		return fmt.Errorf("SERVER_IDLE_TIMEOUT must be non-negative")
	}

	return nil
}

// validateOAuth validates the signing secret and token parameters.
// The secret has no default on purpose: a guessable fallback would let
// anyone mint valid tokens.
func validateOAuth(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Issuer == "" {
		return fmt.Errorf("OAUTH_ISSUER is required")
	}
	if cfg.Audience == "" {
		return fmt.Errorf("OAUTH_AUDIENCE is required")
	}
	if cfg.CodeTTL <= 0 {
		return fmt.Errorf("OAUTH_CODE_TTL must be positive")
	}
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("OAUTH_TOKEN_TTL must be positive")
	}
	if cfg.ClockSkew <= 0 {
		return fmt.Errorf("OAUTH_CLOCK_SKEW must be positive")
	}
	return nil
}

// validateClients checks the static client set for duplicates and missing
// secrets.
func validateClients(cfg *Config) error {
	if len(cfg.Clients) == 0 {
		return fmt.Errorf("at least one OAuth client is required")
	}

	seen := make(map[string]bool, len(cfg.Clients))
	for _, client := range cfg.Clients {
		if client.ClientID == "" {
			return fmt.Errorf("client with empty client_id")
		}
		if client.ClientSecret == "" {
			return fmt.Errorf("client %q has no secret", client.ClientID)
		}
		if seen[client.ClientID] {
			return fmt.Errorf("duplicate client_id %q", client.ClientID)
		}
		seen[client.ClientID] = true
	}

	return nil
}
