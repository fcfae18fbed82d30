package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setRequiredEnv sets the minimum environment for a successful Load.
// t.Setenv registers cleanup, so tests using it cannot run in parallel.
func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-jwt-secret")
	t.Setenv("MCP_CLIENT_SECRET", "test-mcp-secret")
	t.Setenv("DESKTOP_CLIENT_SECRET", "test-desktop-secret")

	// Clear optional knobs that could leak in from the environment.
	for _, key := range []string{
		"AUTH_ADDR", "API_ADDR", "OAUTH_AUTH_SERVER", "RESOURCE_SERVER",
		"CALLBACK_URL", "OAUTH_ISSUER", "OAUTH_AUDIENCE",
		"OAUTH_CODE_TTL", "OAUTH_TOKEN_TTL", "OAUTH_CLOCK_SKEW",
		"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
		"MCP_CLIENT_ID", "DESKTOP_CLIENT_ID", "CLIENTS_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AuthAddr != ":9000" {
		t.Errorf("AuthAddr = %q, want :9000", cfg.AuthAddr)
	}
	if cfg.APIAddr != ":8000" {
		t.Errorf("APIAddr = %q, want :8000", cfg.APIAddr)
	}
	if cfg.AuthServerURL != "http://localhost:9000" {
		t.Errorf("AuthServerURL = %q", cfg.AuthServerURL)
	}
	if cfg.ResourceServerURL != "http://localhost:8000" {
		t.Errorf("ResourceServerURL = %q", cfg.ResourceServerURL)
	}
	if cfg.JWTSecret != "test-jwt-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.CodeTTL != 10*time.Minute {
		t.Errorf("CodeTTL = %v, want 10m", cfg.CodeTTL)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.ClockSkew != time.Minute {
		t.Errorf("ClockSkew = %v, want 1m", cfg.ClockSkew)
	}
	if cfg.ReadTimeout != 30*time.Second {
		t.Errorf("ReadTimeout = %v, want 30s", cfg.ReadTimeout)
	}
	if cfg.IdleTimeout != 120*time.Second {
		t.Errorf("IdleTimeout = %v, want 120s", cfg.IdleTimeout)
	}
}

func TestLoad_BuiltInClients(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(cfg.Clients) != 2 {
		t.Fatalf("Clients length = %d, want 2", len(cfg.Clients))
	}

	mcp := cfg.Clients[0]
	if mcp.ClientID != "mcp-client" {
		t.Errorf("ClientID = %q, want mcp-client", mcp.ClientID)
	}
	if mcp.ClientSecret != "test-mcp-secret" {
		t.Errorf("ClientSecret = %q, want the env secret", mcp.ClientSecret)
	}
	if len(mcp.RedirectURIs) != 2 {
		t.Errorf("RedirectURIs = %v, want callback and oob", mcp.RedirectURIs)
	}

	desktop := cfg.Clients[1]
	if desktop.ClientID != "desktop-client" {
		t.Errorf("ClientID = %q, want desktop-client", desktop.ClientID)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_ADDR", ":9999")
	t.Setenv("OAUTH_TOKEN_TTL", "15m")
	t.Setenv("MCP_CLIENT_ID", "custom-mcp")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.AuthAddr != ":9999" {
		t.Errorf("AuthAddr = %q, want :9999", cfg.AuthAddr)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Errorf("TokenTTL = %v, want 15m", cfg.TokenTTL)
	}
	if cfg.Clients[0].ClientID != "custom-mcp" {
		t.Errorf("ClientID = %q, want custom-mcp", cfg.Clients[0].ClientID)
	}
}

func TestLoad_MissingSecrets(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "missing jwt secret", unset: "JWT_SECRET"},
		{name: "missing mcp client secret", unset: "MCP_CLIENT_SECRET"},
		{name: "missing desktop client secret", unset: "DESKTOP_CLIENT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")
			os.Unsetenv(tt.unset)

			if _, err := Load(); err == nil {
				t.Errorf("Load() without %s should fail", tt.unset)
			}
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OAUTH_TOKEN_TTL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Error("Load() with invalid OAUTH_TOKEN_TTL should fail")
	}
}

func TestLoad_ClientsFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "clients.yaml")
	doc := `clients:
  - client_id: partner-client
    client_secret: partner-secret
    redirect_uris:
      - http://partner.example.com/callback
    grant_types:
      - authorization_code
    scopes:
      - read
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("Failed to write clients file: %v", err)
	}
	t.Setenv("CLIENTS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(cfg.Clients) != 3 {
		t.Fatalf("Clients length = %d, want built-ins plus file client", len(cfg.Clients))
	}

	partner := cfg.Clients[2]
	if partner.ClientID != "partner-client" {
		t.Errorf("ClientID = %q, want partner-client", partner.ClientID)
	}
	if len(partner.RedirectURIs) != 1 || partner.RedirectURIs[0] != "http://partner.example.com/callback" {
		t.Errorf("RedirectURIs = %v", partner.RedirectURIs)
	}
	if len(partner.GrantTypes) != 1 || partner.GrantTypes[0] != "authorization_code" {
		t.Errorf("GrantTypes = %v", partner.GrantTypes)
	}
}

func TestLoad_ClientsFileErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "not yaml",
			doc:  "{{{ definitely not yaml",
		},
		{
			name: "missing client_id",
			doc: `clients:
  - client_secret: secret-only
`,
		},
		{
			name: "missing client_secret",
			doc: `clients:
  - client_id: id-only
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)

			path := filepath.Join(t.TempDir(), "clients.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o600); err != nil {
				t.Fatalf("Failed to write clients file: %v", err)
			}
			t.Setenv("CLIENTS_FILE", path)

			if _, err := Load(); err == nil {
				t.Error("Load() with a bad clients file should fail")
			}
		})
	}
}

func TestLoad_ClientsFileMissing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLIENTS_FILE", filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Load() with a missing clients file should fail")
	}
}

func validConfig() *Config {
	return &Config{
		AuthAddr:          ":9000",
		APIAddr:           ":8000",
		AuthServerURL:     "http://localhost:9000",
		ResourceServerURL: "http://localhost:8000",
		CallbackURL:       "http://localhost:3000/callback",
		Issuer:            "https://auth.example.com",
		Audience:          "https://mcp.example.com",
		JWTSecret:         "secret",
		CodeTTL:           10 * time.Minute,
		TokenTTL:          time.Hour,
		ClockSkew:         time.Minute,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		Clients: []Client{
			{ClientID: "a", ClientSecret: "s1"},
			{ClientID: "b", ClientSecret: "s2"},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing auth addr",
			mutate:  func(cfg *Config) { cfg.AuthAddr = "" },
			wantErr: true,
		},
		{
			name:    "missing jwt secret",
			mutate:  func(cfg *Config) { cfg.JWTSecret = "" },
			wantErr: true,
		},
		{
			name:    "relative auth server url",
			mutate:  func(cfg *Config) { cfg.AuthServerURL = "localhost:9000" },
			wantErr: true,
		},
		{
			name:    "non-http scheme",
			mutate:  func(cfg *Config) { cfg.ResourceServerURL = "ftp://files.example.com" },
			wantErr: true,
		},
		{
			name:    "zero code ttl",
			mutate:  func(cfg *Config) { cfg.CodeTTL = 0 },
			wantErr: true,
		},
		{
			name:    "negative token ttl",
			mutate:  func(cfg *Config) { cfg.TokenTTL = -time.Hour },
			wantErr: true,
		},
		{
			name:    "zero read timeout",
			mutate:  func(cfg *Config) { cfg.ReadTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "no clients",
			mutate:  func(cfg *Config) { cfg.Clients = nil },
			wantErr: true,
		},
		{
			name: "duplicate client ids",
			mutate: func(cfg *Config) {
				cfg.Clients = []Client{
					{ClientID: "dup", ClientSecret: "s1"},
					{ClientID: "dup", ClientSecret: "s2"},
				}
			},
			wantErr: true,
		},
		{
			name: "client without secret",
			mutate: func(cfg *Config) {
				cfg.Clients = []Client{{ClientID: "a"}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	t.Parallel()

	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) should fail")
	}
}

func TestConfig_String_RedactsSecret(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.JWTSecret = "super-secret-value"
	s := cfg.String()

	if strings.Contains(s, "super-secret-value") {
		t.Errorf("String() leaks the JWT secret: %s", s)
	}
	if !strings.Contains(s, "[redacted]") {
		t.Error("String() should mark the JWT secret as redacted")
	}
}
