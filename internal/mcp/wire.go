package mcp

// Config carries the identity the server reports during initialize.
type Config struct {
	// ServerName is reported to clients in the initialize handshake.
	ServerName string

	// ServerVersion is reported alongside the name.
	ServerVersion string
}

// NewHandler creates the JSON-RPC handler that routes requests to the
// given tool and resource registries.
func NewHandler(cfg *Config, toolRegistry ToolRegistry, resourceRegistry ResourceRegistry) Handler {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if toolRegistry == nil {
		panic("toolRegistry cannot be nil")
	}
	if resourceRegistry == nil {
		panic("resourceRegistry cannot be nil")
	}

	info := serverInfo{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}

	return newHandler(toolRegistry, resourceRegistry, info)
}

// NewMCPServices builds the handler together with empty registries, for
// callers that wire tools and resources afterwards.
func NewMCPServices(cfg *Config) (Handler, ToolRegistry, ResourceRegistry) {
	toolRegistry := NewToolRegistry()
	resourceRegistry := NewResourceRegistry()
	handler := NewHandler(cfg, toolRegistry, resourceRegistry)

	return handler, toolRegistry, resourceRegistry
}
