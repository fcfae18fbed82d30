// Package clients provides the static OAuth client registry.
package clients

import (
	"crypto/subtle"

	"github.com/vgupta/flight-booking-mcp/internal/authserver/authcore"
)

// Registry is an immutable lookup table of registered OAuth clients.
// It is built once at startup and safe for concurrent reads without locking.
type Registry struct {
	clients map[string]*authcore.Client
}

// NewRegistry builds a registry from the configured client set.
// Later entries with a duplicate client_id are ignored; config validation
// rejects duplicates before this point.
func NewRegistry(clients []authcore.Client) *Registry {
	byID := make(map[string]*authcore.Client, len(clients))
	for i := range clients {
		client := clients[i]
		if _, exists := byID[client.ClientID]; exists {
			continue
		}
		byID[client.ClientID] = &client
	}
	return &Registry{clients: byID}
}

// Lookup resolves a client_id to its record.
// Returns authcore.ErrClientNotFound for unknown ids.
func (r *Registry) Lookup(clientID string) (*authcore.Client, error) {
	client, ok := r.clients[clientID]
	if !ok {
		return nil, authcore.ErrClientNotFound
	}
	return client, nil
}

// Verify checks client credentials. Unknown clients fail. When a secret is
// supplied it must match exactly; the comparison is constant-time to avoid
// timing leaks. An empty secret only verifies that the client exists, which
// is the contract the authorize endpoint uses before the approval step.
func (r *Registry) Verify(clientID, clientSecret string) bool {
	client, ok := r.clients[clientID]
	if !ok {
		return false
	}
	if clientSecret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(client.ClientSecret), []byte(clientSecret)) == 1
}

// ClientIDs returns the registered client ids, for the status document.
func (r *Registry) ClientIDs() []string {
	ids := make([]string, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	return ids
}
