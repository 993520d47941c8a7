// Package mapservice is the map-serving collaborator: it dispatches
// generation requests to the three dungeon generators, encodes the result
// as map JSON, and tracks connected clients. It is a thin hand-off layer
// with no algorithmic substance of its own.
package mapservice

import (
	"sync"

	"dungeonforge/internal/wireproto"
)

// Client is a single connected consumer of the map service, identified by
// whatever the transport layer assigns (a session id, a remote address).
type Client struct {
	ID   string
	Send chan wireproto.Frame
}

// Registry tracks connected clients under a single mutex, the same
// client-manager shape used by other connection-tracking servers in this
// codebase's lineage.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewRegistry returns an empty client registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Add registers a client under id, replacing any previous entry.
func (r *Registry) Add(id string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[id] = c
}

// Remove drops a client from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Get returns the client registered under id, if any.
func (r *Registry) Get(id string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	return c, ok
}

// Count reports how many clients are currently registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Broadcast sends a frame to every registered client, dropping it for any
// client whose send channel is full rather than blocking the broadcaster.
func (r *Registry) Broadcast(frame wireproto.Frame) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		select {
		case c.Send <- frame:
		default:
		}
	}
}
