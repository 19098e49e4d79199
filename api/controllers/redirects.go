package controllers

import (
	"context"
	"sync"
)

// RedirectRegistry collects pending client-side route changes pushed by the
// checkout service. The storefront polls them away.
type RedirectRegistry struct {
	mu      sync.Mutex
	pending map[string]string
}

// NewRedirectRegistry constructs an empty registry.
func NewRedirectRegistry() *RedirectRegistry {
	return &RedirectRegistry{pending: make(map[string]string)}
}

// Navigate records the path the shopper should be sent to next.
func (r *RedirectRegistry) Navigate(ctx context.Context, shopperID, path string) {
	if shopperID == "" || path == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[shopperID] = path
}

// Consume returns the pending path for the shopper and clears it.
func (r *RedirectRegistry) Consume(shopperID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	path, ok := r.pending[shopperID]
	if ok {
		delete(r.pending, shopperID)
	}
	return path, ok
}
