package aws

import (
	"context"
	"fmt"
	"sync"
)

// ClientFactory builds a service client for a region.
type ClientFactory[T any] func(ctx context.Context, region string) (T, error)

// ClientRegistry lazily creates one client per region and keeps it for the lifetime
// of the registry. Entries are never invalidated.
type ClientRegistry[T any] struct {
	mu      sync.Mutex
	factory ClientFactory[T]
	clients map[string]T
}

// NewClientRegistry creates a registry backed by factory.
func NewClientRegistry[T any](factory ClientFactory[T]) *ClientRegistry[T] {
	return &ClientRegistry[T]{
		factory: factory,
		clients: make(map[string]T),
	}
}

// Get returns the client for region, creating it on first use.
func (r *ClientRegistry[T]) Get(ctx context.Context, region string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[region]; ok {
		return client, nil
	}

	client, err := r.factory(ctx, region)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("creating client for region %s: %w", region, err)
	}
	r.clients[region] = client
	return client, nil
}
