package ports

import "context"

// Port: an optional cache for computed route payloads, keyed by a
// canonical request hash. Purely a performance layer; correctness never
// depends on it and cache failures must not fail a request.
type RouteCache interface {
	// Return the cached payload for key, with a hit indicator.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Store payload under key, subject to the cache's own expiry policy.
	Put(ctx context.Context, key string, payload []byte) error
}
