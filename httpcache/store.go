// Package httpcache caches HTTP GET responses in a persistent store keyed
// by the full request signature (path plus encoded query string, API key
// included). It ships a SQLite-file store, a Redis store and a caching
// http.RoundTripper that can be toggled at runtime.
package httpcache

import (
	"context"
	"time"
)

// Store is a persistent response cache keyed by request signature.
// Implementations must treat an expired entry as a miss.
type Store interface {
	// Get returns the cached body for the signature, with ok reporting a
	// fresh hit.
	Get(ctx context.Context, signature string) (body []byte, ok bool, err error)
	// Set stores a body under the signature. A non-positive ttl stores the
	// entry without expiry.
	Set(ctx context.Context, signature string, body []byte, ttl time.Duration) error
	// Close releases the store's resources.
	Close() error
}
