// Package mermaid is a client for the Warsaw Open Data API
// (https://api.um.warszawa.pl). One accessor method per dataset issues a
// GET against the endpoint table, normalizes the response into typed
// records and returns them in response order. Responses can be served
// from a persistent cache keyed by the full request signature.
package mermaid

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mermaid-go/mermaid/config"
	"github.com/mermaid-go/mermaid/httpcache"
	"go.uber.org/zap"
)

const cacheFileName = "warsaw_cache.db"

// Client talks to the Warsaw Open Data API. It owns one HTTP client and,
// when caching is enabled, one cache store; Close releases both. Accessor
// methods are safe for concurrent use.
type Client struct {
	httpClient *http.Client
	transport  *httpcache.Transport
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithTimeout overrides the default 30s HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithLogger installs a logger; the default is a no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient replaces the underlying HTTP client. Its transport is
// still wrapped by the caching layer.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New builds a client for the public API using the given key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    config.DefaultBaseURL,
		apiKey:     apiKey,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.transport = httpcache.NewTransport(c.httpClient.Transport, c.logger)
	c.httpClient.Transport = c.transport

	return c
}

// NewFromConfig builds a client from a loaded configuration. A nil logger
// means no logging. When the configuration names a cache path, caching
// starts enabled.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := New(cfg.APIKey,
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.HTTPTimeout),
		WithLogger(logger),
	)
	if cfg.CachePath != "" {
		if err := c.CacheEnable(cfg.CachePath, cfg.CacheTTL); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// CacheOption adjusts what CacheEnable does with pre-existing entries.
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	forceClear   bool
	clearExpired bool
}

// WithForceClear drops every cached response when enabling.
func WithForceClear() CacheOption {
	return func(o *cacheOptions) { o.forceClear = true }
}

// WithClearExpired purges expired responses when enabling.
func WithClearExpired() CacheOption {
	return func(o *cacheOptions) { o.clearExpired = true }
}

// CacheEnable opens (or creates) the cache file inside dir and starts
// serving repeated requests from it. The directory must already exist.
// Enabling affects subsequent calls only. A non-positive ttl caches
// without expiry.
func (c *Client) CacheEnable(dir string, ttl time.Duration, opts ...CacheOption) error {
	var o cacheOptions
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrCacheDirectory, dir)
	}

	// Reuse the already-open store when re-enabling.
	if store := c.transport.Store(); store != nil {
		c.transport.Enable(store, ttl)
	} else {
		store, err := httpcache.NewSQLiteStore(filepath.Join(dir, cacheFileName), c.logger)
		if err != nil {
			return err
		}
		c.transport.Enable(store, ttl)
	}

	if sqlite, ok := c.transport.Store().(*httpcache.SQLiteStore); ok {
		ctx := context.Background()
		if o.forceClear {
			if err := sqlite.Clear(ctx); err != nil {
				return err
			}
		}
		if o.clearExpired {
			if err := sqlite.DeleteExpired(ctx); err != nil {
				return err
			}
		}
	}

	c.logger.Info("Cache enabled", zap.String("dir", dir), zap.Duration("ttl", ttl))
	return nil
}

// CacheEnableStore starts serving from a caller-supplied store, e.g. a
// httpcache.RedisStore. The client takes ownership and closes it on Close.
func (c *Client) CacheEnableStore(store httpcache.Store, ttl time.Duration) {
	c.transport.Enable(store, ttl)
	c.logger.Info("Cache enabled", zap.Duration("ttl", ttl))
}

// CacheDisable stops consulting the cache. Calls already in flight are
// unaffected.
func (c *Client) CacheDisable() {
	c.transport.Disable()
	c.logger.Info("Cache disabled")
}

// CacheEnabled reports whether requests currently consult the cache.
func (c *Client) CacheEnabled() bool {
	return c.transport.Enabled()
}

// Close releases the cache store and idle HTTP connections. The client
// must not be used afterwards.
func (c *Client) Close() error {
	c.transport.Disable()
	c.httpClient.CloseIdleConnections()
	if store := c.transport.Store(); store != nil {
		if err := store.Close(); err != nil {
			return fmt.Errorf("failed to close cache store: %w", err)
		}
	}
	return nil
}
