package httpcache

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Transport is an http.RoundTripper that serves GET requests from a Store
// when caching is enabled, and populates the store after real round trips.
// The cache key is the request's full URL. Toggling is atomic: enabling or
// disabling affects subsequent requests only.
type Transport struct {
	base    http.RoundTripper
	logger  *zap.Logger
	enabled atomic.Bool

	mu    sync.RWMutex
	store Store
	ttl   time.Duration
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, logger *zap.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{base: base, logger: logger}
}

// Enable installs the store and starts serving from it.
func (t *Transport) Enable(store Store, ttl time.Duration) {
	t.mu.Lock()
	t.store = store
	t.ttl = ttl
	t.mu.Unlock()
	t.enabled.Store(true)
}

// Disable stops consulting the cache. The store stays installed so that
// Enable can be undone and redone without reopening it.
func (t *Transport) Disable() {
	t.enabled.Store(false)
}

// Enabled reports whether requests currently consult the cache.
func (t *Transport) Enabled() bool {
	return t.enabled.Load()
}

// Store returns the installed store, if any.
func (t *Transport) Store() Store {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.store
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.enabled.Load() || req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}

	t.mu.RLock()
	store, ttl := t.store, t.ttl
	t.mu.RUnlock()
	if store == nil {
		return t.base.RoundTrip(req)
	}

	signature := req.URL.String()

	body, ok, err := store.Get(req.Context(), signature)
	if err != nil {
		// A broken cache must not break the call.
		t.logger.Warn("Cache lookup failed", zap.String("signature", signature), zap.Error(err))
	}
	if ok {
		t.logger.Debug("Cache hit", zap.String("signature", signature))
		return cachedResponse(req, body), nil
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	payload, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(payload))

	if err := store.Set(req.Context(), signature, payload, ttl); err != nil {
		t.logger.Warn("Cache store failed", zap.String("signature", signature), zap.Error(err))
	}

	return resp, nil
}

func cachedResponse(req *http.Request, body []byte) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		Status:        http.StatusText(http.StatusOK),
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
