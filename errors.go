package mermaid

import (
	"errors"
	"fmt"
)

// The API reports some failures in-band, inside an HTTP 200 body. They map
// to these sentinels.
var (
	// ErrBadQueryParameters is returned when the API rejects the method or
	// its parameters, including WFS queries that match nothing.
	ErrBadQueryParameters = errors.New("wrong query parameters")

	// ErrInvalidAPIKey is returned when the API rejects the supplied key.
	ErrInvalidAPIKey = errors.New("wrong or missing api key")

	// ErrUnauthorized is returned when the requested dataset needs a key
	// and none was accepted.
	ErrUnauthorized = errors.New("unauthorized access to data")

	// ErrCacheDirectory is returned by CacheEnable when the directory for
	// the cache file does not exist.
	ErrCacheDirectory = errors.New("cache directory does not exist")
)

// ConnectivityError reports a transport-level failure: the request never
// completed, or completed with a non-OK status.
type ConnectivityError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ConnectivityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s failed: status %d", e.URL, e.StatusCode)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ResponseFormatError reports a body that decoded, but not into the shape
// the endpoint is documented to return.
type ResponseFormatError struct {
	Endpoint string
	Err      error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s: %v", e.Endpoint, e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }
