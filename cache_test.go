package mermaid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountingClient(t *testing.T) (*Client, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"result":{"records":[` + treeRecordJSON + `]}}`))
	}))
	t.Cleanup(srv.Close)

	client := New("test-key", WithBaseURL(srv.URL))
	t.Cleanup(func() { client.Close() })
	return client, &calls
}

func TestCacheEnable(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated call is served from the cache", func(t *testing.T) {
		client, calls := newCountingClient(t)
		require.NoError(t, client.CacheEnable(t.TempDir(), time.Hour))
		assert.True(t, client.CacheEnabled())

		first, err := client.Trees(ctx, SearchParams{Limit: 5})
		require.NoError(t, err)
		second, err := client.Trees(ctx, SearchParams{Limit: 5})
		require.NoError(t, err)

		assert.Equal(t, 1, *calls)
		assert.Equal(t, first, second)
	})

	t.Run("different parameters bypass the cached entry", func(t *testing.T) {
		client, calls := newCountingClient(t)
		require.NoError(t, client.CacheEnable(t.TempDir(), time.Hour))

		_, err := client.Trees(ctx, SearchParams{Limit: 5})
		require.NoError(t, err)
		_, err = client.Trees(ctx, SearchParams{Limit: 10})
		require.NoError(t, err)

		assert.Equal(t, 2, *calls)
	})

	t.Run("enabling affects subsequent calls only", func(t *testing.T) {
		client, calls := newCountingClient(t)

		_, err := client.Trees(ctx, SearchParams{})
		require.NoError(t, err)
		assert.Equal(t, 1, *calls)

		require.NoError(t, client.CacheEnable(t.TempDir(), time.Hour))

		// Nothing was recorded before enabling, so the next call still
		// goes out; the one after is a hit.
		_, err = client.Trees(ctx, SearchParams{})
		require.NoError(t, err)
		_, err = client.Trees(ctx, SearchParams{})
		require.NoError(t, err)
		assert.Equal(t, 2, *calls)
	})

	t.Run("disable and re-enable keep the recorded responses", func(t *testing.T) {
		client, calls := newCountingClient(t)
		dir := t.TempDir()
		require.NoError(t, client.CacheEnable(dir, time.Hour))

		_, err := client.Trees(ctx, SearchParams{})
		require.NoError(t, err)

		client.CacheDisable()
		assert.False(t, client.CacheEnabled())
		_, err = client.Trees(ctx, SearchParams{})
		require.NoError(t, err)
		assert.Equal(t, 2, *calls)

		require.NoError(t, client.CacheEnable(dir, time.Hour))
		_, err = client.Trees(ctx, SearchParams{})
		require.NoError(t, err)
		assert.Equal(t, 2, *calls)
	})

	t.Run("force clear drops recorded responses", func(t *testing.T) {
		client, calls := newCountingClient(t)
		dir := t.TempDir()
		require.NoError(t, client.CacheEnable(dir, time.Hour))

		_, err := client.Trees(ctx, SearchParams{})
		require.NoError(t, err)

		require.NoError(t, client.CacheEnable(dir, time.Hour, WithForceClear()))
		_, err = client.Trees(ctx, SearchParams{})
		require.NoError(t, err)
		assert.Equal(t, 2, *calls)
	})

	t.Run("missing directory is rejected", func(t *testing.T) {
		client, _ := newCountingClient(t)
		err := client.CacheEnable(filepath.Join(t.TempDir(), "does-not-exist"), time.Hour)
		assert.ErrorIs(t, err, ErrCacheDirectory)
		assert.False(t, client.CacheEnabled())
	})

	t.Run("file in place of the directory is rejected", func(t *testing.T) {
		client, _ := newCountingClient(t)
		path := filepath.Join(t.TempDir(), "cachefile")
		require.NoError(t, os.WriteFile(path, []byte("not a directory"), 0o600))

		err := client.CacheEnable(path, time.Hour)
		assert.ErrorIs(t, err, ErrCacheDirectory)
	})
}

func TestClose(t *testing.T) {
	client, _ := newCountingClient(t)
	require.NoError(t, client.CacheEnable(t.TempDir(), time.Hour))

	require.NoError(t, client.Close())
	assert.False(t, client.CacheEnabled())
}
