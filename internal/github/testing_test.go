package github

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestPool serves mux under the enterprise API prefix go-github expects.
func newTestPool(t *testing.T, mux *http.ServeMux, tokens ...string) *ClientPool {
	t.Helper()
	server := httptest.NewServer(http.StripPrefix("/api/v3", mux))
	t.Cleanup(server.Close)

	pool, err := NewClientPool(tokens, nil)
	require.NoError(t, err)
	require.NoError(t, pool.UseEnterprise(server.URL))
	return pool
}
