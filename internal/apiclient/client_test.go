package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetStats(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"users":10,"servers":{"total":4,"active":3,"inactive":1}}}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret-key")
	stats, err := client.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, 10, stats.Users)
	assert.Equal(t, 4, stats.Servers.Total)
	assert.Equal(t, 3, stats.Servers.Active)
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"Invalid API key","code":"UNAUTHORIZED"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "wrong-key")
	_, err := client.GetStats(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHORIZED")
}

func TestClient_CircuitBreakerOpensAfterFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"boom","code":"INTERNAL_ERROR"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "key")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.GetStats(ctx)
		require.Error(t, err)
	}

	// The breaker is now open; the request fails fast without reaching
	// the server.
	_, err := client.GetStats(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, "key")
	assert.True(t, client.Health(context.Background()))

	client = New("http://127.0.0.1:1", "key")
	assert.False(t, client.Health(context.Background()))
}
