package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthFixture(t *testing.T, dbErr, redisErr error) *testFixture {
	t.Helper()
	srv := New(testConfig(), Deps{
		Users:   newMockUserRepo(),
		Servers: newMockServerRepo(),
		Usage:   &mockUsageRepo{},
		DB:      &stubPinger{err: dbErr},
		Redis:   &stubPinger{err: redisErr},
		Clock:   clockwork.NewFakeClock(),
	})
	return &testFixture{srv: srv}
}

func TestHealth_AllUp(t *testing.T) {
	f := newHealthFixture(t, nil, nil)

	rec := f.doUnauthenticated(http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status   string            `json:"status"`
		Service  string            `json:"service"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "api", body.Service)
	assert.Equal(t, "up", body.Services["database"])
	assert.Equal(t, "up", body.Services["redis"])
}

func TestHealth_RedisDownReturns503(t *testing.T) {
	f := newHealthFixture(t, nil, errors.New("connection refused"))

	rec := f.doUnauthenticated(http.MethodGet, "/health")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"down"`)
	assert.Contains(t, rec.Body.String(), `"unhealthy"`)
}

func TestReady_DependsOnDatabaseOnly(t *testing.T) {
	f := newHealthFixture(t, nil, errors.New("redis down"))
	rec := f.doUnauthenticated(http.MethodGet, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)

	f = newHealthFixture(t, errors.New("db down"), nil)
	rec = f.doUnauthenticated(http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLive_AlwaysOK(t *testing.T) {
	f := newHealthFixture(t, errors.New("db down"), errors.New("redis down"))

	rec := f.doUnauthenticated(http.MethodGet, "/live")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}

func TestMetricsEndpointExposed(t *testing.T) {
	f := newHealthFixture(t, nil, nil)

	rec := f.doUnauthenticated(http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
}
