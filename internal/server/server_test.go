package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcome(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Contains(t, body["message"], "Cookbook")
}

func TestHealthEndpoints(t *testing.T) {
	_, app := newTestServer(t)

	for _, path := range []string{"/health/live", "/health/ready", "/health"} {
		t.Run(path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestReadinessWithoutRedis(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks.Database)
	assert.Equal(t, "unavailable", body.Checks.Redis)
}
