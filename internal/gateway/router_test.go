package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/gateway"
	"github.com/datingapp/request-fabric/internal/observability"
)

// TestRouter_HealthEndpointsReturnStatusBody guards spec §6: both
// GET /health and GET /api/health must return the gateway's health body
// directly, not a legacy redirect.
func TestRouter_HealthEndpointsReturnStatusBody(t *testing.T) {
	router, err := gateway.NewRouter(gateway.Config{
		ServiceBaseURLs: map[string]string{"profile": "http://profile.internal"},
		CORSOrigin:      "https://app.example.com",
	}, observability.NewNopLogger())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	defer srv.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

	for _, path := range []string{"/health", "/api/health"} {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, "path %s", path)

		var body struct {
			Status  string            `json:"status"`
			Service string            `json:"service"`
			Routes  map[string]string `json:"routes"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "api-gateway", body.Service)
		assert.Equal(t, "http://profile.internal", body.Routes["profile"])
	}
}

func TestRouter_LegacyPathsRedirect(t *testing.T) {
	router, err := gateway.NewRouter(gateway.Config{
		ServiceBaseURLs: map[string]string{},
		CORSOrigin:      "https://app.example.com",
	}, observability.NewNopLogger())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	defer srv.Close()

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}

	cases := []struct {
		path     string
		wantLoc  string
		wantCode int
	}{
		{"/auth/verify", "/v1/auth/verify", http.StatusMovedPermanently},
		{"/api/profile", "/api/v1/profile", http.StatusMovedPermanently},
	}

	for _, tc := range cases {
		resp, err := client.Get(srv.URL + tc.path)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, tc.wantCode, resp.StatusCode)
		assert.Equal(t, tc.wantLoc, resp.Header.Get("Location"))
	}
}

func TestRouter_ForwardsToMatchedService(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	router, err := gateway.NewRouter(gateway.Config{
		ServiceBaseURLs: map[string]string{"profile": upstream.URL},
		CORSOrigin:      "https://app.example.com",
	}, observability.NewNopLogger())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/profile/check?user_id=42")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/profiles/check", gotPath)
}

func TestRouter_UnmatchedPathIs404(t *testing.T) {
	router, err := gateway.NewRouter(gateway.Config{
		ServiceBaseURLs: map[string]string{},
		CORSOrigin:      "https://app.example.com",
	}, observability.NewNopLogger())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
