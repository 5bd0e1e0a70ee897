package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/middleware"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

type rejectingLimiter struct{}

func (rejectingLimiter) Allow(context.Context, string, string) (bool, int, error) {
	return false, 30, nil
}

// TestRateLimit_RejectionCarriesRetryAfterInBodyAndHeader guards spec
// §4.5 and property 9(c): a 429 must set both the Retry-After header and
// the body's retry_after field.
func TestRateLimit_RejectionCarriesRetryAfterInBodyAndHeader(t *testing.T) {
	handler := middleware.RateLimit(rejectingLimiter{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run once rate limited")
	}))

	req := httptest.NewRequest(http.MethodGet, "/discovery/like", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "RATE_001", env.Error.Code)
	assert.Equal(t, 30, env.Error.RetryAfter)
}
