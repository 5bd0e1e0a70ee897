package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/response"
)

func TestError_UniformEnvelope(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domainerr.Validation("bad input"), 400, "VAL_001"},
		{"missing token", domainerr.Unauthenticated("missing"), 401, "AUTH_001"},
		{"forbidden", domainerr.Forbidden("nope"), 403, "AUTH_004"},
		{"rate limited", domainerr.RateLimited("slow down"), 429, "RATE_001"},
		{"circuit open", domainerr.CircuitOpen("breaker open"), 503, "SYS_002"},
		{"unknown error", assertErr{}, 500, "SYS_001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req = req.WithContext(ctxutil.WithTraceID(req.Context(), "trace-123"))
			rec := httptest.NewRecorder()

			response.Error(rec, req, tc.err)

			require.Equal(t, tc.wantStatus, rec.Code)
			var env response.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.wantCode, env.Error.Code)
			assert.Equal(t, "trace-123", env.Meta.TraceID)
		})
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

// TestError_RateLimitedCarriesRetryAfterInBody guards spec §4.5 and
// property 9(c): the 429 body must carry retry_after, not just the
// Retry-After header.
func TestError_RateLimitedCarriesRetryAfterInBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()

	response.Error(rec, req, domainerr.RateLimitedWithRetryAfter("slow down", 30))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, 30, env.Error.RetryAfter)
}

// TestError_DetailsPassThrough guards spec §6's envelope details field.
func TestError_DetailsPassThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()

	response.Error(rec, req, domainerr.Validation("bad input").WithDetails(map[string]string{"field": "body"}))

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.NotNil(t, env.Error.Details)
}
