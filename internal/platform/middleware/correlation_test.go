package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/middleware"
)

func TestCorrelation_GeneratesWhenAbsent(t *testing.T) {
	var seen string
	handler := middleware.Correlation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(middleware.HeaderCorrelationID))
}

func TestCorrelation_PreservesInbound(t *testing.T) {
	var seen string
	handler := middleware.Correlation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.HeaderCorrelationID, "caller-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "caller-supplied-id", seen)
	assert.Equal(t, "caller-supplied-id", rec.Header().Get(middleware.HeaderCorrelationID))
}
