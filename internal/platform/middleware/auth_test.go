package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/middleware"
)

type fakeAuthenticator struct{}

func (fakeAuthenticator) Authenticate(ctx context.Context, token string) (ctxutil.Principal, error) {
	if token == "valid" {
		return ctxutil.Principal{UserID: "u1"}, nil
	}
	return ctxutil.Principal{}, domainerr.InvalidToken("bad token")
}

func TestAuthentication_BypassList(t *testing.T) {
	called := false
	handler := middleware.Authentication(fakeAuthenticator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, path := range []string{"/health", "/metrics", "/sync-metrics", "/auth/validate", "/auth/refresh", "/admin/login"} {
		called = false
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.True(t, called, "expected %s to bypass authentication", path)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

// TestAuthentication_VerifyIsNotBypassed guards spec §4.2(9)'s carve-out:
// every other /auth/* path is exempt except /auth/verify, which must
// still demand a bearer token like any other route.
func TestAuthentication_VerifyIsNotBypassed(t *testing.T) {
	handler := middleware.Authentication(fakeAuthenticator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthentication_RejectsMissingToken(t *testing.T) {
	handler := middleware.Authentication(fakeAuthenticator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/discovery/like", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthentication_AcceptsValidToken(t *testing.T) {
	var principal ctxutil.Principal
	handler := middleware.Authentication(fakeAuthenticator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = ctxutil.PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/discovery/like", nil)
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", principal.UserID)
}
