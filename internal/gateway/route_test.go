package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datingapp/request-fabric/internal/gateway"
)

func TestMatch_RouteRewritingIsTotal(t *testing.T) {
	table := gateway.BuildRouteTable()

	cases := []struct {
		name       string
		path       string
		wantTarget string
		wantPath   string
	}{
		{"v1 auth strips prefix", "/v1/auth/validate", "auth", "/auth/validate"},
		{"v1 auth root preserved", "/v1/auth", "auth", "/"},
		{"v1 profiles alias", "/v1/profiles/42", "profile", "/profiles/42"},
		{"v1 profile singular alias", "/v1/profile/42", "profile", "/profile/42"},
		{"v1 discovery", "/v1/discovery/like", "discovery", "/discovery/like"},
		{"v1 media", "/v1/media/upload", "media", "/media/upload"},
		{"v1 chat", "/v1/chat/conversations/1/messages", "chat", "/chat/conversations/1/messages"},
		{"v1 admin", "/v1/admin/users/suspend", "admin", "/admin/users/suspend"},
		{"v1 notifications", "/v1/notifications/send", "notification", "/notifications/send"},
		{"api v1 auth rewrite", "/api/v1/auth/validate", "auth", "/auth/validate"},
		{"api v1 profile singular", "/api/v1/profile/check", "profile", "/profiles/check"},
		{"api v1 profile plural", "/api/v1/profiles/check", "profile", "/profiles/check"},
		{"api v1 discover alias", "/api/v1/discover/next", "discovery", "/discovery/next"},
		{"api v1 like alias", "/api/v1/like/77", "discovery", "/discovery/77"},
		{"api v1 matches alias", "/api/v1/matches", "discovery", "/discovery"},
		{"api v1 photos", "/api/v1/photos/upload", "media", "/media/upload"},
		{"api v1 notifications", "/api/v1/notifications/list", "notification", "/notifications/list"},
		{"api v1 admin legacy mount", "/api/v1/admin/moderation/decide", "admin", "/admin-panel/moderation/decide"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target, rewritten, ok := gateway.Match(table, tc.path)
			assert.True(t, ok, "expected %s to match a route", tc.path)
			assert.Equal(t, tc.wantTarget, target)
			assert.Equal(t, tc.wantPath, rewritten)
		})
	}
}

func TestMatch_UnknownPathReturnsNoRoute(t *testing.T) {
	table := gateway.BuildRouteTable()
	_, _, ok := gateway.Match(table, "/nonexistent/path")
	assert.False(t, ok)
}

func TestMatch_ProfileCheckLiteralExample(t *testing.T) {
	// Literal case from spec: GET /api/v1/profile/check?user_id=42 must
	// arrive at the Profile service as GET /profiles/check?user_id=42.
	table := gateway.BuildRouteTable()
	target, rewritten, ok := gateway.Match(table, "/api/v1/profile/check")
	assert.True(t, ok)
	assert.Equal(t, "profile", target)
	assert.Equal(t, "/profiles/check", rewritten)
}
