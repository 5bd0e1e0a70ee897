package auth

import (
	"context"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

// Authenticate adapts TokenService.Verify to platform/middleware.Authenticator
// so every other service can link against the same verifier the auth
// collaborator uses to issue tokens.
func (s *TokenService) Authenticate(_ context.Context, token string) (ctxutil.Principal, error) {
	return s.Verify(token)
}
