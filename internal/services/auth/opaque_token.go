package auth

import "github.com/google/uuid"

// generateOpaqueToken mints a refresh token that carries no claims of its
// own; RefreshStore is the only place that maps it back to a principal.
func generateOpaqueToken() string {
	return uuid.NewString() + uuid.NewString()
}
