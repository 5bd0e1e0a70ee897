package auth

import (
	"context"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

// StaticPrincipalResolver derives a Principal from a verified Telegram
// identity using a fixed admin allowlist, mirroring the teacher's
// environment-driven role assignment at bootstrap rather than a
// database-backed roles table (out of the fabric's scope per spec §1:
// account/profile records belong to the data collaborator's
// boundary, not the auth collaborator's).
type StaticPrincipalResolver struct {
	adminTelegramIDs map[string]struct{}
}

func NewStaticPrincipalResolver(adminTelegramIDs []string) *StaticPrincipalResolver {
	set := make(map[string]struct{}, len(adminTelegramIDs))
	for _, id := range adminTelegramIDs {
		set[id] = struct{}{}
	}
	return &StaticPrincipalResolver{adminTelegramIDs: set}
}

func (r *StaticPrincipalResolver) Resolve(_ context.Context, telegramUserID, username string) (ctxutil.Principal, error) {
	_, isAdmin := r.adminTelegramIDs[telegramUserID]
	roles := []string{"member"}
	if isAdmin {
		roles = append(roles, "admin")
	}
	return ctxutil.Principal{
		UserID:   telegramUserID,
		Username: username,
		Roles:    roles,
		IsAdmin:  isAdmin,
	}, nil
}
