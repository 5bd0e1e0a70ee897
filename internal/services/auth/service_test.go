package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/services/auth"
)

type fakeTelegram struct {
	identity auth.TelegramIdentity
	err      error
}

func (f fakeTelegram) Verify(ctx context.Context, initData string) (auth.TelegramIdentity, error) {
	return f.identity, f.err
}

type fakeResolver struct{}

func (fakeResolver) Resolve(ctx context.Context, telegramUserID, username string) (ctxutil.Principal, error) {
	return ctxutil.Principal{UserID: telegramUserID, Username: username, Roles: []string{"member"}}, nil
}

func newTestService(t *testing.T) *auth.Service {
	tokens, err := auth.NewTokenService(auth.JWTConfig{
		SecretKey: []byte("a-properly-long-enough-secret-key-value"),
		TokenTTL:  time.Minute,
	})
	require.NoError(t, err)
	return auth.NewService(tokens, fakeTelegram{identity: auth.TelegramIdentity{TelegramUserID: "42", Username: "alice"}}, fakeResolver{}, auth.NewInMemoryRefreshStore())
}

func TestService_ValidateIssuesTokenPair(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.Validate(context.Background(), "valid-init-data")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "42", pair.UserID)
	assert.Equal(t, "alice", pair.Username)

	principal, err := svc.Verify(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "42", principal.UserID)
	assert.Equal(t, "alice", principal.Username)
}

func TestService_RefreshRotatesToken(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.Validate(context.Background(), "valid-init-data")
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// the consumed refresh token cannot be redeemed twice
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.Error(t, err)
}

func TestService_VerifyRejectsGarbage(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Verify(context.Background(), "not-a-jwt")
	assert.Error(t, err)
}
