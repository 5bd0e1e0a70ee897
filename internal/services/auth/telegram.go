package auth

import "context"

// TelegramIdentity is the subset of Telegram initData the platform needs
// once the HMAC signature has been verified.
type TelegramIdentity struct {
	TelegramUserID string
	Username       string
}

// TelegramVerifier checks the HMAC signature on Telegram WebApp initData.
// The crypto primitive itself is out of the fabric's scope per spec §1;
// this interface is the boundary the platform injects a real
// implementation behind.
type TelegramVerifier interface {
	Verify(ctx context.Context, initData string) (TelegramIdentity, error)
}
