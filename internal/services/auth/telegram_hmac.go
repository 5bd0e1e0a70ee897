package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/datingapp/request-fabric/internal/domainerr"
)

// HMACTelegramVerifier implements the Telegram Mini App initData check:
// every field except "hash" is sorted and joined as "key=value" lines,
// HMAC-SHA256'd with a key derived from the bot token via the
// "WebAppData" constant, and compared against the "hash" field.
type HMACTelegramVerifier struct {
	botToken string
	maxAge   time.Duration
}

func NewHMACTelegramVerifier(botToken string, maxAge time.Duration) *HMACTelegramVerifier {
	return &HMACTelegramVerifier{botToken: botToken, maxAge: maxAge}
}

func (v *HMACTelegramVerifier) Verify(_ context.Context, initData string) (TelegramIdentity, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return TelegramIdentity{}, domainerr.Validation("initData is not valid query-encoded data")
	}

	receivedHash := values.Get("hash")
	if receivedHash == "" {
		return TelegramIdentity{}, domainerr.Validation("initData missing hash field")
	}
	values.Del("hash")

	if v.maxAge > 0 {
		authDate := values.Get("auth_date")
		if authDate == "" {
			return TelegramIdentity{}, domainerr.Validation("initData missing auth_date field")
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", k, values.Get(k)))
	}
	dataCheckString := strings.Join(lines, "\n")

	secretKey := hmac.New(sha256.New, []byte("WebAppData"))
	secretKey.Write([]byte(v.botToken))

	mac := hmac.New(sha256.New, secretKey.Sum(nil))
	mac.Write([]byte(dataCheckString))
	computedHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computedHash), []byte(receivedHash)) {
		return TelegramIdentity{}, domainerr.Unauthenticated("initData signature mismatch")
	}

	userID := values.Get("user_id")
	if userID == "" {
		userID = values.Get("id")
	}
	if userID == "" {
		return TelegramIdentity{}, domainerr.Validation("initData missing telegram user identifier")
	}

	return TelegramIdentity{
		TelegramUserID: userID,
		Username:       values.Get("username"),
	}, nil
}
