package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogMessenger is the reference Messenger the platform injects when no
// push/SMS/email provider is configured: it records the delivery via
// structured logging. A production deployment swaps this for a real
// provider client behind the same interface.
type LogMessenger struct {
	logger *zap.Logger
}

func NewLogMessenger(logger *zap.Logger) *LogMessenger {
	return &LogMessenger{logger: logger}
}

func (m *LogMessenger) Send(_ context.Context, userID, kind, body string) error {
	m.logger.Info("notification delivered",
		zap.String("user_id", userID),
		zap.String("kind", kind),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}
