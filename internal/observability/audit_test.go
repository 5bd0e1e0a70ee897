package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAuditEvent(t *testing.T) {
	ctx := context.Background()

	// With no auth claims (passed explicitly as "anonymous")
	event := NewAuditEvent(ctx, ActionCreate, "note:123", "anonymous", nil)
	assert.Equal(t, ActionCreate, event.Action)
	assert.Equal(t, "note:123", event.Resource)
	assert.Equal(t, "anonymous", event.ActorID)
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Second)

	// With explicit actorID and Status default
	eventWithAuth := NewAuditEvent(ctx, ActionUpdate, "note:456", "user-1", nil)
	assert.Equal(t, "user-1", eventWithAuth.ActorID)
	assert.Equal(t, "success", eventWithAuth.Status) // Default status

	// With metadata redaction
	metadata := map[string]any{"password": "pw"}
	eventWithMeta := NewAuditEvent(ctx, ActionLogin, "user:1", "user-1", metadata)
	assert.Equal(t, RedactedValue, eventWithMeta.Metadata["password"])

	// RequestID is no longer auto-extracted
	eventWithReq := NewAuditEvent(ctx, ActionCreate, "note:789", "user-1", nil)
	assert.Empty(t, eventWithReq.RequestID)
	// Caller sets it manually
	eventWithReq.RequestID = "req-123"
	assert.Equal(t, "req-123", eventWithReq.RequestID)
}
