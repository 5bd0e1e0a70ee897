package chat_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/eventbus"
	"github.com/datingapp/request-fabric/internal/services/chat"
)

func TestService_SendMessagePublishesOnce(t *testing.T) {
	bus := eventbus.NewInMemoryBus()
	svc := chat.NewService(chat.NewInMemoryMessageStore(), bus)

	msg, err := svc.SendMessage(context.Background(), "conv-1", "alice", "hello", "text", "key-1")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "hello", msg.Body)
	assert.Len(t, bus.Events, 1)
	assert.Equal(t, eventbus.RoutingKeyMessageSent, bus.Events[0].RoutingKey)
}

// TestService_MessageSentPayloadShapeAndCorrelationID guards spec §4.6's
// message.sent payload and property 7's correlation-id propagation: the
// event must carry the request's correlation id, not the idempotency key.
func TestService_MessageSentPayloadShapeAndCorrelationID(t *testing.T) {
	bus := eventbus.NewInMemoryBus()
	svc := chat.NewService(chat.NewInMemoryMessageStore(), bus)

	ctx := ctxutil.WithCorrelationID(context.Background(), "corr-456")
	msg, err := svc.SendMessage(ctx, "conv-1", "alice", "hello", "text", "key-1")
	require.NoError(t, err)

	require.Len(t, bus.Events, 1)
	event := bus.Events[0]
	assert.Equal(t, "corr-456", event.CorrelationID)

	var payload struct {
		ConversationID string `json:"conversation_id"`
		SenderID       string `json:"sender_id"`
		Content        string `json:"content"`
		ContentType    string `json:"content_type"`
		MessageID      string `json:"message_id"`
		SentAt         string `json:"sent_at"`
	}
	require.NoError(t, json.Unmarshal(event.Payload, &payload))

	assert.Equal(t, "conv-1", payload.ConversationID)
	assert.Equal(t, "alice", payload.SenderID)
	assert.Equal(t, "hello", payload.Content)
	assert.Equal(t, "text", payload.ContentType)
	assert.Equal(t, msg.ID, payload.MessageID)
	assert.NotEmpty(t, payload.SentAt)
}

func TestService_RetriedSendIsIdempotent(t *testing.T) {
	bus := eventbus.NewInMemoryBus()
	svc := chat.NewService(chat.NewInMemoryMessageStore(), bus)

	first, err := svc.SendMessage(context.Background(), "conv-1", "alice", "hello", "text", "key-1")
	require.NoError(t, err)

	second, err := svc.SendMessage(context.Background(), "conv-1", "alice", "hello retried", "text", "key-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "hello", second.Body, "the retried body must not overwrite the original")
	assert.Len(t, bus.Events, 1, "a retried send must not publish a second event")
}

func TestService_RejectsEmptyBody(t *testing.T) {
	svc := chat.NewService(chat.NewInMemoryMessageStore(), eventbus.NewInMemoryBus())
	_, err := svc.SendMessage(context.Background(), "conv-1", "alice", "", "text", "key-1")
	assert.Error(t, err)
}

func TestService_MissingIdempotencyKeyStillSucceeds(t *testing.T) {
	svc := chat.NewService(chat.NewInMemoryMessageStore(), eventbus.NewInMemoryBus())
	msg, err := svc.SendMessage(context.Background(), "conv-1", "alice", "hello", "text", "")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
}

func TestService_MissingContentTypeDefaultsToText(t *testing.T) {
	svc := chat.NewService(chat.NewInMemoryMessageStore(), eventbus.NewInMemoryBus())
	msg, err := svc.SendMessage(context.Background(), "conv-1", "alice", "hello", "", "key-1")
	require.NoError(t, err)
	assert.Equal(t, chat.DefaultContentType, msg.ContentType)
}
