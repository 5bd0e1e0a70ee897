package eventbus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/eventbus"
)

func TestMatchesPattern(t *testing.T) {
	cases := []struct {
		pattern, key string
		want         bool
	}{
		{"match.created", "match.created", true},
		{"chat.message.*", "chat.message.sent", true},
		{"chat.message.*", "chat.message.edited", true},
		{"chat.*", "chat.message.sent", false}, // segment count must match
		{"discovery.like.*", "discovery.match.recorded", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, eventbus.MatchesPattern(tc.pattern, tc.key), "%s vs %s", tc.pattern, tc.key)
	}
}

func TestInMemoryBus_DeliversToMatchingSubscriberOnly(t *testing.T) {
	bus := eventbus.NewInMemoryBus()
	var matchDelivered, chatDelivered int

	require.NoError(t, bus.Subscribe(context.Background(), "notification", []string{eventbus.RoutingKeyMatchCreated}, func(ctx context.Context, e eventbus.Event) error {
		matchDelivered++
		return nil
	}))
	require.NoError(t, bus.Subscribe(context.Background(), "chat-archive", []string{eventbus.RoutingKeyMessageSent}, func(ctx context.Context, e eventbus.Event) error {
		chatDelivered++
		return nil
	}))

	require.NoError(t, bus.Publish(context.Background(), eventbus.NewEvent(eventbus.RoutingKeyMatchCreated, "corr-1", nil)))

	assert.Equal(t, 1, matchDelivered)
	assert.Equal(t, 0, chatDelivered)
}
