package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datingapp/request-fabric/internal/platform/eventbus"
	"github.com/datingapp/request-fabric/internal/platform/resilience"
	"github.com/datingapp/request-fabric/internal/services/notification"
)

type fakeWrapper struct {
	err error
}

func (f fakeWrapper) Execute(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeMessenger struct {
	calls int
	err   error
}

func (f *fakeMessenger) Send(ctx context.Context, userID, kind, body string) error {
	f.calls++
	return f.err
}

func TestService_NotifySucceeds(t *testing.T) {
	messenger := &fakeMessenger{}
	svc := notification.NewService(messenger, fakeWrapper{})

	result, err := svc.Notify(context.Background(), "user-1", "match_created", "{}")
	require.NoError(t, err)
	assert.False(t, result.Queued)
	assert.Equal(t, 1, messenger.calls)
}

func TestService_NotifyReportsQueuedOnCircuitOpen(t *testing.T) {
	messenger := &fakeMessenger{}
	svc := notification.NewService(messenger, fakeWrapper{err: resilience.NewCircuitOpenError(errors.New("downstream unhealthy"))})

	result, err := svc.Notify(context.Background(), "user-1", "match_created", "{}")
	require.NoError(t, err)
	assert.True(t, result.Queued)
}

func TestService_NotifyPropagatesNonCircuitErrors(t *testing.T) {
	messenger := &fakeMessenger{}
	svc := notification.NewService(messenger, fakeWrapper{err: errors.New("boom")})

	_, err := svc.Notify(context.Background(), "user-1", "match_created", "{}")
	assert.Error(t, err)
}

func TestService_DispatchRoutesByRoutingKey(t *testing.T) {
	messenger := &fakeMessenger{}
	svc := notification.NewService(messenger, fakeWrapper{})
	bus := eventbus.NewInMemoryBus()

	require.NoError(t, svc.Subscribe(context.Background(), bus, "notification.fanout"))

	require.NoError(t, bus.Publish(context.Background(), eventbus.NewEvent(eventbus.RoutingKeyMatchCreated, "corr-1", []byte(`{}`))))
	require.NoError(t, bus.Publish(context.Background(), eventbus.NewEvent(eventbus.RoutingKeyMessageSent, "corr-2", []byte(`{}`))))
	require.NoError(t, bus.Publish(context.Background(), eventbus.NewEvent(eventbus.RoutingKeyUserBlocked, "corr-3", []byte(`{}`))))

	assert.Equal(t, 2, messenger.calls, "only match.created and message.sent should trigger a send")
}
