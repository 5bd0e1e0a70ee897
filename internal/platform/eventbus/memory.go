package eventbus

import (
	"context"
	"sync"
)

// InMemoryBus is a test double for Publisher+Subscriber, grounded on the
// teacher's runtimeutil.MockEventConsumer pattern: subscriptions are
// recorded and Publish dispatches synchronously to every matching
// handler so unit tests can assert on delivered events without a broker.
type InMemoryBus struct {
	mu       sync.Mutex
	bindings []binding
	Events   []Event
}

type binding struct {
	queue    string
	patterns []string
	handler  Handler
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{}
}

func (b *InMemoryBus) Subscribe(ctx context.Context, queue string, patterns []string, handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bindings = append(b.bindings, binding{queue: queue, patterns: patterns, handler: handler})
	return nil
}

func (b *InMemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.Lock()
	b.Events = append(b.Events, event)
	bindings := append([]binding(nil), b.bindings...)
	b.mu.Unlock()

	for _, bind := range bindings {
		for _, pattern := range bind.patterns {
			if MatchesPattern(pattern, event.RoutingKey) {
				if err := bind.handler(ctx, event); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

func (b *InMemoryBus) PublishAsync(ctx context.Context, event Event) error {
	return b.Publish(ctx, event)
}

func (b *InMemoryBus) Close() error { return nil }
