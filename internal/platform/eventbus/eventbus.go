// Package eventbus implements the fabric's event-driven coupling: a
// single topic exchange ("dating.events"), dot-grammar routing keys with
// single-segment wildcard matching, and at-least-once delivery to durable
// per-service queues. Grounded on the teacher's runtimeutil.EventPublisher/
// EventConsumer interfaces and internal/infra/rabbitmq/publisher.go.
package eventbus

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is the wire envelope published on the exchange.
type Event struct {
	ID            string          `json:"id"`
	RoutingKey    string          `json:"routing_key"`
	CorrelationID string          `json:"correlation_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       []byte          `json:"payload"`
}

func NewEvent(routingKey, correlationID string, payload []byte) Event {
	return Event{
		ID:            uuid.NewString(),
		RoutingKey:    routingKey,
		CorrelationID: correlationID,
		OccurredAt:    time.Now(),
		Payload:       payload,
	}
}

// Enumerated routing keys used by the core, per spec §4.6.
const (
	RoutingKeyMatchCreated  = "match.created"
	RoutingKeyMessageSent   = "message.sent"
	RoutingKeyMessageRead   = "message.read"
	RoutingKeyUserBlocked   = "user.blocked"
	RoutingKeyReportCreated = "report.created"
)

const Exchange = "dating.events"

// Publisher is the fabric-wide publish surface every service links
// against. PublishAsync is fire-and-forget; Publish blocks for a broker
// confirmation, used by the two idempotency-sensitive write paths so the
// event is only considered delivered once the broker has durably
// accepted it.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	PublishAsync(ctx context.Context, event Event) error
	Close() error
}

// Handler processes one delivered event. Returning an error makes the
// RabbitMQ subscriber nack the delivery with requeue, so it is redelivered
// with no attempt limit and no dead-lettering; the in-memory bus returns
// the error to the Publish caller.
type Handler func(ctx context.Context, event Event) error

// Subscriber binds a durable queue to one or more routing patterns on the
// shared exchange and delivers matching events to handler at-least-once.
type Subscriber interface {
	Subscribe(ctx context.Context, queue string, patterns []string, handler Handler) error
	Close() error
}

// MatchesPattern implements the single-segment '*' wildcard grammar: a
// pattern segment of '*' matches exactly one dot-delimited segment of the
// routing key; all other segments must match literally.
func MatchesPattern(pattern, routingKey string) bool {
	pSegs := strings.Split(pattern, ".")
	kSegs := strings.Split(routingKey, ".")
	if len(pSegs) != len(kSegs) {
		return false
	}
	for i, p := range pSegs {
		if p != "*" && p != kSegs[i] {
			return false
		}
	}
	return true
}
