// Package notification implements the fan-out edge (spec §4.7): a
// consumer on match.created and message.sent that calls an
// outbound Messenger collaborator through the shared resilience
// wrapper's circuit breaker, reporting a breaker-open downstream as a
// queued delivery rather than a failure.
package notification

import (
	"context"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/eventbus"
	"github.com/datingapp/request-fabric/internal/platform/resilience"
)

// Messenger is the narrow collaborator surface for whatever downstream
// push/SMS/email provider actually delivers the notification; its
// concrete implementation is out of this module's scope (spec §1
// Non-goals).
type Messenger interface {
	Send(ctx context.Context, userID, kind, body string) error
}

const operationName = "notification.send"

type Service struct {
	messenger Messenger
	wrapper   resilience.ResilienceWrapper
}

func NewService(messenger Messenger, wrapper resilience.ResilienceWrapper) *Service {
	return &Service{messenger: messenger, wrapper: wrapper}
}

// DeliveryResult is returned to the HTTP-facing caller (and logged for
// the consumer path); Queued means the breaker was open and the send
// was deliberately skipped rather than retried inline.
type DeliveryResult struct {
	Queued bool
}

func (s *Service) Notify(ctx context.Context, userID, kind, body string) (DeliveryResult, error) {
	err := s.wrapper.Execute(ctx, operationName, func(ctx context.Context) error {
		return s.messenger.Send(ctx, userID, kind, body)
	})
	if err != nil {
		if resilience.IsCircuitOpen(err) {
			return DeliveryResult{Queued: true}, nil
		}
		return DeliveryResult{}, domainerr.External("send notification", err)
	}
	return DeliveryResult{}, nil
}

// HandleMatchCreated is the eventbus.Handler bound to the
// "match.created" routing key.
func (s *Service) HandleMatchCreated(ctx context.Context, event eventbus.Event) error {
	_, err := s.Notify(ctx, event.CorrelationID, "match_created", string(event.Payload))
	return err
}

// HandleMessageSent is the eventbus.Handler bound to the
// "message.sent" routing key.
func (s *Service) HandleMessageSent(ctx context.Context, event eventbus.Event) error {
	_, err := s.Notify(ctx, event.CorrelationID, "message_sent", string(event.Payload))
	return err
}

// Subscribe binds both notification-triggering routing keys to a single
// durable queue, per spec §4.6's at-least-once delivery contract.
func (s *Service) Subscribe(ctx context.Context, sub eventbus.Subscriber, queue string) error {
	return sub.Subscribe(ctx, queue, []string{
		eventbus.RoutingKeyMatchCreated,
		eventbus.RoutingKeyMessageSent,
	}, s.dispatch)
}

func (s *Service) dispatch(ctx context.Context, event eventbus.Event) error {
	switch event.RoutingKey {
	case eventbus.RoutingKeyMatchCreated:
		return s.HandleMatchCreated(ctx, event)
	case eventbus.RoutingKeyMessageSent:
		return s.HandleMessageSent(ctx, event)
	default:
		return nil
	}
}
