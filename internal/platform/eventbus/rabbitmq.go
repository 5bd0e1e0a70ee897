package eventbus

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	publishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "eventbus_publish_total", Help: "Total publish attempts to the event bus"},
		[]string{"routing_key", "status"},
	)
	publishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{Name: "eventbus_publish_duration_seconds", Help: "Publish latency", Buckets: prometheus.DefBuckets},
		[]string{"routing_key"},
	)
	consumeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: "eventbus_consume_total", Help: "Total events consumed"},
		[]string{"queue", "status"},
	)
)

// RabbitMQBus implements Publisher and Subscriber against the single
// "dating.events" topic exchange, grounded on the teacher's
// internal/infra/rabbitmq/publisher.go (publisher confirms, Prometheus
// counters, durable declare) generalized to also consume.
type RabbitMQBus struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
	mu      sync.RWMutex
}

func Dial(amqpURL string, logger *zap.Logger) (*RabbitMQBus, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", zap.String("url", sanitizeURL(amqpURL)), zap.Error(err))
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.Confirm(false); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}

	if err := channel.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Info("event bus connected", zap.String("exchange", Exchange), zap.String("url", sanitizeURL(amqpURL)))
	return &RabbitMQBus{conn: conn, channel: channel, logger: logger}, nil
}

func sanitizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "[invalid-url]"
	}
	if parsed.User != nil {
		if _, hasPass := parsed.User.Password(); hasPass {
			parsed.User = url.UserPassword(parsed.User.Username(), "***")
		}
	}
	return parsed.String()
}

// Publish blocks until the broker confirms receipt, used by the two
// idempotency-sensitive write paths (discovery/like, chat/messages) so
// the caller only reports success once delivery is durable.
func (b *RabbitMQBus) Publish(ctx context.Context, event Event) error {
	start := time.Now()
	b.mu.RLock()
	defer b.mu.RUnlock()

	confirmation, err := b.channel.PublishWithDeferredConfirmWithContext(ctx, Exchange, event.RoutingKey, true, false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     event.ID,
			Timestamp:     event.OccurredAt,
			Body:          event.Payload,
			CorrelationId: event.CorrelationID,
		})
	if err != nil {
		publishTotal.WithLabelValues(event.RoutingKey, "error").Inc()
		return fmt.Errorf("publish event: %w", err)
	}

	confirmed := confirmation.Wait()
	publishDuration.WithLabelValues(event.RoutingKey).Observe(time.Since(start).Seconds())
	if !confirmed {
		publishTotal.WithLabelValues(event.RoutingKey, "nack").Inc()
		return fmt.Errorf("event not confirmed by broker")
	}
	publishTotal.WithLabelValues(event.RoutingKey, "success").Inc()
	return nil
}

// PublishAsync fires the publish in a goroutine without waiting for
// confirmation, for notifications that tolerate best-effort delivery.
func (b *RabbitMQBus) PublishAsync(ctx context.Context, event Event) error {
	go func() {
		if err := b.Publish(ctx, event); err != nil {
			b.logger.Error("async publish failed", zap.String("routing_key", event.RoutingKey), zap.Error(err))
		}
	}()
	return nil
}

// Subscribe declares a durable queue, binds it to every pattern, and
// consumes with manual ack so a handler error leaves the delivery
// unacked for redelivery — at-least-once per spec §4.6.
func (b *RabbitMQBus) Subscribe(ctx context.Context, queue string, patterns []string, handler Handler) error {
	b.mu.RLock()
	ch := b.channel
	b.mu.RUnlock()

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	for _, pattern := range patterns {
		if err := ch.QueueBind(queue, pattern, Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", queue, pattern, err)
		}
	}

	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				event := Event{
					ID:            d.MessageId,
					RoutingKey:    d.RoutingKey,
					CorrelationID: d.CorrelationId,
					OccurredAt:    d.Timestamp,
					Payload:       d.Body,
				}
				if err := handler(ctx, event); err != nil {
					consumeTotal.WithLabelValues(queue, "error").Inc()
					_ = d.Nack(false, true)
					continue
				}
				consumeTotal.WithLabelValues(queue, "success").Inc()
				_ = d.Ack(false)
			}
		}
	}()
	return nil
}

func (b *RabbitMQBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.channel != nil {
		_ = b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
