package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// Lifecycle event names carried in the envelope and the AMQP Type field.
const (
	OrderCreated       = "order.created"
	OrderPaid          = "order.paid"
	OrderStatusChanged = "order.status_changed"
	OrderDeleted       = "order.deleted"
)

const exchangeName = "order_events"

// Publisher fans order lifecycle events out to downstream consumers
// (notifications, fulfillment tooling). Publishing is best effort: the
// order write has already committed by the time an event goes out.
type Publisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

type envelope struct {
	EventID    string    `json:"eventId"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

type RabbitPublisher struct {
	ch *amqp091.Channel
}

// NewRabbitPublisher opens a channel and declares the fanout exchange.
func NewRabbitPublisher(conn *amqp091.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(
		exchangeName,
		"fanout",
		true,  // durable
		false, // auto-delete
		false,
		false,
		nil,
	); err != nil {
		ch.Close()
		return nil, err
	}
	return &RabbitPublisher{ch: ch}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event string, payload any) error {
	now := time.Now().UTC()
	body, err := json.Marshal(envelope{
		EventID:    uuid.NewString(),
		Event:      event,
		OccurredAt: now,
		Data:       payload,
	})
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx,
		exchangeName,
		"", // fanout ignores the routing key
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Type:        event,
			Timestamp:   now,
			Body:        body,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event string, payload any) error { return nil }
