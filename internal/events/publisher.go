package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher emits OrderPlaced events. amqp channels are not safe for
// concurrent publishes, so sends are serialized.
type Publisher struct {
	mu sync.Mutex
	ch channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", EventsExchange, err)
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// Send publishes the order as an OrderPlaced v1 envelope.
func (p *Publisher) Send(ctx context.Context, o order.Order) error {
	env := BuildOrderPlacedEnvelope(o, middleware.GetCorrelationID(ctx))

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	return p.publishJSON(ctx, OrderPlacedRoutingKey, env.EventID, env.CorrelationID, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID, correlationID string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.PublishWithContext(
		ctx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     messageID,
			CorrelationId: correlationID,
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}
