package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
)

type message struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQNotifier publishes notifications to an exchange; a mail worker
// downstream does the actual delivery.
type RabbitMQNotifier struct {
	conn       *amqp.Connection
	ch         channel
	exchange   string
	routingKey string
	now        func() time.Time
}

var _ interfaces.INotifier = (*RabbitMQNotifier)(nil)

func NewRabbitMQNotifier(url, exchange, routingKey string) (*RabbitMQNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange %s: %w", exchange, err)
	}

	n := newRabbitMQNotifier(ch, exchange, routingKey)
	n.conn = conn
	return n, nil
}

func newRabbitMQNotifier(ch channel, exchange, routingKey string) *RabbitMQNotifier {
	return &RabbitMQNotifier{ch: ch, exchange: exchange, routingKey: routingKey, now: time.Now}
}

func (r *RabbitMQNotifier) Notify(ctx context.Context, n entities.Notification) error {
	now := r.now().UTC()
	body, err := json.Marshal(message{Recipient: n.Recipient, Subject: n.Subject, Body: n.Body, SentAt: now})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.ch.PublishWithContext(ctx, r.exchange, r.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    now,
		DeliveryMode: amqp.Persistent,
	})
}

func (r *RabbitMQNotifier) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}
