package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(ctx context.Context, exchange, key string, event any, reqID string) error
	Close() error
}

type NoopPub struct{}

func NewNoop() Publisher { return NoopPub{} }

func (NoopPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	return nil
}
func (NoopPub) Close() error { return nil }

type RabbitPub struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, exchange string) (*RabbitPub, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// publishing to an undeclared exchange closes the channel at runtime
	if err := ch.ExchangeDeclare(
		exchange, "topic", true, false, false, false, nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &RabbitPub{conn: conn, ch: ch}, nil
}

func (p *RabbitPub) Close() error {
	_ = p.ch.Close()
	return p.conn.Close()
}

func (p *RabbitPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	body, _ := json.Marshal(event)
	return p.ch.PublishWithContext(ctx, exchange, key, false, false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			MessageId:   uuid.NewString(),
			Timestamp:   time.Now(),
			Headers: amqp.Table{
				"X-Request-ID": reqID,
			},
		})
}
