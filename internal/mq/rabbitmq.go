package mq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/openshelf/openshelf/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQClient publishes loan events through a single AMQP channel.
// Queues are declared lazily on first publish or subscribe, so the
// broker needs no pre-provisioning for the loan-events queue.
type RabbitMQClient struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	opts config.RabbitMQConfig
}

// NewRabbitMQClient dials the broker and opens a channel. Prefetch is
// applied to the channel when configured so a slow event consumer does
// not drain the queue.
func NewRabbitMQClient(cfg config.RabbitMQConfig) (*RabbitMQClient, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if cfg.PrefetchCount > 0 {
		if err := ch.Qos(cfg.PrefetchCount, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("set qos: %w", err)
		}
	}

	return &RabbitMQClient{conn: conn, ch: ch, opts: cfg}, nil
}

// Publish delivers an event to the named queue and returns the
// generated message ID.
func (r *RabbitMQClient) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if err := r.ensureQueue(channel); err != nil {
		return "", err
	}

	pub := amqp.Publishing{
		ContentType: "application/json",
		MessageId:   uuid.NewString(),
		Body:        data,
	}
	if len(attrs) > 0 {
		pub.Headers = amqp.Table{}
		for k, v := range attrs {
			pub.Headers[k] = v
		}
	}

	if err := r.ch.PublishWithContext(ctx, "", channel, false, false, pub); err != nil {
		return "", fmt.Errorf("publish to %s: %w", channel, err)
	}
	return pub.MessageId, nil
}

// Subscribe consumes events from the named queue until ctx is done.
// Handler errors nack the delivery for redelivery.
func (r *RabbitMQClient) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if err := r.ensureQueue(channel); err != nil {
		return err
	}

	tag := "openshelf-" + uuid.NewString()
	deliveries, err := r.ch.Consume(channel, tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", channel, err)
	}
	defer func() { _ = r.ch.Cancel(tag, false) }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			if err := handler(ctx, deliveryMessage(d)); err != nil {
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Close tears down the channel and connection.
func (r *RabbitMQClient) Close() error {
	if r.ch != nil {
		_ = r.ch.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func (r *RabbitMQClient) ensureQueue(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("rabbitmq channel is required")
	}
	_, err := r.ch.QueueDeclare(name, r.opts.QueueDurable, r.opts.QueueAutoDelete, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}

func deliveryMessage(d amqp.Delivery) Message {
	msg := Message{ID: d.MessageId, Data: d.Body}
	if len(d.Headers) > 0 {
		msg.Attributes = make(map[string]string, len(d.Headers))
		for k, v := range d.Headers {
			switch t := v.(type) {
			case string:
				msg.Attributes[k] = t
			case []byte:
				msg.Attributes[k] = string(t)
			default:
				msg.Attributes[k] = fmt.Sprint(v)
			}
		}
	}
	return msg
}
