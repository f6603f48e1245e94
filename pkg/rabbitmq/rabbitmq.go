package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type connectionImpl struct {
	url  string
	conn *amqp.Connection
	mu   sync.Mutex
}

func (c *connectionImpl) connect() error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	c.conn = conn
	return nil
}

// Close closes the connection.
func (c *connectionImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil && !c.conn.IsClosed() {
		_ = c.conn.Close()
	}
}

// IsClosed reports whether the connection is closed.
func (c *connectionImpl) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn == nil || c.conn.IsClosed()
}

// Channel opens a new channel on the connection, reconnecting first if needed.
func (c *connectionImpl) Channel() (IChannel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		if err := c.connect(); err != nil {
			return nil, err
		}
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	return &channelImpl{ch: ch}, nil
}

type channelImpl struct {
	ch *amqp.Channel
}

func (c *channelImpl) QueueDeclare(queue QueueArgs) (amqp.Queue, error) {
	return c.ch.QueueDeclare(queue.spread())
}

func (c *channelImpl) Publish(ctx context.Context, publish PublishArgs) error {
	return c.ch.PublishWithContext(publish.spread(ctx))
}

func (c *channelImpl) Consume(consume ConsumeArgs) (<-chan amqp.Delivery, error) {
	return c.ch.Consume(consume.spread())
}

func (c *channelImpl) Close() error {
	return c.ch.Close()
}
