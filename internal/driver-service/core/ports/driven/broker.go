package driven

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumeOptions control how deliveries are read from the broker.
type ConsumeOptions struct {
	Prefetch     int
	AutoAck      bool
	QueueDurable bool
}

type IOrderEventsBroker interface {
	// Consume binds a queue to the order topic exchange with the given
	// binding key and returns the delivery channel.
	Consume(ctx context.Context, queueName, bindingKey string, opts ConsumeOptions) (<-chan amqp.Delivery, error)

	IsAlive() bool
	Close() error
}
