package bm

import (
	"context"
	"fmt"
	"sync"

	"dashdrop/internal/config"
	"dashdrop/internal/driver-service/core/ports/driven"
	"dashdrop/internal/mylogger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchange = "order_topic"

// RabbitMQ is the consuming side of the order topic exchange: the
// order-service publishes status events, this adapter binds a queue and
// hands the deliveries to the relay worker.
type RabbitMQ struct {
	ctx   context.Context
	cfg   config.RabbitMqconfig
	mylog mylogger.Logger
	conn  *amqp.Connection
	ch    *amqp.Channel
	mu    *sync.Mutex
}

func New(ctx context.Context, rabbitmqCfg config.RabbitMqconfig, mylog mylogger.Logger) (driven.IOrderEventsBroker, error) {
	r := &RabbitMQ{
		ctx:   ctx,
		cfg:   rabbitmqCfg,
		mylog: mylog,
		mu:    &sync.Mutex{},
	}
	if err := r.connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %v", err)
	}
	return r, nil
}

func (r *RabbitMQ) Consume(ctx context.Context, queueName, bindingKey string, opts driven.ConsumeOptions) (<-chan amqp.Delivery, error) {
	queue, err := r.ch.QueueDeclare(queueName, opts.QueueDurable, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare queue %q: %w", queueName, err)
	}

	if err := r.ch.QueueBind(queue.Name, bindingKey, exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue %q to %q: %w", queueName, bindingKey, err)
	}

	if opts.Prefetch > 0 {
		if err := r.ch.Qos(opts.Prefetch, 0, false); err != nil {
			return nil, fmt.Errorf("set prefetch: %w", err)
		}
	}

	return r.ch.ConsumeWithContext(ctx, queue.Name, "", opts.AutoAck, false, false, false, nil)
}

func (r *RabbitMQ) IsAlive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conn == nil || r.conn.IsClosed() {
		return false
	}
	if r.ch == nil || r.ch.IsClosed() {
		return false
	}

	return true
}

func (r *RabbitMQ) Close() error {
	if r.ch != nil && !r.ch.IsClosed() {
		if err := r.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %v", err)
		}
	}

	if r.conn != nil && !r.conn.IsClosed() {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %v", err)
		}
	}
	return nil
}

func (r *RabbitMQ) connect() error {
	conn, err := amqp.Dial(fmt.Sprintf("amqp://%v:%v@%v:%v/%v",
		r.cfg.User,
		r.cfg.Password,
		r.cfg.Host,
		r.cfg.Port,
		r.cfg.VHost,
	))
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	r.conn = conn
	r.ch = ch
	return nil
}
