package consume

import (
	"context"
	"encoding/json"
	"sync"

	websocketdto "dashdrop/internal/driver-service/core/domain/websocket_dto"
	"dashdrop/internal/driver-service/core/ports/driven"
	"dashdrop/internal/mylogger"

	"github.com/rabbitmq/amqp091-go"
)

const (
	orderStatusQueue   = "order_status_updates"
	orderStatusBinding = "order.status.*"
)

// OrderStatusRelay is where the relay worker delivers decoded broker events;
// the websocket hub implements it.
type OrderStatusRelay interface {
	BroadcastOrderStatus(msg websocketdto.OrderStatusMessage)
}

// Relay consumes order status events from the broker and fans them out to
// the realtime channels.
type Relay struct {
	ctx    context.Context
	wg     *sync.WaitGroup
	log    mylogger.Logger
	broker driven.IOrderEventsBroker
	hub    OrderStatusRelay
}

func New(ctx context.Context, wg *sync.WaitGroup, log mylogger.Logger, broker driven.IOrderEventsBroker, hub OrderStatusRelay) *Relay {
	return &Relay{
		ctx:    ctx,
		wg:     wg,
		log:    log,
		broker: broker,
		hub:    hub,
	}
}

func (rl *Relay) Run() error {
	deliveries, err := rl.broker.Consume(rl.ctx, orderStatusQueue, orderStatusBinding, driven.ConsumeOptions{
		Prefetch:     16,
		AutoAck:      false,
		QueueDurable: true,
	})
	if err != nil {
		return err
	}

	rl.wg.Add(1)
	go rl.work(deliveries)
	return nil
}

func (rl *Relay) work(deliveries <-chan amqp091.Delivery) {
	log := rl.log.Action("orderStatusRelay")
	defer func() {
		log.Info("relay worker is done")
		rl.wg.Done()
	}()

	for {
		select {
		case msg, ok := <-deliveries:
			if !ok {
				return
			}
			if err := rl.handle(msg); err != nil {
				log.Error("cannot relay order status event", err)
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)

		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *Relay) handle(msg amqp091.Delivery) error {
	var event struct {
		OrderID      string `json:"order_id"`
		Status       string `json:"status"`
		RestaurantID string `json:"restaurant_id"`
		DriverID     string `json:"driver_id"`
	}
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return err
	}

	rl.hub.BroadcastOrderStatus(websocketdto.OrderStatusMessage{
		OrderID:      event.OrderID,
		Status:       event.Status,
		RestaurantID: event.RestaurantID,
		DriverID:     event.DriverID,
	})
	return nil
}
