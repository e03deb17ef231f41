package ports

import (
	"context"

	messagebrokerdto "dashdrop/internal/order-service/core/domain/message_broker_dto"
)

type IOrdersBroker interface {
	PublishOrderStatus(ctx context.Context, event messagebrokerdto.OrderStatus) error
	IsAlive() bool
	Close() error
}
