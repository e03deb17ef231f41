package ports

import (
	"context"

	"dashdrop/internal/order-service/core/domain/dto"
)

type IOrdersService interface {
	CreateOrder(ctx context.Context, req dto.OrderCreateRequestDto) (dto.OrderCreateResponseDto, error)
	GetOrder(ctx context.Context, orderID string) (dto.OrderResponseDto, error)
	AcceptOrder(ctx context.Context, orderID, driverID string) (dto.OrderAcceptResponseDto, error)
	AdvanceStatus(ctx context.Context, orderID, driverID, newStatus string) (dto.OrderStatusUpdateResponseDto, error)
}
