package ports

import (
	"context"

	"dashdrop/internal/order-service/core/domain/model"
)

type IOrdersRepo interface {
	CreateOrder(ctx context.Context, order model.Order) (string, error)
	GetOrder(ctx context.Context, orderID string) (model.Order, error)

	// AcceptOrder assigns the driver with a single conditional update: the
	// write only applies while status is still pending and no driver is set.
	// Returns myerrors.ErrOrderTaken when the condition no longer holds.
	// The winning update also flips the driver to unavailable/active.
	AcceptOrder(ctx context.Context, orderID, driverID string) error

	// AdvanceStatus moves the order from exactly `from` to `to` with a
	// conditional update. Returns myerrors.ErrOrderConflict when zero rows
	// match (the status moved underneath the caller).
	AdvanceStatus(ctx context.Context, orderID, from, to string) error

	// CompleteDelivery performs the delivered transition and the earnings
	// cascade as one transaction gated on a single conditional update, so
	// the increment applies at most once. Returns the delivery fee credited.
	CompleteDelivery(ctx context.Context, orderID, driverID string) (float64, error)

	// CancelOrder cancels from any non-terminal status and frees the
	// assigned driver, if any.
	CancelOrder(ctx context.Context, orderID string) error
}
