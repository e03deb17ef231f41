package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dashdrop/internal/mylogger"
	"dashdrop/internal/order-service/core/domain/dto"
	messagebrokerdto "dashdrop/internal/order-service/core/domain/message_broker_dto"
	"dashdrop/internal/order-service/core/domain/model"
	"dashdrop/internal/order-service/core/myerrors"
	"dashdrop/internal/order-service/core/ports"
)

const repoTimeout = time.Second * 15

type OrdersService struct {
	ctx         context.Context
	mylog       mylogger.Logger
	ordersRepo  ports.IOrdersRepo
	orderBroker ports.IOrdersBroker
}

func NewOrdersService(ctx context.Context,
	log mylogger.Logger,
	ordersRepo ports.IOrdersRepo,
	orderBroker ports.IOrdersBroker,
) ports.IOrdersService {
	return &OrdersService{
		ctx:         ctx,
		mylog:       log,
		ordersRepo:  ordersRepo,
		orderBroker: orderBroker,
	}
}

func (os *OrdersService) CreateOrder(ctx context.Context, req dto.OrderCreateRequestDto) (dto.OrderCreateResponseDto, error) {
	log := os.mylog.Action("CreateOrder")

	if err := validateOrderRequest(req); err != nil {
		return dto.OrderCreateResponseDto{}, err
	}

	m := model.Order{
		RestaurantId: *req.RestaurantId,
		CustomerId:   *req.CustomerId,
		TotalAmount:  *req.TotalAmount,
		DeliveryFee:  *req.DeliveryFee,
		Pickup:       model.Point{Longitude: req.Pickup.Longitude, Latitude: req.Pickup.Latitude},
		Dropoff:      model.Point{Longitude: req.Dropoff.Longitude, Latitude: req.Dropoff.Latitude},
		Status:       model.StatusPending,
	}
	for _, it := range req.Items {
		m.Items = append(m.Items, model.Item{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}

	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()
	orderID, err := os.ordersRepo.CreateOrder(ctx, m)
	if err != nil {
		log.Error("cannot create order", err)
		return dto.OrderCreateResponseDto{}, err
	}

	log.Info("order created", "order_id", orderID, "restaurant_id", m.RestaurantId, "total_amount", m.TotalAmount)
	return dto.OrderCreateResponseDto{
		OrderId: orderID,
		Status:  model.StatusPending,
		Message: "Order created and waiting for a driver",
	}, nil
}

func (os *OrdersService) GetOrder(ctx context.Context, orderID string) (dto.OrderResponseDto, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()
	m, err := os.ordersRepo.GetOrder(ctx, orderID)
	if err != nil {
		return dto.OrderResponseDto{}, err
	}
	return dto.FromOrderModel(m), nil
}

// AcceptOrder claims a pending order for the driver. The claim is a single
// conditional update; concurrent accepts end with exactly one winner and
// ErrOrderTaken for everyone else.
func (os *OrdersService) AcceptOrder(ctx context.Context, orderID, driverID string) (dto.OrderAcceptResponseDto, error) {
	log := os.mylog.Action("AcceptOrder")

	if orderID == "" || driverID == "" {
		return dto.OrderAcceptResponseDto{}, fmt.Errorf("%w: order id and driver id are required", myerrors.ErrValidation)
	}

	repoCtx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()
	if err := os.ordersRepo.AcceptOrder(repoCtx, orderID, driverID); err != nil {
		if errors.Is(err, myerrors.ErrOrderTaken) {
			log.Warn("accept lost the race", "order_id", orderID, "driver_id", driverID)
			return dto.OrderAcceptResponseDto{}, err
		}
		if errors.Is(err, myerrors.ErrOrderNotFound) {
			return dto.OrderAcceptResponseDto{}, err
		}
		log.Error("cannot accept order", err, "order_id", orderID)
		return dto.OrderAcceptResponseDto{}, err
	}

	os.publishStatus(orderID, model.StatusAccepted, driverID)

	log.Info("order accepted", "order_id", orderID, "driver_id", driverID)
	return dto.OrderAcceptResponseDto{
		OrderId:  orderID,
		DriverId: driverID,
		Status:   model.StatusAccepted,
		Message:  "Order assigned, head to the pickup point",
	}, nil
}

// AdvanceStatus moves an assigned order along pickedUp -> enRoute -> delivered,
// or cancels it from any non-terminal state. Only the assigned driver may
// advance the order.
func (os *OrdersService) AdvanceStatus(ctx context.Context, orderID, driverID, newStatus string) (dto.OrderStatusUpdateResponseDto, error) {
	log := os.mylog.Action("AdvanceStatus")

	switch newStatus {
	case model.StatusPickedUp, model.StatusEnRoute, model.StatusDelivered, model.StatusCancelled:
	default:
		return dto.OrderStatusUpdateResponseDto{}, fmt.Errorf("%w: unknown status %q", myerrors.ErrValidation, newStatus)
	}

	repoCtx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	order, err := os.ordersRepo.GetOrder(repoCtx, orderID)
	if err != nil {
		return dto.OrderStatusUpdateResponseDto{}, err
	}

	if order.DriverId == nil || *order.DriverId != driverID {
		log.Warn("status update from a driver that does not own the order", "order_id", orderID, "driver_id", driverID)
		return dto.OrderStatusUpdateResponseDto{}, myerrors.ErrNotOrderOwner
	}

	switch newStatus {
	case model.StatusCancelled:
		if model.IsTerminal(order.Status) {
			return dto.OrderStatusUpdateResponseDto{}, fmt.Errorf("%w: cannot cancel a %s order", myerrors.ErrIllegalTransition, order.Status)
		}
		err = os.ordersRepo.CancelOrder(repoCtx, orderID)
	case model.StatusDelivered:
		if order.Status != model.StatusEnRoute {
			return dto.OrderStatusUpdateResponseDto{}, fmt.Errorf("%w: %s -> %s", myerrors.ErrIllegalTransition, order.Status, newStatus)
		}
		var fee float64
		fee, err = os.ordersRepo.CompleteDelivery(repoCtx, orderID, driverID)
		if err == nil {
			log.Info("delivery completed", "order_id", orderID, "driver_id", driverID, "earning", fee)
		}
	default:
		required := model.RequiredCurrent[newStatus]
		if order.Status != required {
			return dto.OrderStatusUpdateResponseDto{}, fmt.Errorf("%w: %s -> %s", myerrors.ErrIllegalTransition, order.Status, newStatus)
		}
		err = os.ordersRepo.AdvanceStatus(repoCtx, orderID, required, newStatus)
	}
	if err != nil {
		if errors.Is(err, myerrors.ErrOrderConflict) {
			log.Warn("status moved concurrently", "order_id", orderID, "requested", newStatus)
			return dto.OrderStatusUpdateResponseDto{}, err
		}
		log.Error("cannot advance order status", err, "order_id", orderID, "requested", newStatus)
		return dto.OrderStatusUpdateResponseDto{}, err
	}

	os.publishStatus(orderID, newStatus, driverID)

	log.Info("order status advanced", "order_id", orderID, "status", newStatus)
	return dto.OrderStatusUpdateResponseDto{
		OrderId: orderID,
		Status:  newStatus,
		Message: fmt.Sprintf("Order is now %s", newStatus),
	}, nil
}

// publishStatus is best-effort: a broker hiccup must never roll back a
// committed transition, so failures are only logged.
func (os *OrdersService) publishStatus(orderID, status, driverID string) {
	log := os.mylog.Action("publishStatus")

	order, err := os.ordersRepo.GetOrder(os.ctx, orderID)
	restaurantID := ""
	if err == nil {
		restaurantID = order.RestaurantId
	}

	event := messagebrokerdto.OrderStatus{
		OrderID:      orderID,
		Status:       status,
		RestaurantID: restaurantID,
		DriverID:     driverID,
		OccurredAt:   time.Now().UTC(),
	}
	if err := os.orderBroker.PublishOrderStatus(os.ctx, event); err != nil {
		log.Error("cannot publish order status event", err, "order_id", orderID, "status", status)
	}
}

func validateOrderRequest(req dto.OrderCreateRequestDto) error {
	if req.RestaurantId == nil || *req.RestaurantId == "" {
		return fmt.Errorf("%w: restaurant_id is required", myerrors.ErrValidation)
	}
	if req.CustomerId == nil || *req.CustomerId == "" {
		return fmt.Errorf("%w: customer_id is required", myerrors.ErrValidation)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", myerrors.ErrValidation)
	}
	for _, it := range req.Items {
		if it.Name == "" {
			return fmt.Errorf("%w: item name is required", myerrors.ErrValidation)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item quantity must be at least 1", myerrors.ErrValidation)
		}
		if it.Price < 0 {
			return fmt.Errorf("%w: item price must not be negative", myerrors.ErrValidation)
		}
	}
	if req.TotalAmount == nil || *req.TotalAmount < 0 {
		return fmt.Errorf("%w: total_amount must not be negative", myerrors.ErrValidation)
	}
	if req.DeliveryFee == nil || *req.DeliveryFee < 0 {
		return fmt.Errorf("%w: delivery_fee must not be negative", myerrors.ErrValidation)
	}
	if req.Pickup == nil || req.Dropoff == nil {
		return fmt.Errorf("%w: pickup and dropoff points are required", myerrors.ErrValidation)
	}
	return nil
}
