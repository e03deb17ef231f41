package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"dashdrop/internal/order-service/core/domain/model"
	"dashdrop/internal/order-service/core/myerrors"

	"github.com/jackc/pgx/v5"
)

type OrdersRepo struct {
	db *DB
}

func NewOrdersRepo(db *DB) *OrdersRepo {
	return &OrdersRepo{db: db}
}

func (or *OrdersRepo) CreateOrder(ctx context.Context, order model.Order) (string, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return "", fmt.Errorf("marshal order items: %w", err)
	}

	InsertQuery := `
		INSERT INTO orders(restaurant_id, customer_id, items, total_amount, delivery_fee,
			pickup_longitude, pickup_latitude, dropoff_longitude, dropoff_latitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending')
		RETURNING order_id;
	`
	var orderID string
	err = or.db.Pool().QueryRow(ctx, InsertQuery,
		order.RestaurantId, order.CustomerId, items, order.TotalAmount, order.DeliveryFee,
		order.Pickup.Longitude, order.Pickup.Latitude, order.Dropoff.Longitude, order.Dropoff.Latitude,
	).Scan(&orderID)
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (or *OrdersRepo) GetOrder(ctx context.Context, orderID string) (model.Order, error) {
	SelectQuery := `
		SELECT order_id, restaurant_id, customer_id, driver_id, items, total_amount, delivery_fee,
			pickup_longitude, pickup_latitude, dropoff_longitude, dropoff_latitude,
			status, created_at, updated_at, delivered_at, cancelled_at
		FROM orders
		WHERE order_id = $1;
	`
	var m model.Order
	var items []byte
	err := or.db.Pool().QueryRow(ctx, SelectQuery, orderID).Scan(
		&m.ID, &m.RestaurantId, &m.CustomerId, &m.DriverId, &items, &m.TotalAmount, &m.DeliveryFee,
		&m.Pickup.Longitude, &m.Pickup.Latitude, &m.Dropoff.Longitude, &m.Dropoff.Latitude,
		&m.Status, &m.CreatedAt, &m.UpdatedAt, &m.DeliveredAt, &m.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, myerrors.ErrOrderNotFound
		}
		return model.Order{}, err
	}
	if err := json.Unmarshal(items, &m.Items); err != nil {
		return model.Order{}, fmt.Errorf("unmarshal order items: %w", err)
	}
	return m, nil
}

// AcceptOrder claims the order for the driver. The WHERE clause is the whole
// guard: the update applies only while the order is still pending and
// unassigned, so concurrent accepts produce exactly one winner.
func (or *OrdersRepo) AcceptOrder(ctx context.Context, orderID, driverID string) error {
	tx, err := or.db.Pool().Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ClaimQuery := `
		UPDATE orders
		SET status = 'accepted', driver_id = $2, updated_at = NOW()
		WHERE order_id = $1 AND status = 'pending' AND driver_id IS NULL;
	`
	tag, err := tx.Exec(ctx, ClaimQuery, orderID, driverID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE order_id = $1)`, orderID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return myerrors.ErrOrderNotFound
		}
		return myerrors.ErrOrderTaken
	}

	DriverQuery := `
		UPDATE drivers
		SET is_available = false, current_status = 'active', updated_at = NOW()
		WHERE driver_id = $1;
	`
	if _, err := tx.Exec(ctx, DriverQuery, driverID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (or *OrdersRepo) AdvanceStatus(ctx context.Context, orderID, from, to string) error {
	UpdateQuery := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE order_id = $1 AND status = $2;
	`
	tag, err := or.db.Pool().Exec(ctx, UpdateQuery, orderID, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return myerrors.ErrOrderConflict
	}

	if to == model.StatusPickedUp {
		// the driver is physically on the trip from pickup onwards
		OnTripQuery := `
			UPDATE drivers
			SET current_status = 'onTrip', updated_at = NOW()
			FROM orders
			WHERE drivers.driver_id = orders.driver_id AND orders.order_id = $1;
		`
		if _, err := or.db.Pool().Exec(ctx, OnTripQuery, orderID); err != nil {
			return err
		}
	}
	return nil
}

// CompleteDelivery couples the delivered transition and the earnings cascade
// in one transaction. The conditional update on the order row gates the
// driver increment, so a duplicate call cannot credit the fee twice.
func (or *OrdersRepo) CompleteDelivery(ctx context.Context, orderID, driverID string) (float64, error) {
	tx, err := or.db.Pool().Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	DeliverQuery := `
		UPDATE orders
		SET status = 'delivered', delivered_at = NOW(), updated_at = NOW()
		WHERE order_id = $1 AND status = 'enRoute' AND driver_id = $2
		RETURNING delivery_fee;
	`
	var fee float64
	err = tx.QueryRow(ctx, DeliverQuery, orderID, driverID).Scan(&fee)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, myerrors.ErrOrderConflict
		}
		return 0, err
	}

	EarningsQuery := `
		UPDATE drivers
		SET total_deliveries = total_deliveries + 1,
			total_earnings = total_earnings + $2,
			today_earnings = today_earnings + $2,
			is_available = true,
			current_status = 'idle',
			updated_at = NOW()
		WHERE driver_id = $1;
	`
	if _, err := tx.Exec(ctx, EarningsQuery, driverID, fee); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return fee, nil
}

func (or *OrdersRepo) CancelOrder(ctx context.Context, orderID string) error {
	tx, err := or.db.Pool().Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	CancelQuery := `
		UPDATE orders
		SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW()
		WHERE order_id = $1 AND status NOT IN ('delivered', 'cancelled')
		RETURNING driver_id;
	`
	var driverID *string
	err = tx.QueryRow(ctx, CancelQuery, orderID).Scan(&driverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return myerrors.ErrOrderConflict
		}
		return err
	}

	if driverID != nil {
		FreeDriverQuery := `
			UPDATE drivers
			SET is_available = true, current_status = 'idle', updated_at = NOW()
			WHERE driver_id = $1;
		`
		if _, err := tx.Exec(ctx, FreeDriverQuery, *driverID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
