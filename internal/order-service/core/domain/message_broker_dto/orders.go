package messagebrokerdto

import "time"

// OrderStatus is published on every successful order transition and consumed
// by the driver-service, which relays it onto the websocket channels.
type OrderStatus struct {
	OrderID      string    `json:"order_id"`
	Status       string    `json:"status"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	DriverID     string    `json:"driver_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
