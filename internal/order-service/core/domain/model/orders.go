package model

import "time"

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusPickedUp  = "pickedUp"
	StatusEnRoute   = "enRoute"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// RequiredCurrent maps a target status to the status the order must currently
// hold for the transition to be legal. Cancellation is handled separately
// because it is reachable from every non-terminal state.
var RequiredCurrent = map[string]string{
	StatusAccepted:  StatusPending,
	StatusPickedUp:  StatusAccepted,
	StatusEnRoute:   StatusPickedUp,
	StatusDelivered: StatusEnRoute,
}

func IsTerminal(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID           string
	RestaurantId string
	CustomerId   string
	DriverId     *string // nil until accepted, never reassigned
	Items        []Item
	TotalAmount  float64
	DeliveryFee  float64
	Pickup       Point
	Dropoff      Point
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
}
