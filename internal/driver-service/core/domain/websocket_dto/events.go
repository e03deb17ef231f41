package websocketdto

import "encoding/json"

const (
	EventJoin           = "join"
	EventUpdateLocation = "updateLocation"

	EventDriverLocation    = "driverLocation"
	EventOrderStatusUpdate = "orderStatusUpdate"
)

// Event is the envelope for every message on the realtime channel.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type JoinMessage struct {
	ActorID string `json:"actorId"`
	Role    string `json:"role"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LocationMessage struct {
	DriverID string   `json:"driverId"`
	Location Location `json:"location"`
}

type OrderStatusMessage struct {
	OrderID      string `json:"orderId"`
	Status       string `json:"status"`
	RestaurantID string `json:"restaurantId,omitempty"`
	DriverID     string `json:"driverId,omitempty"`
}
