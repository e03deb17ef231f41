package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	websocketdto "dashdrop/internal/driver-service/core/domain/websocket_dto"
	"dashdrop/internal/mylogger"

	"github.com/gorilla/websocket"
)

const (
	RoleDriver     = "driver"
	RoleAdmin      = "admin"
	RoleRestaurant = "restaurant"

	adminChannel = "admins"

	registryTimeout = time.Second * 5
)

var websocketUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// DriverRegistry is the slice of the driver service the presence layer needs.
type DriverRegistry interface {
	ResolveDriverID(ctx context.Context, userID string) (string, error)
	UpdateLocation(ctx context.Context, driverID string, longitude, latitude float64) error
	ForceOffline(ctx context.Context, driverID string) error
}

// Hub owns every live realtime session: the channel subscriptions and the
// connection-to-driver presence table. All state is process-local and
// rebuilt empty on restart.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]bool
	presence map[string]string // connection id -> driver id

	registry DriverRegistry
	log      mylogger.Logger
}

func NewHub(registry DriverRegistry, log mylogger.Logger) *Hub {
	return &Hub{
		channels: make(map[string]map[*Client]bool),
		presence: make(map[string]string),
		registry: registry,
		log:      log,
	}
}

// WsHandler upgrades the request and starts the client pumps. Channel
// membership happens later, on the join event.
func (h *Hub) WsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := h.log.Action("wsHandler")

		conn, err := websocketUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("cannot upgrade connection", err)
			return
		}

		client := NewClient(r.Context(), conn, h)
		go client.ReadMessages()
		go client.WriteMessages()
	}
}

// Join subscribes the connection to its role-scoped channels. For drivers the
// actor id resolves to the owned driver id; resolution failures are logged
// and the mapping is healed later by the first location update.
func (h *Hub) Join(c *Client, msg websocketdto.JoinMessage) {
	log := h.log.Action("join")

	role := strings.ToLower(msg.Role)
	c.role = role
	c.actorID = msg.ActorID

	switch role {
	case RoleAdmin:
		h.subscribe(c, adminChannel)
	case RoleRestaurant:
		h.subscribe(c, "restaurants:"+msg.ActorID)
	case RoleDriver:
		ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
		defer cancel()
		driverID, err := h.registry.ResolveDriverID(ctx, msg.ActorID)
		if err != nil {
			log.Warn("cannot resolve driver for joining connection", "actor_id", msg.ActorID, "reason", err.Error())
			return
		}
		h.mu.Lock()
		h.presence[c.id] = driverID
		h.mu.Unlock()
		h.subscribe(c, "drivers:"+driverID)
	default:
		log.Warn("join with unknown role", "role", msg.Role)
	}
}

// UpdateLocation persists the new coordinates and relays them to the admin
// channel only: driver locations are not broadcast to arbitrary clients. A
// connection without a presence mapping yet adopts the supplied driver id,
// which heals the join race.
func (h *Hub) UpdateLocation(c *Client, msg websocketdto.LocationMessage) {
	log := h.log.Action("updateLocation")

	h.mu.Lock()
	driverID, ok := h.presence[c.id]
	if !ok {
		driverID = msg.DriverID
		h.presence[c.id] = driverID
	}
	h.mu.Unlock()
	if !ok {
		h.subscribe(c, "drivers:"+driverID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
	defer cancel()
	if err := h.registry.UpdateLocation(ctx, driverID, msg.Location.Longitude, msg.Location.Latitude); err != nil {
		log.Error("cannot persist driver location", err, "driver_id", driverID)
	}

	h.broadcast(adminChannel, websocketdto.EventDriverLocation, websocketdto.LocationMessage{
		DriverID: driverID,
		Location: msg.Location,
	})
}

// BroadcastOrderStatus relays a status event to the assigned driver, the
// originating restaurant and the admin observers.
func (h *Hub) BroadcastOrderStatus(msg websocketdto.OrderStatusMessage) {
	if msg.DriverID != "" {
		h.broadcast("drivers:"+msg.DriverID, websocketdto.EventOrderStatusUpdate, msg)
	}
	if msg.RestaurantID != "" {
		h.broadcast("restaurants:"+msg.RestaurantID, websocketdto.EventOrderStatusUpdate, msg)
	}
	h.broadcast(adminChannel, websocketdto.EventOrderStatusUpdate, msg)
}

// Disconnect tears the session down: the mapped driver is forced offline in
// the registry (failures logged, not retried) and the mapping removed. A
// connection that never mapped is a no-op beyond unsubscribing.
func (h *Hub) Disconnect(c *Client) {
	log := h.log.Action("disconnect")

	h.mu.Lock()
	driverID, ok := h.presence[c.id]
	delete(h.presence, c.id)
	for _, clients := range h.channels {
		delete(clients, c)
	}
	h.mu.Unlock()

	if ok {
		ctx, cancel := context.WithTimeout(context.Background(), registryTimeout)
		defer cancel()
		if err := h.registry.ForceOffline(ctx, driverID); err != nil {
			log.Error("cannot force driver offline on disconnect", err, "driver_id", driverID)
		} else {
			log.Info("driver went offline", "driver_id", driverID)
		}
	}

	c.close()
}

// ConnectedDrivers reports how many live connections map to a driver.
func (h *Hub) ConnectedDrivers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.presence)
}

func (h *Hub) subscribe(c *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.channels[channel]
	if !ok {
		clients = make(map[*Client]bool)
		h.channels[channel] = clients
	}
	clients[c] = true
}

func (h *Hub) broadcast(channel, eventType string, payload any) {
	log := h.log.Action("broadcast")

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error("cannot marshal broadcast payload", err, "event", eventType)
		return
	}
	raw, err := json.Marshal(websocketdto.Event{Type: eventType, Data: data})
	if err != nil {
		log.Error("cannot marshal broadcast event", err, "event", eventType)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.channels[channel] {
		c.send(raw)
	}
}
