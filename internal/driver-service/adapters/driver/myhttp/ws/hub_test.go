package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	websocketdto "dashdrop/internal/driver-service/core/domain/websocket_dto"
	"dashdrop/internal/mylogger"

	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	mu           sync.Mutex
	driverByUser map[string]string
	resolveErr   error
	locations    map[string]websocketdto.Location
	offline      []string
	offlineErr   error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		driverByUser: make(map[string]string),
		locations:    make(map[string]websocketdto.Location),
	}
}

func (f *fakeRegistry) ResolveDriverID(ctx context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	id, ok := f.driverByUser[userID]
	if !ok {
		return "", errors.New("driver not found")
	}
	return id, nil
}

func (f *fakeRegistry) UpdateLocation(ctx context.Context, driverID string, longitude, latitude float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locations[driverID] = websocketdto.Location{Longitude: longitude, Latitude: latitude}
	return nil
}

func (f *fakeRegistry) ForceOffline(ctx context.Context, driverID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offline = append(f.offline, driverID)
	return f.offlineErr
}

func (f *fakeRegistry) forcedOffline() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.offline...)
}

func newTestHub(t *testing.T, registry DriverRegistry) *Hub {
	t.Helper()
	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)
	return NewHub(registry, log)
}

// testClient builds a client without a real websocket connection; broadcasts
// land on its egress channel.
func testClient(hub *Hub) *Client {
	return NewClient(context.Background(), nil, hub)
}

func recvEvent(t *testing.T, c *Client) websocketdto.Event {
	t.Helper()
	select {
	case raw := <-c.egress:
		var event websocketdto.Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return websocketdto.Event{}
	}
}

func requireNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.egress:
		t.Fatalf("unexpected event: %s", raw)
	default:
	}
}

func TestJoinDriverMapsPresence(t *testing.T) {
	registry := newFakeRegistry()
	registry.driverByUser["user-1"] = "driver-1"
	hub := newTestHub(t, registry)

	c := testClient(hub)
	hub.Join(c, websocketdto.JoinMessage{ActorID: "user-1", Role: "driver"})

	require.Equal(t, 1, hub.ConnectedDrivers())

	hub.BroadcastOrderStatus(websocketdto.OrderStatusMessage{
		OrderID:  "order-1",
		Status:   "accepted",
		DriverID: "driver-1",
	})

	event := recvEvent(t, c)
	require.Equal(t, websocketdto.EventOrderStatusUpdate, event.Type)

	var msg websocketdto.OrderStatusMessage
	require.NoError(t, json.Unmarshal(event.Data, &msg))
	require.Equal(t, "order-1", msg.OrderID)
}

func TestJoinResolutionFailureHealedByLocationUpdate(t *testing.T) {
	registry := newFakeRegistry()
	registry.resolveErr = errors.New("registry unavailable")
	hub := newTestHub(t, registry)

	c := testClient(hub)
	hub.Join(c, websocketdto.JoinMessage{ActorID: "user-1", Role: "driver"})
	require.Zero(t, hub.ConnectedDrivers())

	// the first location update supplies the driver id and repairs the mapping
	hub.UpdateLocation(c, websocketdto.LocationMessage{
		DriverID: "driver-1",
		Location: websocketdto.Location{Longitude: 72.88, Latitude: 19.08},
	})

	require.Equal(t, 1, hub.ConnectedDrivers())
	require.InDelta(t, 72.88, registry.locations["driver-1"].Longitude, 0.0001)
}

func TestLocationBroadcastReachesAdminsOnly(t *testing.T) {
	registry := newFakeRegistry()
	registry.driverByUser["user-1"] = "driver-1"
	hub := newTestHub(t, registry)

	driver := testClient(hub)
	hub.Join(driver, websocketdto.JoinMessage{ActorID: "user-1", Role: "driver"})
	admin := testClient(hub)
	hub.Join(admin, websocketdto.JoinMessage{ActorID: "admin-1", Role: "admin"})
	restaurant := testClient(hub)
	hub.Join(restaurant, websocketdto.JoinMessage{ActorID: "resto-1", Role: "restaurant"})

	hub.UpdateLocation(driver, websocketdto.LocationMessage{
		DriverID: "driver-1",
		Location: websocketdto.Location{Longitude: 72.9, Latitude: 19.1},
	})

	event := recvEvent(t, admin)
	require.Equal(t, websocketdto.EventDriverLocation, event.Type)

	requireNoEvent(t, restaurant)
	requireNoEvent(t, driver)
}

func TestBroadcastOrderStatusScoped(t *testing.T) {
	registry := newFakeRegistry()
	registry.driverByUser["user-1"] = "driver-1"
	registry.driverByUser["user-2"] = "driver-2"
	hub := newTestHub(t, registry)

	assigned := testClient(hub)
	hub.Join(assigned, websocketdto.JoinMessage{ActorID: "user-1", Role: "driver"})
	bystander := testClient(hub)
	hub.Join(bystander, websocketdto.JoinMessage{ActorID: "user-2", Role: "driver"})
	restaurant := testClient(hub)
	hub.Join(restaurant, websocketdto.JoinMessage{ActorID: "resto-1", Role: "restaurant"})
	admin := testClient(hub)
	hub.Join(admin, websocketdto.JoinMessage{ActorID: "admin-1", Role: "admin"})

	hub.BroadcastOrderStatus(websocketdto.OrderStatusMessage{
		OrderID:      "order-1",
		Status:       "pickedUp",
		DriverID:     "driver-1",
		RestaurantID: "resto-1",
	})

	require.Equal(t, websocketdto.EventOrderStatusUpdate, recvEvent(t, assigned).Type)
	require.Equal(t, websocketdto.EventOrderStatusUpdate, recvEvent(t, restaurant).Type)
	require.Equal(t, websocketdto.EventOrderStatusUpdate, recvEvent(t, admin).Type)
	requireNoEvent(t, bystander)
}

func TestDisconnectForcesDriverOffline(t *testing.T) {
	registry := newFakeRegistry()
	registry.driverByUser["user-1"] = "driver-1"
	hub := newTestHub(t, registry)

	c := testClient(hub)
	hub.Join(c, websocketdto.JoinMessage{ActorID: "user-1", Role: "driver"})
	require.Equal(t, 1, hub.ConnectedDrivers())

	hub.Disconnect(c)

	require.Zero(t, hub.ConnectedDrivers())
	require.Equal(t, []string{"driver-1"}, registry.forcedOffline())

	// the dropped connection no longer receives broadcasts
	hub.BroadcastOrderStatus(websocketdto.OrderStatusMessage{
		OrderID:  "order-1",
		Status:   "enRoute",
		DriverID: "driver-1",
	})
	_, open := <-c.egress
	require.False(t, open)
}

func TestDisconnectUnmappedConnection(t *testing.T) {
	registry := newFakeRegistry()
	hub := newTestHub(t, registry)

	admin := testClient(hub)
	hub.Join(admin, websocketdto.JoinMessage{ActorID: "admin-1", Role: "admin"})

	hub.Disconnect(admin)

	require.Empty(t, registry.forcedOffline())
}

func TestDisconnectOfflineFailureStillCleansUp(t *testing.T) {
	registry := newFakeRegistry()
	registry.driverByUser["user-1"] = "driver-1"
	registry.offlineErr = errors.New("registry unavailable")
	hub := newTestHub(t, registry)

	c := testClient(hub)
	hub.Join(c, websocketdto.JoinMessage{ActorID: "user-1", Role: "driver"})

	hub.Disconnect(c)

	require.Zero(t, hub.ConnectedDrivers())
}
