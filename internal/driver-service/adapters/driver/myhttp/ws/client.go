package ws

import (
	"context"
	"encoding/json"
	"sync"

	websocketdto "dashdrop/internal/driver-service/core/domain/websocket_dto"

	"github.com/gorilla/websocket"
)

const (
	readLimit  = 4096
	egressSize = 16
)

type Client struct {
	id      string
	ctx     context.Context
	conn    *websocket.Conn
	hub     *Hub
	egress  chan []byte
	role    string
	actorID string

	closeOnce sync.Once
}

func NewClient(ctx context.Context, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		id:     newConnectionID(),
		ctx:    ctx,
		conn:   conn,
		hub:    hub,
		egress: make(chan []byte, egressSize),
	}
}

func (c *Client) ReadMessages() {
	defer c.hub.Disconnect(c)

	c.conn.SetReadLimit(readLimit)

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Action("readMessages").Warn("connection closed unexpectedly", "reason", err.Error())
			}
			return
		}

		var event websocketdto.Event
		if err := json.Unmarshal(payload, &event); err != nil {
			c.hub.log.Action("readMessages").Warn("dropping malformed event", "reason", err.Error())
			continue
		}

		switch event.Type {
		case websocketdto.EventJoin:
			var msg websocketdto.JoinMessage
			if err := json.Unmarshal(event.Data, &msg); err != nil {
				continue
			}
			c.hub.Join(c, msg)

		case websocketdto.EventUpdateLocation:
			var msg websocketdto.LocationMessage
			if err := json.Unmarshal(event.Data, &msg); err != nil {
				continue
			}
			c.hub.UpdateLocation(c, msg)
		}
	}
}

func (c *Client) WriteMessages() {
	for {
		select {
		case <-c.ctx.Done():
			c.conn.Close()
			return
		case msg, ok := <-c.egress:
			if !ok {
				c.conn.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

// send enqueues without blocking; a client that cannot drain its egress
// channel loses messages instead of stalling the hub.
func (c *Client) send(msg []byte) {
	select {
	case c.egress <- msg:
	default:
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.egress)
	})
}
