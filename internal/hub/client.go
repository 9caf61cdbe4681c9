package hub

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client represents one WebSocket connection bound to an authenticated user.
// The room association is connection-local state set by the join-room event
// and lost on disconnect.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID uint

	mu     sync.Mutex
	roomID uint // 0 until the connection joins a room
	closed bool // set when the hub unregisters the connection

	send chan []byte
}

// NewClient creates a Client for an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 256),
	}
}

// Run starts the read and write pumps.
func (c *Client) Run() {
	go c.WritePump()
	go c.ReadPump()
}

// UserID returns the authenticated user bound to this connection.
func (c *Client) UserID() uint { return c.userID }

// RoomID returns the currently joined room, 0 when none.
func (c *Client) RoomID() uint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

func (c *Client) setRoomID(roomID uint) {
	c.mu.Lock()
	c.roomID = roomID
	c.mu.Unlock()
}

// trySend queues an outbound frame without blocking. It reports false when the
// connection has been unregistered or its send buffer is full; callers treat
// both as a dropped frame. Sends and closeSend share the client mutex, so a
// gameplay goroutine holding a stale client reference can never write to a
// closed channel.
func (c *Client) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// closeSend shuts down the outbound channel, signalling the write pump to
// exit. Idempotent; later trySend calls become drops.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// CloseConn closes the underlying connection.
func (c *Client) CloseConn() { c.conn.Close() }

// ReadPump pumps inbound messages into the hub's message channel. It runs in
// its own goroutine and requests unregistration on exit.
func (c *Client) ReadPump() {
	defer func() {
		unregisterMsg := HubMessage{Type: msgUnregister, Client: c}
		select {
		case c.hub.messageChan <- unregisterMsg:
		case <-time.After(1 * time.Second):
			logrus.WithField("user_id", c.userID).Warn("Timeout sending unregister message to hub channel")
		}
		c.conn.Close()
		logrus.WithField("user_id", c.userID).Info("Read pump exited, client unregistered")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			logCtx := logrus.WithField("user_id", c.userID)
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logCtx.WithError(err).Warn("WebSocket read error (unexpected close)")
			} else {
				logCtx.Debug("WebSocket connection closed")
			}
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		eventMsg := HubMessage{Type: msgEvent, Client: c, RawData: message}
		select {
		case c.hub.messageChan <- eventMsg:
		default:
			logrus.WithField("user_id", c.userID).Warn("Hub message channel full, dropping client message")
		}
	}
}

// WritePump pumps messages from the send channel to the connection and keeps
// the connection alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		logrus.WithField("user_id", c.userID).Debug("Write pump exited")
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the send channel during unregister
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logrus.WithField("user_id", c.userID).WithError(err).Warn("Failed to write message to websocket")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logrus.WithField("user_id", c.userID).WithError(err).Warn("Failed to send ping message")
				return
			}
		}
	}
}
