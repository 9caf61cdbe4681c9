// Package hub is the realtime session broadcaster: it maps connections to
// users and rooms, relays state-changing gameplay events to room members, and
// cleans up after disconnects.
//
// Presence (the online map) and room subscriptions are process-wide ephemeral
// state, rebuilt empty on restart. A multi-instance deployment would need a
// shared pub/sub layer instead; that is a scaling boundary, not a correctness
// requirement for a single instance.
package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/service"
	"github.com/mertkozcan/gridlock-server/internal/tasks"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// Internal hub message types.
const (
	msgRegister   = "register"
	msgUnregister = "unregister"
	msgEvent      = "event"
)

// HubMessage is the unit of work on the hub's internal channel.
type HubMessage struct {
	Type    string
	Client  *Client
	RawData []byte // raw websocket frame, only for msgEvent
}

// Hub coordinates all connected clients. A single goroutine consumes the
// message channel; gameplay events are dispatched to worker goroutines and
// rely on the persistence layer to arbitrate concurrent mutation.
type Hub struct {
	messageChan chan HubMessage

	// rooms maps roomID -> the clients subscribed to that room's broadcasts.
	rooms map[uint]map[*Client]bool
	// online maps userID -> the user's active connection (presence only).
	online map[uint]*Client
	mu     sync.RWMutex

	roomService *service.RoomService
	gameService *service.GameService
	asynqClient *asynq.Client
}

// NewHub creates a Hub. asynqClient may be nil in tests; XP award tasks are
// then skipped.
func NewHub(roomService *service.RoomService, gameService *service.GameService, asynqClient *asynq.Client) *Hub {
	if roomService == nil {
		panic("RoomService cannot be nil for Hub")
	}
	if gameService == nil {
		panic("GameService cannot be nil for Hub")
	}
	return &Hub{
		messageChan: make(chan HubMessage, 512),
		rooms:       make(map[uint]map[*Client]bool),
		online:      make(map[uint]*Client),
		roomService: roomService,
		gameService: gameService,
		asynqClient: asynqClient,
	}
}

// Run is the hub's main event loop. It should run in its own goroutine and
// exits when the message channel is closed.
func (h *Hub) Run() {
	log := logrus.WithField("component", "hub")
	log.Info("Hub is running")

	for msg := range h.messageChan {
		switch msg.Type {
		case msgRegister:
			h.registerClient(msg.Client)
		case msgUnregister:
			h.unregisterClient(msg.Client)
		case msgEvent:
			h.dispatchEvent(msg.Client, msg.RawData)
		default:
			log.Warnf("Received unknown hub message type: %s", msg.Type)
		}
	}
	log.Info("Hub is shutting down")
}

// Shutdown stops the hub loop.
func (h *Hub) Shutdown() {
	close(h.messageChan)
}

// QueueMessage enqueues a message without blocking; reports false when the
// hub is saturated.
func (h *Hub) QueueMessage(msg HubMessage) bool {
	select {
	case h.messageChan <- msg:
		return true
	default:
		logrus.WithField("message_type", msg.Type).Warn("Hub message channel full, dropping message")
		return false
	}
}

// Register enqueues the client for registration; reports false when the hub
// is saturated and the connection should be dropped.
func (h *Hub) Register(client *Client) bool {
	return h.QueueMessage(HubMessage{Type: msgRegister, Client: client})
}

// --- registration / presence ---

func (h *Hub) registerClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: attempted to register a nil client")
		return
	}
	logrus.WithField("user_id", client.UserID()).Info("Client registered to hub")
}

// unregisterClient is the disconnect path: presence is dropped, and if the
// departing user hosted a room still in WAITING the room is deleted and its
// members told to leave.
func (h *Hub) unregisterClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: attempted to unregister a nil client")
		return
	}
	userID := client.UserID()
	roomID := client.RoomID()
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": roomID})

	h.mu.Lock()
	if current, ok := h.online[userID]; ok && current == client {
		delete(h.online, userID)
	}
	if roomID != 0 {
		if roomClients, ok := h.rooms[roomID]; ok {
			delete(roomClients, client)
			if len(roomClients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	h.mu.Unlock()

	// Gameplay handlers run in their own goroutines and may still hold this
	// client; closeSend flips the client into drop mode before closing, so a
	// late trySend never hits a closed channel.
	client.closeSend()

	h.broadcastAll(EventUserOffline, presencePayload{UserID: userID}, nil)

	if roomID != 0 {
		h.handleRoomDeparture(roomID, userID, logCtx)
	}
	logCtx.Info("Client unregistered from hub")
}

// handleRoomDeparture notifies a room about a disconnected member. Host
// departure from a WAITING lobby is the one path that implicitly cancels it.
func (h *Hub) handleRoomDeparture(roomID, userID uint, logCtx *logrus.Entry) {
	ctx := context.Background()

	room, err := h.roomService.FindRoomByID(ctx, roomID)
	if err != nil {
		// room already gone (e.g. deleted by an explicit leave); nothing to announce
		logCtx.WithError(err).Debug("Room lookup failed during departure handling")
		return
	}

	if room.HostID == userID && room.Status == domain.StatusWaiting {
		if err := h.roomService.DeleteRoom(ctx, roomID); err != nil {
			logCtx.WithError(err).Error("Failed to delete room after host disconnect")
			return
		}
		h.broadcastRoom(roomID, EventRoomClosed, roomClosedPayload{RoomID: roomID, HostID: userID}, nil)
		h.dropRoom(roomID)
		logCtx.Info("Host disconnected from waiting room, room closed")
		return
	}

	// Non-host disconnects (and any disconnect while PLAYING) keep the
	// participant row: the player may reconnect and rejoin the channel.
	h.broadcastRoom(roomID, EventPlayerLeft, playerRoomPayload{RoomID: roomID, UserID: userID}, nil)
}

// dropRoom removes all subscriptions for a deleted room.
func (h *Hub) dropRoom(roomID uint) {
	h.mu.Lock()
	for client := range h.rooms[roomID] {
		client.setRoomID(0)
	}
	delete(h.rooms, roomID)
	h.mu.Unlock()
}

// --- inbound event dispatch ---

// dispatchEvent parses an inbound frame and routes it. Subscription changes
// run inline on the hub goroutine; gameplay events run in their own goroutine
// since the storage layer arbitrates their concurrency. Every handler traps
// errors and reports them to the originating connection only.
func (h *Hub) dispatchEvent(client *Client, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logrus.WithField("user_id", client.UserID()).WithError(err).Warn("Dropping malformed inbound event")
		h.sendError(client, "", "malformed event payload")
		return
	}

	switch env.Event {
	case EventJoinUserRoom:
		h.handleJoinUserRoom(client)
	case EventJoinRoom:
		h.handleJoinRoom(client, env.Data)
	case EventCompleteCell:
		go h.handleCompleteCell(client, env.Data)
	case EventStartGame:
		go h.handleStartGame(client, env.Data)
	case EventToggleReady:
		go h.handleToggleReady(client, env.Data)
	default:
		logrus.WithFields(logrus.Fields{"user_id": client.UserID(), "event": env.Event}).Warn("Unknown inbound event")
		h.sendError(client, env.Event, "unknown event")
	}
}

// handleJoinUserRoom subscribes the connection to its private per-user
// channel and marks the user online. The user identity comes from the
// authenticated connection, not the payload.
func (h *Hub) handleJoinUserRoom(client *Client) {
	userID := client.UserID()

	h.mu.Lock()
	h.online[userID] = client
	h.mu.Unlock()

	logrus.WithField("user_id", userID).Info("User online")
	h.broadcastAll(EventUserOnline, presencePayload{UserID: userID}, nil)
}

// handleJoinRoom subscribes the connection to a room's broadcast channel and
// notifies the other members.
func (h *Hub) handleJoinRoom(client *Client, data json.RawMessage) {
	var payload roomEventPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == 0 {
		h.sendError(client, EventJoinRoom, "room_id is required")
		return
	}
	userID := client.UserID()
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": payload.RoomID})

	if _, err := h.roomService.FindRoomByID(context.Background(), payload.RoomID); err != nil {
		h.sendError(client, EventJoinRoom, err.Error())
		return
	}

	h.mu.Lock()
	// a connection subscribes to one room at a time
	if prev := client.RoomID(); prev != 0 && prev != payload.RoomID {
		if prevClients, ok := h.rooms[prev]; ok {
			delete(prevClients, client)
			if len(prevClients) == 0 {
				delete(h.rooms, prev)
			}
		}
	}
	if _, ok := h.rooms[payload.RoomID]; !ok {
		h.rooms[payload.RoomID] = make(map[*Client]bool)
	}
	h.rooms[payload.RoomID][client] = true
	// the room association must be visible before the subscription lock drops,
	// or a disconnect racing this join would clean up under the old room ID
	client.setRoomID(payload.RoomID)
	h.mu.Unlock()

	logCtx.Info("Client subscribed to room channel")
	h.broadcastRoom(payload.RoomID, EventPlayerJoined, playerRoomPayload{RoomID: payload.RoomID, UserID: userID}, client)
	h.broadcastAll(EventUserActivity, presencePayload{UserID: userID}, nil)
}

// handleCompleteCell runs the completion engine and the win evaluator, then
// fans out the results. Engine errors (lockout conflicts included) go only to
// the requesting connection.
func (h *Hub) handleCompleteCell(client *Client, data json.RawMessage) {
	var payload roomEventPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == 0 || payload.CellID == 0 {
		h.sendError(client, EventCompleteCell, "room_id and cell_id are required")
		return
	}
	ctx := context.Background()
	userID := client.UserID()
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "room_id": payload.RoomID, "cell_id": payload.CellID})

	_, win, err := h.gameService.CompleteCell(ctx, payload.RoomID, payload.CellID, userID)
	if err != nil {
		h.sendError(client, EventCompleteCell, err.Error())
		return
	}

	h.broadcastRoom(payload.RoomID, EventCellCompleted, cellCompletedPayload{
		RoomID: payload.RoomID,
		CellID: payload.CellID,
		UserID: userID,
	}, nil)

	if !win.Won {
		return
	}

	stats, err := h.gameService.RoomStats(ctx, payload.RoomID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to compute final statistics")
		stats = map[uint]int{}
	}
	h.broadcastRoom(payload.RoomID, EventGameEnded, gameEndedPayload{
		RoomID:   payload.RoomID,
		WinnerID: win.WinnerID,
		WinType:  win.Type,
		WinIndex: win.Index,
		Stats:    stats,
	}, nil)
	h.enqueueXPAward(win.WinnerID, payload.RoomID, logCtx)
}

func (h *Hub) handleStartGame(client *Client, data json.RawMessage) {
	var payload roomEventPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == 0 {
		h.sendError(client, EventStartGame, "room_id is required")
		return
	}

	room, err := h.roomService.StartGame(context.Background(), payload.RoomID, client.UserID())
	if err != nil {
		h.sendError(client, EventStartGame, err.Error())
		return
	}
	h.broadcastRoom(payload.RoomID, EventGameStarted, gameStartedPayload{
		RoomID:    room.ID,
		StartedAt: room.StartedAt,
	}, nil)
}

func (h *Hub) handleToggleReady(client *Client, data json.RawMessage) {
	var payload roomEventPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == 0 {
		h.sendError(client, EventToggleReady, "room_id is required")
		return
	}

	ready, err := h.roomService.ToggleReady(context.Background(), payload.RoomID, client.UserID())
	if err != nil {
		h.sendError(client, EventToggleReady, err.Error())
		return
	}
	h.broadcastRoom(payload.RoomID, EventPlayerReadyChanged, readyChangedPayload{
		RoomID:  payload.RoomID,
		UserID:  client.UserID(),
		IsReady: ready,
	}, nil)
}

func (h *Hub) enqueueXPAward(userID, roomID uint, logCtx *logrus.Entry) {
	if h.asynqClient == nil {
		return
	}
	payload, err := tasks.NewXPAwardPayload(userID, roomID, tasks.XPWinAward)
	if err != nil {
		logCtx.WithError(err).Error("Failed to build XP award payload")
		return
	}
	if _, err := h.asynqClient.Enqueue(asynq.NewTask(tasks.TypeXPAward, payload)); err != nil {
		logCtx.WithError(err).Error("Failed to enqueue XP award task")
		return
	}
	logCtx.WithField("winner_id", userID).Debug("XP award task enqueued")
}

// --- broadcasting ---

// broadcastRoom sends a named event to every client subscribed to the room,
// excluding sender when non-nil. Slow clients are skipped rather than allowed
// to stall the broadcast.
func (h *Hub) broadcastRoom(roomID uint, event string, data interface{}, sender *Client) {
	message, err := encodeEvent(event, data)
	if err != nil {
		logrus.WithFields(logrus.Fields{"room_id": roomID, "event": event}).WithError(err).Error("Failed to encode broadcast event")
		return
	}

	h.mu.RLock()
	roomClients := h.rooms[roomID]
	clientsToSend := make([]*Client, 0, len(roomClients))
	for client := range roomClients {
		if client != sender {
			clientsToSend = append(clientsToSend, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range clientsToSend {
		if !client.trySend(message) {
			logrus.WithFields(logrus.Fields{
				"room_id":          roomID,
				"event":            event,
				"receiver_user_id": client.UserID(),
			}).Warn("Client unavailable during broadcast, skipping client")
		}
	}
}

// broadcastAll sends a presence event to every online connection.
func (h *Hub) broadcastAll(event string, data interface{}, sender *Client) {
	message, err := encodeEvent(event, data)
	if err != nil {
		logrus.WithField("event", event).WithError(err).Error("Failed to encode broadcast event")
		return
	}

	h.mu.RLock()
	clientsToSend := make([]*Client, 0, len(h.online))
	for _, client := range h.online {
		if client != sender {
			clientsToSend = append(clientsToSend, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range clientsToSend {
		client.trySend(message)
	}
}

// sendError delivers an error payload to the originating connection only.
func (h *Hub) sendError(client *Client, event, message string) {
	raw, err := encodeEvent(EventError, errorPayload{Event: event, Message: message})
	if err != nil {
		return
	}
	if !client.trySend(raw) {
		logrus.WithField("user_id", client.UserID()).Warn("Client unavailable, error event dropped")
	}
}

// --- outbound payloads ---

type presencePayload struct {
	UserID uint `json:"user_id"`
}

type playerRoomPayload struct {
	RoomID uint `json:"room_id"`
	UserID uint `json:"user_id"`
}

type roomClosedPayload struct {
	RoomID uint `json:"room_id"`
	HostID uint `json:"host_id"`
}

type cellCompletedPayload struct {
	RoomID uint `json:"room_id"`
	CellID uint `json:"cell_id"`
	UserID uint `json:"user_id"`
}

type gameStartedPayload struct {
	RoomID    uint       `json:"room_id"`
	StartedAt *time.Time `json:"started_at,omitempty"`
}

type gameEndedPayload struct {
	RoomID   uint           `json:"room_id"`
	WinnerID uint           `json:"winner_id"`
	WinType  domain.WinType `json:"win_type"`
	WinIndex int            `json:"win_index"`
	Stats    map[uint]int   `json:"stats"`
}

type readyChangedPayload struct {
	RoomID  uint `json:"room_id"`
	UserID  uint `json:"user_id"`
	IsReady bool `json:"is_ready"`
}

type errorPayload struct {
	Event   string `json:"event,omitempty"`
	Message string `json:"message"`
}
