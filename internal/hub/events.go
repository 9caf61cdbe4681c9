package hub

import "encoding/json"

// Inbound event names consumed over the socket.
const (
	EventJoinUserRoom = "join-user-room"
	EventJoinRoom     = "join-room"
	EventCompleteCell = "complete-cell"
	EventStartGame    = "start-game"
	EventToggleReady  = "toggle-ready"
)

// Outbound event names produced by the hub.
const (
	EventPlayerJoined       = "player-joined"
	EventPlayerLeft         = "player-left"
	EventRoomClosed         = "room-closed"
	EventCellCompleted      = "cell-completed"
	EventGameStarted        = "game-started"
	EventGameEnded          = "game-ended"
	EventPlayerReadyChanged = "player-ready-changed"
	EventUserOnline         = "user-online"
	EventUserOffline        = "user-offline"
	EventUserActivity       = "user-activity"
	EventError              = "error"
)

// envelope is the wire format in both directions: a named event plus a JSON
// payload.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// roomEventPayload is the inbound payload shared by the room-scoped events.
type roomEventPayload struct {
	RoomID uint `json:"room_id"`
	CellID uint `json:"cell_id,omitempty"`
}

// encodeEvent marshals an outbound envelope. A marshal failure here is a
// programming error; callers log and drop the event.
func encodeEvent(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Event: event, Data: raw})
}
