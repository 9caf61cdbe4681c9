// Package tasks defines the asynq task types and payloads shared between the
// enqueueing side (hub, scheduler) and the worker handlers.
package tasks

import "encoding/json"

// Task type names.
const (
	// TypeXPAward grants experience to a user, enqueued when a game ends.
	TypeXPAward = "xp:award"
	// TypeRoomSweep is the periodic sweep deleting abandoned WAITING rooms.
	TypeRoomSweep = "room:sweep"
)

// XPWinAward is the flat experience grant for winning a game.
const XPWinAward = 100

// XPAwardPayload carries an experience grant.
type XPAwardPayload struct {
	UserID uint `json:"user_id"`
	RoomID uint `json:"room_id"`
	Amount int  `json:"amount"`
}

// NewXPAwardPayload serializes an XP award task payload.
func NewXPAwardPayload(userID, roomID uint, amount int) ([]byte, error) {
	return json.Marshal(XPAwardPayload{UserID: userID, RoomID: roomID, Amount: amount})
}

// NewRoomSweepPayload serializes the (empty) periodic sweep payload.
func NewRoomSweepPayload() ([]byte, error) {
	return json.Marshal(struct{}{})
}
