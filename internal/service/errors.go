package service

import "errors"

// Business errors surfaced to the handler boundary. HTTP handlers translate
// them to 4xx responses, the hub delivers them to the originating connection
// as an `error` event. None are fatal to the process.
var (
	// not found
	ErrUserNotFound       = errors.New("user not found")
	ErrBoardNotFound      = errors.New("board not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrCellNotFound       = errors.New("cell not found")
	ErrInvitationNotFound = errors.New("invitation not found")

	// unauthorized
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrWrongPassword        = errors.New("room password does not match")
	ErrNotHost              = errors.New("only the host can perform this action")
	ErrNotParticipant       = errors.New("user is not a participant of this room")
	ErrNotInvitee           = errors.New("invitation is addressed to another user")

	// invalid state
	ErrRoomNotJoinable = errors.New("room is not accepting players")
	ErrGameNotActive   = errors.New("game is not in progress")
	ErrInviteResolved  = errors.New("invitation has already been resolved")

	// capacity / contention
	ErrRoomFull      = errors.New("room is full")
	ErrCellLocked    = errors.New("cell already locked by another player")
	ErrInvitePending = errors.New("a pending invitation already exists for this user")

	ErrRegistrationFailed = errors.New("registration failed: username or email already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternalServer     = errors.New("internal server error")
)
