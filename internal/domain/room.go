package domain

import "time"

// GameMode selects the completion and win rules for a room.
type GameMode string

const (
	ModeStandard GameMode = "STANDARD" // first full row/column/diagonal wins
	ModeLockout  GameMode = "LOCKOUT"  // a cell completed by anyone is closed to everyone else
	ModeBlackout GameMode = "BLACKOUT" // completing every cell wins
)

// Valid reports whether m is one of the known game modes.
func (m GameMode) Valid() bool {
	switch m {
	case ModeStandard, ModeLockout, ModeBlackout:
		return true
	}
	return false
}

// RoomStatus is the lifecycle state of a room.
//
// WAITING --(start by host)--> PLAYING --(win detected)--> COMPLETED.
// A WAITING room may instead be deleted when its last participant leaves.
type RoomStatus string

const (
	StatusWaiting   RoomStatus = "WAITING"
	StatusPlaying   RoomStatus = "PLAYING"
	StatusCompleted RoomStatus = "COMPLETED"
)

// WinType names the group of cells that ended a game.
type WinType string

const (
	WinRow      WinType = "row"
	WinColumn   WinType = "column"
	WinDiagonal WinType = "diagonal"
	WinBlackout WinType = "blackout"
)

// Room is one multiplayer session bound to a single board.
type Room struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BoardID     uint       `gorm:"index;not null" json:"board_id"`
	HostID      uint       `gorm:"index;not null" json:"host_id"`
	MaxPlayers  int        `gorm:"not null;default:4" json:"max_players"`
	IsPrivate   bool       `gorm:"not null;default:false" json:"is_private"`
	Password    string     `gorm:"" json:"-"`
	GameMode    GameMode   `gorm:"not null;default:STANDARD" json:"game_mode"`
	Status      RoomStatus `gorm:"index;not null;default:WAITING" json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	WinnerID    *uint      `json:"winner_id,omitempty"`
	WinType     *WinType   `json:"win_type,omitempty"`
	WinIndex    *int       `json:"win_index,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}
