package domain

import "time"

// CellCompletion records that a user finished a cell within one room's
// play-through. It outlives the room only as a historical record.
//
// Two uniqueness rules apply:
//   - all modes: at most one row per (room, cell, user) — uniq_room_cell_user;
//   - LOCKOUT:   at most one row per (room, cell) regardless of user, enforced
//     by a partial unique index on (room_id, cell_id) WHERE exclusive
//     (created in setup.MigrateDB; GORM tags cannot express the predicate).
//
// Rows written for LOCKOUT rooms carry Exclusive=true so the partial index
// arbitrates contention at the storage layer.
type CellCompletion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;uniqueIndex:uniq_room_cell_user,priority:1" json:"room_id"`
	CellID    uint      `gorm:"not null;uniqueIndex:uniq_room_cell_user,priority:2" json:"cell_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_room_cell_user,priority:3" json:"user_id"`
	Exclusive bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CompletionCell is a completion joined with its cell's grid position,
// the shape the win evaluator consumes.
type CompletionCell struct {
	UserID   uint `json:"user_id"`
	CellID   uint `json:"cell_id"`
	RowIndex int  `json:"row_index"`
	ColIndex int  `json:"col_index"`
}
