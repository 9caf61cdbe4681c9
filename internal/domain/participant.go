package domain

import "time"

// RoomParticipant is the (room, user) membership record. The unique index
// makes a repeated join an insert conflict, which the repository treats as a
// no-op rather than an error.
type RoomParticipant struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	RoomID   uint      `gorm:"not null;uniqueIndex:uniq_room_user,priority:1" json:"room_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:uniq_room_user,priority:2" json:"user_id"`
	IsReady  bool      `gorm:"not null;default:false" json:"is_ready"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
