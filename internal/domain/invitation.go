package domain

import "time"

// InviteStatus is the lifecycle state of a room invitation.
type InviteStatus string

const (
	InvitePending  InviteStatus = "PENDING"
	InviteAccepted InviteStatus = "ACCEPTED"
	InviteDeclined InviteStatus = "DECLINED"
)

// RoomInvitation asks ToUserID to join RoomID. At most one PENDING invitation
// may exist per (room, to_user); a partial unique index created in
// setup.MigrateDB enforces this.
type RoomInvitation struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	RoomID     uint         `gorm:"index;not null" json:"room_id"`
	FromUserID uint         `gorm:"not null" json:"from_user_id"`
	ToUserID   uint         `gorm:"index;not null" json:"to_user_id"`
	Status     InviteStatus `gorm:"not null;default:PENDING" json:"status"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime" json:"-"`
}
