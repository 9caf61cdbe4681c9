// Package domain defines the persisted data structures of the application.
package domain

import "time"

// User represents a registered player.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Email     string    `gorm:"uniqueIndex" json:"email,omitempty"`
	XP        int       `gorm:"not null;default:0" json:"xp"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}
