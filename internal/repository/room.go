package repository

import (
	"context"
	"time"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// RoomRepository stores rooms and owns the lifecycle operations that must be
// transactional across the room and its participants.
type RoomRepository interface {
	// Create persists a new room and its host participant in one transaction.
	// The host is inserted ready, mirroring room creation semantics.
	Create(ctx context.Context, room *domain.Room, host *domain.RoomParticipant) error

	// FindByID returns the room or ErrRoomNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Room, error)

	// Save updates an existing room.
	Save(ctx context.Context, room *domain.Room) error

	// Delete removes the room and, by cascade, its participants.
	// Completion rows are kept as historical record.
	Delete(ctx context.Context, id uint) error

	// ListByStatus returns rooms in the given status, newest first.
	ListByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error)

	// RemoveParticipant deletes the (room, user) participant row and, in the
	// same transaction, deletes the room itself when no participants remain.
	// Reports whether the room was deleted.
	RemoveParticipant(ctx context.Context, roomID, userID uint) (roomDeleted bool, err error)

	// DeleteStaleWaiting removes WAITING rooms that have seen no update since
	// the cutoff and returns the IDs of the rooms it deleted.
	DeleteStaleWaiting(ctx context.Context, cutoff time.Time) ([]uint, error)
}
