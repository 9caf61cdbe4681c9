package repository

import (
	"context"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// ParticipantRepository stores room memberships. Removal lives on
// RoomRepository because it must share a transaction with room deletion.
type ParticipantRepository interface {
	// Join inserts the participant idempotently: a duplicate (room, user) pair
	// leaves the existing row untouched and reports inserted=false. The
	// returned participant always reflects the persisted row.
	Join(ctx context.Context, p *domain.RoomParticipant) (inserted bool, out *domain.RoomParticipant, err error)

	// Find returns the membership row or ErrNotFound.
	Find(ctx context.Context, roomID, userID uint) (*domain.RoomParticipant, error)

	// ListByRoom returns all participants of a room ordered by join time.
	ListByRoom(ctx context.Context, roomID uint) ([]domain.RoomParticipant, error)

	// CountByRoom returns the number of participants in a room.
	CountByRoom(ctx context.Context, roomID uint) (int64, error)

	// SetReady updates the ready flag, returning ErrNotFound when the user is
	// not a participant of the room.
	SetReady(ctx context.Context, roomID, userID uint, ready bool) error
}
