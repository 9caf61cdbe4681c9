package repository

import (
	"context"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// InvitationRepository stores room invitations.
type InvitationRepository interface {
	// Create inserts a PENDING invitation. Returns ErrDuplicateEntry when a
	// PENDING invitation already exists for the same (room, to_user).
	Create(ctx context.Context, inv *domain.RoomInvitation) error

	// FindByID returns the invitation or ErrInvitationNotFound.
	FindByID(ctx context.Context, id uint) (*domain.RoomInvitation, error)

	// Save updates an existing invitation (status transitions).
	Save(ctx context.Context, inv *domain.RoomInvitation) error

	// ListPendingForUser returns the user's PENDING invitations, newest first.
	ListPendingForUser(ctx context.Context, userID uint) ([]domain.RoomInvitation, error)
}
