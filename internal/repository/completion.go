package repository

import (
	"context"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// ClaimOutcome is the tagged result of the LOCKOUT conditional insert. The
// check and the insert are a single atomic statement at the storage layer;
// callers branch on the outcome instead of interpreting a generic error.
type ClaimOutcome int

const (
	// ClaimInserted: the cell was free and is now owned by the caller.
	ClaimInserted ClaimOutcome = iota
	// ClaimAlreadyOwn: the caller already owned the cell (idempotent repeat).
	ClaimAlreadyOwn
	// ClaimOwnedByOther: another user owns the cell.
	ClaimOwnedByOther
)

// CompletionRepository stores cell completion facts.
type CompletionRepository interface {
	// SaveIdempotent inserts the completion for STANDARD/BLACKOUT rooms.
	// A duplicate (room, cell, user) triple is a silent no-op; the returned
	// completion reflects the persisted row either way.
	SaveIdempotent(ctx context.Context, c *domain.CellCompletion) (inserted bool, out *domain.CellCompletion, err error)

	// Claim inserts the completion for LOCKOUT rooms, conditioned atomically
	// on no completion existing yet for (room, cell). On rejection the current
	// owner is re-read to distinguish ClaimAlreadyOwn from ClaimOwnedByOther.
	// out is the winning row for ClaimInserted/ClaimAlreadyOwn, nil otherwise.
	Claim(ctx context.Context, c *domain.CellCompletion) (outcome ClaimOutcome, out *domain.CellCompletion, err error)

	// ListByRoom returns every completion in the room joined with its cell's
	// grid position.
	ListByRoom(ctx context.Context, roomID uint) ([]domain.CompletionCell, error)
}
