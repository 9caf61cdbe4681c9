package repository

import "errors"

// Generic storage errors. Implementations map driver-specific failures
// (gorm.ErrRecordNotFound, SQLSTATE 23505, ...) onto these so the service
// layer never inspects driver errors directly.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry indicates an insert or update violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// Per-resource aliases, kept distinct names for call-site readability.
var (
	ErrUserNotFound       = ErrNotFound
	ErrBoardNotFound      = ErrNotFound
	ErrRoomNotFound       = ErrNotFound
	ErrCellNotFound       = ErrNotFound
	ErrInvitationNotFound = ErrNotFound
)
