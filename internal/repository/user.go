// Package repository defines the persistence gateway interfaces. The GORM
// implementations live under internal/infra/persistence/gorm.
package repository

import (
	"context"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// UserRepository stores and retrieves user accounts.
type UserRepository interface {
	// FindByID returns the user or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByUsername returns the user or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Save creates the user, or updates it when the ID is already set.
	// Returns ErrDuplicateEntry when the username or email is taken.
	Save(ctx context.Context, user *domain.User) error

	// AddXP atomically increments the user's experience total.
	AddXP(ctx context.Context, userID uint, amount int) error
}
