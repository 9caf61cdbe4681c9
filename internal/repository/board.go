package repository

import (
	"context"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// BoardRepository stores boards and their cells. Cells are written once at
// board creation and are read-only from the gameplay subsystem's perspective.
type BoardRepository interface {
	// Create persists the board together with its cells in one transaction.
	Create(ctx context.Context, board *domain.Board) error

	// FindByID returns the board with its cells preloaded, or ErrBoardNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Board, error)

	// Exists reports whether a board with the given ID exists.
	Exists(ctx context.Context, id uint) (bool, error)

	// FindCell returns a single cell, or ErrCellNotFound.
	FindCell(ctx context.Context, cellID uint) (*domain.BoardCell, error)
}
