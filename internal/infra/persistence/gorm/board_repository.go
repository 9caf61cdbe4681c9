package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

// GormBoardRepository is the GORM implementation of BoardRepository.
type GormBoardRepository struct {
	db *gorm.DB
}

// NewGormBoardRepository creates a GormBoardRepository.
func NewGormBoardRepository(db *gorm.DB) *GormBoardRepository {
	if db == nil {
		panic("database connection cannot be nil for GormBoardRepository")
	}
	return &GormBoardRepository{db: db}
}

// Create persists the board and its cells in one transaction. GORM writes the
// associated Cells slice alongside the board row.
func (r *GormBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	err := r.db.WithContext(ctx).Create(board).Error
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create board (title: %s): %w", board.Title, err)
	}
	return nil
}

func (r *GormBoardRepository) FindByID(ctx context.Context, id uint) (*domain.Board, error) {
	var board domain.Board
	err := r.db.WithContext(ctx).Preload("Cells").First(&board, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBoardNotFound
		}
		return nil, fmt.Errorf("gorm: find board by id %d: %w", id, err)
	}
	return &board, nil
}

func (r *GormBoardRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Board{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: count boards by id %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *GormBoardRepository) FindCell(ctx context.Context, cellID uint) (*domain.BoardCell, error) {
	var cell domain.BoardCell
	err := r.db.WithContext(ctx).First(&cell, cellID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCellNotFound
		}
		return nil, fmt.Errorf("gorm: find cell by id %d: %w", cellID, err)
	}
	return &cell, nil
}
