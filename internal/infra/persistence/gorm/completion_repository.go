package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

// GormCompletionRepository is the GORM implementation of CompletionRepository.
type GormCompletionRepository struct {
	db *gorm.DB
}

// NewGormCompletionRepository creates a GormCompletionRepository.
func NewGormCompletionRepository(db *gorm.DB) *GormCompletionRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCompletionRepository")
	}
	return &GormCompletionRepository{db: db}
}

// SaveIdempotent inserts with ON CONFLICT (room_id, cell_id, user_id)
// DO NOTHING: a repeated completion by the same user changes nothing and is
// not an error.
func (r *GormCompletionRepository) SaveIdempotent(ctx context.Context, c *domain.CellCompletion) (bool, *domain.CellCompletion, error) {
	c.Exclusive = false
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "cell_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(c)
	if result.Error != nil {
		return false, nil, fmt.Errorf("gorm: save completion (room: %d, cell: %d, user: %d): %w",
			c.RoomID, c.CellID, c.UserID, result.Error)
	}
	if result.RowsAffected > 0 {
		return true, c, nil
	}
	existing, err := r.find(ctx, c.RoomID, c.CellID, c.UserID)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

// Claim is the LOCKOUT primitive: INSERT ... ON CONFLICT (room_id, cell_id)
// WHERE exclusive DO NOTHING against the partial unique index, so the
// non-existence check and the insert are one atomic statement. Concurrent
// claimers race at the index; exactly one insert lands. When the insert is
// rejected the current owner is re-read and the outcome reports whether the
// caller already owned the cell.
func (r *GormCompletionRepository) Claim(ctx context.Context, c *domain.CellCompletion) (repository.ClaimOutcome, *domain.CellCompletion, error) {
	c.Exclusive = true
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "room_id"}, {Name: "cell_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "exclusive"}}},
			DoNothing:   true,
		}).
		Create(c)
	if result.Error != nil {
		return 0, nil, fmt.Errorf("gorm: claim cell (room: %d, cell: %d, user: %d): %w",
			c.RoomID, c.CellID, c.UserID, result.Error)
	}
	if result.RowsAffected > 0 {
		return repository.ClaimInserted, c, nil
	}

	var owner domain.CellCompletion
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND cell_id = ?", c.RoomID, c.CellID).
		First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Claim rejected yet no owner row: only possible if the owner row
			// was deleted between the insert and this read.
			return 0, nil, fmt.Errorf("gorm: claim cell (room: %d, cell: %d): conflict without owner row", c.RoomID, c.CellID)
		}
		return 0, nil, fmt.Errorf("gorm: read cell owner (room: %d, cell: %d): %w", c.RoomID, c.CellID, err)
	}
	if owner.UserID == c.UserID {
		return repository.ClaimAlreadyOwn, &owner, nil
	}
	return repository.ClaimOwnedByOther, nil, nil
}

func (r *GormCompletionRepository) ListByRoom(ctx context.Context, roomID uint) ([]domain.CompletionCell, error) {
	var rows []domain.CompletionCell
	err := r.db.WithContext(ctx).
		Model(&domain.CellCompletion{}).
		Select("cell_completions.user_id, cell_completions.cell_id, board_cells.row_index, board_cells.col_index").
		Joins("JOIN board_cells ON board_cells.id = cell_completions.cell_id").
		Where("cell_completions.room_id = ?", roomID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list completions of room %d: %w", roomID, err)
	}
	return rows, nil
}

func (r *GormCompletionRepository) find(ctx context.Context, roomID, cellID, userID uint) (*domain.CellCompletion, error) {
	var c domain.CellCompletion
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND cell_id = ? AND user_id = ?", roomID, cellID, userID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find completion (room: %d, cell: %d, user: %d): %w", roomID, cellID, userID, err)
	}
	return &c, nil
}
