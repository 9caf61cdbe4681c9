package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

// GormInvitationRepository is the GORM implementation of InvitationRepository.
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewGormInvitationRepository creates a GormInvitationRepository.
func NewGormInvitationRepository(db *gorm.DB) *GormInvitationRepository {
	if db == nil {
		panic("database connection cannot be nil for GormInvitationRepository")
	}
	return &GormInvitationRepository{db: db}
}

// Create inserts a PENDING invitation. The partial unique index on
// (room_id, to_user_id) WHERE status = 'PENDING' rejects a second pending
// invitation for the same target; that rejection maps to ErrDuplicateEntry.
func (r *GormInvitationRepository) Create(ctx context.Context, inv *domain.RoomInvitation) error {
	err := r.db.WithContext(ctx).Create(inv).Error
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create invitation (room: %d, to: %d): %w", inv.RoomID, inv.ToUserID, err)
	}
	return nil
}

func (r *GormInvitationRepository) FindByID(ctx context.Context, id uint) (*domain.RoomInvitation, error) {
	var inv domain.RoomInvitation
	err := r.db.WithContext(ctx).First(&inv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("gorm: find invitation by id %d: %w", id, err)
	}
	return &inv, nil
}

func (r *GormInvitationRepository) Save(ctx context.Context, inv *domain.RoomInvitation) error {
	err := r.db.WithContext(ctx).Save(inv).Error
	if err != nil {
		return fmt.Errorf("gorm: save invitation %d: %w", inv.ID, err)
	}
	return nil
}

func (r *GormInvitationRepository) ListPendingForUser(ctx context.Context, userID uint) ([]domain.RoomInvitation, error) {
	var invs []domain.RoomInvitation
	err := r.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", userID, domain.InvitePending).
		Order("created_at DESC").
		Find(&invs).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list pending invitations for user %d: %w", userID, err)
	}
	return invs, nil
}
