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

// GormParticipantRepository is the GORM implementation of ParticipantRepository.
type GormParticipantRepository struct {
	db *gorm.DB
}

// NewGormParticipantRepository creates a GormParticipantRepository.
func NewGormParticipantRepository(db *gorm.DB) *GormParticipantRepository {
	if db == nil {
		panic("database connection cannot be nil for GormParticipantRepository")
	}
	return &GormParticipantRepository{db: db}
}

// Join inserts the membership row with ON CONFLICT (room_id, user_id)
// DO NOTHING. A duplicate join leaves the existing row untouched; the
// persisted row is returned in both cases.
func (r *GormParticipantRepository) Join(ctx context.Context, p *domain.RoomParticipant) (bool, *domain.RoomParticipant, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(p)
	if result.Error != nil {
		return false, nil, fmt.Errorf("gorm: join room (room: %d, user: %d): %w", p.RoomID, p.UserID, result.Error)
	}
	if result.RowsAffected > 0 {
		return true, p, nil
	}
	existing, err := r.Find(ctx, p.RoomID, p.UserID)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

func (r *GormParticipantRepository) Find(ctx context.Context, roomID, userID uint) (*domain.RoomParticipant, error) {
	var p domain.RoomParticipant
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find participant (room: %d, user: %d): %w", roomID, userID, err)
	}
	return &p, nil
}

func (r *GormParticipantRepository) ListByRoom(ctx context.Context, roomID uint) ([]domain.RoomParticipant, error) {
	var participants []domain.RoomParticipant
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("joined_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list participants of room %d: %w", roomID, err)
	}
	return participants, nil
}

func (r *GormParticipantRepository) CountByRoom(ctx context.Context, roomID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.RoomParticipant{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count participants of room %d: %w", roomID, err)
	}
	return count, nil
}

func (r *GormParticipantRepository) SetReady(ctx context.Context, roomID, userID uint, ready bool) error {
	result := r.db.WithContext(ctx).
		Model(&domain.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("is_ready", ready)
	if result.Error != nil {
		return fmt.Errorf("gorm: set ready (room: %d, user: %d): %w", roomID, userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
