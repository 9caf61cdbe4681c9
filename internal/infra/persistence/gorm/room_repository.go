package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

// GormRoomRepository is the GORM implementation of RoomRepository.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRoomRepository")
	}
	return &GormRoomRepository{db: db}
}

// Create inserts the room and its host participant in one transaction so a
// room never exists without its host.
func (r *GormRoomRepository) Create(ctx context.Context, room *domain.Room, host *domain.RoomParticipant) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		host.RoomID = room.ID
		return tx.Create(host).Error
	})
	if err != nil {
		return fmt.Errorf("gorm: create room (board: %d, host: %d): %w", room.BoardID, room.HostID, err)
	}
	return nil
}

func (r *GormRoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find room by id %d: %w", id, err)
	}
	return &room, nil
}

func (r *GormRoomRepository) Save(ctx context.Context, room *domain.Room) error {
	err := r.db.WithContext(ctx).Save(room).Error
	if err != nil {
		return fmt.Errorf("gorm: save room %d: %w", room.ID, err)
	}
	return nil
}

// Delete removes the room and its participants. Completions stay behind as
// historical record.
func (r *GormRoomRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&domain.RoomParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Room{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("gorm: delete room %d: %w", id, err)
	}
	return nil
}

func (r *GormRoomRepository) ListByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list rooms by status %s: %w", status, err)
	}
	return rooms, nil
}

// RemoveParticipant deletes the membership row and collapses the room inside
// the same transaction when the last participant leaves. The post-condition
// check is part of the leave, not a separate cleanup pass.
func (r *GormRoomRepository) RemoveParticipant(ctx context.Context, roomID, userID uint) (bool, error) {
	var roomDeleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("room_id = ? AND user_id = ?", roomID, userID).Delete(&domain.RoomParticipant{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		var remaining int64
		if err := tx.Model(&domain.RoomParticipant{}).Where("room_id = ?", roomID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Delete(&domain.Room{}, roomID).Error; err != nil {
				return err
			}
			roomDeleted = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, repository.ErrNotFound
		}
		return false, fmt.Errorf("gorm: remove participant (room: %d, user: %d): %w", roomID, userID, err)
	}
	return roomDeleted, nil
}

// DeleteStaleWaiting removes WAITING rooms idle since before the cutoff.
func (r *GormRoomRepository) DeleteStaleWaiting(ctx context.Context, cutoff time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Room{}).
			Where("status = ? AND updated_at < ?", domain.StatusWaiting, cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("room_id IN ?", ids).Delete(&domain.RoomParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Room{}, ids).Error
	})
	if err != nil {
		return nil, fmt.Errorf("gorm: delete stale waiting rooms: %w", err)
	}
	return ids, nil
}
