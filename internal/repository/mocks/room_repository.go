package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// RoomRepository is a mock of repository.RoomRepository.
type RoomRepository struct {
	mock.Mock
}

func (_m *RoomRepository) Create(ctx context.Context, room *domain.Room, host *domain.RoomParticipant) error {
	ret := _m.Called(ctx, room, host)
	return ret.Error(0)
}

func (_m *RoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Room
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Room)
	}
	return r0, ret.Error(1)
}

func (_m *RoomRepository) Save(ctx context.Context, room *domain.Room) error {
	ret := _m.Called(ctx, room)
	return ret.Error(0)
}

func (_m *RoomRepository) Delete(ctx context.Context, id uint) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *RoomRepository) ListByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	ret := _m.Called(ctx, status)
	var r0 []domain.Room
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Room)
	}
	return r0, ret.Error(1)
}

func (_m *RoomRepository) RemoveParticipant(ctx context.Context, roomID, userID uint) (bool, error) {
	ret := _m.Called(ctx, roomID, userID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *RoomRepository) DeleteStaleWaiting(ctx context.Context, cutoff time.Time) ([]uint, error) {
	ret := _m.Called(ctx, cutoff)
	var r0 []uint
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]uint)
	}
	return r0, ret.Error(1)
}
