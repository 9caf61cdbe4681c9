package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// ParticipantRepository is a mock of repository.ParticipantRepository.
type ParticipantRepository struct {
	mock.Mock
}

func (_m *ParticipantRepository) Join(ctx context.Context, p *domain.RoomParticipant) (bool, *domain.RoomParticipant, error) {
	ret := _m.Called(ctx, p)
	var r1 *domain.RoomParticipant
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*domain.RoomParticipant)
	}
	return ret.Bool(0), r1, ret.Error(2)
}

func (_m *ParticipantRepository) Find(ctx context.Context, roomID, userID uint) (*domain.RoomParticipant, error) {
	ret := _m.Called(ctx, roomID, userID)
	var r0 *domain.RoomParticipant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.RoomParticipant)
	}
	return r0, ret.Error(1)
}

func (_m *ParticipantRepository) ListByRoom(ctx context.Context, roomID uint) ([]domain.RoomParticipant, error) {
	ret := _m.Called(ctx, roomID)
	var r0 []domain.RoomParticipant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.RoomParticipant)
	}
	return r0, ret.Error(1)
}

func (_m *ParticipantRepository) CountByRoom(ctx context.Context, roomID uint) (int64, error) {
	ret := _m.Called(ctx, roomID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *ParticipantRepository) SetReady(ctx context.Context, roomID, userID uint, ready bool) error {
	ret := _m.Called(ctx, roomID, userID, ready)
	return ret.Error(0)
}
