package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// InvitationRepository is a mock of repository.InvitationRepository.
type InvitationRepository struct {
	mock.Mock
}

func (_m *InvitationRepository) Create(ctx context.Context, inv *domain.RoomInvitation) error {
	ret := _m.Called(ctx, inv)
	return ret.Error(0)
}

func (_m *InvitationRepository) FindByID(ctx context.Context, id uint) (*domain.RoomInvitation, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.RoomInvitation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.RoomInvitation)
	}
	return r0, ret.Error(1)
}

func (_m *InvitationRepository) Save(ctx context.Context, inv *domain.RoomInvitation) error {
	ret := _m.Called(ctx, inv)
	return ret.Error(0)
}

func (_m *InvitationRepository) ListPendingForUser(ctx context.Context, userID uint) ([]domain.RoomInvitation, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.RoomInvitation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.RoomInvitation)
	}
	return r0, ret.Error(1)
}
