package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
	"github.com/mertkozcan/gridlock-server/internal/repository/mocks"
	"github.com/mertkozcan/gridlock-server/internal/service"
)

func newInvitationServiceWithMocks() (*service.InvitationService, *mocks.InvitationRepository, *mocks.RoomRepository, *mocks.ParticipantRepository) {
	invitationRepo := new(mocks.InvitationRepository)
	roomRepo := new(mocks.RoomRepository)
	participantRepo := new(mocks.ParticipantRepository)
	boardRepo := new(mocks.BoardRepository)
	roomService := service.NewRoomService(roomRepo, participantRepo, boardRepo)
	return service.NewInvitationService(invitationRepo, roomService), invitationRepo, roomRepo, participantRepo
}

func TestInvitationService_Invite_Success(t *testing.T) {
	svc, invitationRepo, roomRepo, _ := newInvitationServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, Status: domain.StatusWaiting}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()
	invitationRepo.On("Create", ctx, mock.MatchedBy(func(inv *domain.RoomInvitation) bool {
		return inv.RoomID == 1 && inv.FromUserID == 10 && inv.ToUserID == 20 && inv.Status == domain.InvitePending
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.RoomInvitation).ID = 33
	}).Return(nil).Once()

	inv, err := svc.Invite(ctx, 1, 10, 20)

	require.NoError(t, err)
	assert.Equal(t, uint(33), inv.ID)
	invitationRepo.AssertExpectations(t)
}

func TestInvitationService_Invite_Self(t *testing.T) {
	svc, invitationRepo, _, _ := newInvitationServiceWithMocks()

	_, err := svc.Invite(context.Background(), 1, 10, 10)

	assert.ErrorIs(t, err, service.ErrInvalidInput)
	invitationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvitationService_Invite_DuplicatePending(t *testing.T) {
	svc, invitationRepo, roomRepo, _ := newInvitationServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, Status: domain.StatusWaiting}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()
	invitationRepo.On("Create", ctx, mock.AnythingOfType("*domain.RoomInvitation")).Return(repository.ErrDuplicateEntry).Once()

	_, err := svc.Invite(ctx, 1, 10, 20)

	assert.ErrorIs(t, err, service.ErrInvitePending)
}

func TestInvitationService_Invite_RoomNotWaiting(t *testing.T) {
	svc, invitationRepo, roomRepo, _ := newInvitationServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, Status: domain.StatusPlaying}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()

	_, err := svc.Invite(ctx, 1, 10, 20)

	assert.ErrorIs(t, err, service.ErrRoomNotJoinable)
	invitationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvitationService_Accept_JoinsRoom(t *testing.T) {
	svc, invitationRepo, roomRepo, participantRepo := newInvitationServiceWithMocks()
	ctx := context.Background()

	inv := &domain.RoomInvitation{ID: 33, RoomID: 1, FromUserID: 10, ToUserID: 20, Status: domain.InvitePending}
	invitationRepo.On("FindByID", ctx, uint(33)).Return(inv, nil).Once()

	// the room is private; the invitation stands in for the password
	room := &domain.Room{ID: 1, HostID: 10, MaxPlayers: 4, Status: domain.StatusWaiting, IsPrivate: true, Password: "hunter2"}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Twice()
	participantRepo.On("Find", ctx, uint(1), uint(20)).Return(nil, repository.ErrNotFound).Once()
	participantRepo.On("CountByRoom", ctx, uint(1)).Return(int64(1), nil).Once()
	joined := &domain.RoomParticipant{ID: 7, RoomID: 1, UserID: 20}
	participantRepo.On("Join", ctx, mock.AnythingOfType("*domain.RoomParticipant")).Return(true, joined, nil).Once()
	invitationRepo.On("Save", ctx, mock.MatchedBy(func(saved *domain.RoomInvitation) bool {
		return saved.ID == 33 && saved.Status == domain.InviteAccepted
	})).Return(nil).Once()

	participant, err := svc.Accept(ctx, 33, 20)

	require.NoError(t, err)
	assert.Equal(t, uint(20), participant.UserID)
	invitationRepo.AssertExpectations(t)
}

func TestInvitationService_Accept_WrongUser(t *testing.T) {
	svc, invitationRepo, _, _ := newInvitationServiceWithMocks()
	ctx := context.Background()

	inv := &domain.RoomInvitation{ID: 33, RoomID: 1, ToUserID: 20, Status: domain.InvitePending}
	invitationRepo.On("FindByID", ctx, uint(33)).Return(inv, nil).Once()

	_, err := svc.Accept(ctx, 33, 99)

	assert.ErrorIs(t, err, service.ErrNotInvitee)
}

func TestInvitationService_Accept_RoomFullKeepsInvitePending(t *testing.T) {
	svc, invitationRepo, roomRepo, participantRepo := newInvitationServiceWithMocks()
	ctx := context.Background()

	inv := &domain.RoomInvitation{ID: 33, RoomID: 1, ToUserID: 20, Status: domain.InvitePending}
	invitationRepo.On("FindByID", ctx, uint(33)).Return(inv, nil).Once()
	room := &domain.Room{ID: 1, HostID: 10, MaxPlayers: 2, Status: domain.StatusWaiting}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Twice()
	participantRepo.On("Find", ctx, uint(1), uint(20)).Return(nil, repository.ErrNotFound).Once()
	participantRepo.On("CountByRoom", ctx, uint(1)).Return(int64(2), nil).Once()

	_, err := svc.Accept(ctx, 33, 20)

	assert.ErrorIs(t, err, service.ErrRoomFull)
	invitationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestInvitationService_Decline(t *testing.T) {
	svc, invitationRepo, _, _ := newInvitationServiceWithMocks()
	ctx := context.Background()

	inv := &domain.RoomInvitation{ID: 33, RoomID: 1, ToUserID: 20, Status: domain.InvitePending}
	invitationRepo.On("FindByID", ctx, uint(33)).Return(inv, nil).Once()
	invitationRepo.On("Save", ctx, mock.MatchedBy(func(saved *domain.RoomInvitation) bool {
		return saved.Status == domain.InviteDeclined
	})).Return(nil).Once()

	err := svc.Decline(ctx, 33, 20)

	require.NoError(t, err)
	invitationRepo.AssertExpectations(t)
}

func TestInvitationService_Decline_AlreadyResolved(t *testing.T) {
	svc, invitationRepo, _, _ := newInvitationServiceWithMocks()
	ctx := context.Background()

	inv := &domain.RoomInvitation{ID: 33, RoomID: 1, ToUserID: 20, Status: domain.InviteAccepted}
	invitationRepo.On("FindByID", ctx, uint(33)).Return(inv, nil).Once()

	err := svc.Decline(ctx, 33, 20)

	assert.ErrorIs(t, err, service.ErrInviteResolved)
	invitationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
