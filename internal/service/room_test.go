package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
	"github.com/mertkozcan/gridlock-server/internal/repository/mocks"
	"github.com/mertkozcan/gridlock-server/internal/service"
)

func newRoomServiceWithMocks() (*service.RoomService, *mocks.RoomRepository, *mocks.ParticipantRepository, *mocks.BoardRepository) {
	roomRepo := new(mocks.RoomRepository)
	participantRepo := new(mocks.ParticipantRepository)
	boardRepo := new(mocks.BoardRepository)
	return service.NewRoomService(roomRepo, participantRepo, boardRepo), roomRepo, participantRepo, boardRepo
}

func TestRoomService_CreateRoom_Defaults(t *testing.T) {
	svc, roomRepo, _, boardRepo := newRoomServiceWithMocks()
	ctx := context.Background()

	boardRepo.On("Exists", ctx, uint(3)).Return(true, nil).Once()
	roomRepo.On("Create", ctx, mock.MatchedBy(func(room *domain.Room) bool {
		return room.BoardID == 3 &&
			room.HostID == 10 &&
			room.MaxPlayers == 4 &&
			room.GameMode == domain.ModeStandard &&
			room.Status == domain.StatusWaiting
	}), mock.MatchedBy(func(host *domain.RoomParticipant) bool {
		return host.UserID == 10 && host.IsReady
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Room).ID = 42
	}).Return(nil).Once()

	room, err := svc.CreateRoom(ctx, service.CreateRoomParams{BoardID: 3, HostID: 10})

	require.NoError(t, err)
	assert.Equal(t, uint(42), room.ID)
	roomRepo.AssertExpectations(t)
	boardRepo.AssertExpectations(t)
}

func TestRoomService_CreateRoom_BoardMissing(t *testing.T) {
	svc, roomRepo, _, boardRepo := newRoomServiceWithMocks()
	ctx := context.Background()

	boardRepo.On("Exists", ctx, uint(99)).Return(false, nil).Once()

	_, err := svc.CreateRoom(ctx, service.CreateRoomParams{BoardID: 99, HostID: 10})

	assert.ErrorIs(t, err, service.ErrBoardNotFound)
	roomRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoomService_CreateRoom_InvalidMode(t *testing.T) {
	svc, _, _, boardRepo := newRoomServiceWithMocks()
	ctx := context.Background()

	boardRepo.On("Exists", ctx, uint(3)).Return(true, nil).Once()

	_, err := svc.CreateRoom(ctx, service.CreateRoomParams{BoardID: 3, HostID: 10, GameMode: "SPEEDRUN"})

	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestRoomService_JoinRoom_Success(t *testing.T) {
	svc, roomRepo, participantRepo, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, MaxPlayers: 4, Status: domain.StatusWaiting}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()
	participantRepo.On("Find", ctx, uint(1), uint(20)).Return(nil, repository.ErrNotFound).Once()
	participantRepo.On("CountByRoom", ctx, uint(1)).Return(int64(2), nil).Once()
	joined := &domain.RoomParticipant{ID: 7, RoomID: 1, UserID: 20}
	participantRepo.On("Join", ctx, mock.AnythingOfType("*domain.RoomParticipant")).Return(true, joined, nil).Once()

	participant, err := svc.JoinRoom(ctx, 1, 20, "")

	require.NoError(t, err)
	assert.Equal(t, uint(20), participant.UserID)
	participantRepo.AssertExpectations(t)
}

func TestRoomService_JoinRoom_DuplicateIsIdempotent(t *testing.T) {
	svc, roomRepo, participantRepo, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	// room is full and no longer WAITING, but the user already holds a seat
	room := &domain.Room{ID: 1, HostID: 10, MaxPlayers: 2, Status: domain.StatusPlaying}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()
	existing := &domain.RoomParticipant{ID: 5, RoomID: 1, UserID: 20}
	participantRepo.On("Find", ctx, uint(1), uint(20)).Return(existing, nil).Once()

	participant, err := svc.JoinRoom(ctx, 1, 20, "")

	require.NoError(t, err)
	assert.Equal(t, uint(5), participant.ID)
	participantRepo.AssertNotCalled(t, "Join", mock.Anything, mock.Anything)
	participantRepo.AssertNotCalled(t, "CountByRoom", mock.Anything, mock.Anything)
}

func TestRoomService_JoinRoom_Full(t *testing.T) {
	svc, roomRepo, participantRepo, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, MaxPlayers: 2, Status: domain.StatusWaiting}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()
	participantRepo.On("Find", ctx, uint(1), uint(30)).Return(nil, repository.ErrNotFound).Once()
	participantRepo.On("CountByRoom", ctx, uint(1)).Return(int64(2), nil).Once()

	_, err := svc.JoinRoom(ctx, 1, 30, "")

	assert.ErrorIs(t, err, service.ErrRoomFull)
	participantRepo.AssertNotCalled(t, "Join", mock.Anything, mock.Anything)
}

func TestRoomService_JoinRoom_WrongPassword(t *testing.T) {
	svc, roomRepo, participantRepo, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, MaxPlayers: 4, Status: domain.StatusWaiting, IsPrivate: true, Password: "hunter2"}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()
	participantRepo.On("Find", ctx, uint(1), uint(30)).Return(nil, repository.ErrNotFound).Once()

	_, err := svc.JoinRoom(ctx, 1, 30, "wrong")

	assert.ErrorIs(t, err, service.ErrWrongPassword)
}

func TestRoomService_JoinRoom_NotWaiting(t *testing.T) {
	svc, roomRepo, participantRepo, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, MaxPlayers: 4, Status: domain.StatusPlaying}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()
	participantRepo.On("Find", ctx, uint(1), uint(30)).Return(nil, repository.ErrNotFound).Once()

	_, err := svc.JoinRoom(ctx, 1, 30, "")

	assert.ErrorIs(t, err, service.ErrRoomNotJoinable)
}

func TestRoomService_StartGame_NotHost(t *testing.T) {
	svc, roomRepo, _, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, Status: domain.StatusWaiting}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()

	_, err := svc.StartGame(ctx, 1, 20)

	assert.ErrorIs(t, err, service.ErrNotHost)
	assert.Equal(t, domain.StatusWaiting, room.Status)
	roomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRoomService_StartGame_Success(t *testing.T) {
	svc, roomRepo, _, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, Status: domain.StatusWaiting}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()
	roomRepo.On("Save", ctx, room).Return(nil).Once()

	started, err := svc.StartGame(ctx, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaying, started.Status)
	require.NotNil(t, started.StartedAt)
	roomRepo.AssertExpectations(t)
}

func TestRoomService_StartGame_AlreadyStarted(t *testing.T) {
	svc, roomRepo, _, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	room := &domain.Room{ID: 1, HostID: 10, Status: domain.StatusPlaying}
	roomRepo.On("FindByID", ctx, uint(1)).Return(room, nil).Once()

	_, err := svc.StartGame(ctx, 1, 10)

	assert.ErrorIs(t, err, service.ErrRoomNotJoinable)
}

func TestRoomService_LeaveRoom_LastParticipantDeletesRoom(t *testing.T) {
	svc, roomRepo, _, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	roomRepo.On("RemoveParticipant", ctx, uint(1), uint(10)).Return(true, nil).Once()

	deleted, err := svc.LeaveRoom(ctx, 1, 10)

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestRoomService_LeaveRoom_NotParticipant(t *testing.T) {
	svc, roomRepo, _, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	roomRepo.On("RemoveParticipant", ctx, uint(1), uint(99)).Return(false, repository.ErrNotFound).Once()

	_, err := svc.LeaveRoom(ctx, 1, 99)

	assert.ErrorIs(t, err, service.ErrNotParticipant)
}

func TestRoomService_ToggleReady(t *testing.T) {
	svc, _, participantRepo, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	participantRepo.On("Find", ctx, uint(1), uint(10)).Return(&domain.RoomParticipant{RoomID: 1, UserID: 10, IsReady: false}, nil).Once()
	participantRepo.On("SetReady", ctx, uint(1), uint(10), true).Return(nil).Once()

	ready, err := svc.ToggleReady(ctx, 1, 10)

	require.NoError(t, err)
	assert.True(t, ready)
	participantRepo.AssertExpectations(t)
}

func TestRoomService_FindRoomByID_NotFound(t *testing.T) {
	svc, roomRepo, _, _ := newRoomServiceWithMocks()
	ctx := context.Background()

	roomRepo.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrRoomNotFound).Once()

	_, err := svc.FindRoomByID(ctx, 404)

	assert.ErrorIs(t, err, service.ErrRoomNotFound)
	assert.False(t, errors.Is(err, service.ErrInternalServer))
}
