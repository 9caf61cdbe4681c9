package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

const defaultMaxPlayers = 4

// RoomService owns the room lifecycle: create, join, leave, ready, start.
// Status transitions follow WAITING -> PLAYING -> COMPLETED; a WAITING room is
// deleted when its last participant leaves.
type RoomService struct {
	roomRepo        repository.RoomRepository
	participantRepo repository.ParticipantRepository
	boardRepo       repository.BoardRepository
}

// NewRoomService creates a RoomService.
func NewRoomService(roomRepo repository.RoomRepository, participantRepo repository.ParticipantRepository, boardRepo repository.BoardRepository) *RoomService {
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for RoomService")
	}
	if participantRepo == nil {
		panic("ParticipantRepository cannot be nil for RoomService")
	}
	if boardRepo == nil {
		panic("BoardRepository cannot be nil for RoomService")
	}
	return &RoomService{
		roomRepo:        roomRepo,
		participantRepo: participantRepo,
		boardRepo:       boardRepo,
	}
}

// CreateRoomParams carries the host's room settings.
type CreateRoomParams struct {
	BoardID    uint
	HostID     uint
	MaxPlayers int
	IsPrivate  bool
	Password   string
	GameMode   domain.GameMode
}

// CreateRoom creates a WAITING room and inserts the host as a ready
// participant in the same transaction.
func (s *RoomService) CreateRoom(ctx context.Context, params CreateRoomParams) (*domain.Room, error) {
	logCtx := logrus.WithFields(logrus.Fields{"host_id": params.HostID, "board_id": params.BoardID})

	exists, err := s.boardRepo.Exists(ctx, params.BoardID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to check board existence")
		return nil, ErrInternalServer
	}
	if !exists {
		logCtx.Warn("Room creation failed: board does not exist")
		return nil, ErrBoardNotFound
	}

	mode := params.GameMode
	if mode == "" {
		mode = domain.ModeStandard
	}
	if !mode.Valid() {
		return nil, ErrInvalidInput
	}
	maxPlayers := params.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = defaultMaxPlayers
	}

	room := &domain.Room{
		BoardID:    params.BoardID,
		HostID:     params.HostID,
		MaxPlayers: maxPlayers,
		IsPrivate:  params.IsPrivate,
		Password:   params.Password,
		GameMode:   mode,
		Status:     domain.StatusWaiting,
	}
	host := &domain.RoomParticipant{
		UserID:  params.HostID,
		IsReady: true,
	}
	if err := s.roomRepo.Create(ctx, room, host); err != nil {
		logCtx.WithError(err).Error("Failed to create room")
		return nil, ErrInternalServer
	}

	logCtx.WithFields(logrus.Fields{"room_id": room.ID, "game_mode": room.GameMode}).Info("Room created")
	return room, nil
}

// JoinRoom adds the user as a participant. A duplicate join is a no-op that
// returns the existing membership; it bypasses the capacity check so an
// already-seated player can always re-join.
func (s *RoomService) JoinRoom(ctx context.Context, roomID, userID uint, password string) (*domain.RoomParticipant, error) {
	logCtx := logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": userID})

	room, err := s.findRoom(ctx, roomID, logCtx)
	if err != nil {
		return nil, err
	}

	if existing, err := s.participantRepo.Find(ctx, roomID, userID); err == nil {
		logCtx.Debug("Duplicate join, returning existing membership")
		return existing, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		logCtx.WithError(err).Error("Failed to check existing membership")
		return nil, ErrInternalServer
	}

	if room.Status != domain.StatusWaiting {
		logCtx.WithField("status", room.Status).Warn("Join rejected: room is not waiting")
		return nil, ErrRoomNotJoinable
	}
	if room.IsPrivate && room.Password != password {
		logCtx.Warn("Join rejected: wrong room password")
		return nil, ErrWrongPassword
	}

	count, err := s.participantRepo.CountByRoom(ctx, roomID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to count participants")
		return nil, ErrInternalServer
	}
	if count >= int64(room.MaxPlayers) {
		logCtx.Warn("Join rejected: room is full")
		return nil, ErrRoomFull
	}

	_, participant, err := s.participantRepo.Join(ctx, &domain.RoomParticipant{RoomID: roomID, UserID: userID})
	if err != nil {
		logCtx.WithError(err).Error("Failed to insert participant")
		return nil, ErrInternalServer
	}

	logCtx.Info("User joined room")
	return participant, nil
}

// LeaveRoom removes the membership and reports whether the room was deleted
// because the leaving user was its last participant.
func (s *RoomService) LeaveRoom(ctx context.Context, roomID, userID uint) (bool, error) {
	logCtx := logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": userID})

	roomDeleted, err := s.roomRepo.RemoveParticipant(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Leave rejected: not a participant")
			return false, ErrNotParticipant
		}
		logCtx.WithError(err).Error("Failed to remove participant")
		return false, ErrInternalServer
	}

	if roomDeleted {
		logCtx.Info("Last participant left, room deleted")
	} else {
		logCtx.Info("User left room")
	}
	return roomDeleted, nil
}

// ToggleReady flips the participant's ready flag and returns the new value.
func (s *RoomService) ToggleReady(ctx context.Context, roomID, userID uint) (bool, error) {
	logCtx := logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": userID})

	p, err := s.participantRepo.Find(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrNotParticipant
		}
		logCtx.WithError(err).Error("Failed to find participant")
		return false, ErrInternalServer
	}

	ready := !p.IsReady
	if err := s.participantRepo.SetReady(ctx, roomID, userID, ready); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrNotParticipant
		}
		logCtx.WithError(err).Error("Failed to update ready flag")
		return false, ErrInternalServer
	}

	logCtx.WithField("is_ready", ready).Info("Participant ready state changed")
	return ready, nil
}

// StartGame transitions the room to PLAYING. Only the host may start, and the
// room must still be WAITING. Participant ready flags are intentionally not
// checked: the host may start regardless.
func (s *RoomService) StartGame(ctx context.Context, roomID, userID uint) (*domain.Room, error) {
	logCtx := logrus.WithFields(logrus.Fields{"room_id": roomID, "user_id": userID})

	room, err := s.findRoom(ctx, roomID, logCtx)
	if err != nil {
		return nil, err
	}
	if room.HostID != userID {
		logCtx.Warn("Start rejected: user is not the host")
		return nil, ErrNotHost
	}
	if room.Status != domain.StatusWaiting {
		logCtx.WithField("status", room.Status).Warn("Start rejected: room is not waiting")
		return nil, ErrRoomNotJoinable
	}

	now := time.Now()
	room.Status = domain.StatusPlaying
	room.StartedAt = &now
	if err := s.roomRepo.Save(ctx, room); err != nil {
		logCtx.WithError(err).Error("Failed to persist game start")
		return nil, ErrInternalServer
	}

	logCtx.Info("Game started")
	return room, nil
}

// FindRoomByID returns the room or ErrRoomNotFound.
func (s *RoomService) FindRoomByID(ctx context.Context, roomID uint) (*domain.Room, error) {
	return s.findRoom(ctx, roomID, logrus.WithField("room_id", roomID))
}

// Participants lists the room's members ordered by join time.
func (s *RoomService) Participants(ctx context.Context, roomID uint) ([]domain.RoomParticipant, error) {
	participants, err := s.participantRepo.ListByRoom(ctx, roomID)
	if err != nil {
		logrus.WithField("room_id", roomID).WithError(err).Error("Failed to list participants")
		return nil, ErrInternalServer
	}
	return participants, nil
}

// ListOpenRooms returns rooms currently accepting players.
func (s *RoomService) ListOpenRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.roomRepo.ListByStatus(ctx, domain.StatusWaiting)
	if err != nil {
		logrus.WithError(err).Error("Failed to list open rooms")
		return nil, ErrInternalServer
	}
	return rooms, nil
}

// DeleteRoom removes the room outright. Used when the host abandons a
// WAITING lobby by disconnecting.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID uint) error {
	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		logrus.WithField("room_id", roomID).WithError(err).Error("Failed to delete room")
		return ErrInternalServer
	}
	logrus.WithField("room_id", roomID).Info("Room deleted")
	return nil
}

func (s *RoomService) findRoom(ctx context.Context, roomID uint, logCtx *logrus.Entry) (*domain.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			logCtx.Warn("Room not found")
			return nil, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Repository error finding room")
		return nil, ErrInternalServer
	}
	return room, nil
}
