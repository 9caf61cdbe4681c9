package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

// InvitationService manages room invitations. At most one PENDING invitation
// exists per (room, to_user); accepting one joins the room with the usual
// join rules.
type InvitationService struct {
	invitationRepo repository.InvitationRepository
	roomService    *RoomService
}

// NewInvitationService creates an InvitationService.
func NewInvitationService(invitationRepo repository.InvitationRepository, roomService *RoomService) *InvitationService {
	if invitationRepo == nil {
		panic("InvitationRepository cannot be nil for InvitationService")
	}
	if roomService == nil {
		panic("RoomService cannot be nil for InvitationService")
	}
	return &InvitationService{
		invitationRepo: invitationRepo,
		roomService:    roomService,
	}
}

// Invite creates a PENDING invitation from a room participant to another user.
func (s *InvitationService) Invite(ctx context.Context, roomID, fromUserID, toUserID uint) (*domain.RoomInvitation, error) {
	logCtx := logrus.WithFields(logrus.Fields{"room_id": roomID, "from_user_id": fromUserID, "to_user_id": toUserID})

	if fromUserID == toUserID {
		return nil, ErrInvalidInput
	}
	room, err := s.roomService.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != domain.StatusWaiting {
		logCtx.Warn("Invite rejected: room is not accepting players")
		return nil, ErrRoomNotJoinable
	}

	inv := &domain.RoomInvitation{
		RoomID:     roomID,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     domain.InvitePending,
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Invite rejected: pending invitation already exists")
			return nil, ErrInvitePending
		}
		logCtx.WithError(err).Error("Failed to create invitation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("invitation_id", inv.ID).Info("Invitation created")
	return inv, nil
}

// Accept marks the invitation accepted and joins the invitee to the room.
// When the join fails (room full, no longer waiting) the invitation stays
// PENDING so the user can retry or decline.
func (s *InvitationService) Accept(ctx context.Context, invitationID, userID uint) (*domain.RoomParticipant, error) {
	logCtx := logrus.WithFields(logrus.Fields{"invitation_id": invitationID, "user_id": userID})

	inv, err := s.find(ctx, invitationID, userID, logCtx)
	if err != nil {
		return nil, err
	}

	// Invitations never carry the room password: an invite from a member is
	// the authorization for a private room, so the invitee joins with it.
	room, err := s.roomService.FindRoomByID(ctx, inv.RoomID)
	if err != nil {
		return nil, err
	}
	participant, err := s.roomService.JoinRoom(ctx, inv.RoomID, userID, room.Password)
	if err != nil {
		logCtx.WithError(err).Warn("Invitation accept failed at join")
		return nil, err
	}

	inv.Status = domain.InviteAccepted
	if err := s.invitationRepo.Save(ctx, inv); err != nil {
		logCtx.WithError(err).Error("Failed to mark invitation accepted")
		return nil, ErrInternalServer
	}

	logCtx.Info("Invitation accepted")
	return participant, nil
}

// Decline marks the invitation declined.
func (s *InvitationService) Decline(ctx context.Context, invitationID, userID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"invitation_id": invitationID, "user_id": userID})

	inv, err := s.find(ctx, invitationID, userID, logCtx)
	if err != nil {
		return err
	}

	inv.Status = domain.InviteDeclined
	if err := s.invitationRepo.Save(ctx, inv); err != nil {
		logCtx.WithError(err).Error("Failed to mark invitation declined")
		return ErrInternalServer
	}

	logCtx.Info("Invitation declined")
	return nil
}

// ListPending returns the user's open invitations, newest first.
func (s *InvitationService) ListPending(ctx context.Context, userID uint) ([]domain.RoomInvitation, error) {
	invs, err := s.invitationRepo.ListPendingForUser(ctx, userID)
	if err != nil {
		logrus.WithField("user_id", userID).WithError(err).Error("Failed to list pending invitations")
		return nil, ErrInternalServer
	}
	return invs, nil
}

func (s *InvitationService) find(ctx context.Context, invitationID, userID uint, logCtx *logrus.Entry) (*domain.RoomInvitation, error) {
	inv, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, repository.ErrInvitationNotFound) {
			return nil, ErrInvitationNotFound
		}
		logCtx.WithError(err).Error("Repository error finding invitation")
		return nil, ErrInternalServer
	}
	if inv.ToUserID != userID {
		logCtx.Warn("Invitation addressed to another user")
		return nil, ErrNotInvitee
	}
	if inv.Status != domain.InvitePending {
		return nil, ErrInviteResolved
	}
	return inv, nil
}
