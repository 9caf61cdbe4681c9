package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

// GameService is the cell completion engine plus the win evaluation that runs
// after every completion. The persistence layer is the sole arbiter of
// concurrent completion; no in-process locks guard room or cell state.
type GameService struct {
	roomRepo       repository.RoomRepository
	boardRepo      repository.BoardRepository
	completionRepo repository.CompletionRepository
}

// NewGameService creates a GameService.
func NewGameService(roomRepo repository.RoomRepository, boardRepo repository.BoardRepository, completionRepo repository.CompletionRepository) *GameService {
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for GameService")
	}
	if boardRepo == nil {
		panic("BoardRepository cannot be nil for GameService")
	}
	if completionRepo == nil {
		panic("CompletionRepository cannot be nil for GameService")
	}
	return &GameService{
		roomRepo:       roomRepo,
		boardRepo:      boardRepo,
		completionRepo: completionRepo,
	}
}

// CompleteCell records the user's completion of a cell under the room's game
// mode rules, then evaluates win conditions.
//
// STANDARD/BLACKOUT: the insert is idempotent per (room, cell, user).
// LOCKOUT: the cell is claimed through an atomic conditional insert; when the
// cell is already owned the outcome distinguishes the idempotent self-repeat
// from a conflict with another player (ErrCellLocked).
//
// On a detected win the room is transitioned to COMPLETED before returning.
func (s *GameService) CompleteCell(ctx context.Context, roomID, cellID, userID uint) (*domain.CellCompletion, WinResult, error) {
	logCtx := logrus.WithFields(logrus.Fields{"room_id": roomID, "cell_id": cellID, "user_id": userID})

	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, WinResult{}, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Repository error finding room")
		return nil, WinResult{}, ErrInternalServer
	}
	if room.Status != domain.StatusPlaying {
		logCtx.WithField("status", room.Status).Warn("Completion rejected: game is not in progress")
		return nil, WinResult{}, ErrGameNotActive
	}

	cell, err := s.boardRepo.FindCell(ctx, cellID)
	if err != nil {
		if errors.Is(err, repository.ErrCellNotFound) {
			return nil, WinResult{}, ErrCellNotFound
		}
		logCtx.WithError(err).Error("Repository error finding cell")
		return nil, WinResult{}, ErrInternalServer
	}
	if cell.BoardID != room.BoardID {
		logCtx.Warn("Completion rejected: cell does not belong to the room's board")
		return nil, WinResult{}, ErrCellNotFound
	}

	completion := &domain.CellCompletion{RoomID: roomID, CellID: cellID, UserID: userID}
	switch room.GameMode {
	case domain.ModeLockout:
		outcome, out, err := s.completionRepo.Claim(ctx, completion)
		if err != nil {
			logCtx.WithError(err).Error("Failed to claim cell")
			return nil, WinResult{}, ErrInternalServer
		}
		switch outcome {
		case repository.ClaimInserted:
			logCtx.Info("Cell claimed")
		case repository.ClaimAlreadyOwn:
			logCtx.Debug("Cell already claimed by requester, idempotent success")
		case repository.ClaimOwnedByOther:
			logCtx.Info("Cell claim rejected: owned by another player")
			return nil, WinResult{}, ErrCellLocked
		}
		completion = out
	default:
		inserted, out, err := s.completionRepo.SaveIdempotent(ctx, completion)
		if err != nil {
			logCtx.WithError(err).Error("Failed to save completion")
			return nil, WinResult{}, ErrInternalServer
		}
		if inserted {
			logCtx.Info("Cell completed")
		} else {
			logCtx.Debug("Duplicate completion, idempotent success")
		}
		completion = out
	}

	win, err := s.evaluateRoom(ctx, room)
	if err != nil {
		logCtx.WithError(err).Error("Failed to evaluate win conditions")
		return nil, WinResult{}, ErrInternalServer
	}
	if win.Won {
		if err := s.finishGame(ctx, room, win); err != nil {
			logCtx.WithError(err).Error("Failed to complete room after win")
			return nil, WinResult{}, ErrInternalServer
		}
		logCtx.WithFields(logrus.Fields{
			"winner_id": win.WinnerID,
			"win_type":  win.Type,
			"win_index": win.Index,
		}).Info("Game ended")
	}

	return completion, win, nil
}

// RoomStats tallies completions per user for the end-of-game payload.
func (s *GameService) RoomStats(ctx context.Context, roomID uint) (map[uint]int, error) {
	completions, err := s.completionRepo.ListByRoom(ctx, roomID)
	if err != nil {
		logrus.WithField("room_id", roomID).WithError(err).Error("Failed to list completions for stats")
		return nil, ErrInternalServer
	}
	stats := make(map[uint]int, 4)
	for _, c := range completions {
		stats[c.UserID]++
	}
	return stats, nil
}

// evaluateRoom loads the board size and completion state and runs the pure
// evaluator.
func (s *GameService) evaluateRoom(ctx context.Context, room *domain.Room) (WinResult, error) {
	board, err := s.boardRepo.FindByID(ctx, room.BoardID)
	if err != nil {
		return WinResult{}, err
	}
	completions, err := s.completionRepo.ListByRoom(ctx, room.ID)
	if err != nil {
		return WinResult{}, err
	}
	return EvaluateWin(room.GameMode, board.Size, completions), nil
}

func (s *GameService) finishGame(ctx context.Context, room *domain.Room, win WinResult) error {
	now := time.Now()
	winType := win.Type
	winIndex := win.Index
	room.Status = domain.StatusCompleted
	room.CompletedAt = &now
	room.WinnerID = &win.WinnerID
	room.WinType = &winType
	room.WinIndex = &winIndex
	return s.roomRepo.Save(ctx, room)
}
