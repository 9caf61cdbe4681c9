package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/repository"
)

// RoomSweepHandler deletes WAITING rooms that have been idle longer than the
// configured TTL. Rooms that entered play are never swept.
type RoomSweepHandler struct {
	roomRepo repository.RoomRepository
	ttl      time.Duration
}

// NewRoomSweepHandler creates a RoomSweepHandler.
func NewRoomSweepHandler(roomRepo repository.RoomRepository, ttl time.Duration) *RoomSweepHandler {
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for RoomSweepHandler")
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RoomSweepHandler{roomRepo: roomRepo, ttl: ttl}
}

// ProcessTask implements asynq.Handler.
func (h *RoomSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())

	cutoff := time.Now().Add(-h.ttl)
	deleted, err := h.roomRepo.DeleteStaleWaiting(ctx, cutoff)
	if err != nil {
		logCtx.WithError(err).Error("Stale room sweep failed")
		return fmt.Errorf("sweep stale rooms: %w", err)
	}
	if len(deleted) > 0 {
		logCtx.WithField("room_ids", deleted).Info("Swept stale waiting rooms")
	} else {
		logCtx.Debug("No stale waiting rooms to sweep")
	}
	return nil
}
