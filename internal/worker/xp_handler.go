package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/mertkozcan/gridlock-server/internal/repository"
	"github.com/mertkozcan/gridlock-server/internal/tasks"
)

// XPAwardHandler grants experience to a game winner.
type XPAwardHandler struct {
	userRepo repository.UserRepository
}

// NewXPAwardHandler creates an XPAwardHandler.
func NewXPAwardHandler(userRepo repository.UserRepository) *XPAwardHandler {
	if userRepo == nil {
		panic("UserRepository cannot be nil for XPAwardHandler")
	}
	return &XPAwardHandler{userRepo: userRepo}
}

// ProcessTask implements asynq.Handler.
func (h *XPAwardHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.XPAwardPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// malformed payload will never succeed, skip retries
		return fmt.Errorf("unmarshal xp award payload: %v: %w", err, asynq.SkipRetry)
	}
	logCtx := logrus.WithFields(logrus.Fields{
		"task_type": t.Type(),
		"user_id":   payload.UserID,
		"room_id":   payload.RoomID,
		"amount":    payload.Amount,
	})

	if err := h.userRepo.AddXP(ctx, payload.UserID, payload.Amount); err != nil {
		logCtx.WithError(err).Error("Failed to grant XP")
		return fmt.Errorf("grant xp to user %d: %w", payload.UserID, err)
	}
	logCtx.Info("XP granted")
	return nil
}
