package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mertkozcan/gridlock-server/internal/repository/mocks"
	"github.com/mertkozcan/gridlock-server/internal/tasks"
	"github.com/mertkozcan/gridlock-server/internal/worker"
)

func TestXPAwardHandler_GrantsXP(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	handler := worker.NewXPAwardHandler(userRepo)

	payload, err := tasks.NewXPAwardPayload(7, 1, tasks.XPWinAward)
	require.NoError(t, err)
	userRepo.On("AddXP", mock.Anything, uint(7), tasks.XPWinAward).Return(nil).Once()

	err = handler.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeXPAward, payload))

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestXPAwardHandler_MalformedPayloadSkipsRetry(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	handler := worker.NewXPAwardHandler(userRepo)

	err := handler.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeXPAward, []byte("{broken")))

	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry), "malformed payload should not be retried")
	userRepo.AssertNotCalled(t, "AddXP", mock.Anything, mock.Anything, mock.Anything)
}

func TestXPAwardHandler_RepositoryErrorRetries(t *testing.T) {
	userRepo := new(mocks.UserRepository)
	handler := worker.NewXPAwardHandler(userRepo)

	payload, _ := tasks.NewXPAwardPayload(7, 1, tasks.XPWinAward)
	userRepo.On("AddXP", mock.Anything, uint(7), tasks.XPWinAward).Return(errors.New("connection reset")).Once()

	err := handler.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeXPAward, payload))

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestRoomSweepHandler_UsesConfiguredTTL(t *testing.T) {
	roomRepo := new(mocks.RoomRepository)
	ttl := 90 * time.Minute
	handler := worker.NewRoomSweepHandler(roomRepo, ttl)

	roomRepo.On("DeleteStaleWaiting", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().Add(-ttl)
		return cutoff.After(expected.Add(-5*time.Second)) && cutoff.Before(expected.Add(5*time.Second))
	})).Return([]uint{3, 4}, nil).Once()

	payload, _ := tasks.NewRoomSweepPayload()
	err := handler.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeRoomSweep, payload))

	require.NoError(t, err)
	roomRepo.AssertExpectations(t)
}
