package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

// CompletionRepository is a mock of repository.CompletionRepository.
type CompletionRepository struct {
	mock.Mock
}

func (_m *CompletionRepository) SaveIdempotent(ctx context.Context, c *domain.CellCompletion) (bool, *domain.CellCompletion, error) {
	ret := _m.Called(ctx, c)
	var r1 *domain.CellCompletion
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*domain.CellCompletion)
	}
	return ret.Bool(0), r1, ret.Error(2)
}

func (_m *CompletionRepository) Claim(ctx context.Context, c *domain.CellCompletion) (repository.ClaimOutcome, *domain.CellCompletion, error) {
	ret := _m.Called(ctx, c)
	var r1 *domain.CellCompletion
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*domain.CellCompletion)
	}
	return ret.Get(0).(repository.ClaimOutcome), r1, ret.Error(2)
}

func (_m *CompletionRepository) ListByRoom(ctx context.Context, roomID uint) ([]domain.CompletionCell, error) {
	ret := _m.Called(ctx, roomID)
	var r0 []domain.CompletionCell
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CompletionCell)
	}
	return r0, ret.Error(1)
}
