package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// BoardRepository is a mock of repository.BoardRepository.
type BoardRepository struct {
	mock.Mock
}

func (_m *BoardRepository) Create(ctx context.Context, board *domain.Board) error {
	ret := _m.Called(ctx, board)
	return ret.Error(0)
}

func (_m *BoardRepository) FindByID(ctx context.Context, id uint) (*domain.Board, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Board
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Board)
	}
	return r0, ret.Error(1)
}

func (_m *BoardRepository) Exists(ctx context.Context, id uint) (bool, error) {
	ret := _m.Called(ctx, id)
	return ret.Bool(0), ret.Error(1)
}

func (_m *BoardRepository) FindCell(ctx context.Context, cellID uint) (*domain.BoardCell, error) {
	ret := _m.Called(ctx, cellID)
	var r0 *domain.BoardCell
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.BoardCell)
	}
	return r0, ret.Error(1)
}
