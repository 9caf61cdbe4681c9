package gormpersistence_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	gormpersistence "github.com/mertkozcan/gridlock-server/internal/infra/persistence/gorm"
	"github.com/mertkozcan/gridlock-server/internal/repository"
)

func TestClaim_ConcurrentClaimersExactlyOneOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := gormpersistence.NewGormCompletionRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, 1, domain.ModeLockout)

	const claimers = 8
	outcomes := make(chan repository.ClaimOutcome, claimers)
	errs := make(chan error, claimers)

	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			outcome, _, err := repo.Claim(ctx, &domain.CellCompletion{
				RoomID: room.ID,
				CellID: 7,
				UserID: userID,
			})
			if err != nil {
				errs <- err
				return
			}
			outcomes <- outcome
		}(uint(i + 1))
	}
	wg.Wait()
	close(outcomes)
	close(errs)

	for err := range errs {
		t.Fatalf("claim returned an error: %v", err)
	}

	var inserted, ownedByOther int
	for outcome := range outcomes {
		switch outcome {
		case repository.ClaimInserted:
			inserted++
		case repository.ClaimOwnedByOther:
			ownedByOther++
		default:
			t.Fatalf("unexpected outcome %v", outcome)
		}
	}
	assert.Equal(t, 1, inserted, "exactly one claimer wins the cell")
	assert.Equal(t, claimers-1, ownedByOther)

	var rows []domain.CellCompletion
	require.NoError(t, db.Where("room_id = ? AND cell_id = ?", room.ID, 7).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Exclusive)
}

func TestClaim_RepeatByOwnerIsAlreadyOwn(t *testing.T) {
	db := setupTestDB(t)
	repo := gormpersistence.NewGormCompletionRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, 1, domain.ModeLockout)

	outcome, _, err := repo.Claim(ctx, &domain.CellCompletion{RoomID: room.ID, CellID: 3, UserID: 5})
	require.NoError(t, err)
	require.Equal(t, repository.ClaimInserted, outcome)

	outcome, owner, err := repo.Claim(ctx, &domain.CellCompletion{RoomID: room.ID, CellID: 3, UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, repository.ClaimAlreadyOwn, outcome)
	require.NotNil(t, owner)
	assert.Equal(t, uint(5), owner.UserID)
}

func TestClaim_DoesNotCrossRooms(t *testing.T) {
	db := setupTestDB(t)
	repo := gormpersistence.NewGormCompletionRepository(db)
	ctx := context.Background()

	roomA := seedRoom(t, db, 1, domain.ModeLockout)
	roomB := seedRoom(t, db, 2, domain.ModeLockout)

	outcome, _, err := repo.Claim(ctx, &domain.CellCompletion{RoomID: roomA.ID, CellID: 3, UserID: 5})
	require.NoError(t, err)
	require.Equal(t, repository.ClaimInserted, outcome)

	// the same cell is free in a different room's play-through
	outcome, _, err = repo.Claim(ctx, &domain.CellCompletion{RoomID: roomB.ID, CellID: 3, UserID: 6})
	require.NoError(t, err)
	assert.Equal(t, repository.ClaimInserted, outcome)
}

func TestSaveIdempotent_RepeatAndSharing(t *testing.T) {
	db := setupTestDB(t)
	repo := gormpersistence.NewGormCompletionRepository(db)
	ctx := context.Background()

	room := seedRoom(t, db, 1, domain.ModeStandard)

	inserted, _, err := repo.SaveIdempotent(ctx, &domain.CellCompletion{RoomID: room.ID, CellID: 4, UserID: 5})
	require.NoError(t, err)
	assert.True(t, inserted)

	// the same user repeating the completion is absorbed
	inserted, existing, err := repo.SaveIdempotent(ctx, &domain.CellCompletion{RoomID: room.ID, CellID: 4, UserID: 5})
	require.NoError(t, err)
	assert.False(t, inserted)
	require.NotNil(t, existing)
	assert.Equal(t, uint(5), existing.UserID)

	// a different user shares the cell
	inserted, _, err = repo.SaveIdempotent(ctx, &domain.CellCompletion{RoomID: room.ID, CellID: 4, UserID: 6})
	require.NoError(t, err)
	assert.True(t, inserted)

	var count int64
	require.NoError(t, db.Model(&domain.CellCompletion{}).
		Where("room_id = ? AND cell_id = ?", room.ID, 4).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
