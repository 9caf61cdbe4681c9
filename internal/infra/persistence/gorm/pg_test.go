package gormpersistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mertkozcan/gridlock-server/internal/domain"
	"github.com/mertkozcan/gridlock-server/internal/infra/setup"
)

// setupTestDB starts a disposable Postgres container, opens a GORM session on
// it and runs the full migration, partial unique indexes included. Tests that
// need the real conflict-resolution semantics of the claim and leave paths run
// against this; everything the mocks cannot arbitrate (index races, transaction
// post-conditions) is exercised here.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcpostgres.WithDatabase("gridlock_test"),
		tcpostgres.WithUsername("gridlock"),
		tcpostgres.WithPassword("gridlock"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpg.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, setup.MigrateDB(db))
	return db
}

// seedRoom inserts a room row directly; the repository-level creation path has
// its own test.
func seedRoom(t *testing.T, db *gorm.DB, hostID uint, mode domain.GameMode) *domain.Room {
	t.Helper()
	room := &domain.Room{
		BoardID:    1,
		HostID:     hostID,
		MaxPlayers: 4,
		GameMode:   mode,
		Status:     domain.StatusPlaying,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}
