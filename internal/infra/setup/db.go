// Package setup initializes infrastructure connections (Postgres, Redis).
package setup

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mertkozcan/gridlock-server/internal/domain"
)

// InitDB opens the Postgres connection pool.
func InitDB(user, password, host, port, name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, name)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("setup: connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("setup: get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// MigrateDB migrates the schema. AutoMigrate covers the plain tables and
// indexes; the two partial unique indexes are created with raw SQL because
// GORM tags cannot express an index predicate:
//
//   - uniq_room_cell_claim arbitrates LOCKOUT cell ownership — at most one
//     exclusive completion per (room, cell);
//   - uniq_pending_invite allows one PENDING invitation per (room, to_user).
func MigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Board{},
		&domain.BoardCell{},
		&domain.Room{},
		&domain.RoomParticipant{},
		&domain.CellCompletion{},
		&domain.RoomInvitation{},
	)
	if err != nil {
		return fmt.Errorf("setup: auto-migrate: %w", err)
	}

	partialIndexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_room_cell_claim
			ON cell_completions (room_id, cell_id) WHERE exclusive`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_pending_invite
			ON room_invitations (room_id, to_user_id) WHERE status = 'PENDING'`,
	}
	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("setup: create partial index: %w", err)
		}
	}
	return nil
}
