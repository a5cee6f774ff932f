package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/eduvision/eduvision-backend/internal/types"
)

// DB opens the database named by TEST_POSTGRES_DSN and migrates the schema.
// Tests that need postgres are skipped when the variable is unset so the
// suite stays runnable on a bare checkout.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres-backed test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test postgres: %v", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		t.Fatalf("create uuid-ossp extension: %v", err)
	}
	if err := autoMigrateAll(db); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}
	return db
}

// Tx hands tests a transaction that always rolls back, keeping the shared
// test database clean between cases.
func Tx(t *testing.T) *gorm.DB {
	t.Helper()

	tx := DB(t).Begin()
	if tx.Error != nil {
		t.Fatalf("begin test transaction: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.Lesson{},
		&types.LessonAsset{},
		&types.Assignment{},
		&types.PracticeSession{},
		&types.SessionArtifact{},
		&types.UserEvent{},
	)
}
