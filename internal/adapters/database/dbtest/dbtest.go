// Package dbtest opens throwaway in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"yatube/internal/adapters/database"
	"yatube/internal/config"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Open returns a migrated private in-memory database. config.OpenDB turns
// foreign keys on. It is closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.Must(uuid.NewV4()).String() + "?mode=memory"
	db, err := config.OpenDB("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	// every connection to a memory database is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
