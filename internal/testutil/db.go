// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"storefront-service/pkg/config"
	"storefront-service/pkg/database"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database that is closed when the
// test ends. A single connection keeps every query on the same database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DBConfig{
		Driver:       config.DriverSQLite,
		Path:         ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
