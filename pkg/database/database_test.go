package database

import (
	"storefront-service/internal/model"
	"storefront-service/pkg/config"
	"testing"

	"gorm.io/gorm/logger"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := Open(&config.DBConfig{
		Driver:       config.DriverSQLite,
		Path:         ":memory:",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close(db)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for _, m := range model.All() {
		if !db.Migrator().HasTable(m) {
			t.Errorf("expected table for %T", m)
		}
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(&config.DBConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestMigrateNilDB(t *testing.T) {
	if err := Migrate(nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}
