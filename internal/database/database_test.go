package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	defer db.Close()

	version, err := MigrateSQLite(context.Background(), db)
	if err != nil {
		t.Fatalf("MigrateSQLite() returned unexpected error: %v", err)
	}
	if version != 1 {
		t.Errorf("Expected schema version 1, got %d", version)
	}

	for _, table := range []string{"asset", "transaction"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}

	t.Run("migrating twice is a no-op", func(t *testing.T) {
		again, err := MigrateSQLite(context.Background(), db)
		if err != nil {
			t.Fatalf("second MigrateSQLite() returned unexpected error: %v", err)
		}
		if again != version {
			t.Errorf("Expected version to stay %d, got %d", version, again)
		}
	})

	t.Run("foreign keys are enforced", func(t *testing.T) {
		_, err := db.Exec(`
			INSERT INTO "transaction" (id, asset_id, date, type, quantity, price_per_unit, fees, total_amount)
			VALUES ('t1', 'missing', '2024-01-01', 'BUY', 1, 1, 0, 1)
		`)
		if err == nil {
			t.Error("Expected foreign key violation")
		}
	})

	t.Run("health check pings", func(t *testing.T) {
		if err := HealthCheck(db); err != nil {
			t.Errorf("HealthCheck() returned unexpected error: %v", err)
		}
	})
}

func TestOpen_InvalidPath(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "tracker.db")); err == nil {
		t.Error("Expected error opening a database in a missing directory")
	}
}
