package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/scheduler"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Database.Path = filepath.Join(t.TempDir(), "tracker.db")
	cfg.Backup.Dir = filepath.Join(t.TempDir(), "backups")
	return &cfg
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_SQLite(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(context.Background(), cfg, quiet())
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}
	defer a.Close()

	if err := a.Services.System.CheckHealth(context.Background()); err != nil {
		t.Errorf("CheckHealth() returned unexpected error: %v", err)
	}

	info := a.Services.System.CheckVersion()
	if info.DbDriver != config.DriverSQLite || info.DbVersion != "1" {
		t.Errorf("Unexpected version info %+v", info)
	}
	if info.Features["priceFeed"] {
		t.Error("Expected price feed to be disabled by default")
	}
	if a.Services.Price.Enabled() {
		t.Error("Expected price service to be disabled")
	}

	locations, err := a.Services.Backup.WriteBackup(context.Background())
	if err != nil {
		t.Fatalf("WriteBackup() returned unexpected error: %v", err)
	}
	if len(locations) != 1 {
		t.Errorf("Expected the file sink only, got %v", locations)
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Driver = "mysql"

	if _, err := New(context.Background(), cfg, quiet()); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}

func TestSchedule(t *testing.T) {
	t.Run("skips price refresh without feed", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Prices.RefreshCron = "*/5 * * * *"
		cfg.Backup.Cron = "0 3 * * *"

		a, err := New(context.Background(), cfg, quiet())
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		defer a.Close()

		s := scheduler.New(quiet(), time.Minute)
		if err := a.Schedule(s, cfg, quiet()); err != nil {
			t.Fatalf("Schedule() returned unexpected error: %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("Expected only the backup job, got %d jobs", s.Len())
		}
	})

	t.Run("rejects invalid spec", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Backup.Cron = "every day"

		a, err := New(context.Background(), cfg, quiet())
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		defer a.Close()

		if err := a.Schedule(scheduler.New(quiet(), 0), cfg, quiet()); err == nil {
			t.Error("Expected error for invalid cron spec")
		}
	})
}
