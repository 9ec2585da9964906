package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/backup"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/pricefeed"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	stores := service.NewSQLiteStores(db)
	return service.NewAssetService(stores.Assets, stores.Transactions)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	stores := service.NewSQLiteStores(db)
	return service.NewTransactionService(stores.Transactions, stores.Assets)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	stores := service.NewSQLiteStores(db)
	return service.NewPortfolioService(stores.Assets, stores.Transactions, DiscardLogger())
}

// NewTestPriceService wires a PriceService to provider. A nil provider gives a
// service with the price feed disabled.
func NewTestPriceService(t *testing.T, db *sql.DB, provider pricefeed.Provider) *service.PriceService {
	t.Helper()

	stores := service.NewSQLiteStores(db)
	return service.NewPriceService(stores.Assets, provider, 2, DiscardLogger())
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	healthCheck := func(context.Context) error { return database.HealthCheck(db) }
	return service.NewSystemService(healthCheck, service.SystemInfo{
		DbDriver:  "sqlite",
		DbVersion: 1,
		Features:  map[string]bool{"priceFeed": false, "encryptedBackups": false},
	})
}

// NewTestBackupService wires a BackupService writing to a temporary directory.
// An empty key produces plain JSON bundles.
func NewTestBackupService(t *testing.T, db *sql.DB, key string) *service.BackupService {
	t.Helper()

	sinks := []backup.Sink{backup.FileSink{Dir: t.TempDir()}}
	return service.NewBackupService(service.NewSQLiteStores(db), key, sinks, DiscardLogger())
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("GLD")
//	// Returns: "GLD1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeSymbolName generates a unique asset name for testing.
//
// Example usage:
//
//	name := testutil.MakeSymbolName("Gold")
//	// Returns: "Gold XYZ789"
func MakeSymbolName(base string) string {
	if base == "" {
		base = "Symbol"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
