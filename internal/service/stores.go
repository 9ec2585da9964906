package service

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/repository/postgres"
)

// AssetStore persists assets.
type AssetStore interface {
	GetAssets(ctx context.Context) ([]model.Asset, error)
	GetAsset(ctx context.Context, assetID string) (model.Asset, error)
	InsertAsset(ctx context.Context, a *model.Asset) error
	UpdateAsset(ctx context.Context, a *model.Asset) error
	UpdateMarketPrice(ctx context.Context, assetID string, price *float64) error
	DeleteAsset(ctx context.Context, assetID string) error
}

// TransactionStore persists transactions.
type TransactionStore interface {
	GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error)
	CountByAsset(ctx context.Context, assetID string) (int, error)
	InsertTransaction(ctx context.Context, t *model.Transaction) error
	UpdateTransaction(ctx context.Context, t *model.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// LedgerStore replaces the whole ledger atomically.
type LedgerStore interface {
	ReplaceAll(ctx context.Context, assets []model.Asset, transactions []model.Transaction) error
}

// Stores bundles the store implementations of one storage backend.
type Stores struct {
	Assets       AssetStore
	Transactions TransactionStore
	Ledger       LedgerStore
}

// NewSQLiteStores returns the stores backed by a sqlite handle.
func NewSQLiteStores(db *sql.DB) Stores {
	return Stores{
		Assets:       repository.NewAssetRepository(db),
		Transactions: repository.NewTransactionRepository(db),
		Ledger:       repository.NewLedgerRepository(db),
	}
}

// NewPostgresStores returns the stores backed by a pgx pool.
func NewPostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Assets:       postgres.NewAssetStore(pool),
		Transactions: postgres.NewTransactionStore(pool),
		Ledger:       postgres.NewLedgerStore(pool),
	}
}
