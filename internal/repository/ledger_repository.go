package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// LedgerRepository performs operations spanning both ledger tables inside a
// single database transaction.
type LedgerRepository struct {
	db           *sql.DB
	assets       *AssetRepository
	transactions *TransactionRepository
}

// NewLedgerRepository creates a LedgerRepository on db.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{
		db:           db,
		assets:       NewAssetRepository(db),
		transactions: NewTransactionRepository(db),
	}
}

// ReplaceAll deletes every asset and transaction and inserts the given ones.
// Either everything is replaced or nothing changes.
func (r *LedgerRepository) ReplaceAll(ctx context.Context, assets []model.Asset, transactions []model.Transaction) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	assetRepo := r.assets.WithTx(tx)
	txRepo := r.transactions.WithTx(tx)

	if err = assetRepo.DeleteAllAssets(ctx); err != nil {
		return err
	}

	for i := range assets {
		if err = assetRepo.InsertAsset(ctx, &assets[i]); err != nil {
			return err
		}
	}
	for i := range transactions {
		if err = txRepo.InsertTransaction(ctx, &transactions[i]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
