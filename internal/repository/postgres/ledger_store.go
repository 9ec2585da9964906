package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// LedgerStore performs operations spanning both ledger tables.
type LedgerStore struct {
	pool *pgxpool.Pool
}

// NewLedgerStore creates a LedgerStore backed by the given connection pool.
func NewLedgerStore(pool *pgxpool.Pool) *LedgerStore {
	return &LedgerStore{pool: pool}
}

// ReplaceAll deletes every asset and transaction and inserts the given ones
// in one database transaction.
func (s *LedgerStore) ReplaceAll(ctx context.Context, assets []model.Asset, transactions []model.Transaction) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM asset`); err != nil {
		return fmt.Errorf("postgres: clear assets: %w", err)
	}

	assetStore := &AssetStore{q: tx}
	for i := range assets {
		if err := assetStore.InsertAsset(ctx, &assets[i]); err != nil {
			return err
		}
	}

	txStore := &TransactionStore{q: tx}
	for i := range transactions {
		if err := txStore.InsertTransaction(ctx, &transactions[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}
