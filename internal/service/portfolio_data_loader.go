package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// LedgerSnapshot contains everything the engine needs for one calculation:
// the assets and their transactions, read at the same moment.
type LedgerSnapshot struct {
	Assets       []model.Asset
	Transactions []model.Transaction
}

// dataLoader centralises loading ledger snapshots for portfolio calculations.
type dataLoader struct {
	assets       AssetStore
	transactions TransactionStore
}

// loadSnapshot reads assets and transactions concurrently. Every call returns
// a fresh snapshot; nothing is cached between requests.
func (l dataLoader) loadSnapshot(ctx context.Context, filter model.TransactionFilter) (LedgerSnapshot, error) {
	var snap LedgerSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		assets, err := l.assets.GetAssets(gctx)
		if err != nil {
			return fmt.Errorf("failed to load assets: %w", err)
		}
		snap.Assets = assets
		return nil
	})
	g.Go(func() error {
		filter.SortDir = "asc"
		transactions, err := l.transactions.GetTransactions(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		snap.Transactions = transactions
		return nil
	})

	if err := g.Wait(); err != nil {
		return LedgerSnapshot{}, err
	}
	return snap, nil
}
