package service

import (
	"context"
	"log/slog"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/engine"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// PortfolioService runs the inventory engine over the stored ledger.
type PortfolioService struct {
	loader dataLoader
	assets AssetStore
	logger *slog.Logger
}

// NewPortfolioService creates a new PortfolioService with the provided store dependencies.
func NewPortfolioService(assets AssetStore, transactions TransactionStore, logger *slog.Logger) *PortfolioService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortfolioService{
		loader: dataLoader{assets: assets, transactions: transactions},
		assets: assets,
		logger: logger,
	}
}

// Inventory returns the per-transaction inventory states of one asset.
// Returns apperrors.ErrAssetNotFound when the asset does not exist.
func (s *PortfolioService) Inventory(ctx context.Context, assetID string) (model.AssetInventory, error) {
	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		return model.AssetInventory{}, err
	}

	snap, err := s.loader.loadSnapshot(ctx, model.TransactionFilter{AssetID: assetID})
	if err != nil {
		return model.AssetInventory{}, err
	}

	states := engine.ComputeInventory(snap.Transactions, asset, engine.WithLogger(s.logger))
	return model.AssetInventory{Asset: asset, States: states}, nil
}

// Positions returns a position for every asset, optionally restricted to one
// asset type. An empty assetType means all types.
func (s *PortfolioService) Positions(ctx context.Context, assetType model.AssetType) ([]model.PortfolioPosition, error) {
	snap, err := s.loader.loadSnapshot(ctx, model.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	positions := engine.Positions(snap.Assets, snap.Transactions, engine.WithLogger(s.logger))
	if assetType != "" {
		positions = engine.FilterByType(positions, assetType)
	}
	return positions, nil
}

// Summary aggregates every position by asset type and over the whole
// portfolio. All four asset types are always present.
func (s *PortfolioService) Summary(ctx context.Context) (model.PortfolioSummary, error) {
	positions, err := s.Positions(ctx, "")
	if err != nil {
		return model.PortfolioSummary{}, err
	}
	return engine.Aggregate(positions), nil
}
