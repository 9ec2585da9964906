package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// AssetService handles asset-related business logic operations.
type AssetService struct {
	assets       AssetStore
	transactions TransactionStore
}

// NewAssetService creates a new AssetService with the provided store dependencies.
func NewAssetService(assets AssetStore, transactions TransactionStore) *AssetService {
	return &AssetService{
		assets:       assets,
		transactions: transactions,
	}
}

// GetAssets returns every asset ordered by type, then symbol.
func (s *AssetService) GetAssets(ctx context.Context) ([]model.Asset, error) {
	return s.assets.GetAssets(ctx)
}

// GetAsset returns a single asset or apperrors.ErrAssetNotFound.
func (s *AssetService) GetAsset(ctx context.Context, assetID string) (model.Asset, error) {
	return s.assets.GetAsset(ctx, assetID)
}

// CreateAsset stores a new asset with a generated ID. Type, method and
// currency are normalised to upper case; method and currency fall back to
// AVERAGE_COST and TWD. A supplied market price is rounded to two decimals.
func (s *AssetService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (*model.Asset, error) {
	asset := &model.Asset{
		ID:       uuid.New().String(),
		Symbol:   strings.TrimSpace(req.Symbol),
		Name:     strings.TrimSpace(req.Name),
		Type:     model.AssetType(strings.ToUpper(req.Type)),
		Method:   model.MethodAverageCost,
		Currency: model.DefaultCurrency,
	}
	if req.Method != "" {
		asset.Method = model.AccountingMethod(strings.ToUpper(req.Method))
	}
	if req.Currency != "" {
		asset.Currency = strings.ToUpper(req.Currency)
	}
	if req.CurrentMarketPrice != nil {
		p := calc.RoundMoney(*req.CurrentMarketPrice)
		asset.CurrentMarketPrice = &p
	}

	if err := s.assets.InsertAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return asset, nil
}

// UpdateAsset applies the non-nil fields of req. The asset type is locked as
// soon as any transaction references the asset; changing it then returns
// apperrors.ErrAssetTypeLocked.
func (s *AssetService) UpdateAsset(ctx context.Context, assetID string, req request.UpdateAssetRequest) (*model.Asset, error) {
	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if req.Symbol != nil {
		asset.Symbol = strings.TrimSpace(*req.Symbol)
	}
	if req.Name != nil {
		asset.Name = strings.TrimSpace(*req.Name)
	}
	if req.Method != nil {
		asset.Method = model.AccountingMethod(strings.ToUpper(*req.Method))
	}
	if req.Currency != nil {
		asset.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Type != nil {
		newType := model.AssetType(strings.ToUpper(*req.Type))
		if newType != asset.Type {
			count, err := s.transactions.CountByAsset(ctx, assetID)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, fmt.Errorf("%w: %s has %d transactions", apperrors.ErrAssetTypeLocked, asset.Symbol, count)
			}
			asset.Type = newType
		}
	}

	if err := s.assets.UpdateAsset(ctx, &asset); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	return &asset, nil
}

// UpdateMarketPrice records a manually entered market price, rounded to two
// decimals.
func (s *AssetService) UpdateMarketPrice(ctx context.Context, assetID string, price float64) (*model.Asset, error) {
	rounded := calc.RoundMoney(price)
	if err := s.assets.UpdateMarketPrice(ctx, assetID, &rounded); err != nil {
		return nil, err
	}

	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAsset removes an asset together with its transactions.
func (s *AssetService) DeleteAsset(ctx context.Context, assetID string) error {
	return s.assets.DeleteAsset(ctx, assetID)
}
