package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/pricefeed"
)

// PriceService refreshes asset market prices from a live price feed.
type PriceService struct {
	assets      AssetStore
	provider    pricefeed.Provider
	concurrency int
	logger      *slog.Logger
}

// NewPriceService creates a PriceService. A nil provider disables refreshing.
func NewPriceService(assets AssetStore, provider pricefeed.Provider, concurrency int, logger *slog.Logger) *PriceService {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PriceService{
		assets:      assets,
		provider:    provider,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Enabled reports whether a price feed is configured.
func (s *PriceService) Enabled() bool {
	return s.provider != nil
}

// RefreshAll fetches a quote for every asset and stores it, rounded to two
// decimals, as the asset's market price. A failing asset is reported in the
// response and never stops the others.
func (s *PriceService) RefreshAll(ctx context.Context) (*model.PriceRefreshResponse, error) {
	if s.provider == nil {
		return nil, apperrors.ErrPriceFeedDisabled
	}

	assets, err := s.assets.GetAssets(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.PriceRefreshResponse{
		UpdatedAssets: []model.UpdatedAssetPrice{},
		Errors:        []model.PriceRefreshError{},
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, asset := range assets {
		asset := asset
		g.Go(func() error {
			price, err := s.refreshOne(gctx, asset)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("price refresh failed", "asset_id", asset.ID, "symbol", asset.Symbol, "error", err)
				resp.Errors = append(resp.Errors, model.PriceRefreshError{
					AssetID: asset.ID,
					Symbol:  asset.Symbol,
					Error:   err.Error(),
				})
				return nil
			}
			resp.UpdatedAssets = append(resp.UpdatedAssets, model.UpdatedAssetPrice{
				AssetID: asset.ID,
				Symbol:  asset.Symbol,
				Price:   price,
			})
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(resp.UpdatedAssets, func(a, b model.UpdatedAssetPrice) int {
		return strings.Compare(a.Symbol, b.Symbol)
	})
	slices.SortFunc(resp.Errors, func(a, b model.PriceRefreshError) int {
		return strings.Compare(a.Symbol, b.Symbol)
	})

	resp.TotalUpdated = len(resp.UpdatedAssets)
	resp.TotalErrors = len(resp.Errors)
	resp.Success = resp.TotalErrors == 0

	s.logger.Info("price refresh finished", "updated", resp.TotalUpdated, "errors", resp.TotalErrors)
	return resp, nil
}

func (s *PriceService) refreshOne(ctx context.Context, asset model.Asset) (float64, error) {
	quote, err := s.provider.Quote(ctx, asset.Symbol)
	if err != nil {
		return 0, err
	}

	price := calc.RoundMoney(quote.Price)
	if err := s.assets.UpdateMarketPrice(ctx, asset.ID, &price); err != nil {
		return 0, err
	}
	return price, nil
}
