package engine

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// DerivePosition values an asset from its replayed states. The latest state
// supplies units, average cost and investment amount; an asset without states
// yields a zero position. A missing market price counts as zero.
func DerivePosition(asset model.Asset, states []model.InventoryState) model.PortfolioPosition {
	var units, avg, investment float64
	if n := len(states); n > 0 {
		last := states[n-1]
		units = last.UnitsAfter
		avg = last.AvgCostAfter
		investment = last.InventoryValueAfter
	}

	realized := decimal.Zero
	for _, s := range states {
		realized = realized.Add(calc.Dec(s.RealizedPnl))
	}

	price := asset.MarketPrice()
	marketValue := calc.Dec(units).Mul(calc.Dec(price)).Round(calc.MoneyPlaces)
	pnl := marketValue.Sub(calc.Dec(investment)).Round(calc.MoneyPlaces)

	returnPct := calc.SafeDiv(pnl, calc.Dec(investment))

	return model.PortfolioPosition{
		Asset:            asset,
		Units:            units,
		AvgCost:          avg,
		InvestmentAmount: investment,
		MarketPrice:      price,
		MarketValue:      calc.Float(marketValue),
		UnrealizedPnl:    calc.Float(pnl),
		ReturnPercentage: calc.Float(returnPct),
		RealizedPnl:      calc.Float(realized.Round(calc.MoneyPlaces)),
	}
}

// Positions replays every asset against the shared transaction list and
// derives its position, preserving the order of assets.
func Positions(assets []model.Asset, txs []model.Transaction, opts ...Option) []model.PortfolioPosition {
	byAsset := GroupByAsset(txs)
	positions := make([]model.PortfolioPosition, 0, len(assets))
	for _, a := range assets {
		states := ComputeInventory(byAsset[a.ID], a, opts...)
		positions = append(positions, DerivePosition(a, states))
	}
	return positions
}

// GroupByAsset buckets transactions by asset ID.
func GroupByAsset(txs []model.Transaction) map[string][]model.Transaction {
	grouped := make(map[string][]model.Transaction)
	for _, tx := range txs {
		grouped[tx.AssetID] = append(grouped[tx.AssetID], tx)
	}
	return grouped
}

// FilterByType returns the positions whose asset is of type t.
func FilterByType(positions []model.PortfolioPosition, t model.AssetType) []model.PortfolioPosition {
	filtered := []model.PortfolioPosition{}
	for _, p := range positions {
		if p.Asset.Type == t {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

type typeTotals struct {
	value, cost, pnl decimal.Decimal
	count            int
}

// Aggregate groups positions by asset type. Every known type is present in
// the result, zero-valued when it has no positions. Sums are taken on exact
// decimals and rounded once at the end.
func Aggregate(positions []model.PortfolioPosition) model.PortfolioSummary {
	totals := make(map[model.AssetType]*typeTotals, len(model.AssetTypes))
	for _, t := range model.AssetTypes {
		totals[t] = &typeTotals{}
	}

	realized := decimal.Zero
	for _, p := range positions {
		tt, ok := totals[p.Asset.Type]
		if !ok {
			continue
		}
		tt.value = tt.value.Add(calc.Dec(p.MarketValue))
		tt.cost = tt.cost.Add(calc.Dec(p.InvestmentAmount))
		tt.count++
		realized = realized.Add(calc.Dec(p.RealizedPnl))
	}

	summary := model.PortfolioSummary{Types: make([]model.TypeSummary, 0, len(model.AssetTypes))}
	var value, cost decimal.Decimal
	for _, t := range model.AssetTypes {
		tt := totals[t]
		tt.pnl = tt.value.Sub(tt.cost)
		summary.Types = append(summary.Types, model.TypeSummary{
			Type:  t,
			Value: calc.Float(tt.value.Round(calc.MoneyPlaces)),
			Cost:  calc.Float(tt.cost.Round(calc.MoneyPlaces)),
			Pnl:   calc.Float(tt.pnl.Round(calc.MoneyPlaces)),
			Count: tt.count,
		})
		value = value.Add(tt.value)
		cost = cost.Add(tt.cost)
		summary.Total.Count += tt.count
	}

	summary.Total.Value = calc.Float(value.Round(calc.MoneyPlaces))
	summary.Total.Cost = calc.Float(cost.Round(calc.MoneyPlaces))
	summary.Total.Pnl = calc.Float(value.Sub(cost).Round(calc.MoneyPlaces))
	summary.Total.RealizedPnl = calc.Float(realized.Round(calc.MoneyPlaces))

	return summary
}
