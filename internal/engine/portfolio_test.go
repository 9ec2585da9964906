package engine

import (
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

func price(v float64) *float64 { return &v }

func TestDerivePosition(t *testing.T) {
	t.Run("golden ledger at market price", func(t *testing.T) {
		asset := GoldenAsset()
		asset.CurrentMarketPrice = price(3500)
		states := ComputeInventory(GoldenLedger(), asset, WithLogger(quietLogger()))

		pos := DerivePosition(asset, states)

		if pos.Units != 26.5 {
			t.Errorf("Expected 26.5 units, got %v", pos.Units)
		}
		if pos.InvestmentAmount != 88898 {
			t.Errorf("Expected investment 88898, got %v", pos.InvestmentAmount)
		}
		if pos.MarketValue != 92750 {
			t.Errorf("Expected market value 92750, got %v", pos.MarketValue)
		}
		if pos.UnrealizedPnl != 3852 {
			t.Errorf("Expected unrealized 3852, got %v", pos.UnrealizedPnl)
		}
		wantReturn := 3852.0 / 88898.0
		if diff := pos.ReturnPercentage - wantReturn; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("Expected return %v, got %v", wantReturn, pos.ReturnPercentage)
		}
		if pos.RealizedPnl != 3750 {
			t.Errorf("Expected realized 3750, got %v", pos.RealizedPnl)
		}
	})

	t.Run("no states and no price is a zero position", func(t *testing.T) {
		pos := DerivePosition(GoldenAsset(), nil)

		if pos.Units != 0 || pos.AvgCost != 0 || pos.InvestmentAmount != 0 {
			t.Errorf("Expected zero inventory, got %+v", pos)
		}
		if pos.MarketValue != 0 || pos.UnrealizedPnl != 0 || pos.ReturnPercentage != 0 {
			t.Errorf("Expected zero valuation, got %+v", pos)
		}
	})

	t.Run("missing market price values holdings at zero", func(t *testing.T) {
		states := ComputeInventory([]model.Transaction{buy("1", "2024-01-01", 2, 500)}, GoldenAsset(), WithLogger(quietLogger()))

		pos := DerivePosition(GoldenAsset(), states)

		if pos.MarketPrice != 0 || pos.MarketValue != 0 {
			t.Errorf("Expected zero price and value, got %v / %v", pos.MarketPrice, pos.MarketValue)
		}
		if pos.UnrealizedPnl != -500 {
			t.Errorf("Expected unrealized -500, got %v", pos.UnrealizedPnl)
		}
		if pos.ReturnPercentage != -1 {
			t.Errorf("Expected return -1, got %v", pos.ReturnPercentage)
		}
	})

	t.Run("non-positive investment gives zero return", func(t *testing.T) {
		asset := GoldenAsset()
		asset.CurrentMarketPrice = price(10)
		states := []model.InventoryState{{UnitsAfter: -1, InventoryValueAfter: -100}}

		pos := DerivePosition(asset, states)

		if pos.ReturnPercentage != 0 {
			t.Errorf("Expected 0 return, got %v", pos.ReturnPercentage)
		}
		if pos.MarketValue != -10 {
			t.Errorf("Expected market value -10, got %v", pos.MarketValue)
		}
	})
}

func TestPositions(t *testing.T) {
	gold := GoldenAsset()
	etf := model.Asset{ID: "etf-1", Symbol: "0050", Type: model.AssetTypeETF, Method: model.MethodAverageCost, CurrentMarketPrice: price(150)}

	txs := append(GoldenLedger(), model.Transaction{
		ID: "e1", AssetID: "etf-1", Date: model.MustParseDate("2024-01-05"),
		Type: model.TransactionBuy, Quantity: 100, PricePerUnit: 120, TotalAmount: 12000,
	})

	positions := Positions([]model.Asset{etf, gold}, txs, WithLogger(quietLogger()))

	if len(positions) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(positions))
	}
	if positions[0].Asset.ID != "etf-1" || positions[1].Asset.ID != "gold-test" {
		t.Error("Expected positions in asset order")
	}
	if positions[0].MarketValue != 15000 || positions[0].UnrealizedPnl != 3000 {
		t.Errorf("Unexpected ETF position %+v", positions[0])
	}

	onlyETF := FilterByType(positions, model.AssetTypeETF)
	if len(onlyETF) != 1 || onlyETF[0].Asset.ID != "etf-1" {
		t.Errorf("FilterByType(ETF) = %+v", onlyETF)
	}
	if crypto := FilterByType(positions, model.AssetTypeCrypto); crypto == nil || len(crypto) != 0 {
		t.Errorf("Expected empty non-nil slice for CRYPTO, got %+v", crypto)
	}
}

func TestAggregate(t *testing.T) {
	t.Run("empty portfolio lists every type with zeros", func(t *testing.T) {
		summary := Aggregate(nil)

		if len(summary.Types) != len(model.AssetTypes) {
			t.Fatalf("Expected %d types, got %d", len(model.AssetTypes), len(summary.Types))
		}
		for i, ts := range summary.Types {
			if ts.Type != model.AssetTypes[i] {
				t.Errorf("type %d: got %s, want %s", i, ts.Type, model.AssetTypes[i])
			}
			if ts.Value != 0 || ts.Cost != 0 || ts.Pnl != 0 || ts.Count != 0 {
				t.Errorf("type %s: expected zeros, got %+v", ts.Type, ts)
			}
		}
		if summary.Total != (model.PortfolioTotals{}) {
			t.Errorf("Expected zero totals, got %+v", summary.Total)
		}
	})

	t.Run("totals are the sum of the type summaries", func(t *testing.T) {
		positions := []model.PortfolioPosition{
			{Asset: model.Asset{Type: model.AssetTypeGold}, MarketValue: 0.1, InvestmentAmount: 0.05, RealizedPnl: 1.1},
			{Asset: model.Asset{Type: model.AssetTypeGold}, MarketValue: 0.2, InvestmentAmount: 0.05},
			{Asset: model.Asset{Type: model.AssetTypeStock}, MarketValue: 1000.01, InvestmentAmount: 1200, RealizedPnl: 2.2},
			{Asset: model.Asset{Type: model.AssetTypeCrypto}, MarketValue: 50, InvestmentAmount: 25.55},
		}

		summary := Aggregate(positions)

		gold, _ := summary.ByType(model.AssetTypeGold)
		if gold.Value != 0.3 || gold.Cost != 0.1 || gold.Pnl != 0.2 || gold.Count != 2 {
			t.Errorf("Unexpected GOLD summary %+v", gold)
		}
		etf, _ := summary.ByType(model.AssetTypeETF)
		if etf.Count != 0 || etf.Value != 0 {
			t.Errorf("Expected empty ETF summary, got %+v", etf)
		}
		stock, _ := summary.ByType(model.AssetTypeStock)
		if stock.Pnl != -199.99 {
			t.Errorf("Expected STOCK pnl -199.99, got %v", stock.Pnl)
		}

		if summary.Total.Value != 1050.31 {
			t.Errorf("Expected total value 1050.31, got %v", summary.Total.Value)
		}
		if summary.Total.Cost != 1225.65 {
			t.Errorf("Expected total cost 1225.65, got %v", summary.Total.Cost)
		}
		if summary.Total.Pnl != -175.34 {
			t.Errorf("Expected total pnl -175.34, got %v", summary.Total.Pnl)
		}
		if summary.Total.RealizedPnl != 3.3 {
			t.Errorf("Expected total realized 3.3, got %v", summary.Total.RealizedPnl)
		}
		if summary.Total.Count != 4 {
			t.Errorf("Expected count 4, got %d", summary.Total.Count)
		}
	})
}

func TestRunSelfCheck(t *testing.T) {
	result := RunSelfCheck()

	if !result.Passed {
		t.Fatalf("Expected self-check to pass: %s", result.Details)
	}
	if result.Status != model.SelfCheckNominal {
		t.Errorf("Expected NOMINAL, got %s", result.Status)
	}
	if result.Units != 26.5 || result.Value != 88898 || result.AvgCost != 3354.64 {
		t.Errorf("Unexpected final figures %+v", result)
	}
	want := "Units: 26.5 (Exp: 26.50), Val: 88898 (Exp: 88898), Avg: 3354.64 (Exp: 3354.64)"
	if result.Details != want {
		t.Errorf("Details = %q, want %q", result.Details, want)
	}
}

func TestDescribeCheck(t *testing.T) {
	got := describeCheck([3]float64{15, 48750, 3250}, [3]float64{26.5, 88898, 3354.64})
	want := "Units: 15 (Exp: 26.50), Val: 48750 (Exp: 88898), Avg: 3250.00 (Exp: 3354.64)"
	if got != want {
		t.Errorf("describeCheck() = %q, want %q", got, want)
	}

	t.Run("expected side follows its input", func(t *testing.T) {
		got := describeCheck([3]float64{1, 2, 3}, [3]float64{10, 20.5, 30})
		want := "Units: 1 (Exp: 10.00), Val: 2 (Exp: 20.5), Avg: 3.00 (Exp: 30.00)"
		if got != want {
			t.Errorf("describeCheck() = %q, want %q", got, want)
		}
	})
}
