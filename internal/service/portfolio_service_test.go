package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

// TestPortfolioService_Inventory tests the Inventory method.
//
// WHY: The inventory history is the audit trail a user checks against their
// bank statement. Replaying the golden ledger from the database must land on
// the same figures the engine produces in memory.
func TestPortfolioService_Inventory(t *testing.T) {
	t.Run("replays golden ledger from database", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		asset := testutil.CreateGoldenLedger(t, db)

		// Execute
		inv, err := svc.Inventory(context.Background(), asset.ID)

		// Assert
		if err != nil {
			t.Fatalf("Inventory() returned unexpected error: %v", err)
		}
		if inv.Asset.ID != asset.ID {
			t.Errorf("Expected asset %s, got %s", asset.ID, inv.Asset.ID)
		}
		if len(inv.States) != 4 {
			t.Fatalf("Expected 4 states, got %d", len(inv.States))
		}

		final := inv.States[3]
		if final.UnitsAfter != 26.5 {
			t.Errorf("Expected 26.5 units, got %v", final.UnitsAfter)
		}
		if final.InventoryValueAfter != 88898 {
			t.Errorf("Expected value 88898, got %v", final.InventoryValueAfter)
		}

		sell := inv.States[2]
		if sell.AvgCostBefore != sell.AvgCostAfter {
			t.Errorf("Expected sell to keep average cost, got %v -> %v", sell.AvgCostBefore, sell.AvgCostAfter)
		}
	})

	t.Run("ignores transactions of other assets", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		asset := testutil.NewAsset().Build(t, db)
		other := testutil.NewAsset().Build(t, db)
		testutil.NewTransaction(asset.ID).WithQuantity(2).WithPrice(10).Build(t, db)
		testutil.NewTransaction(other.ID).WithQuantity(5).WithPrice(10).Build(t, db)

		// Execute
		inv, err := svc.Inventory(context.Background(), asset.ID)

		// Assert
		if err != nil {
			t.Fatalf("Inventory() returned unexpected error: %v", err)
		}
		if len(inv.States) != 1 || inv.States[0].UnitsAfter != 2 {
			t.Errorf("Expected a single state with 2 units, got %+v", inv.States)
		}
	})

	t.Run("same-day transactions are ordered by ID", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		asset := testutil.NewAsset().Build(t, db)
		testutil.NewTransaction(asset.ID).WithID("b").WithDate("2024-01-01").
			WithType(model.TransactionSell).WithQuantity(1).WithTotal(150).Build(t, db)
		testutil.NewTransaction(asset.ID).WithID("a").WithDate("2024-01-01").
			WithQuantity(2).WithTotal(200).Build(t, db)

		// Execute
		inv, err := svc.Inventory(context.Background(), asset.ID)

		// Assert
		if err != nil {
			t.Fatalf("Inventory() returned unexpected error: %v", err)
		}
		if inv.States[0].TransactionID != "a" || inv.States[1].TransactionID != "b" {
			t.Fatalf("Expected a before b, got %s then %s", inv.States[0].TransactionID, inv.States[1].TransactionID)
		}
		if inv.States[1].RealizedPnl != 50 {
			t.Errorf("Expected realized pnl 50, got %v", inv.States[1].RealizedPnl)
		}
	})

	t.Run("returns ErrAssetNotFound for unknown asset", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		// Execute
		_, err := svc.Inventory(context.Background(), testutil.MakeID())

		// Assert
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}

// TestPortfolioService_Positions tests the Positions method.
//
// WHY: Positions combine the replayed inventory with the market price. An
// asset without a price or without transactions must still produce a
// well-formed zero position rather than disappearing from the dashboard.
func TestPortfolioService_Positions(t *testing.T) {
	t.Run("includes assets without transactions", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		testutil.NewAsset().WithPrice(100).Build(t, db)

		// Execute
		positions, err := svc.Positions(context.Background(), "")

		// Assert
		if err != nil {
			t.Fatalf("Positions() returned unexpected error: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(positions))
		}
		p := positions[0]
		if p.Units != 0 || p.MarketValue != 0 || p.ReturnPercentage != 0 {
			t.Errorf("Expected zero position, got %+v", p)
		}
	})

	t.Run("computes return percentage", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		asset := testutil.NewAsset().WithPrice(120).Build(t, db)
		testutil.NewTransaction(asset.ID).WithQuantity(10).WithPrice(100).Build(t, db)

		// Execute
		positions, err := svc.Positions(context.Background(), "")

		// Assert
		if err != nil {
			t.Fatalf("Positions() returned unexpected error: %v", err)
		}
		p := positions[0]
		if p.MarketValue != 1200 || p.UnrealizedPnl != 200 {
			t.Errorf("Expected value 1200 and pnl 200, got %v and %v", p.MarketValue, p.UnrealizedPnl)
		}
		if p.ReturnPercentage != 0.2 {
			t.Errorf("Expected return 0.2, got %v", p.ReturnPercentage)
		}
	})

	t.Run("filters by asset type", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		testutil.CreateAsset(t, db, model.AssetTypeGold, "GOLD")
		testutil.CreateAsset(t, db, model.AssetTypeCrypto, "BTC")

		// Execute
		positions, err := svc.Positions(context.Background(), model.AssetTypeCrypto)

		// Assert
		if err != nil {
			t.Fatalf("Positions() returned unexpected error: %v", err)
		}
		if len(positions) != 1 || positions[0].Asset.Symbol != "BTC" {
			t.Errorf("Expected only BTC, got %+v", positions)
		}
	})
}

// TestPortfolioService_Summary tests the Summary method.
//
// WHY: The dashboard always renders four type cards. The summary must list
// every type in a fixed order and its totals must equal the sum of the cards.
func TestPortfolioService_Summary(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)

	gold := testutil.NewAsset().WithType(model.AssetTypeGold).WithPrice(3500).Build(t, db)
	etf := testutil.NewAsset().WithType(model.AssetTypeETF).WithPrice(150).Build(t, db)
	testutil.NewTransaction(gold.ID).WithQuantity(1).WithPrice(3000).Build(t, db)
	testutil.NewTransaction(etf.ID).WithQuantity(10).WithPrice(100).Build(t, db)

	// Execute
	summary, err := svc.Summary(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("Summary() returned unexpected error: %v", err)
	}
	if len(summary.Types) != 4 {
		t.Fatalf("Expected 4 type summaries, got %d", len(summary.Types))
	}

	var value, cost float64
	for _, ts := range summary.Types {
		value += ts.Value
		cost += ts.Cost
	}
	if summary.Total.Value != value || summary.Total.Cost != cost {
		t.Errorf("Totals %+v do not match type sums %v/%v", summary.Total, value, cost)
	}
	if summary.Total.Value != 5000 || summary.Total.Pnl != 1000 || summary.Total.Count != 2 {
		t.Errorf("Unexpected totals %+v", summary.Total)
	}

	stock, _ := summary.ByType(model.AssetTypeStock)
	if stock.Count != 0 || stock.Value != 0 {
		t.Errorf("Expected empty STOCK summary, got %+v", stock)
	}
}
