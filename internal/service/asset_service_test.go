package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

// TestAssetService_CreateAsset tests the CreateAsset method.
//
// WHY: Clients send enums in any case and often omit method and currency.
// The stored asset must be normalised so grouping by type works.
func TestAssetService_CreateAsset(t *testing.T) {
	t.Run("normalises and fills defaults", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)

		// Execute
		asset, err := svc.CreateAsset(context.Background(), request.CreateAssetRequest{
			Symbol:             " 0050 ",
			Name:               "Yuanta Taiwan 50",
			Type:               "etf",
			CurrentMarketPrice: ptr(150.256),
		})

		// Assert
		if err != nil {
			t.Fatalf("CreateAsset() returned unexpected error: %v", err)
		}
		if asset.Symbol != "0050" || asset.Type != model.AssetTypeETF {
			t.Errorf("Expected 0050/ETF, got %s/%s", asset.Symbol, asset.Type)
		}
		if asset.Method != model.MethodAverageCost || asset.Currency != "TWD" {
			t.Errorf("Expected defaults AVERAGE_COST/TWD, got %s/%s", asset.Method, asset.Currency)
		}
		if asset.CurrentMarketPrice == nil || *asset.CurrentMarketPrice != 150.26 {
			t.Errorf("Expected price 150.26, got %v", asset.CurrentMarketPrice)
		}

		stored, err := svc.GetAsset(context.Background(), asset.ID)
		if err != nil {
			t.Fatalf("GetAsset() returned unexpected error: %v", err)
		}
		if stored.Symbol != asset.Symbol {
			t.Errorf("Expected stored symbol %s, got %s", asset.Symbol, stored.Symbol)
		}
	})

	t.Run("allows a symbol already in use", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)
		existing := testutil.CreateAsset(t, db, model.AssetTypeGold, "GOLD")

		// Execute
		asset, err := svc.CreateAsset(context.Background(), request.CreateAssetRequest{Symbol: "GOLD", Name: "Gold bar", Type: "GOLD"})

		// Assert
		if err != nil {
			t.Fatalf("CreateAsset() returned unexpected error: %v", err)
		}
		if asset.ID == existing.ID {
			t.Error("Expected a new ID for the second asset")
		}
		if n := testutil.CountRows(t, db, "asset"); n != 2 {
			t.Errorf("Expected 2 assets, got %d", n)
		}
	})
}

// TestAssetService_UpdateAsset tests the UpdateAsset method.
//
// WHY: Moving an asset with history to another type would silently move its
// value between dashboard cards. The type is locked once transactions exist.
func TestAssetService_UpdateAsset(t *testing.T) {
	t.Run("changes type of asset without transactions", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)
		asset := testutil.NewAsset().Build(t, db)

		// Execute
		updated, err := svc.UpdateAsset(context.Background(), asset.ID, request.UpdateAssetRequest{Type: ptr("stock")})

		// Assert
		if err != nil {
			t.Fatalf("UpdateAsset() returned unexpected error: %v", err)
		}
		if updated.Type != model.AssetTypeStock {
			t.Errorf("Expected STOCK, got %s", updated.Type)
		}
	})

	t.Run("locks type once transactions exist", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)
		asset := testutil.NewAsset().Build(t, db)
		testutil.NewTransaction(asset.ID).Build(t, db)

		// Execute
		_, err := svc.UpdateAsset(context.Background(), asset.ID, request.UpdateAssetRequest{Type: ptr("CRYPTO")})

		// Assert
		if !errors.Is(err, apperrors.ErrAssetTypeLocked) {
			t.Errorf("Expected ErrAssetTypeLocked, got %v", err)
		}
	})

	t.Run("same type is not a change", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)
		asset := testutil.NewAsset().Build(t, db)
		testutil.NewTransaction(asset.ID).Build(t, db)

		// Execute
		_, err := svc.UpdateAsset(context.Background(), asset.ID, request.UpdateAssetRequest{Type: ptr("gold"), Name: ptr("Renamed")})

		// Assert
		if err != nil {
			t.Errorf("UpdateAsset() returned unexpected error: %v", err)
		}
	})

	t.Run("returns ErrAssetNotFound", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAssetService(t, db)

		// Execute
		_, err := svc.UpdateAsset(context.Background(), testutil.MakeID(), request.UpdateAssetRequest{Name: ptr("x")})

		// Assert
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}

// TestAssetService_UpdateMarketPrice tests the UpdateMarketPrice method.
func TestAssetService_UpdateMarketPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db)
	asset := testutil.NewAsset().Build(t, db)

	updated, err := svc.UpdateMarketPrice(context.Background(), asset.ID, 2.005)
	if err != nil {
		t.Fatalf("UpdateMarketPrice() returned unexpected error: %v", err)
	}
	if updated.CurrentMarketPrice == nil || *updated.CurrentMarketPrice != 2.01 {
		t.Errorf("Expected 2.01 (half away from zero), got %v", updated.CurrentMarketPrice)
	}

	if _, err := svc.UpdateMarketPrice(context.Background(), testutil.MakeID(), 1); !errors.Is(err, apperrors.ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound, got %v", err)
	}
}

// TestAssetService_DeleteAsset tests the DeleteAsset method.
//
// WHY: Transactions without an asset cannot be valued. Deleting an asset
// must take its ledger with it.
func TestAssetService_DeleteAsset(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAssetService(t, db)
	asset := testutil.NewAsset().Build(t, db)
	keep := testutil.NewAsset().Build(t, db)
	testutil.NewTransaction(asset.ID).Build(t, db)
	testutil.NewTransaction(keep.ID).Build(t, db)

	// Execute
	err := svc.DeleteAsset(context.Background(), asset.ID)

	// Assert
	if err != nil {
		t.Fatalf("DeleteAsset() returned unexpected error: %v", err)
	}
	if n := testutil.CountRows(t, db, "transaction"); n != 1 {
		t.Errorf("Expected 1 transaction left, got %d", n)
	}
	if err := svc.DeleteAsset(context.Background(), asset.ID); !errors.Is(err, apperrors.ErrAssetNotFound) {
		t.Errorf("Expected ErrAssetNotFound on second delete, got %v", err)
	}
}
