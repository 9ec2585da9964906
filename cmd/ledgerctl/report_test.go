package main

import (
	"strings"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/engine"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

func TestInventoryMarkdown(t *testing.T) {
	asset := engine.GoldenAsset()
	inv := model.AssetInventory{
		Asset:  asset,
		States: engine.ComputeInventory(engine.GoldenLedger(), asset),
	}

	md := inventoryMarkdown(inv)

	if !strings.Contains(md, asset.Symbol) {
		t.Errorf("Expected symbol %s in output:\n%s", asset.Symbol, md)
	}
	if got := strings.Count(md, "\n| 20"); got != len(inv.States) {
		t.Errorf("Expected %d table rows, got %d:\n%s", len(inv.States), got, md)
	}
	if !strings.Contains(md, "26.5 |") {
		t.Errorf("Expected final units 26.5 in output:\n%s", md)
	}

	t.Run("empty history", func(t *testing.T) {
		md := inventoryMarkdown(model.AssetInventory{Asset: asset})
		if !strings.Contains(md, "No transactions.") {
			t.Errorf("Expected empty marker, got:\n%s", md)
		}
	})
}

func TestCommonCurrency(t *testing.T) {
	pos := func(cur string) model.PortfolioPosition {
		return model.PortfolioPosition{Asset: model.Asset{Currency: cur}}
	}

	tests := []struct {
		name      string
		positions []model.PortfolioPosition
		want      string
	}{
		{"none", nil, ""},
		{"single", []model.PortfolioPosition{pos("EUR")}, "EUR"},
		{"uniform", []model.PortfolioPosition{pos("EUR"), pos("EUR")}, "EUR"},
		{"mixed", []model.PortfolioPosition{pos("EUR"), pos("USD")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commonCurrency(tt.positions); got != tt.want {
				t.Errorf("commonCurrency() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	if got := money(1234.5, ""); got != "1234.50" {
		t.Errorf("money() without currency = %q, want 1234.50", got)
	}
	if got := money(1234.5, "USD"); got != "$1,234.50" {
		t.Errorf("money() in USD = %q, want $1,234.50", got)
	}
}

func TestRefreshMarkdown(t *testing.T) {
	md := refreshMarkdown(&model.PriceRefreshResponse{
		UpdatedAssets: []model.UpdatedAssetPrice{{Symbol: "VWCE", Price: 101.25}},
		Errors:        []model.PriceRefreshError{{Symbol: "XAU", Error: "symbol not found"}},
		TotalUpdated:  1,
		TotalErrors:   1,
	})

	for _, want := range []string{"1 updated, 1 failed", "VWCE: 101.25", "XAU: **symbol not found**"} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected %q in output:\n%s", want, md)
		}
	}
}
