package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// Expected outcome of the golden ledger.
const (
	goldenUnits   = 26.5
	goldenValue   = 88898.0
	goldenAvgCost = 3354.64
)

// GoldenAsset is the asset the self-check ledger is booked against.
func GoldenAsset() model.Asset {
	return model.Asset{
		ID:       "gold-test",
		Symbol:   "GOLD",
		Name:     "Gold Passbook",
		Type:     model.AssetTypeGold,
		Method:   model.MethodAverageCost,
		Currency: model.DefaultCurrency,
	}
}

// GoldenLedger is a four step ledger with a known end state: two buys, a sell
// that must not move the average cost, and a final buy landing on
// 26.5 units worth 88,898.
func GoldenLedger() []model.Transaction {
	return []model.Transaction{
		{ID: "t1", AssetID: "gold-test", Date: model.MustParseDate("2024-01-01"), Type: model.TransactionBuy, Quantity: 10, PricePerUnit: 3000, TotalAmount: 30000},
		{ID: "t2", AssetID: "gold-test", Date: model.MustParseDate("2024-02-01"), Type: model.TransactionBuy, Quantity: 10, PricePerUnit: 3500, TotalAmount: 35000},
		{ID: "t3", AssetID: "gold-test", Date: model.MustParseDate("2024-03-01"), Type: model.TransactionSell, Quantity: 5, PricePerUnit: 4000, TotalAmount: 20000},
		{ID: "t4", AssetID: "gold-test", Date: model.MustParseDate("2024-04-01"), Type: model.TransactionBuy, Quantity: 11.5, PricePerUnit: 3491.1304, TotalAmount: 40148},
	}
}

// RunSelfCheck replays the golden ledger and compares the final state with the
// known answer. Units and value must match exactly; the average cost is
// compared at two decimals.
func RunSelfCheck() model.SelfCheckResult {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	states := ComputeInventory(GoldenLedger(), GoldenAsset(), WithLogger(quiet))
	if len(states) == 0 {
		return model.SelfCheckResult{
			Status:  model.SelfCheckFailure,
			Details: "no inventory states produced",
		}
	}

	final := states[len(states)-1]
	avg := calc.RoundMoney(final.AvgCostAfter)

	passed := final.UnitsAfter == goldenUnits &&
		final.InventoryValueAfter == goldenValue &&
		avg == goldenAvgCost

	status := model.SelfCheckNominal
	if !passed {
		status = model.SelfCheckFailure
	}

	return model.SelfCheckResult{
		Passed: passed,
		Status: status,
		Details: describeCheck(
			[3]float64{final.UnitsAfter, final.InventoryValueAfter, avg},
			[3]float64{goldenUnits, goldenValue, goldenAvgCost},
		),
		Units:   final.UnitsAfter,
		Value:   final.InventoryValueAfter,
		AvgCost: avg,
	}
}

// describeCheck renders actual against expected units, value and average cost.
func describeCheck(got, want [3]float64) string {
	return fmt.Sprintf("Units: %s (Exp: %s), Val: %s (Exp: %s), Avg: %s (Exp: %s)",
		calc.FormatUnits(got[0]), calc.Dec(want[0]).StringFixed(calc.MoneyPlaces),
		calc.Dec(got[1]).String(), calc.Dec(want[1]).String(),
		calc.Dec(got[2]).StringFixed(calc.MoneyPlaces), calc.Dec(want[2]).StringFixed(calc.MoneyPlaces),
	)
}
