// Package engine is the inventory valuation core. It replays an asset's
// transactions into a sequence of inventory states using the average cost
// method and aggregates the latest states into portfolio positions.
//
// Everything here is pure: no storage, no network, no clocks. Callers load a
// snapshot of the ledger and pass it in; identical input always produces
// identical output.
package engine

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

type options struct {
	logger *slog.Logger
}

// Option configures a ComputeInventory call.
type Option func(*options)

// WithLogger routes oversell warnings to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ComputeInventory replays the transactions belonging to asset in
// chronological order and returns one InventoryState per transaction.
//
// Ordering is by date ascending with ties broken by transaction ID ascending,
// so the result does not depend on the order of txs. Transactions of other
// assets are ignored and txs is never modified.
//
// BUY adds its total amount to the inventory value and recomputes the average
// cost. SELL leaves the average cost unchanged, books the difference between
// the proceeds and the cost of the units sold as realized P/L, and revalues
// the remaining units at average cost. Selling more than is held is logged and
// flagged on the state; the replay continues with negative units.
func ComputeInventory(txs []model.Transaction, asset model.Asset, opts ...Option) []model.InventoryState {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if asset.Method != "" && asset.Method != model.MethodAverageCost {
		o.logger.Debug("accounting method not implemented, valuing with average cost",
			"asset_id", asset.ID, "method", asset.Method)
	}

	ledger := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.AssetID == asset.ID {
			ledger = append(ledger, tx)
		}
	}
	slices.SortStableFunc(ledger, compareTransactions)

	states := make([]model.InventoryState, 0, len(ledger))

	units := decimal.Zero
	value := decimal.Zero
	avg := decimal.Zero

	for _, tx := range ledger {
		state := model.InventoryState{
			TransactionID:        tx.ID,
			Date:                 tx.Date,
			Type:                 tx.Type,
			UnitsBefore:          calc.Float(units),
			AvgCostBefore:        calc.Float(avg),
			InventoryValueBefore: calc.Float(value),
		}

		qty := calc.Dec(tx.Quantity)
		total := calc.Dec(tx.TotalAmount)
		realized := decimal.Zero

		switch tx.Type {
		case model.TransactionBuy:
			value = value.Add(total).Round(calc.MoneyPlaces)
			units = units.Add(qty).Round(calc.UnitPlaces)
			if units.IsPositive() {
				avg = value.Div(units).Round(calc.UnitPlaces)
			} else {
				avg = decimal.Zero
			}

		case model.TransactionSell:
			if qty.GreaterThan(units) {
				state.Oversold = true
				o.logger.Warn("sell exceeds units held, inventory goes negative",
					"asset_id", asset.ID,
					"transaction_id", tx.ID,
					"units_held", units.String(),
					"units_sold", qty.String(),
				)
			}

			costOfSold := avg.Mul(qty).Round(calc.MoneyPlaces)
			realized = total.Sub(costOfSold).Round(calc.MoneyPlaces)
			units = units.Sub(qty).Round(calc.UnitPlaces)
			value = avg.Mul(units).Round(calc.MoneyPlaces)

		default:
			o.logger.Warn("skipping transaction with unknown type",
				"asset_id", asset.ID, "transaction_id", tx.ID, "type", tx.Type)
		}

		state.UnitsAfter = calc.Float(units)
		state.AvgCostAfter = calc.Float(avg)
		state.InventoryValueAfter = calc.Float(value)
		state.RealizedPnl = calc.Float(realized)

		states = append(states, state)
	}

	return states
}

func compareTransactions(a, b model.Transaction) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
