package main

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

func inventoryMarkdown(inv model.AssetInventory) string {
	var b strings.Builder
	cur := inv.Asset.Currency

	fmt.Fprintf(&b, "# %s (%s)\n\n", inv.Asset.Name, inv.Asset.Symbol)
	if len(inv.States) == 0 {
		b.WriteString("No transactions.\n")
		return b.String()
	}

	b.WriteString("| Date | Type | Units | Avg cost | Value | Realized |\n")
	b.WriteString("|---|---|--:|--:|--:|--:|\n")
	for _, s := range inv.States {
		units := calc.FormatUnits(s.UnitsAfter)
		if s.Oversold {
			units += " (oversold)"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			s.Date, s.Type, units,
			calc.FormatCurrency(s.AvgCostAfter, cur),
			calc.FormatCurrency(s.InventoryValueAfter, cur),
			calc.FormatCurrency(s.RealizedPnl, cur),
		)
	}
	return b.String()
}

func summaryMarkdown(positions []model.PortfolioPosition, summary model.PortfolioSummary) string {
	var b strings.Builder
	cur := commonCurrency(positions)

	b.WriteString("# Portfolio\n\n")
	if len(positions) > 0 {
		b.WriteString("| Symbol | Units | Avg cost | Market value | Unrealized | Return |\n")
		b.WriteString("|---|--:|--:|--:|--:|--:|\n")
		for _, p := range positions {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				p.Asset.Symbol,
				calc.FormatUnits(p.Units),
				calc.FormatCurrency(p.AvgCost, p.Asset.Currency),
				calc.FormatCurrency(p.MarketValue, p.Asset.Currency),
				calc.FormatCurrency(p.UnrealizedPnl, p.Asset.Currency),
				calc.FormatPercent(p.ReturnPercentage),
			)
		}
		b.WriteString("\n")
	}

	b.WriteString("## By type\n\n")
	b.WriteString("| Type | Assets | Value | Cost | Unrealized |\n")
	b.WriteString("|---|--:|--:|--:|--:|\n")
	for _, ts := range summary.Types {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n",
			ts.Type, ts.Count, money(ts.Value, cur), money(ts.Cost, cur), money(ts.Pnl, cur))
	}
	t := summary.Total
	fmt.Fprintf(&b, "| **Total** | %d | %s | %s | %s |\n\n", t.Count, money(t.Value, cur), money(t.Cost, cur), money(t.Pnl, cur))
	fmt.Fprintf(&b, "Realized: %s\n", money(t.RealizedPnl, cur))

	return b.String()
}

func refreshMarkdown(resp *model.PriceRefreshResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Price refresh\n\n%d updated, %d failed\n\n", resp.TotalUpdated, resp.TotalErrors)
	for _, u := range resp.UpdatedAssets {
		fmt.Fprintf(&b, "- %s: %s\n", u.Symbol, calc.Dec(u.Price).String())
	}
	for _, e := range resp.Errors {
		fmt.Fprintf(&b, "- %s: **%s**\n", e.Symbol, e.Error)
	}
	return b.String()
}

// commonCurrency returns the currency shared by every position, or "" when
// they differ.
func commonCurrency(positions []model.PortfolioPosition) string {
	cur := ""
	for i, p := range positions {
		if i == 0 {
			cur = p.Asset.Currency
		} else if p.Asset.Currency != cur {
			return ""
		}
	}
	return cur
}

func money(amount float64, cur string) string {
	if cur == "" {
		return calc.Dec(amount).StringFixed(calc.MoneyPlaces)
	}
	return calc.FormatCurrency(amount, cur)
}
