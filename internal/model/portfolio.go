package model

// PortfolioPosition is an asset's latest inventory combined with its market
// price. All monetary values are rounded to two decimal places.
type PortfolioPosition struct {
	Asset            Asset   `json:"asset"`
	Units            float64 `json:"units"`
	AvgCost          float64 `json:"avgCost"`
	InvestmentAmount float64 `json:"investmentAmount"` // Inventory value at average cost
	MarketPrice      float64 `json:"marketPrice"`
	MarketValue      float64 `json:"marketValue"`
	UnrealizedPnl    float64 `json:"unrealizedPnl"`
	ReturnPercentage float64 `json:"returnPercentage"` // Ratio, 0.1 == 10%
	RealizedPnl      float64 `json:"realizedPnl"`      // Sum over all sells
}

// TypeSummary totals the positions of one asset type.
type TypeSummary struct {
	Type  AssetType `json:"type"`
	Value float64   `json:"value"`
	Cost  float64   `json:"cost"`
	Pnl   float64   `json:"pnl"`
	Count int       `json:"count"`
}

// PortfolioTotals is the sum over every type summary.
type PortfolioTotals struct {
	Value       float64 `json:"value"`
	Cost        float64 `json:"cost"`
	Pnl         float64 `json:"pnl"`
	RealizedPnl float64 `json:"realizedPnl"`
	Count       int     `json:"count"`
}

// PortfolioSummary is the dashboard view: one entry per asset type, always
// in AssetTypes order, plus the portfolio-wide totals.
type PortfolioSummary struct {
	Types []TypeSummary   `json:"types"`
	Total PortfolioTotals `json:"total"`
}

// ByType returns the summary for t. The second result is false only for an
// unknown type.
func (s PortfolioSummary) ByType(t AssetType) (TypeSummary, bool) {
	for _, ts := range s.Types {
		if ts.Type == t {
			return ts, true
		}
	}
	return TypeSummary{}, false
}
