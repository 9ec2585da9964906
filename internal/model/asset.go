package model

// AssetType is the asset class used for grouping positions.
type AssetType string

const (
	AssetTypeGold   AssetType = "GOLD"
	AssetTypeETF    AssetType = "ETF"
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeCrypto AssetType = "CRYPTO"
)

// AssetTypes lists every asset class in dashboard order.
var AssetTypes = []AssetType{AssetTypeGold, AssetTypeETF, AssetTypeStock, AssetTypeCrypto}

// Valid reports whether t is one of the known asset classes.
func (t AssetType) Valid() bool {
	for _, known := range AssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// AccountingMethod selects how cost basis is assigned to sold units.
// Only AVERAGE_COST is computed; FIFO and LIFO are stored but valued
// with average cost.
type AccountingMethod string

const (
	MethodAverageCost AccountingMethod = "AVERAGE_COST"
	MethodFIFO        AccountingMethod = "FIFO"
	MethodLIFO        AccountingMethod = "LIFO"
)

// Valid reports whether m is a recognised accounting method.
func (m AccountingMethod) Valid() bool {
	switch m {
	case MethodAverageCost, MethodFIFO, MethodLIFO:
		return true
	}
	return false
}

// DefaultCurrency is applied when an asset is created without one.
const DefaultCurrency = "TWD"

// Asset is a tracked instrument. CurrentMarketPrice is supplied externally
// (manual entry or the price feed); nil means no price is known.
type Asset struct {
	ID                 string           `json:"id"`
	Symbol             string           `json:"symbol"`
	Name               string           `json:"name"`
	Type               AssetType        `json:"type"`
	Method             AccountingMethod `json:"method"`
	Currency           string           `json:"currency"`
	CurrentMarketPrice *float64         `json:"currentMarketPrice,omitempty"`
}

// MarketPrice returns the current market price, or 0 when none is set.
func (a Asset) MarketPrice() float64 {
	if a.CurrentMarketPrice == nil {
		return 0
	}
	return *a.CurrentMarketPrice
}
