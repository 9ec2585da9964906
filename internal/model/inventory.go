package model

// InventoryState is the audit record of an asset's running inventory
// immediately before and after one transaction.
type InventoryState struct {
	TransactionID        string          `json:"transactionId"`
	Date                 Date            `json:"date"`
	Type                 TransactionType `json:"type"`
	UnitsBefore          float64         `json:"unitsBefore"`
	UnitsAfter           float64         `json:"unitsAfter"`
	AvgCostBefore        float64         `json:"avgCostBefore"`
	AvgCostAfter         float64         `json:"avgCostAfter"`
	InventoryValueBefore float64         `json:"inventoryValueBefore"`
	InventoryValueAfter  float64         `json:"inventoryValueAfter"`
	RealizedPnl          float64         `json:"realizedPnl"`
	// Oversold is set when a SELL exceeded the units held.
	Oversold bool `json:"oversold,omitempty"`
}

// AssetInventory is the replayed history of a single asset.
type AssetInventory struct {
	Asset  Asset            `json:"asset"`
	States []InventoryState `json:"states"`
}
