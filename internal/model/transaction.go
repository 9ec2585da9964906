package model

import "time"

// TransactionType is the direction of a trade.
type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

// Valid reports whether t is BUY or SELL.
func (t TransactionType) Valid() bool {
	return t == TransactionBuy || t == TransactionSell
}

// Transaction is one entry of an asset's ledger.
// TotalAmount is fixed when the transaction is entered (cash paid including
// fees for a BUY, cash received net of fees for a SELL) and is the figure the
// valuation engine trusts.
type Transaction struct {
	ID           string          `json:"id"`
	AssetID      string          `json:"assetId"`
	Date         Date            `json:"date"`
	Type         TransactionType `json:"type"`
	Quantity     float64         `json:"quantity"`
	PricePerUnit float64         `json:"pricePerUnit"`
	Fees         float64         `json:"fees"`
	TotalAmount  float64         `json:"totalAmount"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"createdAt,omitzero"`
}

// TransactionFilter narrows a transaction listing. Zero values mean no
// restriction; SortDir is "asc" or "desc" by date.
type TransactionFilter struct {
	AssetID   string
	Types     []TransactionType
	StartDate *Date
	EndDate   *Date
	SortDir   string
}

// TransactionResponse is a transaction enriched with its asset's symbol and
// name for list views.
type TransactionResponse struct {
	Transaction
	AssetSymbol string `json:"assetSymbol"`
	AssetName   string `json:"assetName"`
}
