package model

import "time"

// PriceQuote is a market price returned by a price feed.
type PriceQuote struct {
	Symbol   string    `json:"symbol"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency,omitempty"`
	AsOf     time.Time `json:"asOf"`
}

// PriceRefreshResponse reports a bulk market price refresh. Success is true
// when no asset failed.
type PriceRefreshResponse struct {
	Success       bool                `json:"success"`
	UpdatedAssets []UpdatedAssetPrice `json:"updatedAssets"`
	Errors        []PriceRefreshError `json:"errors"`
	TotalUpdated  int                 `json:"totalUpdated"`
	TotalErrors   int                 `json:"totalErrors"`
}

// UpdatedAssetPrice is one asset whose price was written.
type UpdatedAssetPrice struct {
	AssetID string  `json:"assetId"`
	Symbol  string  `json:"symbol"`
	Price   float64 `json:"price"`
}

// PriceRefreshError is one asset the feed could not price.
type PriceRefreshError struct {
	AssetID string `json:"assetId"`
	Symbol  string `json:"symbol"`
	Error   string `json:"error"`
}
