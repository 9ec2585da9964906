package request

type CreateAssetRequest struct {
	Symbol             string   `json:"symbol"`
	Name               string   `json:"name"`
	Type               string   `json:"type"`
	Method             string   `json:"method"`
	Currency           string   `json:"currency"`
	CurrentMarketPrice *float64 `json:"currentMarketPrice,omitempty"`
}

type UpdateAssetRequest struct {
	Symbol   *string `json:"symbol,omitempty"`
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	Method   *string `json:"method,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

// UpdatePriceRequest sets an asset's market price by hand.
type UpdatePriceRequest struct {
	Price *float64 `json:"price"`
}
