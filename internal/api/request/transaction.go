package request

type CreateTransactionRequest struct {
	AssetID      string  `json:"assetId"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
	Quantity     float64 `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Fees         float64 `json:"fees"`
	Note         string  `json:"note"`
}

type UpdateTransactionRequest struct {
	AssetID      *string  `json:"assetId,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	PricePerUnit *float64 `json:"pricePerUnit,omitempty"`
	Fees         *float64 `json:"fees,omitempty"`
	Note         *string  `json:"note,omitempty"`
}
