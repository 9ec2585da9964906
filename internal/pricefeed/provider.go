// Package pricefeed fetches live market prices for assets.
package pricefeed

import (
	"context"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// Provider returns the latest quote for a ticker symbol.
type Provider interface {
	Quote(ctx context.Context, symbol string) (model.PriceQuote, error)
}
