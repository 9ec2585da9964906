package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// MockPriceProvider is an in-memory pricefeed.Provider for tests. Symbols
// without a configured price return apperrors.ErrSymbolNotFound.
type MockPriceProvider struct {
	mu     sync.Mutex
	prices map[string]float64
	errs   map[string]error
	calls  map[string]int
}

// NewMockPriceProvider creates a provider that knows the given prices.
func NewMockPriceProvider(prices map[string]float64) *MockPriceProvider {
	m := &MockPriceProvider{
		prices: map[string]float64{},
		errs:   map[string]error{},
		calls:  map[string]int{},
	}
	for symbol, price := range prices {
		m.prices[symbol] = price
	}
	return m
}

// WithError makes every quote for symbol fail with err.
func (m *MockPriceProvider) WithError(symbol string, err error) *MockPriceProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[symbol] = err
	return m
}

// Quote returns the configured price for symbol.
func (m *MockPriceProvider) Quote(ctx context.Context, symbol string) (model.PriceQuote, error) {
	if err := ctx.Err(); err != nil {
		return model.PriceQuote{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[symbol]++

	if err, ok := m.errs[symbol]; ok {
		return model.PriceQuote{}, err
	}
	price, ok := m.prices[symbol]
	if !ok {
		return model.PriceQuote{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}
	return model.PriceQuote{Symbol: symbol, Price: price, Currency: model.DefaultCurrency, AsOf: time.Now().UTC()}, nil
}

// Calls returns how many quotes were requested for symbol.
func (m *MockPriceProvider) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}
