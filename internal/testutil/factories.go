package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/engine"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	asset := testutil.NewAsset().
//	    WithSymbol("0050").
//	    WithType(model.AssetTypeETF).
//	    WithPrice(150.25).
//	    Build(t, db)
type AssetBuilder struct {
	ID       string
	Symbol   string
	Name     string
	Type     model.AssetType
	Method   model.AccountingMethod
	Currency string
	Price    *float64
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:       MakeID(),
		Symbol:   MakeSymbol("GLD"),
		Name:     MakeSymbolName("Gold"),
		Type:     model.AssetTypeGold,
		Method:   model.MethodAverageCost,
		Currency: model.DefaultCurrency,
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithSymbol sets the ticker symbol.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.Symbol = symbol
	return b
}

// WithName sets the display name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithType sets the asset class.
func (b *AssetBuilder) WithType(assetType model.AssetType) *AssetBuilder {
	b.Type = assetType
	return b
}

// WithMethod sets the accounting method.
func (b *AssetBuilder) WithMethod(method model.AccountingMethod) *AssetBuilder {
	b.Method = method
	return b
}

// WithCurrency sets the currency code.
func (b *AssetBuilder) WithCurrency(currency string) *AssetBuilder {
	b.Currency = currency
	return b
}

// WithPrice sets the current market price.
func (b *AssetBuilder) WithPrice(price float64) *AssetBuilder {
	b.Price = &price
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, symbol, name, type, method, currency, current_market_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Symbol, b.Name, b.Type, b.Method, b.Currency, b.Price)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:                 b.ID,
		Symbol:             b.Symbol,
		Name:               b.Name,
		Type:               b.Type,
		Method:             b.Method,
		Currency:           b.Currency,
		CurrentMarketPrice: b.Price,
	}
}

// CreateAsset creates an asset of the given type and symbol with default values.
//
// Example usage:
//
//	asset := testutil.CreateAsset(t, db, model.AssetTypeStock, "2330")
func CreateAsset(t *testing.T, db *sql.DB, assetType model.AssetType, symbol string) model.Asset {
	t.Helper()
	return NewAsset().WithType(assetType).WithSymbol(symbol).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating transactions.
// The total amount is derived from quantity, price and fees unless set
// explicitly with WithTotal.
type TransactionBuilder struct {
	ID           string
	AssetID      string
	Date         model.Date
	Type         model.TransactionType
	Quantity     float64
	PricePerUnit float64
	Fees         float64
	Total        *float64
	Note         string
}

// NewTransaction creates a TransactionBuilder with defaults.
func NewTransaction(assetID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:           MakeID(),
		AssetID:      assetID,
		Date:         model.Today(),
		Type:         model.TransactionBuy,
		Quantity:     10,
		PricePerUnit: 100,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date from "YYYY-MM-DD".
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = model.MustParseDate(date)
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType model.TransactionType) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithQuantity sets the number of units.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the price per unit.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.PricePerUnit = price
	return b
}

// WithFees sets the fees.
func (b *TransactionBuilder) WithFees(fees float64) *TransactionBuilder {
	b.Fees = fees
	return b
}

// WithTotal overrides the derived total amount.
func (b *TransactionBuilder) WithTotal(total float64) *TransactionBuilder {
	b.Total = &total
	return b
}

// WithNote sets the free-text note.
func (b *TransactionBuilder) WithNote(note string) *TransactionBuilder {
	b.Note = note
	return b
}

func (b *TransactionBuilder) total() float64 {
	if b.Total != nil {
		return *b.Total
	}
	gross := b.Quantity * b.PricePerUnit
	if b.Type == model.TransactionSell {
		return gross - b.Fees
	}
	return gross + b.Fees
}

// Build creates the transaction in the database.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	created := time.Now().UTC().Truncate(time.Second)
	var note sql.NullString
	if b.Note != "" {
		note = sql.NullString{String: b.Note, Valid: true}
	}

	query := `
		INSERT INTO "transaction" (id, asset_id, date, type, quantity, price_per_unit, fees, total_amount, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.AssetID, b.Date.String(), b.Type, b.Quantity, b.PricePerUnit, b.Fees, b.total(), note,
		created.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	return model.Transaction{
		ID:           b.ID,
		AssetID:      b.AssetID,
		Date:         b.Date,
		Type:         b.Type,
		Quantity:     b.Quantity,
		PricePerUnit: b.PricePerUnit,
		Fees:         b.Fees,
		TotalAmount:  b.total(),
		Note:         b.Note,
		CreatedAt:    created,
	}
}

// CreateGoldenLedger books the self-check asset and its four transactions.
// The resulting inventory ends at 26.5 units worth 88,898.
func CreateGoldenLedger(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	golden := engine.GoldenAsset()
	asset := NewAsset().
		WithID(golden.ID).
		WithSymbol(golden.Symbol).
		WithName(golden.Name).
		WithType(golden.Type).
		Build(t, db)

	for _, tx := range engine.GoldenLedger() {
		NewTransaction(asset.ID).
			WithID(tx.ID).
			WithDate(tx.Date.String()).
			WithType(tx.Type).
			WithQuantity(tx.Quantity).
			WithPrice(tx.PricePerUnit).
			WithTotal(tx.TotalAmount).
			Build(t, db)
	}

	return asset
}
