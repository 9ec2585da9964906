package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/calc"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactions TransactionStore
	assets       AssetStore
}

// NewTransactionService creates a new TransactionService with the provided store dependencies.
func NewTransactionService(transactions TransactionStore, assets AssetStore) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		assets:       assets,
	}
}

// TotalAmount is the cash amount of a trade: quantity times price, plus fees
// on a buy and minus fees on a sell, rounded to two decimals.
func TotalAmount(txType model.TransactionType, quantity, pricePerUnit, fees float64) float64 {
	gross := calc.Dec(quantity).Mul(calc.Dec(pricePerUnit))
	if txType == model.TransactionSell {
		return calc.Float(gross.Sub(calc.Dec(fees)).Round(calc.MoneyPlaces))
	}
	return calc.Float(gross.Add(calc.Dec(fees)).Round(calc.MoneyPlaces))
}

// GetTransactions returns the transactions matching filter, enriched with the
// symbol and name of their asset.
func (s *TransactionService) GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.TransactionResponse, error) {
	// Assets first: sqlite runs on a single connection, so no query may be
	// issued while transaction rows are still open.
	assets, err := s.assets.GetAssets(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}

	transactions, err := s.transactions.GetTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]model.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		a := byID[t.AssetID]
		result = append(result, model.TransactionResponse{
			Transaction: t,
			AssetSymbol: a.Symbol,
			AssetName:   a.Name,
		})
	}
	return result, nil
}

// GetAssetTransactions returns the transactions of one asset, newest first.
// Returns apperrors.ErrAssetNotFound when the asset does not exist.
func (s *TransactionService) GetAssetTransactions(ctx context.Context, assetID string) ([]model.Transaction, error) {
	if _, err := s.assets.GetAsset(ctx, assetID); err != nil {
		return nil, err
	}
	return s.transactions.GetTransactions(ctx, model.TransactionFilter{AssetID: assetID, SortDir: "desc"})
}

// GetTransaction retrieves a single transaction enriched with its asset.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string) (model.TransactionResponse, error) {
	t, err := s.transactions.GetTransaction(ctx, transactionID)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	resp := model.TransactionResponse{Transaction: t}
	if a, err := s.assets.GetAsset(ctx, t.AssetID); err == nil {
		resp.AssetSymbol = a.Symbol
		resp.AssetName = a.Name
	}
	return resp, nil
}

// CreateTransaction books a new trade against an existing asset.
// Returns apperrors.ErrAssetNotFound when the asset does not exist.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if _, err := s.assets.GetAsset(ctx, req.AssetID); err != nil {
		return nil, err
	}

	txType := model.TransactionType(strings.ToUpper(req.Type))
	transaction := &model.Transaction{
		ID:           uuid.New().String(),
		AssetID:      req.AssetID,
		Date:         date,
		Type:         txType,
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		Fees:         req.Fees,
		TotalAmount:  TotalAmount(txType, req.Quantity, req.PricePerUnit, req.Fees),
		Note:         strings.TrimSpace(req.Note),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	if err := s.transactions.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// UpdateTransaction edits a transaction in place. The total amount is
// recomputed from the resulting quantity, price and fees.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactions.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if req.AssetID != nil && *req.AssetID != transaction.AssetID {
		if _, err := s.assets.GetAsset(ctx, *req.AssetID); err != nil {
			return nil, err
		}
		transaction.AssetID = *req.AssetID
	}
	if req.Date != nil {
		date, err := model.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = date
	}
	if req.Type != nil {
		transaction.Type = model.TransactionType(strings.ToUpper(*req.Type))
	}
	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.PricePerUnit != nil {
		transaction.PricePerUnit = *req.PricePerUnit
	}
	if req.Fees != nil {
		transaction.Fees = *req.Fees
	}
	if req.Note != nil {
		transaction.Note = strings.TrimSpace(*req.Note)
	}
	transaction.TotalAmount = TotalAmount(transaction.Type, transaction.Quantity, transaction.PricePerUnit, transaction.Fees)

	if err := s.transactions.UpdateTransaction(ctx, &transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &transaction, nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return s.transactions.DeleteTransaction(ctx, transactionID)
}
