package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// TransactionStore implements the transaction store on PostgreSQL.
type TransactionStore struct {
	q querier
}

// NewTransactionStore creates a new TransactionStore backed by the given connection pool.
func NewTransactionStore(pool *pgxpool.Pool) *TransactionStore {
	return &TransactionStore{q: pool}
}

const transactionSelectCols = `id, asset_id, date, type, quantity, price_per_unit, fees, total_amount, note, created_at`

func scanTransaction(row pgx.Row) (model.Transaction, error) {
	var t model.Transaction
	var date time.Time
	var txType string
	var note *string

	err := row.Scan(
		&t.ID, &t.AssetID, &date, &txType,
		&t.Quantity, &t.PricePerUnit, &t.Fees, &t.TotalAmount,
		&note, &t.CreatedAt,
	)
	if err != nil {
		return model.Transaction{}, err
	}
	t.Date = model.DateOf(date)
	t.Type = model.TransactionType(txType)
	if note != nil {
		t.Note = *note
	}
	return t, nil
}

// GetTransactions lists transactions matching filter.
func (s *TransactionStore) GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.AssetID != "" {
		where = append(where, "asset_id = "+arg(filter.AssetID))
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		where = append(where, "type = ANY("+arg(types)+")")
	}
	if filter.StartDate != nil {
		where = append(where, "date >= "+arg(filter.StartDate.Time()))
	}
	if filter.EndDate != nil {
		where = append(where, "date <= "+arg(filter.EndDate.Time()))
	}

	query := `SELECT ` + transactionSelectCols + ` FROM "transaction"`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if filter.SortDir == "asc" {
		query += ` ORDER BY date ASC, id ASC`
	} else {
		query += ` ORDER BY date DESC, id DESC`
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate transactions: %w", err)
	}
	return transactions, nil
}

// GetTransaction returns one transaction or apperrors.ErrTransactionNotFound.
func (s *TransactionStore) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	t, err := scanTransaction(s.q.QueryRow(ctx,
		`SELECT `+transactionSelectCols+` FROM "transaction" WHERE id = $1`, transactionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("postgres: get transaction %s: %w", transactionID, err)
	}
	return t, nil
}

// CountByAsset returns how many transactions reference the asset.
func (s *TransactionStore) CountByAsset(ctx context.Context, assetID string) (int, error) {
	var n int
	if err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM "transaction" WHERE asset_id = $1`, assetID).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count transactions: %w", err)
	}
	return n, nil
}

// InsertTransaction inserts a new transaction.
func (s *TransactionStore) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	const query = `
		INSERT INTO "transaction" (
			id, asset_id, date, type, quantity, price_per_unit, fees, total_amount, note, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.q.Exec(ctx, query,
		t.ID, t.AssetID, t.Date.Time(), string(t.Type),
		t.Quantity, t.PricePerUnit, t.Fees, t.TotalAmount,
		nullable(t.Note), t.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicateEntry, t.ID)
	}
	if err != nil {
		return fmt.Errorf("postgres: insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites a transaction in place.
func (s *TransactionStore) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	const query = `
		UPDATE "transaction"
		SET asset_id = $1, date = $2, type = $3, quantity = $4, price_per_unit = $5,
			fees = $6, total_amount = $7, note = $8
		WHERE id = $9`

	tag, err := s.q.Exec(ctx, query,
		t.AssetID, t.Date.Time(), string(t.Type),
		t.Quantity, t.PricePerUnit, t.Fees, t.TotalAmount,
		nullable(t.Note), t.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: update transaction %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionStore) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM "transaction" WHERE id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("postgres: delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
