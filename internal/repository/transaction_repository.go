package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `id, asset_id, date, type, quantity, price_per_unit, fees, total_amount, note, created_at`

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var note sql.NullString
	var createdAtStr string

	err := row.Scan(
		&t.ID,
		&t.AssetID,
		&t.Date,
		&t.Type,
		&t.Quantity,
		&t.PricePerUnit,
		&t.Fees,
		&t.TotalAmount,
		&note,
		&createdAtStr,
	)
	if err != nil {
		return model.Transaction{}, err
	}
	t.Note = note.String

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// GetTransactions retrieves transactions matching filter, sorted by date in
// the filter's direction with the ID as tie-breaker.
func (r *TransactionRepository) GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	var where []string
	var args []any

	if filter.AssetID != "" {
		where = append(where, "asset_id = ?")
		args = append(args, filter.AssetID)
	}
	if len(filter.Types) > 0 {
		where = append(where, "type IN ("+placeholders(len(filter.Types))+")")
		for _, t := range filter.Types {
			args = append(args, string(t))
		}
	}
	if filter.StartDate != nil {
		where = append(where, "date >= ?")
		args = append(args, filter.StartDate.String())
	}
	if filter.EndDate != nil {
		where = append(where, "date <= ?")
		args = append(args, filter.EndDate.String())
	}

	query := `SELECT ` + transactionColumns + ` FROM "transaction"`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	if filter.SortDir == "asc" {
		query += ` ORDER BY date ASC, id ASC`
	} else {
		query += ` ORDER BY date DESC, id DESC`
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction. Returns
// apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE id = ?`

	t, err := scanTransaction(r.getQuerier().QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction: %w", err)
	}

	return t, nil
}

// CountByAsset returns how many transactions reference the asset.
func (r *TransactionRepository) CountByAsset(ctx context.Context, assetID string) (int, error) {
	var n int
	err := r.getQuerier().QueryRowContext(ctx, `SELECT COUNT(*) FROM "transaction" WHERE asset_id = ?`, assetID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return n, nil
}

// InsertTransaction stores a new transaction.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, asset_id, date, type, quantity, price_per_unit, fees, total_amount, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.AssetID,
		t.Date.String(),
		t.Type,
		t.Quantity,
		t.PricePerUnit,
		t.Fees,
		t.TotalAmount,
		nullString(t.Note),
		t.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicateEntry, t.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateTransaction overwrites an existing transaction in place.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET asset_id = ?, date = ?, type = ?, quantity = ?, price_per_unit = ?, fees = ?, total_amount = ?, note = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		t.AssetID,
		t.Date.String(),
		t.Type,
		t.Quantity,
		t.PricePerUnit,
		t.Fees,
		t.TotalAmount,
		nullString(t.Note),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return requireAffected(result, apperrors.ErrTransactionNotFound)
}

// DeleteTransaction removes a transaction.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return requireAffected(result, apperrors.ErrTransactionNotFound)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
