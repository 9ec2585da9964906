package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// WithTx returns a new AssetRepository scoped to the provided transaction.
func (r *AssetRepository) WithTx(tx *sql.Tx) *AssetRepository {
	return &AssetRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *AssetRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const assetColumns = `id, symbol, name, type, method, currency, current_market_price`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (model.Asset, error) {
	var a model.Asset
	var price sql.NullFloat64

	if err := row.Scan(&a.ID, &a.Symbol, &a.Name, &a.Type, &a.Method, &a.Currency, &price); err != nil {
		return model.Asset{}, err
	}
	if price.Valid {
		p := price.Float64
		a.CurrentMarketPrice = &p
	}
	return a, nil
}

// GetAssets retrieves every asset ordered by type, then symbol.
func (r *AssetRepository) GetAssets(ctx context.Context) ([]model.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM asset
		ORDER BY type ASC, symbol ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAsset retrieves a single asset. Returns apperrors.ErrAssetNotFound when
// no row matches.
func (r *AssetRepository) GetAsset(ctx context.Context, assetID string) (model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset WHERE id = ?`

	a, err := scanAsset(r.getQuerier().QueryRowContext(ctx, query, assetID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset: %w", err)
	}

	return a, nil
}

// InsertAsset stores a new asset. An ID collision returns
// apperrors.ErrDuplicateEntry. Symbols are not unique.
func (r *AssetRepository) InsertAsset(ctx context.Context, a *model.Asset) error {
	query := `
		INSERT INTO asset (id, symbol, name, type, method, currency, current_market_price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		a.ID,
		a.Symbol,
		a.Name,
		a.Type,
		a.Method,
		a.Currency,
		a.CurrentMarketPrice,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: asset %s", apperrors.ErrDuplicateEntry, a.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// UpdateAsset overwrites the descriptive fields of an asset. The market price
// is left alone; see UpdateMarketPrice.
func (r *AssetRepository) UpdateAsset(ctx context.Context, a *model.Asset) error {
	query := `
		UPDATE asset
		SET symbol = ?, name = ?, type = ?, method = ?, currency = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		a.Symbol,
		a.Name,
		a.Type,
		a.Method,
		a.Currency,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	return requireAffected(result, apperrors.ErrAssetNotFound)
}

// UpdateMarketPrice sets (or clears, with nil) the asset's current market price.
func (r *AssetRepository) UpdateMarketPrice(ctx context.Context, assetID string, price *float64) error {
	query := `UPDATE asset SET current_market_price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, price, assetID)
	if err != nil {
		return fmt.Errorf("failed to update market price: %w", err)
	}

	return requireAffected(result, apperrors.ErrAssetNotFound)
}

// DeleteAsset removes an asset; its transactions go with it (ON DELETE CASCADE).
func (r *AssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	return requireAffected(result, apperrors.ErrAssetNotFound)
}

// DeleteAllAssets empties the table, cascading to every transaction.
func (r *AssetRepository) DeleteAllAssets(ctx context.Context) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM asset`); err != nil {
		return fmt.Errorf("failed to clear asset table: %w", err)
	}
	return nil
}

func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
