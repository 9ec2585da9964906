package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// AssetStore implements the asset store on PostgreSQL.
type AssetStore struct {
	q querier
}

// NewAssetStore creates a new AssetStore backed by the given connection pool.
func NewAssetStore(pool *pgxpool.Pool) *AssetStore {
	return &AssetStore{q: pool}
}

const assetSelectCols = `id, symbol, name, type, method, currency, current_market_price`

func scanAsset(row pgx.Row) (model.Asset, error) {
	var a model.Asset
	var assetType, method string

	if err := row.Scan(&a.ID, &a.Symbol, &a.Name, &assetType, &method, &a.Currency, &a.CurrentMarketPrice); err != nil {
		return model.Asset{}, err
	}
	a.Type = model.AssetType(assetType)
	a.Method = model.AccountingMethod(method)
	return a, nil
}

// GetAssets returns every asset ordered by type, then symbol.
func (s *AssetStore) GetAssets(ctx context.Context) ([]model.Asset, error) {
	rows, err := s.q.Query(ctx, `SELECT `+assetSelectCols+` FROM asset ORDER BY type, symbol`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list assets: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate assets: %w", err)
	}
	return assets, nil
}

// GetAsset returns one asset or apperrors.ErrAssetNotFound.
func (s *AssetStore) GetAsset(ctx context.Context, assetID string) (model.Asset, error) {
	a, err := scanAsset(s.q.QueryRow(ctx, `SELECT `+assetSelectCols+` FROM asset WHERE id = $1`, assetID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("postgres: get asset %s: %w", assetID, err)
	}
	return a, nil
}

// InsertAsset inserts a new asset. An ID collision returns
// apperrors.ErrDuplicateEntry.
func (s *AssetStore) InsertAsset(ctx context.Context, a *model.Asset) error {
	const query = `
		INSERT INTO asset (id, symbol, name, type, method, currency, current_market_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.q.Exec(ctx, query,
		a.ID, a.Symbol, a.Name, string(a.Type), string(a.Method), a.Currency, a.CurrentMarketPrice,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: asset %s", apperrors.ErrDuplicateEntry, a.ID)
	}
	if err != nil {
		return fmt.Errorf("postgres: insert asset: %w", err)
	}
	return nil
}

// UpdateAsset overwrites the descriptive fields of an asset.
func (s *AssetStore) UpdateAsset(ctx context.Context, a *model.Asset) error {
	const query = `
		UPDATE asset
		SET symbol = $1, name = $2, type = $3, method = $4, currency = $5, updated_at = NOW()
		WHERE id = $6`

	tag, err := s.q.Exec(ctx, query,
		a.Symbol, a.Name, string(a.Type), string(a.Method), a.Currency, a.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: update asset %s: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// UpdateMarketPrice sets or clears the current market price.
func (s *AssetStore) UpdateMarketPrice(ctx context.Context, assetID string, price *float64) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE asset SET current_market_price = $1, updated_at = NOW() WHERE id = $2`,
		price, assetID,
	)
	if err != nil {
		return fmt.Errorf("postgres: update market price %s: %w", assetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// DeleteAsset removes an asset and, by cascade, its transactions.
func (s *AssetStore) DeleteAsset(ctx context.Context, assetID string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM asset WHERE id = $1`, assetID)
	if err != nil {
		return fmt.Errorf("postgres: delete asset %s: %w", assetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}
