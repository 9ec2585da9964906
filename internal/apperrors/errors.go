package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSymbolNotFound indicates that the price feed has no quote for a symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrQuoteNotCached indicates a cache miss in the quote cache.
	ErrQuoteNotCached = errors.New("quote not cached")
)

// Business logic errors represent constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrDuplicateEntry indicates that an entity with the same unique key already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrAssetTypeLocked indicates an attempt to change the type of an asset
	// that already has transactions.
	ErrAssetTypeLocked = errors.New("asset type cannot change once transactions exist")

	// ErrPriceFeedDisabled indicates that no live price feed is configured.
	ErrPriceFeedDisabled = errors.New("price feed is disabled")

	// ErrBackupKeyRequired indicates an encrypted bundle was supplied without a key.
	ErrBackupKeyRequired = errors.New("backup is encrypted and no key is configured")

	// ErrUnsupportedBackupVersion indicates a bundle written by an unknown layout version.
	ErrUnsupportedBackupVersion = errors.New("unsupported backup version")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	// Asset operation errors
	ErrFailedToRetrieveAssets = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset  = errors.New("failed to retrieve asset")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")

	// Portfolio operation errors
	ErrFailedToComputeInventory    = errors.New("failed to compute inventory")
	ErrFailedToGetPortfolioSummary = errors.New("failed to get portfolio summary")
	ErrFailedToGetPositions        = errors.New("failed to get portfolio positions")

	// Price operation errors
	ErrFailedToRefreshPrices = errors.New("failed to refresh prices")
	ErrFailedToUpdatePrice   = errors.New("failed to update market price")

	// Backup operation errors
	ErrFailedToExport = errors.New("failed to export data")
	ErrFailedToImport = errors.New("failed to import data")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
