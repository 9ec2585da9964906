package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// AssetHandler handles HTTP requests for asset endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the AssetService.
type AssetHandler struct {
	assetService       *service.AssetService
	transactionService *service.TransactionService
	portfolioService   *service.PortfolioService
}

// NewAssetHandler creates a new AssetHandler with the provided service dependencies.
func NewAssetHandler(
	assetService *service.AssetService,
	transactionService *service.TransactionService,
	portfolioService *service.PortfolioService,
) *AssetHandler {
	return &AssetHandler{
		assetService:       assetService,
		transactionService: transactionService,
		portfolioService:   portfolioService,
	}
}

// Assets handles GET requests to list every asset.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetService.GetAssets(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests to retrieve a single asset.
//
// Endpoint: GET /api/asset/{id}
// Response: 200 OK with Asset
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	asset, err := h.assetService.GetAsset(r.Context(), assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to create a new asset.
//
// Endpoint: POST /api/asset
// Request Body: CreateAssetRequest (symbol, name, type, method, currency, currentMarketPrice)
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.CreateAsset(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset handles PUT requests to partially update an asset.
//
// Endpoint: PUT /api/asset/{id}
// Request Body: UpdateAssetRequest (all fields optional)
// Response: 200 OK with updated Asset
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if asset not found
// Error: 409 Conflict if the type changes while transactions exist
// Error: 500 Internal Server Error if update fails
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	req, err := parseJSON[request.UpdateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.UpdateAsset(r.Context(), assetID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAssetNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrAssetTypeLocked):
			response.RespondError(w, http.StatusConflict, apperrors.ErrAssetTypeLocked.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update asset", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// UpdatePrice handles PUT requests to set an asset's market price by hand.
// The price is stored rounded to two decimals.
//
// Endpoint: PUT /api/asset/{id}/price
// Request Body: UpdatePriceRequest (price)
// Response: 200 OK with updated Asset
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if update fails
func (h *AssetHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	req, err := parseJSON[request.UpdatePriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.UpdateMarketPrice(r.Context(), assetID, *req.Price)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdatePrice.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove an asset and its transactions.
//
// Endpoint: DELETE /api/asset/{id}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if deletion fails
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	if err := h.assetService.DeleteAsset(r.Context(), assetID); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// AssetTransactions handles GET requests for the transactions of one asset,
// newest first.
//
// Endpoint: GET /api/asset/{id}/transactions
// Response: 200 OK with array of Transaction
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) AssetTransactions(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	transactions, err := h.transactionService.GetAssetTransactions(r.Context(), assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// Inventory handles GET requests for the inventory state after every
// transaction of one asset.
//
// Endpoint: GET /api/asset/{id}/inventory
// Response: 200 OK with AssetInventory
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if computation fails
func (h *AssetHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "id")

	inventory, err := h.portfolioService.Inventory(r.Context(), assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputeInventory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, inventory)
}
