package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// PriceHandler handles HTTP requests for price maintenance endpoints.
type PriceHandler struct {
	priceService *service.PriceService
}

// NewPriceHandler creates a new PriceHandler with the provided service dependency.
func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{
		priceService: priceService,
	}
}

// RefreshAll fetches a live price for every asset. Individual failures are
// listed in the response and do not fail the request.
//
// Endpoint: POST /api/price/refresh
// Authentication: X-API-Key and X-Time-Token
// Response: 200 OK with PriceRefreshResponse
// Error: 503 Service Unavailable if no price feed is configured
// Error: 500 Internal Server Error if the assets cannot be loaded
func (h *PriceHandler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.priceService.RefreshAll(r.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrPriceFeedDisabled) {
			response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrPriceFeedDisabled.Error(), "set PRICE_FEED to enable live prices")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
