package handlers

import (
	"net/http"
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Positions handles GET requests for the current position of every asset.
//
// Endpoint: GET /api/portfolio/positions
// Query Parameters: type (GOLD, ETF, STOCK or CRYPTO, case-insensitive)
// Response: 200 OK with array of PortfolioPosition
// Error: 400 Bad Request if type is not a known asset type
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Positions(w http.ResponseWriter, r *http.Request) {
	var assetType model.AssetType
	if t := r.URL.Query().Get("type"); t != "" {
		assetType = model.AssetType(strings.ToUpper(t))
		if !assetType.Valid() {
			response.RespondError(w, http.StatusBadRequest, "invalid filter parameters", "invalid asset type: "+t)
			return
		}
	}

	positions, err := h.portfolioService.Positions(r.Context(), assetType)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Summary handles GET requests for the per-type and overall portfolio totals.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.Summary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolioSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
