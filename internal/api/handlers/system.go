package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string                `json:"status"`
	Database  string                `json:"database"`
	SelfCheck model.SelfCheckStatus `json:"selfCheck"`
	Error     string                `json:"error,omitempty"`
}

// Health checks database connectivity and reports the self-check status.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthResponse
// Error: 503 Service Unavailable if the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	selfCheck := h.systemService.SelfCheck().Status

	if err := h.systemService.CheckHealth(r.Context()); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Database:  "disconnected",
			SelfCheck: selfCheck,
			Error:     err.Error(),
		})
		return
	}

	status := "healthy"
	if selfCheck != model.SelfCheckNominal {
		status = "degraded"
	}

	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Database:  "connected",
		SelfCheck: selfCheck,
	})
}

// Version handles GET requests to retrieve version information and feature availability.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfo
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.systemService.CheckVersion())
}

// SelfCheck replays the golden ledger through the inventory engine.
//
// Endpoint: GET /api/system/selfcheck
// Response: 200 OK with SelfCheckResult when the engine is nominal
// Error: 500 Internal Server Error with SelfCheckResult when it is not
func (h *SystemHandler) SelfCheck(w http.ResponseWriter, _ *http.Request) {
	result := h.systemService.SelfCheck()
	if !result.Passed {
		response.RespondJSON(w, http.StatusInternalServerError, result)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}
