package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/backup"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// BackupHandler handles HTTP requests for export and import.
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new BackupHandler with the provided service dependency.
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

// Export handles GET requests to download the whole ledger.
//
// Endpoint: GET /api/backup/export
// Response: 200 OK with the bundle as an attachment (JSON, or a fernet token when a key is configured)
// Error: 500 Internal Server Error if export fails
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, name, err := h.backupService.Export(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExport.Error(), err.Error())
		return
	}

	contentType := "application/json"
	if h.backupService.Encrypted() {
		contentType = "application/octet-stream"
	}
	response.RespondFile(w, contentType, name, data)
}

// Import handles POST requests replacing the whole ledger with a bundle.
// Nothing changes unless every record is valid.
//
// Endpoint: POST /api/backup/import
// Authentication: X-API-Key and X-Time-Token
// Request Body: a bundle as produced by Export
// Response: 200 OK with ImportResult
// Error: 400 Bad Request if the bundle cannot be read or fails validation
// Error: 500 Internal Server Error if the ledger cannot be replaced
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.backupService.Import(r.Context(), data)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		case errors.Is(err, apperrors.ErrBackupKeyRequired),
			errors.Is(err, apperrors.ErrUnsupportedBackupVersion),
			errors.Is(err, backup.ErrInvalidToken),
			errors.Is(err, backup.ErrMalformed):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrFailedToImport.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImport.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
