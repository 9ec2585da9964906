package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/backup"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/testutil"
)

func TestBackupHandler_Export(t *testing.T) {
	t.Run("exports plain JSON bundle", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateGoldenLedger(t, db)
		handler := NewBackupHandler(testutil.NewTestBackupService(t, db, ""))

		req := httptest.NewRequest(http.MethodGet, "/api/backup/export", nil)
		w := httptest.NewRecorder()

		handler.Export(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json, got %s", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ".json") {
			t.Errorf("Expected .json attachment, got %s", cd)
		}

		var bundle model.Backup
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&bundle)

		if bundle.Version != model.BackupVersion {
			t.Errorf("Expected version %d, got %d", model.BackupVersion, bundle.Version)
		}
		if len(bundle.Assets) != 1 || len(bundle.Transactions) != 4 {
			t.Errorf("Expected 1 asset and 4 transactions, got %d and %d", len(bundle.Assets), len(bundle.Transactions))
		}
	})

	t.Run("exports encrypted bundle when key is set", func(t *testing.T) {
		key, err := backup.GenerateKey()
		if err != nil {
			t.Fatalf("GenerateKey() returned unexpected error: %v", err)
		}
		db := testutil.SetupTestDB(t)
		handler := NewBackupHandler(testutil.NewTestBackupService(t, db, key))

		req := httptest.NewRequest(http.MethodGet, "/api/backup/export", nil)
		w := httptest.NewRecorder()

		handler.Export(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/octet-stream" {
			t.Errorf("Expected application/octet-stream, got %s", ct)
		}
		if backup.IsPlain(w.Body.Bytes()) {
			t.Error("Expected encrypted body")
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewBackupHandler(testutil.NewTestBackupService(t, db, ""))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/backup/export", nil)
		w := httptest.NewRecorder()

		handler.Export(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestBackupHandler_Import(t *testing.T) {
	validBundle := `{
		"version": 1,
		"timestamp": "2024-05-01T00:00:00Z",
		"assets": [
			{"id": "a1", "symbol": "GOLD", "name": "Gold Passbook", "type": "gold"}
		],
		"transactions": [
			{"id": "t1", "assetId": "a1", "date": "2024-01-01", "type": "BUY", "quantity": 10, "pricePerUnit": 3000, "fees": 0, "totalAmount": 30000}
		]
	}`

	t.Run("replaces ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateGoldenLedger(t, db)
		handler := NewBackupHandler(testutil.NewTestBackupService(t, db, ""))

		req := testutil.NewRequestWithBody(http.MethodPost, "/api/backup/import", validBundle)
		w := httptest.NewRecorder()

		handler.Import(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var result model.ImportResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if result.Assets != 1 || result.Transactions != 1 {
			t.Errorf("Expected 1 asset and 1 transaction, got %+v", result)
		}
		if n := testutil.CountRows(t, db, "transaction"); n != 1 {
			t.Errorf("Expected golden ledger to be replaced, %d transactions remain", n)
		}
	})

	t.Run("returns 400 with field errors and leaves ledger untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateGoldenLedger(t, db)
		handler := NewBackupHandler(testutil.NewTestBackupService(t, db, ""))

		body := `{
			"version": 1,
			"assets": [{"id": "a1", "symbol": "GOLD", "name": "Gold", "type": "GOLD"}],
			"transactions": [
				{"id": "t1", "assetId": "missing", "date": "2024-01-01", "type": "BUY", "quantity": 1, "pricePerUnit": 1, "totalAmount": 1}
			]
		}`

		req := testutil.NewRequestWithBody(http.MethodPost, "/api/backup/import", body)
		w := httptest.NewRecorder()

		handler.Import(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var resp response.ErrorResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		fields, ok := resp.Details.(map[string]any)
		if !ok {
			t.Fatalf("Expected field map in details, got %T", resp.Details)
		}
		if _, ok := fields["transactions[0].assetId"]; !ok {
			t.Errorf("Expected transactions[0].assetId error, got %v", fields)
		}
		if n := testutil.CountRows(t, db, "transaction"); n != 4 {
			t.Errorf("Expected golden ledger to remain, got %d transactions", n)
		}
	})

	t.Run("returns 400 on unsupported version", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewBackupHandler(testutil.NewTestBackupService(t, db, ""))

		req := testutil.NewRequestWithBody(http.MethodPost, "/api/backup/import", `{"version": 99, "assets": [], "transactions": []}`)
		w := httptest.NewRecorder()

		handler.Import(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 on empty body", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewBackupHandler(testutil.NewTestBackupService(t, db, ""))

		req := testutil.NewRequestWithBody(http.MethodPost, "/api/backup/import", "")
		w := httptest.NewRecorder()

		handler.Import(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("round-trips encrypted export", func(t *testing.T) {
		key, err := backup.GenerateKey()
		if err != nil {
			t.Fatalf("GenerateKey() returned unexpected error: %v", err)
		}

		src := testutil.SetupTestDB(t)
		testutil.CreateGoldenLedger(t, src)
		exporter := NewBackupHandler(testutil.NewTestBackupService(t, src, key))

		w := httptest.NewRecorder()
		exporter.Export(w, httptest.NewRequest(http.MethodGet, "/api/backup/export", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Export failed: %d %s", w.Code, w.Body.String())
		}

		dst := testutil.SetupTestDB(t)
		importer := NewBackupHandler(testutil.NewTestBackupService(t, dst, key))

		req := testutil.NewRequestWithBody(http.MethodPost, "/api/backup/import", w.Body.String())
		w2 := httptest.NewRecorder()

		importer.Import(w2, req)

		if w2.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
		}
		if n := testutil.CountRows(t, dst, "transaction"); n != 4 {
			t.Errorf("Expected 4 transactions after import, got %d", n)
		}
	})

	t.Run("returns 400 when encrypted bundle uses another key", func(t *testing.T) {
		keyA, _ := backup.GenerateKey()
		keyB, _ := backup.GenerateKey()

		src := testutil.SetupTestDB(t)
		w := httptest.NewRecorder()
		NewBackupHandler(testutil.NewTestBackupService(t, src, keyA)).
			Export(w, httptest.NewRequest(http.MethodGet, "/api/backup/export", nil))

		dst := testutil.SetupTestDB(t)
		req := testutil.NewRequestWithBody(http.MethodPost, "/api/backup/import", w.Body.String())
		w2 := httptest.NewRecorder()

		NewBackupHandler(testutil.NewTestBackupService(t, dst, keyB)).Import(w2, req)

		if w2.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w2.Code, w2.Body.String())
		}
	})
}
