package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// MaxNoteLength bounds the free-text note on a transaction.
const MaxNoteLength = 500

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - assetId: Must be a valid ID
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be BUY or SELL (case-insensitive)
//   - quantity: Must be positive
//   - pricePerUnit: Must not be negative
//   - fees: Must not be negative (defaults to 0)
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateID(req.AssetID); err != nil {
		errors["assetId"] = err.Error()
	}

	validateDate(errors, req.Date)
	validateTransactionType(errors, req.Type)
	validateQuantity(errors, req.Quantity)
	validateNonNegative(errors, "pricePerUnit", req.PricePerUnit)
	validateNonNegative(errors, "fees", req.Fees)

	if len(req.Note) > MaxNoteLength {
		errors["note"] = fmt.Sprintf("note must be %d characters or less", MaxNoteLength)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.AssetID != nil {
		if err := ValidateID(*req.AssetID); err != nil {
			errors["assetId"] = err.Error()
		}
	}
	if req.Date != nil {
		validateDate(errors, *req.Date)
	}
	if req.Type != nil {
		validateTransactionType(errors, *req.Type)
	}
	if req.Quantity != nil {
		validateQuantity(errors, *req.Quantity)
	}
	if req.PricePerUnit != nil {
		validateNonNegative(errors, "pricePerUnit", *req.PricePerUnit)
	}
	if req.Fees != nil {
		validateNonNegative(errors, "fees", *req.Fees)
	}
	if req.Note != nil && len(*req.Note) > MaxNoteLength {
		errors["note"] = fmt.Sprintf("note must be %d characters or less", MaxNoteLength)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateTransaction checks a fully formed transaction, as found in an
// imported backup.
func ValidateTransaction(tx model.Transaction) error {
	errors := make(map[string]string)

	if err := ValidateID(tx.ID); err != nil {
		errors["id"] = err.Error()
	}
	if err := ValidateID(tx.AssetID); err != nil {
		errors["assetId"] = err.Error()
	}
	if tx.Date.IsZero() {
		errors["date"] = "date is required"
	}
	if !tx.Type.Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", tx.Type)
	}
	validateQuantity(errors, tx.Quantity)
	validateNonNegative(errors, "pricePerUnit", tx.PricePerUnit)
	validateNonNegative(errors, "fees", tx.Fees)
	if !finite(tx.TotalAmount) {
		errors["totalAmount"] = "totalAmount must be a finite number"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateDate(errors map[string]string, date string) {
	if strings.TrimSpace(date) == "" {
		errors["date"] = "date is required"
		return
	}
	if _, err := model.ParseDate(date); err != nil {
		errors["date"] = err.Error()
	}
}

func validateTransactionType(errors map[string]string, txType string) {
	if strings.TrimSpace(txType) == "" {
		errors["type"] = "type is required"
	} else if !model.TransactionType(strings.ToUpper(txType)).Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", txType)
	}
}

func validateQuantity(errors map[string]string, quantity float64) {
	if !finite(quantity) || quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
}

func validateNonNegative(errors map[string]string, field string, value float64) {
	if !finite(value) || value < 0 {
		errors[field] = field + " must not be negative"
	}
}
