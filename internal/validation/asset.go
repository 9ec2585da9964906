package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	validateSymbol(errors, req.Symbol)
	validateName(errors, req.Name)

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else {
		validateAssetType(errors, req.Type)
	}

	// Optional but has constraints
	if req.Method != "" {
		validateMethod(errors, req.Method)
	}
	if req.Currency != "" {
		validateCurrency(errors, req.Currency)
	}
	if req.CurrentMarketPrice != nil {
		validateNonNegative(errors, "currentMarketPrice", *req.CurrentMarketPrice)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Symbol != nil {
		validateSymbol(errors, *req.Symbol)
	}
	if req.Name != nil {
		validateName(errors, *req.Name)
	}
	if req.Type != nil {
		validateAssetType(errors, *req.Type)
	}
	if req.Method != nil {
		validateMethod(errors, *req.Method)
	}
	if req.Currency != nil {
		validateCurrency(errors, *req.Currency)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdatePrice requires a present, non-negative price.
func ValidateUpdatePrice(req request.UpdatePriceRequest) error {
	errors := make(map[string]string)

	if req.Price == nil {
		errors["price"] = "price is required"
	} else {
		validateNonNegative(errors, "price", *req.Price)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAsset checks a fully formed asset, as found in an imported backup.
func ValidateAsset(a model.Asset) error {
	errors := make(map[string]string)

	if err := ValidateID(a.ID); err != nil {
		errors["id"] = err.Error()
	}
	validateSymbol(errors, a.Symbol)
	validateName(errors, a.Name)
	validateAssetType(errors, string(a.Type))
	if a.Method != "" {
		validateMethod(errors, string(a.Method))
	}
	if a.Currency != "" {
		validateCurrency(errors, a.Currency)
	}
	if a.CurrentMarketPrice != nil {
		validateNonNegative(errors, "currentMarketPrice", *a.CurrentMarketPrice)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateSymbol(errors map[string]string, symbol string) {
	if strings.TrimSpace(symbol) == "" {
		errors["symbol"] = "symbol is required"
	} else if len(symbol) > 20 {
		errors["symbol"] = "symbol must be 20 characters or less"
	}
}

func validateName(errors map[string]string, name string) {
	if strings.TrimSpace(name) == "" {
		errors["name"] = "name is required"
	} else if len(name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}
}

func validateAssetType(errors map[string]string, t string) {
	if !model.AssetType(strings.ToUpper(t)).Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", t)
	}
}

func validateMethod(errors map[string]string, m string) {
	if !model.AccountingMethod(strings.ToUpper(m)).Valid() {
		errors["method"] = fmt.Sprintf("invalid method: %s", m)
	}
}

func validateCurrency(errors map[string]string, c string) {
	if len(c) != 3 {
		errors["currency"] = "currency must be a 3-letter ISO code"
		return
	}
	for _, r := range c {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			errors["currency"] = "currency must be a 3-letter ISO code"
			return
		}
	}
}
