package request

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// ParseTransactionFilters extracts and validates listing filters from query parameters.
// All parameters are optional.
//
// Validation rules:
//   - type: comma-separated list of BUY and/or SELL (case-insensitive)
//   - startDate/endDate: YYYY-MM-DD (RFC3339 is accepted and truncated to the day)
//   - startDate must not be after endDate
//   - sortDir: "asc" or "desc" (defaults to "desc", newest first)
func ParseTransactionFilters(typesParam, startDateParam, endDateParam, sortDirParam string) (*model.TransactionFilter, error) {
	filters := &model.TransactionFilter{}

	// Parse types (comma-separated)
	if typesParam != "" {
		for _, t := range strings.Split(typesParam, ",") {
			txType := model.TransactionType(strings.ToUpper(strings.TrimSpace(t)))
			if !txType.Valid() {
				return nil, fmt.Errorf("invalid transaction type: %s", t)
			}
			filters.Types = append(filters.Types, txType)
		}
	}

	if startDateParam != "" {
		d, err := model.ParseDate(startDateParam)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate format: %w", err)
		}
		filters.StartDate = &d
	}

	if endDateParam != "" {
		d, err := model.ParseDate(endDateParam)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate format: %w", err)
		}
		filters.EndDate = &d
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return nil, fmt.Errorf("invalid date range: startDate is after endDate")
	}

	if sortDirParam != "" {
		sortDir := strings.ToLower(sortDirParam)
		if sortDir != "asc" && sortDir != "desc" {
			return nil, fmt.Errorf("invalid sortDir: must be 'asc' or 'desc'")
		}
		filters.SortDir = sortDir
	} else {
		filters.SortDir = "desc" // Default
	}

	return filters, nil
}
