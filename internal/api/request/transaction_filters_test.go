package request

import (
	"testing"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

func TestParseTransactionFilters(t *testing.T) {
	t.Run("default values when no parameters provided", func(t *testing.T) {
		filters, err := ParseTransactionFilters("", "", "", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if filters.SortDir != "desc" {
			t.Errorf("Expected default SortDir 'desc', got '%s'", filters.SortDir)
		}
		if len(filters.Types) != 0 {
			t.Errorf("Expected empty Types, got %v", filters.Types)
		}
		if filters.StartDate != nil || filters.EndDate != nil {
			t.Error("Expected no date bounds")
		}
	})

	t.Run("multiple types are normalised", func(t *testing.T) {
		filters, err := ParseTransactionFilters("buy, SELL", "", "", "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(filters.Types) != 2 || filters.Types[0] != model.TransactionBuy || filters.Types[1] != model.TransactionSell {
			t.Errorf("Expected [BUY SELL], got %v", filters.Types)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		if _, err := ParseTransactionFilters("dividend", "", "", ""); err == nil {
			t.Error("Expected error for invalid type")
		}
	})

	t.Run("date range", func(t *testing.T) {
		filters, err := ParseTransactionFilters("", "2024-01-01", "2024-12-31", "asc")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if filters.StartDate.String() != "2024-01-01" || filters.EndDate.String() != "2024-12-31" {
			t.Errorf("Unexpected range %s..%s", filters.StartDate, filters.EndDate)
		}
		if filters.SortDir != "asc" {
			t.Errorf("Expected asc, got %s", filters.SortDir)
		}
	})

	t.Run("inverted date range", func(t *testing.T) {
		if _, err := ParseTransactionFilters("", "2024-12-31", "2024-01-01", ""); err == nil {
			t.Error("Expected error for inverted range")
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		if _, err := ParseTransactionFilters("", "yesterday", "", ""); err == nil {
			t.Error("Expected error for invalid startDate")
		}
	})

	t.Run("invalid sort direction", func(t *testing.T) {
		if _, err := ParseTransactionFilters("", "", "", "sideways"); err == nil {
			t.Error("Expected error for invalid sortDir")
		}
	})
}
