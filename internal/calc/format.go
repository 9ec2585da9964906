package calc

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// currency returns the go-money currency for code. Unknown codes come back
// with an empty template.
func currency(code string) money.Currency {
	// money.New is the only way to get a never nil currency
	return *money.New(0, strings.ToUpper(code)).Currency()
}

// FormatCurrency renders amount in the conventions of the ISO currency code,
// e.g. FormatCurrency(1234.5, "USD") == "$1,234.50".
func FormatCurrency(amount float64, code string) string {
	cur := currency(code)
	if cur.Template == "" {
		return fmt.Sprintf("%s %s", strings.ToUpper(code), Dec(amount).StringFixed(MoneyPlaces))
	}
	minor := Dec(amount).Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// FormatUnits renders a unit count with four decimals and trailing zeros trimmed.
func FormatUnits(units float64) string {
	s := Dec(units).StringFixed(UnitPlaces)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// FormatPercent renders a ratio (0.1234) as a percentage string ("12.34%").
func FormatPercent(ratio float64) string {
	return Dec(ratio).Shift(2).StringFixed(MoneyPlaces) + "%"
}
