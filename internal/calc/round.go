// Package calc holds the numeric primitives shared by the valuation engine and
// the service layer: fixed-precision rounding and display formatting.
package calc

import "github.com/shopspring/decimal"

// Precision used for stored amounts.
const (
	MoneyPlaces = 2 // monetary amounts (inventory value, P/L, totals)
	UnitPlaces  = 4 // unit counts and average cost per unit
)

// Round rounds value to the given number of decimal places, half away from zero.
// It goes through decimal.Decimal so that 2.675 rounds to 2.68 rather than the
// 2.67 a binary float multiplication would produce.
//
// Example:
//
//	Round(123.456789, 2)  // 123.46
//	Round(-0.005, 2)      // -0.01
//	Round(3354.64150, 4)  // 3354.6415
func Round(value float64, places int32) float64 {
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// RoundMoney rounds to two decimal places.
func RoundMoney(value float64) float64 {
	return Round(value, MoneyPlaces)
}

// Dec converts a float64 into a decimal.Decimal using its shortest exact
// representation.
func Dec(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// Float converts back to float64 for the API models.
func Float(value decimal.Decimal) float64 {
	return value.InexactFloat64()
}

// SafeDiv returns num/den, or zero when den is zero or negative.
func SafeDiv(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Div(den)
}
